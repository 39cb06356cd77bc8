package forward

import (
	"context"
	"log/slog"
	"time"

	"github.com/imnyang/newsletter/internal/discord"
	"github.com/imnyang/newsletter/internal/mail"
	"github.com/imnyang/newsletter/internal/mailbox"
)

// A connected message source, satisfied by [mailbox.Session].
type Source interface {
	Fetch() ([]mailbox.Message, error)
	Delete(seqNum uint32) error
	Expunge() error
	Close() error
}

// Delivers forwarded messages, satisfied by [discord.Client].
type Sink interface {
	Send(ctx context.Context, n discord.Notice) error
}

// Opens a fresh source connection. Called on startup and after every
// connection failure.
type Dialer func() (Source, error)

// Controls monitor behavior.
type Options struct {
	Filter       *Filter       // Ignore rules. Nil means forward everything.
	PollInterval time.Duration // Delay between polling passes.
	RetryDelay   time.Duration // Delay before redialing after an error.
}

// Polls a source and forwards messages to a sink.
type Monitor struct {
	dial   Dialer
	sink   Sink
	filter *Filter
	poll   time.Duration
	retry  time.Duration
}

// Creates a monitor.
func New(dial Dialer, sink Sink, opts Options) *Monitor {
	filter := opts.Filter
	if filter == nil {
		filter = NewFilter(nil, nil)
	}

	return &Monitor{
		dial:   dial,
		sink:   sink,
		filter: filter,
		poll:   opts.PollInterval,
		retry:  opts.RetryDelay,
	}
}

// Runs the monitor until the context is cancelled.
//
// Each connection is watched until it errors, then the monitor waits for
// the retry delay and dials again. Cancellation is the only clean exit.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		src, err := m.dial()
		if err != nil {
			slog.Error("connection failed", "error", err)
			if !sleep(ctx, m.retry) {
				return nil
			}
			continue
		}

		err = m.watch(ctx, src)
		src.Close()

		if ctx.Err() != nil {
			return nil
		}

		slog.Error("connection lost", "error", err)
		if !sleep(ctx, m.retry) {
			return nil
		}
	}
}

// Polls the source until the connection errors or the context is cancelled.
func (m *Monitor) watch(ctx context.Context, src Source) error {
	for {
		if err := m.pass(ctx, src); err != nil {
			return err
		}
		if !sleep(ctx, m.poll) {
			return ctx.Err()
		}
	}
}

// Performs one polling pass: fetch everything, process each message, and
// expunge whatever was flagged.
//
// Returned errors are connection-level (fetch, delete, expunge). Per-message
// delivery failures are logged and leave the message in place for the next
// pass.
func (m *Monitor) pass(ctx context.Context, src Source) error {
	messages, err := src.Fetch()
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	slog.Info("found messages", "count", len(messages))

	processed := 0
	for _, msg := range messages {
		done, err := m.process(ctx, src, msg)
		if err != nil {
			return err
		}
		if done {
			processed++
		}
	}

	if processed > 0 {
		return src.Expunge()
	}
	return nil
}

// Handles a single message. Returns true when the message was flagged
// deleted (forwarded or dropped) and an error only for source failures.
func (m *Monitor) process(ctx context.Context, src Source, raw mailbox.Message) (bool, error) {
	msg, err := mail.Parse(raw.Raw)
	if err != nil {
		// A message the parser cannot even open would be refetched forever;
		// drop it rather than poison the queue.
		slog.Warn("dropping unparsable message", "seq", raw.SeqNum, "error", err)
		return true, src.Delete(raw.SeqNum)
	}

	if m.filter.Ignores(msg.From, msg.Subject) {
		slog.Info("ignored email", "from", msg.From, "subject", msg.Subject)
		return true, src.Delete(raw.SeqNum)
	}

	slog.Info("processing email", "subject", msg.Subject)

	err = m.sink.Send(ctx, discord.Notice{
		Title:  msg.Subject,
		Author: msg.From,
		Body:   msg.Body,
	})
	if err != nil {
		// Not deleted: the next pass retries it.
		slog.Error("delivery failed", "subject", msg.Subject, "error", err)
		return false, nil
	}

	return true, src.Delete(raw.SeqNum)
}

// Waits for the duration or the context, whichever comes first. Returns
// false when the context was cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
