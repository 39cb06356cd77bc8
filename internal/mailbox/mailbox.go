package mailbox

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Name of the monitored mailbox.
const inbox = "INBOX"

// A message fetched from the mailbox.
type Message struct {
	SeqNum uint32 // Sequence number within the currently selected mailbox.
	Raw    []byte // Full RFC 822 message bytes.
}

// An authenticated IMAP session.
type Session struct {
	client *client.Client
}

// Dials the IMAP server over implicit TLS and logs in.
func Dial(address, username, password string) (*Session, error) {
	c, err := client.DialTLS(address, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrMailbox, address, err)
	}

	if err := c.Login(username, password); err != nil {
		c.Logout()
		return nil, fmt.Errorf("%w: login: %w", ErrMailbox, err)
	}

	slog.Info("logged in", "user", username, "server", address)

	return &Session{client: c}, nil
}

// Fetches every message currently in the INBOX.
//
// The mailbox is re-selected on each call so that sequence numbers are
// consistent with the server's view for the duration of the pass. Sequence
// numbers in the result are only valid until the next Expunge.
func (s *Session) Fetch() ([]Message, error) {
	if _, err := s.client.Select(inbox, false); err != nil {
		return nil, fmt.Errorf("%w: select %s: %w", ErrMailbox, inbox, err)
	}

	seqNums, err := s.client.Search(imap.NewSearchCriteria())
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", ErrMailbox, err)
	}
	if len(seqNums) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNums...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, len(seqNums))
	done := make(chan error, 1)
	go func() {
		done <- s.client.Fetch(seqset, items, messages)
	}()

	var result []Message
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}

		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %w", ErrMailbox, err)
		}

		result = append(result, Message{SeqNum: msg.SeqNum, Raw: raw})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: fetch: %w", ErrMailbox, err)
	}

	return result, nil
}

// Flags a message as deleted.
//
// The message stays visible until [Session.Expunge] runs.
func (s *Session) Delete(seqNum uint32) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNum)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.DeletedFlag}

	if err := s.client.Store(seqset, item, flags, nil); err != nil {
		return fmt.Errorf("%w: store: %w", ErrMailbox, err)
	}
	return nil
}

// Permanently removes all messages flagged as deleted.
func (s *Session) Expunge() error {
	if err := s.client.Expunge(nil); err != nil {
		return fmt.Errorf("%w: expunge: %w", ErrMailbox, err)
	}
	return nil
}

// Logs out and closes the connection.
func (s *Session) Close() error {
	return s.client.Logout()
}
