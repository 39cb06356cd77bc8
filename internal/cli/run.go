package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/imnyang/newsletter/internal/config"
	"github.com/imnyang/newsletter/internal/discord"
	"github.com/imnyang/newsletter/internal/forward"
	"github.com/imnyang/newsletter/internal/mailbox"
	"github.com/imnyang/newsletter/internal/paths"
)

// Represents the 'newsletter run' command.
type RunCmd struct{}

// Executes the run command.
//
// Loads the configuration, connects to the mailbox, and forwards messages
// until the context is cancelled (e.g. via SIGINT or SIGTERM).
func (c *RunCmd) Run(ctx context.Context) error {
	path := RootCmd.Config
	if path == "" {
		path = paths.ConfigFile()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if cleanup := writePIDFile(); cleanup != nil {
		defer cleanup()
	}

	dial := func() (forward.Source, error) {
		s, err := mailbox.Dial(cfg.Address(), cfg.IMAPUsername, cfg.IMAPPassword)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	monitor := forward.New(dial, discord.New(cfg.WebhookURL), forward.Options{
		Filter:       forward.NewFilter(cfg.IgnoredSenders, cfg.IgnoredSubjects),
		PollInterval: cfg.PollInterval.Duration,
		RetryDelay:   cfg.RetryDelay.Duration,
	})

	slog.Info("monitoring mailbox", "server", cfg.Address(), "user", cfg.IMAPUsername)

	return monitor.Run(ctx)
}

// Writes the process PID to the runtime directory.
//
// Failure is logged but never fatal: the PID file is a convenience for
// process supervisors, not a correctness requirement. Returns a cleanup
// function, or nil when nothing was written.
func writePIDFile() func() {
	path := paths.PIDFile()

	if err := os.MkdirAll(paths.Runtime(), paths.DefaultDirMode); err != nil {
		slog.Warn("cannot create runtime directory", "path", path, "error", err)
		return nil
	}

	pid := fmt.Appendf(nil, "%d\n", os.Getpid())
	if err := os.WriteFile(path, pid, paths.DefaultFileMode); err != nil {
		slog.Warn("cannot write PID file", "path", path, "error", err)
		return nil
	}

	return func() { os.Remove(path) }
}
