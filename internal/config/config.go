package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (

	// Default delay between mailbox polling passes.
	DefaultPollInterval = 5 * time.Second

	// Default delay before reconnecting after a connection failure.
	DefaultRetryDelay = 10 * time.Second
)

// Environment variables that override their config.toml counterparts.
const (
	envIMAPPassword = "NEWSLETTER_IMAP_PASSWORD"
	envWebhookURL   = "NEWSLETTER_DISCORD_WEBHOOK_URL"
)

// Holds the newsletter service configuration.
type Config struct {
	IMAPServer      string   `toml:"imap_server"`         // IMAP host to monitor.
	IMAPPort        uint16   `toml:"imap_port"`           // IMAP port (implicit TLS).
	IMAPUsername    string   `toml:"imap_username"`       // Login username.
	IMAPPassword    string   `toml:"imap_password"`       // Login password.
	WebhookURL      string   `toml:"discord_webhook_url"` // Discord webhook endpoint.
	IgnoredSenders  []string `toml:"ignored_senders"`     // Substrings matched against the From header.
	IgnoredSubjects []string `toml:"ignored_subjects"`    // Substrings matched against the Subject header.
	PollInterval    Duration `toml:"poll_interval"`       // Delay between polling passes.
	RetryDelay      Duration `toml:"retry_delay"`         // Delay before reconnecting after an error.
}

// Wraps [time.Duration] so TOML values can be written as "5s", "1m", etc.
type Duration struct {
	time.Duration
}

// Parses a TOML string value into a duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Loads the configuration from the TOML file at path.
//
// A .env file in the working directory is loaded first when present, then
// environment overrides are applied on top of the file values. The returned
// configuration is validated and has defaults filled in.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case; only a present-but-broken file matters.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("%w: .env: %w", ErrConfig, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}

	return cfg, nil
}

// Parses a TOML document, applies environment overrides and defaults, and
// validates the result.
func Parse(data string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv(envIMAPPassword); v != "" {
		cfg.IMAPPassword = v
	}
	if v := os.Getenv(envWebhookURL); v != "" {
		cfg.WebhookURL = v
	}

	if cfg.PollInterval.Duration == 0 {
		cfg.PollInterval.Duration = DefaultPollInterval
	}
	if cfg.RetryDelay.Duration == 0 {
		cfg.RetryDelay.Duration = DefaultRetryDelay
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Checks that all required fields are present.
func (c *Config) validate() error {
	switch {
	case c.IMAPServer == "":
		return fmt.Errorf("%w: imap_server", ErrMissingField)
	case c.IMAPPort == 0:
		return fmt.Errorf("%w: imap_port", ErrMissingField)
	case c.IMAPUsername == "":
		return fmt.Errorf("%w: imap_username", ErrMissingField)
	case c.IMAPPassword == "":
		return fmt.Errorf("%w: imap_password", ErrMissingField)
	case c.WebhookURL == "":
		return fmt.Errorf("%w: discord_webhook_url", ErrMissingField)
	}
	return nil
}

// Returns the IMAP dial address in host:port form.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.IMAPServer, c.IMAPPort)
}
