// Package config loads and validates the newsletter configuration.
//
// Configuration lives in a TOML file (see paths.ConfigFile for the search
// order). Secrets can be supplied or overridden through the environment,
// optionally seeded from a .env file, so that config.toml can be committed
// without credentials:
//
//	NEWSLETTER_IMAP_PASSWORD
//	NEWSLETTER_DISCORD_WEBHOOK_URL
//
// Example config.toml:
//
//	imap_server = "imap.example.com"
//	imap_port = 993
//	imap_username = "bot@example.com"
//	imap_password = "secret"
//	discord_webhook_url = "https://discord.com/api/webhooks/..."
//	ignored_senders = ["noreply@spam.example"]
//	ignored_subjects = ["[ads]"]
//	poll_interval = "5s"
//	retry_delay = "10s"
package config
