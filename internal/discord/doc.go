// Package discord posts forwarded newsletters to a Discord webhook.
//
// Each message becomes a single embed: the mail subject as the title, the
// sender as the embed author, and the plain-text body as the description.
// Descriptions are truncated well below Discord's 2000-character embed
// limit so that markdown rendering has headroom.
package discord
