package discord

import "unicode/utf8"

// Maximum description length in bytes before truncation. Discord caps embed
// descriptions at 2000 characters; 1500 leaves room for the ellipsis and
// multi-byte expansion.
const maxBodyBytes = 1500

// Shortens a body to fit a Discord embed description.
//
// The cut point backs up to a UTF-8 rune boundary so multi-byte characters
// are never split. Truncated bodies end with an ellipsis marker.
func truncate(body string) string {
	if len(body) <= maxBodyBytes {
		return body
	}

	end := maxBodyBytes
	for end > 0 && !utf8.RuneStart(body[end]) {
		end--
	}

	return body[:end] + "..."
}
