package mail

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	// Registers extended charsets so non-UTF-8 newsletters decode.
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

const (

	// Placeholder when a message has no Subject header.
	noSubject = "No Subject"

	// Placeholder when a message has no From header.
	unknownSender = "Unknown Sender"

	// Placeholder when no readable body part exists.
	unreadableBody = "Cannot parse body"
)

// A parsed mail message, reduced to the fields the forwarder uses.
type Message struct {
	From    string // Sender display string from the From header.
	Subject string // Decoded subject line.
	Body    string // Normalized plain-text body.
}

// Parses a raw RFC 822 message.
//
// Header decoding failures on individual fields degrade to placeholders
// rather than failing the whole message; only an unreadable message
// structure is an error.
func Parse(raw []byte) (*Message, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	msg := &Message{
		From:    headerText(mr, "From", unknownSender),
		Subject: subject(mr),
	}

	body, ok := extractBody(mr)
	if !ok {
		body = unreadableBody
	}
	msg.Body = body

	return msg, nil
}

// Returns the decoded subject, or a placeholder when absent or undecodable.
func subject(mr *mail.Reader) string {
	s, err := mr.Header.Subject()
	if err != nil || strings.TrimSpace(s) == "" {
		return noSubject
	}
	return s
}

// Returns the decoded text of a header field, or fallback when absent.
func headerText(mr *mail.Reader, key, fallback string) string {
	v, err := mr.Header.Text(key)
	if err != nil || strings.TrimSpace(v) == "" {
		// An encoded-word decode error still leaves the raw value usable.
		if raw := mr.Header.Get(key); strings.TrimSpace(raw) != "" {
			return raw
		}
		return fallback
	}
	return v
}

// Walks the message parts and extracts a plain-text body.
//
// The first text/plain part wins. If none exists, the first text/html part
// is rendered to text. Returns false when no readable part was found.
func extractBody(mr *mail.Reader) (string, bool) {
	var htmlFallback string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A broken part does not invalidate siblings already read.
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue // Attachments are not forwarded.
		}

		mediaType, _, err := header.ContentType()
		if err != nil {
			continue
		}

		switch mediaType {
		case "text/plain":
			b, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			return cleanBody(string(b)), true

		case "text/html":
			if htmlFallback != "" {
				continue
			}
			b, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			htmlFallback = string(b)
		}
	}

	if htmlFallback != "" {
		if text, err := renderHTML(htmlFallback); err == nil {
			return cleanBody(text), true
		}
	}

	return "", false
}
