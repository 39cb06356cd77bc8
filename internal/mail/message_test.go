package mail

import (
	"strings"
	"testing"
)

// Joins header and body lines with CRLF line endings.
func rawMessage(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

func TestParsePlainText(t *testing.T) {
	raw := rawMessage(
		"From: Alice <alice@example.com>",
		"To: bot@example.com",
		"Subject: Weekly digest",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Hello from the newsletter.",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Subject != "Weekly digest" {
		t.Fatalf("Subject = %q, want Weekly digest", msg.Subject)
	}
	if !strings.Contains(msg.From, "alice@example.com") {
		t.Fatalf("From = %q, want it to contain alice@example.com", msg.From)
	}
	if msg.Body != "Hello from the newsletter." {
		t.Fatalf("Body = %q, want plain body", msg.Body)
	}
}

func TestParseMultipartPrefersPlainText(t *testing.T) {
	raw := rawMessage(
		"From: news@example.com",
		"Subject: Issue 42",
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="frontier"`,
		"",
		"--frontier",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>HTML body</p>",
		"--frontier",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Plain body",
		"--frontier--",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Body != "Plain body" {
		t.Fatalf("Body = %q, want Plain body", msg.Body)
	}
}

func TestParseHTMLFallback(t *testing.T) {
	raw := rawMessage(
		"From: news@example.com",
		"Subject: HTML only",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<html><body><p>Rendered content</p></body></html>",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Body, "Rendered content") {
		t.Fatalf("Body = %q, want rendered HTML text", msg.Body)
	}
	if strings.Contains(msg.Body, "<p>") {
		t.Fatalf("Body = %q, contains raw HTML tags", msg.Body)
	}
}

func TestParseMissingHeaders(t *testing.T) {
	raw := rawMessage(
		"Content-Type: text/plain",
		"",
		"body",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Subject != noSubject {
		t.Fatalf("Subject = %q, want %q", msg.Subject, noSubject)
	}
	if msg.From != unknownSender {
		t.Fatalf("From = %q, want %q", msg.From, unknownSender)
	}
}

func TestParseNoReadableBody(t *testing.T) {
	raw := rawMessage(
		"From: news@example.com",
		"Subject: attachment only",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="frontier"`,
		"",
		"--frontier",
		"Content-Type: application/octet-stream",
		`Content-Disposition: attachment; filename="data.bin"`,
		"",
		"binarybytes",
		"--frontier--",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Body != unreadableBody {
		t.Fatalf("Body = %q, want %q", msg.Body, unreadableBody)
	}
}
