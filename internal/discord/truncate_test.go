package discord

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateShortBody(t *testing.T) {
	body := "short body"
	if got := truncate(body); got != body {
		t.Fatalf("truncate(%q) = %q, want unchanged", body, got)
	}
}

func TestTruncateExactLimit(t *testing.T) {
	body := strings.Repeat("a", maxBodyBytes)
	if got := truncate(body); got != body {
		t.Fatalf("len %d body should be unchanged, got len %d", len(body), len(got))
	}
}

func TestTruncateLongBody(t *testing.T) {
	body := strings.Repeat("a", maxBodyBytes+100)
	got := truncate(body)

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated body missing ellipsis: %q", got[len(got)-10:])
	}
	if len(got) != maxBodyBytes+3 {
		t.Fatalf("len(got) = %d, want %d", len(got), maxBodyBytes+3)
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	// Four-byte runes guarantee the limit lands mid-rune.
	body := strings.Repeat("\U0001F4F0", maxBodyBytes)
	got := truncate(body)

	trimmed := strings.TrimSuffix(got, "...")
	if !utf8.ValidString(trimmed) {
		t.Fatal("truncation split a multi-byte rune")
	}
	if len(trimmed) > maxBodyBytes {
		t.Fatalf("len(trimmed) = %d, want <= %d", len(trimmed), maxBodyBytes)
	}
}
