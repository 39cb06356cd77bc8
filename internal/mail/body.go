package mail

import (
	"regexp"
	"strings"

	"github.com/jaytaylor/html2text"
)

var (
	// Runs of three or more newlines collapse to a single blank line.
	reBlankRuns = regexp.MustCompile(`\n{3,}`)

	// Trailing spaces and tabs at the end of each line.
	reTrailing = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Normalizes an extracted body for display.
func cleanBody(body string) string {
	body = reBlankRuns.ReplaceAllString(body, "\n\n")
	body = reTrailing.ReplaceAllString(body, "")
	return strings.TrimSpace(body)
}

// Renders an HTML part to plain text.
func renderHTML(html string) (string, error) {
	return html2text.FromString(html, html2text.Options{OmitLinks: false})
}
