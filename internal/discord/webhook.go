package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (

	// Embed accent color (Discord blurple).
	embedColor = 0x5865F2

	// Footer shown under every forwarded message.
	footerText = "\U0001F4F0 Newsletter"

	// Timeout for a single webhook request.
	requestTimeout = 30 * time.Second
)

// A newsletter to deliver.
type Notice struct {
	Title  string    // Mail subject.
	Author string    // Sender display string.
	Body   string    // Plain-text body, truncated before sending.
	Time   time.Time // Delivery timestamp. Zero means now.
}

// Webhook request body.
type payload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string      `json:"title"`
	Author      embedAuthor `json:"author"`
	Description string      `json:"description"`
	Color       int         `json:"color"`
	Timestamp   string      `json:"timestamp"`
	Footer      embedFooter `json:"footer"`
}

type embedAuthor struct {
	Name string `json:"name"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// Posts notices to a single Discord webhook URL.
type Client struct {
	url  string
	http *http.Client
}

// Creates a webhook client for the given URL.
func New(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Delivers a notice as one embed.
//
// A transport failure or a non-2xx response is an error; the caller decides
// whether to retry. Discord's error body, when present, is included in the
// message since the status code alone rarely explains a rejection.
func (c *Client) Send(ctx context.Context, n Notice) error {
	body, err := json.Marshal(buildPayload(n))
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWebhook, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWebhook, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWebhook, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrWebhook, resp.StatusCode, bytes.TrimSpace(detail))
	}

	return nil
}

// Builds the embed payload for a notice.
func buildPayload(n Notice) payload {
	ts := n.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	return payload{
		Embeds: []embed{{
			Title:       n.Title,
			Author:      embedAuthor{Name: n.Author},
			Description: truncate(n.Body),
			Color:       embedColor,
			Timestamp:   ts.UTC().Format(time.RFC3339),
			Footer:      embedFooter{Text: footerText},
		}},
	}
}
