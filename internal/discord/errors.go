package discord

import "errors"

var ErrWebhook = errors.New("webhook delivery failed")
