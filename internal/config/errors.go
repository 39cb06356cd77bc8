package config

import "errors"

var (
	ErrConfig       = errors.New("config error")
	ErrMissingField = errors.New("missing required field")
)
