package mail

import "errors"

var ErrParse = errors.New("message parse failed")
