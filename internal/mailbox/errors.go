package mailbox

import "errors"

var ErrMailbox = errors.New("mailbox error")
