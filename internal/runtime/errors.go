package runtime

import "errors"

var (
	ErrRuntime    = errors.New("container runtime error")
	ErrEmptyIndex = errors.New("image index has no manifests")
)
