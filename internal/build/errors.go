package build

import "errors"

var (
	ErrBuild               = errors.New("build failed")
	ErrRecipe              = errors.New("invalid recipe")
	ErrFileSystemOperation = errors.New("file system operation failed")
	ErrCopy                = errors.New("copy failed")
	ErrCommandFailed       = errors.New("command failed")
	ErrCache               = errors.New("cache operation failed")
)
