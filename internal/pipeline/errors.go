package pipeline

import (
	"errors"
)

// Common errors.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrModelNotFound       = errors.New("model not found")
	ErrUnknownFactory      = errors.New("unknown pipe factory")
	ErrPipeNotFound        = errors.New("pipe not found")
	ErrDuplicatePipe       = errors.New("pipe name already in use")
	ErrNotTrainable        = errors.New("pipe is not trainable")
)
