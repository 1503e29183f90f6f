package ner

import (
	"errors"
)

// Common errors.
var (
	ErrInvalidLabel        = errors.New("invalid entity label")
	ErrUnknownLabel        = errors.New("entity label not registered with the recognizer")
	ErrOverlappingEntities = errors.New("overlapping entity spans")
	ErrSpanOutOfRange      = errors.New("entity span out of range")
	ErrUnknownAlignMode    = errors.New("unknown alignment mode")
)
