package serialization

import (
	"errors"
	"fmt"
)

// Errors returned while reading a .nerw weights file.
var (
	ErrChecksumMismatch   = errors.New("nerw: data section does not match header checksum")
	ErrInvalidMagic       = errors.New("nerw: not a weights file (bad magic)")
	ErrUnsupportedVersion = errors.New("nerw: unsupported format version")
	ErrHeaderTooLarge     = errors.New("nerw: header exceeds MaxHeaderSize")
	ErrTensorNotFound     = errors.New("nerw: no such tensor")
	ErrDTypeMismatch      = errors.New("nerw: tensor has a different dtype")
	ErrClosed             = errors.New("nerw: reader is closed")
)

// ValidationError describes a header that is well-formed JSON but
// inconsistent with the data section, such as overlapping tensor ranges
// or a shape that does not match the byte size.
type ValidationError struct {
	Type    string // Check that failed (e.g., "offset_overlap", "truncated")
	Tensor  string // Tensor the check ran on, if any
	Tensor2 string // Other tensor of an overlap
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.Tensor2 != "":
		return fmt.Sprintf("nerw %s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	case e.Tensor != "":
		return fmt.Sprintf("nerw %s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	default:
		return fmt.Sprintf("nerw %s: %s", e.Type, e.Details)
	}
}
