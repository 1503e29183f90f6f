package serialization

import (
	"crypto/sha256"
)

// Checksum is the SHA-256 digest of a .nerw data section. Writer stores it
// at ChecksumOffset in the fixed header.
type Checksum = [ChecksumSize]byte

// ComputeChecksum hashes the tensor data section (everything after the
// aligned header).
func ComputeChecksum(data []byte) Checksum {
	return sha256.Sum256(data)
}

// ValidateChecksum returns ErrChecksumMismatch when the data section read
// back differs from what Writer hashed, e.g. a truncated or edited model.nerw.
func ValidateChecksum(computed, stored Checksum) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}
