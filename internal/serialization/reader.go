package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Reader reads tensors from a weights file.
//
// The whole data section is loaded and checksummed when the reader is created.
type Reader struct {
	header Header
	flags  uint32
	data   []byte
	opts   ReaderOptions
	closed bool
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// NewReader opens a weights file with default options (strict validation).
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{
		ValidationLevel: ValidationStrict,
	})
}

// NewReaderWithOptions opens a weights file with custom options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return ReadFrom(bytes.NewReader(raw), opts)
}

// ReadFrom parses a weights file from r.
func ReadFrom(r io.Reader, opts ReaderOptions) (*Reader, error) {
	reader := &Reader{opts: opts}

	fixedHeader := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixedHeader); err != nil {
		return nil, fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixedHeader[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(fixedHeader[4:8])
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	reader.flags = binary.LittleEndian.Uint32(fixedHeader[8:12])
	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	dataSize := binary.LittleEndian.Uint64(fixedHeader[24:32])

	var checksum [ChecksumSize]byte
	copy(checksum[:], fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header JSON: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &reader.header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	padding := alignedDataOffset(int64(headerSize)) - int64(FixedHeaderSize) - int64(headerSize)
	if _, err := io.CopyN(io.Discard, r, padding); err != nil {
		return nil, fmt.Errorf("failed to skip padding: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if uint64(len(data)) < dataSize {
		return nil, &ValidationError{
			Type:    "truncated",
			Details: fmt.Sprintf("data section has %d bytes, header says %d", len(data), dataSize),
		}
	}
	reader.data = data[:dataSize]

	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(reader.data), checksum); err != nil {
			return nil, err
		}
	}

	if err := ValidateHeader(&reader.header, int64(len(reader.data)), opts.ValidationLevel); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return reader, nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// TensorNames returns a list of all tensor names in the file.
func (r *Reader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// TensorInfo returns information about a specific tensor.
func (r *Reader) TensorInfo(name string) (*TensorMeta, error) {
	for _, meta := range r.header.Tensors {
		if meta.Name == name {
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
}

// ReadTensor returns the named tensor.
func (r *Reader) ReadTensor(name string) (Tensor, error) {
	if r.closed {
		return Tensor{}, ErrClosed
	}

	meta, err := r.TensorInfo(name)
	if err != nil {
		return Tensor{}, err
	}

	end := meta.Offset + meta.Size
	if meta.Offset < 0 || end > int64(len(r.data)) {
		return Tensor{}, &ValidationError{
			Type:    "out_of_bounds",
			Tensor:  name,
			Details: fmt.Sprintf("offset %d + size %d > data_size %d", meta.Offset, meta.Size, len(r.data)),
		}
	}

	data := make([]byte, meta.Size)
	copy(data, r.data[meta.Offset:end])

	return Tensor{
		Name:  meta.Name,
		DType: meta.DType,
		Shape: meta.Shape,
		Data:  data,
	}, nil
}

// Close releases the loaded data.
func (r *Reader) Close() error {
	r.closed = true
	r.data = nil
	return nil
}
