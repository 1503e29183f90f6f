package serialization

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Format constants.
const (
	MagicBytes      = "NERW"
	FormatVersion   = 2    // With SHA-256 checksum
	HeaderAlignment = 64   // Align tensor data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// Data type string constants for serialization.
const (
	DTypeFloat32 = "float32"
	DTypeUint64  = "uint64"
)

// Flags for the weights format.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: custom metadata included
)

// Header represents the JSON header of a weights file.
type Header struct {
	FormatVersion int               `json:"format_version"` // Version of the weights format
	ModelType     string            `json:"model_type"`     // Component type (e.g., "EntityRecognizer")
	CreatedAt     time.Time         `json:"created_at"`     // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`        // Tensor metadata
	Metadata      map[string]string `json:"metadata"`       // Custom metadata
}

// TensorMeta describes a tensor in the weights file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "W.keys")
	DType  string `json:"dtype"`  // Data type ("float32" or "uint64")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// Tensor is a named, typed block of little-endian data.
type Tensor struct {
	Name  string
	DType string
	Shape []int
	Data  []byte
}

// dtypeSize returns the element size in bytes, or 0 for an unknown dtype.
func dtypeSize(dtype string) int {
	switch dtype {
	case DTypeFloat32:
		return 4
	case DTypeUint64:
		return 8
	default:
		return 0
	}
}

// numElements returns the product of the shape dimensions.
func numElements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Float32Tensor encodes values as a float32 tensor.
func Float32Tensor(name string, shape []int, values []float32) Tensor {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return Tensor{Name: name, DType: DTypeFloat32, Shape: shape, Data: data}
}

// Uint64Tensor encodes values as a uint64 tensor.
func Uint64Tensor(name string, shape []int, values []uint64) Tensor {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[8*i:], v)
	}
	return Tensor{Name: name, DType: DTypeUint64, Shape: shape, Data: data}
}

// Float32 decodes the tensor data as float32 values.
func (t Tensor) Float32() ([]float32, error) {
	if t.DType != DTypeFloat32 {
		return nil, fmt.Errorf("%w: tensor %s is %s, want %s", ErrDTypeMismatch, t.Name, t.DType, DTypeFloat32)
	}
	values := make([]float32, len(t.Data)/4)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(t.Data[4*i:]))
	}
	return values, nil
}

// Uint64 decodes the tensor data as uint64 values.
func (t Tensor) Uint64() ([]uint64, error) {
	if t.DType != DTypeUint64 {
		return nil, fmt.Errorf("%w: tensor %s is %s, want %s", ErrDTypeMismatch, t.Name, t.DType, DTypeUint64)
	}
	values := make([]uint64, len(t.Data)/8)
	for i := range values {
		values[i] = binary.LittleEndian.Uint64(t.Data[8*i:])
	}
	return values, nil
}

// alignedDataOffset returns where tensor data starts for a header of headerSize bytes.
func alignedDataOffset(headerSize int64) int64 {
	currentPos := int64(FixedHeaderSize) + headerSize
	padding := (HeaderAlignment - (currentPos % HeaderAlignment)) % HeaderAlignment
	return currentPos + padding
}
