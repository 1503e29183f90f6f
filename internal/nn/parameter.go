package nn

import (
	"fmt"
	"slices"
)

// Parameter is a sparse trainable matrix.
//
// Rows are keyed by a 64-bit feature hash and created on first write; a
// missing row reads as all zeros. Every row has the same width, which is
// the number of output classes.
//
// Example:
//
//	weights := nn.NewParameter("ner.W", 9)
//	row := weights.Row(featureHash) // nil if the feature was never trained
type Parameter struct {
	name  string
	width int
	rows  map[uint64][]float32
}

// NewParameter creates an empty parameter with the given row width.
func NewParameter(name string, width int) *Parameter {
	return &Parameter{
		name:  name,
		width: width,
		rows:  make(map[uint64][]float32),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Width returns the row width.
func (p *Parameter) Width() int {
	return p.width
}

// Len returns the number of materialized rows.
func (p *Parameter) Len() int {
	return len(p.rows)
}

// Row returns the row for key, or nil if it was never written.
func (p *Parameter) Row(key uint64) []float32 {
	return p.rows[key]
}

// MutableRow returns the row for key, allocating a zero row if needed.
func (p *Parameter) MutableRow(key uint64) []float32 {
	row, ok := p.rows[key]
	if !ok {
		row = make([]float32, p.width)
		p.rows[key] = row
	}
	return row
}

// Keys returns the keys of all materialized rows in ascending order.
func (p *Parameter) Keys() []uint64 {
	keys := make([]uint64, 0, len(p.rows))
	for k := range p.rows {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resize changes the row width, zero-extending or truncating existing rows.
//
// Growing keeps every learned weight, so new output classes can be added
// to a trained model.
func (p *Parameter) Resize(width int) {
	if width == p.width {
		return
	}
	for k, row := range p.rows {
		p.rows[k] = ResizeRow(row, width)
	}
	p.width = width
}

// Reset drops all rows, returning every weight to zero.
func (p *Parameter) Reset() {
	p.rows = make(map[uint64][]float32)
}

// StateDict exports the parameter as sorted keys and row-major values.
//
// len(values) == len(keys) * Width().
func (p *Parameter) StateDict() (keys []uint64, values []float32) {
	keys = p.Keys()
	values = make([]float32, 0, len(keys)*p.width)
	for _, k := range keys {
		values = append(values, p.rows[k]...)
	}
	return keys, values
}

// LoadStateDict replaces all rows with the exported state.
func (p *Parameter) LoadStateDict(keys []uint64, values []float32) error {
	if len(values) != len(keys)*p.width {
		return fmt.Errorf("parameter %s: %d values for %d rows of width %d",
			p.name, len(values), len(keys), p.width)
	}

	rows := make(map[uint64][]float32, len(keys))
	for i, k := range keys {
		if _, dup := rows[k]; dup {
			return fmt.Errorf("parameter %s: duplicate row key %d", p.name, k)
		}
		row := make([]float32, p.width)
		copy(row, values[i*p.width:(i+1)*p.width])
		rows[k] = row
	}
	p.rows = rows
	return nil
}

// Grads accumulates sparse gradients for one Parameter.
type Grads map[uint64][]float32

// Row returns the gradient row for key, allocating a zero row of the given
// width if needed.
func (g Grads) Row(key uint64, width int) []float32 {
	row, ok := g[key]
	if !ok {
		row = make([]float32, width)
		g[key] = row
	}
	return row
}

// ResizeRow returns row zero-extended or truncated to width.
//
// Optimizers use it to keep moment buffers in step with a resized Parameter.
func ResizeRow(row []float32, width int) []float32 {
	if len(row) >= width {
		return row[:width]
	}
	grown := make([]float32, width)
	copy(grown, row)
	return grown
}
