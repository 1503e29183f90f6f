// Package nn implements the sparse linear building blocks of the entity recognizer.
//
// This package provides:
//   - Parameter: sparse weight matrix with rows keyed by feature hash
//   - Grads: sparse gradient accumulator matching a Parameter's layout
//   - Softmax and CrossEntropy over a mask of valid classes
//   - Dropout over active feature lists
//
// Components with trainable weights implement Module so optimizers and
// serializers can reach them.
package nn

// Module is implemented by every component with trainable weights.
type Module interface {
	// Parameters returns all trainable parameters of this module.
	Parameters() []*Parameter
}
