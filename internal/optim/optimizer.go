// Package optim implements optimization algorithms for sparse parameters.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with lazy (per-row) moments
//
// Only rows that received a gradient are updated in a step, which keeps
// training cost proportional to the number of active features.
//
// Example usage:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//
//	for epoch := range epochs {
//	    grads := nn.Grads{}
//	    // ... accumulate gradients for model.W ...
//	    optimizer.Step(map[*nn.Parameter]nn.Grads{model.W: grads})
//	}
package optim

import (
	"fmt"
	"strings"

	"github.com/born-ml/nertrain/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - GetLR/SetLR: Inspect and schedule the learning rate
type Optimizer interface {
	// Step applies gradient updates to every parameter present in grads.
	//
	// Parameters are updated in-place. Rows of a parameter that have no
	// gradient are left untouched.
	Step(grads map[*nn.Parameter]nn.Grads)

	// GetLR returns the current learning rate.
	GetLR() float32

	// SetLR updates the learning rate.
	SetLR(lr float32)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}

// Optimizer names accepted by New.
const (
	NameSGD  = "sgd"
	NameAdam = "adam"
)

// Options selects and configures an optimizer by name.
type Options struct {
	Name     string  `json:"name" yaml:"name"`         // "adam" (default) or "sgd"
	LR       float32 `json:"lr" yaml:"lr"`             // Learning rate (0 = optimizer default)
	Momentum float32 `json:"momentum" yaml:"momentum"` // SGD only
}

// New creates the optimizer described by opts.
func New(opts Options) (Optimizer, error) {
	switch strings.ToLower(opts.Name) {
	case "", NameAdam:
		return NewAdam(AdamConfig{LR: opts.LR}), nil
	case NameSGD:
		return NewSGD(SGDConfig{LR: opts.LR, Momentum: opts.Momentum}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q", opts.Name)
	}
}

// stateRow returns the state row for key, created or resized to width.
func stateRow(state map[uint64][]float32, key uint64, width int) []float32 {
	row, ok := state[key]
	if !ok {
		row = make([]float32, width)
		state[key] = row
		return row
	}
	if len(row) != width {
		row = nn.ResizeRow(row, width)
		state[key] = row
	}
	return row
}
