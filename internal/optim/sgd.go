package optim

import (
	"github.com/born-ml/nertrain/internal/nn"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	lr         float32
	momentum   float32
	velocities map[*nn.Parameter]map[uint64][]float32
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter]map[uint64][]float32),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step(grads map[*nn.Parameter]nn.Grads) {
	for param, g := range grads {
		width := param.Width()

		var velocity map[uint64][]float32
		if s.momentum != 0 {
			velocity = s.velocities[param]
			if velocity == nil {
				velocity = make(map[uint64][]float32)
				s.velocities[param] = velocity
			}
		}

		for key, grad := range g {
			row := param.MutableRow(key)
			if velocity == nil {
				// Simple SGD: param -= lr * grad
				for i := 0; i < width && i < len(grad); i++ {
					row[i] -= s.lr * grad[i]
				}
				continue
			}

			v := stateRow(velocity, key, width)
			for i := 0; i < width && i < len(grad); i++ {
				v[i] = s.momentum*v[i] + grad[i]
				row[i] -= s.lr * v[i]
			}
		}
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}
