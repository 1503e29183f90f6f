package pipeline

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/optim"
)

// UpdateOptions configures one Update call.
type UpdateOptions struct {
	Drop   float32            // Feature dropout rate
	SGD    optim.Optimizer    // Applies the gradients; nil only computes losses
	Losses map[string]float32 // If non-nil, each pipe's loss is added under its name
	Rand   *rand.Rand         // Dropout source; nil uses the global source
}

// BeginTraining resets the weights of every trainable pipe and returns a
// new optimizer.
//
// Resetting discards learned labels; use CreateOptimizer to keep training
// a loaded model.
func (l *Language) BeginTraining(opts optim.Options) (optim.Optimizer, error) {
	for _, c := range l.components {
		if t, ok := c.pipe.(Trainable); ok {
			t.Initialize()
		}
	}
	return l.CreateOptimizer(opts)
}

// CreateOptimizer returns a new optimizer without touching any weights.
func (l *Language) CreateOptimizer(opts optim.Options) (optim.Optimizer, error) {
	return optim.New(opts)
}

// Update runs one training step of every enabled trainable pipe on examples.
func (l *Language) Update(examples []doc.Example, opts UpdateOptions) error {
	golds := make([]doc.Gold, len(examples))
	for i, ex := range examples {
		golds[i] = doc.Gold{Doc: l.MakeDoc(ex.Text), Entities: ex.Entities}
	}

	for _, t := range l.trainable() {
		loss, err := t.Update(golds, opts.Drop, opts.SGD, opts.Rand)
		if err != nil {
			return fmt.Errorf("update %q: %w", t.Name(), err)
		}
		if opts.Losses != nil {
			opts.Losses[t.Name()] += loss
		}
	}
	return nil
}
