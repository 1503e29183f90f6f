// Package train runs the entity recognizer training loop.
package train

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/born-ml/nertrain/internal/corpus"
	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/optim"
	"github.com/born-ml/nertrain/internal/pipeline"
)

// Config configures Run.
type Config struct {
	Iterations int     // Passes over the examples
	Drop       float32 // Feature dropout rate
	Seed       int64   // Shuffle and dropout seed; 0 seeds from the clock
	Pipe       string  // Pipe to train; every other pipe is disabled
}

// Losses maps pipe names to the summed loss of one iteration.
type Losses map[string]float32

// ReportFunc receives the losses after each iteration (0-based).
type ReportFunc func(iteration int, losses Losses)

// Run trains cfg.Pipe of nlp for cfg.Iterations passes over examples.
//
// Each pass shuffles a copy of examples and calls Update once per example.
// The other pipes are disabled for the duration of Run. Cancellation is
// checked between examples.
func Run(ctx context.Context, nlp *pipeline.Language, examples []doc.Example, sgd optim.Optimizer, cfg Config, report ReportFunc) error {
	if cfg.Pipe == "" {
		cfg.Pipe = pipeline.FactoryNER
	}
	if !nlp.HasPipe(cfg.Pipe) {
		return fmt.Errorf("%w: %q", pipeline.ErrPipeNotFound, cfg.Pipe)
	}

	others := slices.DeleteFunc(nlp.PipeNames(), func(name string) bool { return name == cfg.Pipe })
	restore, err := nlp.DisablePipes(others...)
	if err != nil {
		return err
	}
	defer restore()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Shuffling is not security-critical

	data := slices.Clone(examples)
	for itn := range cfg.Iterations {
		corpus.Shuffle(data, rng)
		losses := Losses{}
		for _, ex := range data {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := nlp.Update([]doc.Example{ex}, pipeline.UpdateOptions{
				Drop:   cfg.Drop,
				SGD:    sgd,
				Losses: losses,
				Rand:   rng,
			})
			if err != nil {
				return fmt.Errorf("iteration %d: %w", itn, err)
			}
		}
		if report != nil {
			report(itn, losses)
		}
	}

	return nil
}
