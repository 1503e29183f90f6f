// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/nertrain/internal/nn"
)

// Module is implemented by every component with trainable parameters.
type Module = nn.Module

// Parameter is a sparse trainable matrix keyed by feature hash.
type Parameter = nn.Parameter

// Grads accumulates sparse gradients for one Parameter.
type Grads = nn.Grads

// NewParameter creates an empty parameter with the given row width.
func NewParameter(name string, width int) *Parameter {
	return nn.NewParameter(name, width)
}

// Softmax computes class probabilities over the valid classes.
//
// A nil mask treats every class as valid.
func Softmax(scores []float32, valid []bool) []float32 {
	return nn.Softmax(scores, valid)
}

// CrossEntropy returns -log(probs[target]) and its gradient with respect
// to the raw scores.
func CrossEntropy(probs []float32, target int) (float32, []float32) {
	return nn.CrossEntropy(probs, target)
}

// Argmax returns the highest scoring valid class, or -1 if none is valid.
func Argmax(scores []float32, valid []bool) int {
	return nn.Argmax(scores, valid)
}

// Dropout removes each feature with probability rate and returns the
// inverted-dropout scale for the kept ones.
func Dropout(features []uint64, rate float32, rng *rand.Rand) ([]uint64, float32) {
	return nn.Dropout(features, rate, rng)
}
