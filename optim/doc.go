// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for sparse parameters.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Only the rows of a parameter that received a gradient are updated.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/nertrain/nn"
//	    "github.com/born-ml/nertrain/optim"
//	)
//
//	func main() {
//	    weights := nn.NewParameter("W", 9)
//	    optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.01})
//
//	    for epoch := range 10 {
//	        grads := nn.Grads{}
//	        // ... accumulate gradients ...
//	        optimizer.Step(map[*nn.Parameter]nn.Grads{weights: grads})
//	    }
//	}
//
// # Optimizers
//
// SGD (Stochastic Gradient Descent):
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
// Adam (Adaptive Moment Estimation):
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float32{0.9, 0.999},
//	    Eps:   1e-8,
//	})
//
// By name, as read from a config file:
//
//	optimizer, err := optim.New(optim.Options{Name: "sgd", LR: 0.1})
package optim
