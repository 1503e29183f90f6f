// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the training loop used by the nertrain CLI.
//
// Example:
//
//	sgd, _ := nlp.BeginTraining(optim.Options{Name: optim.NameAdam, LR: 0.01})
//	err := train.Run(ctx, nlp, examples, sgd, train.Config{Iterations: 20, Drop: 0.2},
//	    func(itn int, losses train.Losses) {
//	        fmt.Println(itn, losses["ner"])
//	    })
package train

import (
	"context"

	"github.com/born-ml/nertrain/internal/train"
	"github.com/born-ml/nertrain/optim"
	"github.com/born-ml/nertrain/pipeline"
)

// Config configures Run.
type Config = train.Config

// Losses maps pipe names to the summed loss of one iteration.
type Losses = train.Losses

// ReportFunc receives the losses after each iteration (0-based).
type ReportFunc = train.ReportFunc

// Run trains cfg.Pipe (default "ner") of nlp for cfg.Iterations shuffled
// passes over examples, with every other pipe disabled.
func Run(ctx context.Context, nlp *pipeline.Language, examples []pipeline.Example, sgd optim.Optimizer, cfg Config, report ReportFunc) error {
	return train.Run(ctx, nlp, examples, sgd, cfg, report)
}
