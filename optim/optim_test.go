// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim_test

import (
	"testing"

	"github.com/born-ml/nertrain/nn"
	"github.com/born-ml/nertrain/optim"
)

// TestNew verifies that optimizers created by name apply a gradient step.
func TestNew(t *testing.T) {
	tests := []struct {
		opts optim.Options
		lr   float32
	}{
		{opts: optim.Options{Name: optim.NameSGD, LR: 0.5}, lr: 0.5},
		{opts: optim.Options{Name: optim.NameAdam}, lr: 0.001},
		{opts: optim.Options{}, lr: 0.001},
	}

	for _, tt := range tests {
		opt, err := optim.New(tt.opts)
		if err != nil {
			t.Fatalf("New(%+v) error: %v", tt.opts, err)
		}
		if opt.GetLR() != tt.lr {
			t.Errorf("New(%+v).GetLR() = %f, want %f", tt.opts, opt.GetLR(), tt.lr)
		}

		w := nn.NewParameter("W", 2)
		opt.Step(map[*nn.Parameter]nn.Grads{w: {7: {1, -1}}})
		row := w.Row(7)
		if len(row) != 2 || row[0] >= 0 || row[1] <= 0 {
			t.Errorf("%s step: row = %v, want [<0 >0]", tt.opts.Name, row)
		}
	}

	if _, err := optim.New(optim.Options{Name: "rmsprop"}); err == nil {
		t.Error("New(rmsprop) succeeded, want error")
	}
}

func TestConstructors(t *testing.T) {
	var _ optim.Optimizer = optim.NewSGD(optim.SGDConfig{Momentum: 0.9})
	adam := optim.NewAdam(optim.AdamConfig{LR: 0.01})
	adam.SetLR(0.02)
	if adam.GetLR() != 0.02 {
		t.Errorf("GetLR() = %f, want 0.02", adam.GetLR())
	}
}
