package optim_test

import (
	"math"
	"testing"

	"github.com/born-ml/nertrain/internal/nn"
	"github.com/born-ml/nertrain/internal/optim"
)

// floatEqual checks if two float32 values are approximately equal.
func floatEqual(a, b, tolerance float32) bool {
	return float32(math.Abs(float64(a-b))) < tolerance
}

// newScalar creates a width-1 parameter with a single row holding x.
func newScalar(x float32) *nn.Parameter {
	p := nn.NewParameter("x", 1)
	p.MutableRow(0)[0] = x
	return p
}

func step(opt optim.Optimizer, p *nn.Parameter, g float32) {
	opt.Step(map[*nn.Parameter]nn.Grads{p: {0: {g}}})
}

// TestSGD_SimpleUpdate tests basic SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := newScalar(1.0)
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	step(optimizer, param, 2.0)

	// x_new = 1.0 - 0.1 * 2.0 = 0.8
	if got := param.Row(0)[0]; !floatEqual(got, 0.8, 1e-6) {
		t.Errorf("SGD update: got %f, want 0.8", got)
	}
}

// TestSGD_Momentum tests SGD with momentum.
func TestSGD_Momentum(t *testing.T) {
	param := newScalar(1.0)
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	step(optimizer, param, 1.0)

	// v_1 = 0.9 * 0 + 1.0 = 1.0
	// x_1 = 1.0 - 0.1 * 1.0 = 0.9
	if got := param.Row(0)[0]; !floatEqual(got, 0.9, 1e-6) {
		t.Errorf("SGD momentum step 1: got %f, want 0.9", got)
	}

	step(optimizer, param, 1.0)

	// v_2 = 0.9 * 1.0 + 1.0 = 1.9
	// x_2 = 0.9 - 0.1 * 1.9 = 0.71
	if got := param.Row(0)[0]; !floatEqual(got, 0.71, 1e-5) {
		t.Errorf("SGD momentum step 2: got %f, want 0.71", got)
	}
}

// TestSGD_Defaults tests that a zero config gets the default learning rate.
func TestSGD_Defaults(t *testing.T) {
	optimizer := optim.NewSGD(optim.SGDConfig{})
	if optimizer.GetLR() != 0.01 {
		t.Errorf("default LR: got %f, want 0.01", optimizer.GetLR())
	}

	optimizer.SetLR(0.5)
	if optimizer.GetLR() != 0.5 {
		t.Errorf("GetLR after SetLR: got %f, want 0.5", optimizer.GetLR())
	}
}

// TestSGD_CreatesRows tests that a gradient for an unseen feature materializes its row.
func TestSGD_CreatesRows(t *testing.T) {
	param := nn.NewParameter("W", 2)
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 1})

	optimizer.Step(map[*nn.Parameter]nn.Grads{param: {9: {1, -1}}})

	row := param.Row(9)
	if row == nil {
		t.Fatal("row 9 should exist after a step")
	}
	if row[0] != -1 || row[1] != 1 {
		t.Errorf("row 9: got %v, want [-1 1]", row)
	}
}

// TestAdam_SimpleUpdate tests Adam optimizer update.
func TestAdam_SimpleUpdate(t *testing.T) {
	param := newScalar(1.0)
	optimizer := optim.NewAdam(optim.AdamConfig{
		LR:    0.001,
		Betas: [2]float32{0.9, 0.999},
		Eps:   1e-8,
	})

	step(optimizer, param, 1.0)

	// After first step (with bias correction):
	// m_hat = 0.1 / (1 - 0.9^1) = 1.0
	// v_hat = 0.001 / (1 - 0.999^1) = 1.0
	// x_new = 1.0 - 0.001 * 1.0 / (sqrt(1.0) + 1e-8) ≈ 0.999
	if got := param.Row(0)[0]; !floatEqual(got, 0.999, 1e-5) {
		t.Errorf("Adam step 1: got %f, want 0.999", got)
	}

	if optimizer.GetTimestep(param) != 1 {
		t.Errorf("timestep: got %d, want 1", optimizer.GetTimestep(param))
	}
}

// TestAdam_Convergence tests that Adam minimizes f(x) = x².
func TestAdam_Convergence(t *testing.T) {
	param := newScalar(5.0)
	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.1})

	for range 500 {
		x := param.Row(0)[0]
		step(optimizer, param, 2*x)
	}

	if got := param.Row(0)[0]; math.Abs(float64(got)) > 0.1 {
		t.Errorf("Adam did not converge: x = %f", got)
	}
}

// TestAdam_ResizedParameter tests that moment buffers follow a widened parameter.
func TestAdam_ResizedParameter(t *testing.T) {
	param := nn.NewParameter("W", 1)
	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.1})

	optimizer.Step(map[*nn.Parameter]nn.Grads{param: {3: {1}}})
	param.Resize(3)
	optimizer.Step(map[*nn.Parameter]nn.Grads{param: {3: {1, 1, 1}}})

	row := param.Row(3)
	if len(row) != 3 {
		t.Fatalf("row width: got %d, want 3", len(row))
	}
	for i, w := range row {
		if w >= 0 {
			t.Errorf("row[%d] = %f, want negative after positive gradients", i, w)
		}
	}
}

// TestAdam_SkipsUntouchedRows tests lazy updates.
func TestAdam_SkipsUntouchedRows(t *testing.T) {
	param := nn.NewParameter("W", 1)
	param.MutableRow(1)[0] = 0.5
	optimizer := optim.NewAdam(optim.AdamConfig{})

	optimizer.Step(map[*nn.Parameter]nn.Grads{param: {2: {1}}})

	if got := param.Row(1)[0]; got != 0.5 {
		t.Errorf("untouched row changed: got %f, want 0.5", got)
	}
}

// TestNew tests optimizer selection by name.
func TestNew(t *testing.T) {
	tests := []struct {
		opts    optim.Options
		wantLR  float32
		wantErr bool
	}{
		{opts: optim.Options{}, wantLR: 0.001},
		{opts: optim.Options{Name: "Adam", LR: 0.02}, wantLR: 0.02},
		{opts: optim.Options{Name: "sgd"}, wantLR: 0.01},
		{opts: optim.Options{Name: "rmsprop"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.opts.Name, func(t *testing.T) {
			opt, err := optim.New(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opt.GetLR() != tt.wantLR {
				t.Errorf("LR: got %f, want %f", opt.GetLR(), tt.wantLR)
			}
		})
	}
}
