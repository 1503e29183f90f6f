package optim

import (
	"math"

	"github.com/born-ml/nertrain/internal/nn"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Moments are kept per row and only rows present in a step's gradients are
// touched (lazy Adam). The timestep is counted per parameter.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float32
	beta1 float32
	beta2 float32
	eps   float32
	t     map[*nn.Parameter]int                  // Timestep for bias correction
	m     map[*nn.Parameter]map[uint64][]float32 // First moment estimates
	v     map[*nn.Parameter]map[uint64][]float32 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer with default hyperparameters if not specified.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		t:     make(map[*nn.Parameter]int),
		m:     make(map[*nn.Parameter]map[uint64][]float32),
		v:     make(map[*nn.Parameter]map[uint64][]float32),
	}
}

// Step performs a single optimization step.
func (a *Adam) Step(grads map[*nn.Parameter]nn.Grads) {
	for param, g := range grads {
		if len(g) == 0 {
			continue
		}

		a.t[param]++
		t := a.t[param]

		m := a.m[param]
		if m == nil {
			m = make(map[uint64][]float32)
			a.m[param] = m
		}
		v := a.v[param]
		if v == nil {
			v = make(map[uint64][]float32)
			a.v[param] = v
		}

		biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(t)))
		biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(t)))

		width := param.Width()
		for key, grad := range g {
			a.updateRow(param.MutableRow(key), grad,
				stateRow(m, key, width), stateRow(v, key, width),
				biasCorrection1, biasCorrection2)
		}
	}
}

// updateRow performs the Adam update for a single row.
func (a *Adam) updateRow(row, grad, m, v []float32, biasCorrection1, biasCorrection2 float32) {
	for i := 0; i < len(row) && i < len(grad); i++ {
		g := grad[i]

		m[i] = a.beta1*m[i] + (1.0-a.beta1)*g
		v[i] = a.beta2*v[i] + (1.0-a.beta2)*g*g

		mHat := m[i] / biasCorrection1
		vHat := v[i] / biasCorrection2

		row[i] -= a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
	}
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float32 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float32) {
	a.lr = lr
}

// GetTimestep returns the number of steps applied to param.
func (a *Adam) GetTimestep(param *nn.Parameter) int {
	return a.t[param]
}
