package nn

import (
	"math"
)

// Softmax computes class probabilities from raw scores.
//
// Classes with valid[c] == false get probability zero and do not take part
// in normalization. A nil mask treats every class as valid. The log-sum-exp
// trick keeps large scores from overflowing.
func Softmax(scores []float32, valid []bool) []float32 {
	probs := make([]float32, len(scores))

	maxScore := float32(math.Inf(-1))
	for c, s := range scores {
		if valid != nil && !valid[c] {
			continue
		}
		if s > maxScore {
			maxScore = s
		}
	}
	if math.IsInf(float64(maxScore), -1) {
		return probs
	}

	var sum float64
	for c, s := range scores {
		if valid != nil && !valid[c] {
			continue
		}
		e := math.Exp(float64(s - maxScore))
		probs[c] = float32(e)
		sum += e
	}
	for c := range probs {
		probs[c] = float32(float64(probs[c]) / sum)
	}

	return probs
}

// CrossEntropy computes the loss -log p[target] and its gradient with
// respect to the raw scores.
//
// Gradient (with p = Softmax(scores)):
//
//	dL/dscores = p - y_one_hot
//
// Invalid classes already have p == 0 and so get a zero gradient.
func CrossEntropy(probs []float32, target int) (float32, []float32) {
	grad := make([]float32, len(probs))
	copy(grad, probs)
	grad[target]--

	// Clamp so a confidently wrong prediction yields a large finite loss.
	p := math.Max(float64(probs[target]), 1e-12)
	return float32(-math.Log(p)), grad
}

// Argmax returns the index of the highest valid score, or -1 if no class is valid.
func Argmax(scores []float32, valid []bool) int {
	best := -1
	for c, s := range scores {
		if valid != nil && !valid[c] {
			continue
		}
		if best < 0 || s > scores[best] {
			best = c
		}
	}
	return best
}
