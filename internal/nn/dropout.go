package nn

import (
	"math/rand"
)

// Dropout randomly removes active features during training.
//
// Each feature is dropped with probability rate. The returned scale
// (1 / (1 - rate)) must multiply the contribution of every kept feature so
// that expected scores match inference, where no dropout is applied.
//
// A nil rng uses the math/rand global source.
func Dropout(features []uint64, rate float32, rng *rand.Rand) ([]uint64, float32) {
	if rate <= 0 {
		return features, 1
	}
	if rate >= 1 {
		return nil, 0
	}

	kept := make([]uint64, 0, len(features))
	for _, f := range features {
		var u float32
		if rng != nil {
			u = rng.Float32()
		} else {
			u = rand.Float32() //nolint:gosec // Dropout masks are not security-critical
		}
		if u >= rate {
			kept = append(kept, f)
		}
	}

	return kept, 1 / (1 - rate)
}
