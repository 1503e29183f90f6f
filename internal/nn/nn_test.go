package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameter_MutableRow(t *testing.T) {
	p := NewParameter("W", 3)
	assert.Equal(t, "W", p.Name())
	assert.Nil(t, p.Row(42), "missing rows read as nil")

	row := p.MutableRow(42)
	require.Len(t, row, 3)
	row[1] = 2.5

	assert.Equal(t, []float32{0, 2.5, 0}, p.Row(42))
	assert.Equal(t, 1, p.Len())
}

func TestParameter_ResizeKeepsWeights(t *testing.T) {
	p := NewParameter("W", 2)
	copy(p.MutableRow(7), []float32{1, 2})

	p.Resize(5)
	assert.Equal(t, 5, p.Width())
	assert.Equal(t, []float32{1, 2, 0, 0, 0}, p.Row(7))

	// New rows use the new width.
	assert.Len(t, p.MutableRow(8), 5)

	p.Resize(1)
	assert.Equal(t, []float32{1}, p.Row(7))
}

func TestParameter_Reset(t *testing.T) {
	p := NewParameter("W", 2)
	p.MutableRow(1)[0] = 1
	p.Reset()

	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 2, p.Width())
}

func TestParameter_StateDictRoundTrip(t *testing.T) {
	p := NewParameter("W", 2)
	copy(p.MutableRow(30), []float32{3, 3})
	copy(p.MutableRow(10), []float32{1, 1})
	copy(p.MutableRow(20), []float32{2, 2})

	keys, values := p.StateDict()
	assert.Equal(t, []uint64{10, 20, 30}, keys)
	assert.Equal(t, []float32{1, 1, 2, 2, 3, 3}, values)

	q := NewParameter("W", 2)
	require.NoError(t, q.LoadStateDict(keys, values))
	for _, k := range keys {
		assert.Equal(t, p.Row(k), q.Row(k))
	}

	// Loaded rows must not alias the input slice.
	values[0] = 100
	assert.Equal(t, float32(1), q.Row(10)[0])
}

func TestParameter_LoadStateDictErrors(t *testing.T) {
	p := NewParameter("W", 2)

	err := p.LoadStateDict([]uint64{1, 2}, []float32{1, 2, 3})
	assert.Error(t, err)

	err = p.LoadStateDict([]uint64{1, 1}, []float32{1, 2, 3, 4})
	assert.Error(t, err)
}

func TestGrads_Row(t *testing.T) {
	g := Grads{}
	g.Row(5, 3)[2] += 1
	g.Row(5, 3)[2] += 1

	assert.Equal(t, []float32{0, 0, 2}, g[5])
}

func TestSoftmax(t *testing.T) {
	probs := Softmax([]float32{1, 2, 3}, nil)

	var sum float32
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
	assert.Greater(t, probs[2], probs[1])
	assert.Greater(t, probs[1], probs[0])
}

func TestSoftmax_Mask(t *testing.T) {
	probs := Softmax([]float32{5, 1, 1}, []bool{false, true, true})

	assert.Zero(t, probs[0])
	assert.InDelta(t, 0.5, probs[1], 1e-6)
	assert.InDelta(t, 0.5, probs[2], 1e-6)
}

func TestSoftmax_NumericalStability(t *testing.T) {
	probs := Softmax([]float32{1000, 1000}, nil)
	assert.InDelta(t, 0.5, probs[0], 1e-6)
	assert.False(t, math.IsNaN(float64(probs[1])))
}

func TestSoftmax_NoValidClass(t *testing.T) {
	probs := Softmax([]float32{1, 2}, []bool{false, false})
	assert.Equal(t, []float32{0, 0}, probs)
}

func TestCrossEntropy(t *testing.T) {
	probs := []float32{0.25, 0.25, 0.5}

	loss, grad := CrossEntropy(probs, 2)

	assert.InDelta(t, math.Log(2), loss, 1e-6)
	assert.InDeltaSlice(t, []float32{0.25, 0.25, -0.5}, grad, 1e-6)
	assert.Equal(t, float32(0.5), probs[2], "input must not be modified")
}

func TestCrossEntropy_ZeroProbabilityIsFinite(t *testing.T) {
	loss, _ := CrossEntropy([]float32{1, 0}, 1)
	assert.False(t, math.IsInf(float64(loss), 0))
	assert.Greater(t, loss, float32(20))
}

func TestArgmax(t *testing.T) {
	scores := []float32{3, 1, 2}

	assert.Equal(t, 0, Argmax(scores, nil))
	assert.Equal(t, 2, Argmax(scores, []bool{false, true, true}))
	assert.Equal(t, -1, Argmax(scores, []bool{false, false, false}))
}

func TestDropout(t *testing.T) {
	features := make([]uint64, 1000)
	for i := range features {
		features[i] = uint64(i)
	}

	t.Run("disabled", func(t *testing.T) {
		kept, scale := Dropout(features, 0, nil)
		assert.Len(t, kept, len(features))
		assert.Equal(t, float32(1), scale)
	})

	t.Run("all dropped", func(t *testing.T) {
		kept, _ := Dropout(features, 1, nil)
		assert.Empty(t, kept)
	})

	t.Run("rate 0.2", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		kept, scale := Dropout(features, 0.2, rng)

		assert.InDelta(t, 800, len(kept), 60)
		assert.InDelta(t, 1.25, scale, 1e-6)
	})

	t.Run("deterministic with seed", func(t *testing.T) {
		a, _ := Dropout(features, 0.5, rand.New(rand.NewSource(7)))
		b, _ := Dropout(features, 0.5, rand.New(rand.NewSource(7)))
		assert.Equal(t, a, b)
	})
}
