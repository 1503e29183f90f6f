package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	configs := map[string]Config{
		"sequential": Sequential(),
		"default":    DefaultConfig(),
		"forced":     {Enabled: true, NumWorkers: 4, MinChunkSize: 1},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			const n = 100
			hits := make([]int32, n)
			For(n, func(i int) {
				atomic.AddInt32(&hits[i], 1)
			}, cfg)

			for i, h := range hits {
				assert.Equal(t, int32(1), h, "index %d", i)
			}
		})
	}
}

func TestForErr_ReturnsLowestIndexError(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	var ran int32
	err := ForErr(40, func(i int) error {
		atomic.AddInt32(&ran, 1)
		if i == 7 || i == 31 {
			return fmt.Errorf("item %d", i)
		}
		return nil
	}, cfg)

	assert.EqualError(t, err, "item 7")
	assert.Equal(t, int32(40), ran)
}

func TestForErr_Sequential(t *testing.T) {
	sentinel := errors.New("boom")
	err := ForErr(3, func(i int) error {
		if i > 0 {
			return sentinel
		}
		return nil
	}, Sequential())

	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, ForErr(0, func(int) error { return sentinel }, Sequential()))
}
