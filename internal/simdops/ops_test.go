package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleOffset(t *testing.T) {
	src := []float64{-1, -0.5, 0, 0.5, 1}
	dst := make([]float64, len(src))

	ScaleOffset(dst, src, 50, 50)

	assert.InDeltaSlice(t, []float64{0, 25, 50, 75, 100}, dst, 1e-12)
}

func TestScaleOffset_InPlace(t *testing.T) {
	buf := []float32{1, 2, 3}

	ScaleOffset(buf, buf, 2, 1)

	assert.Equal(t, []float32{3, 5, 7}, buf)
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.Zero(t, Mean([]float64{}))
	assert.InDelta(t, float32(2), Mean([]float32{1, 2, 3}), 1e-6)
}

func TestFor_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, For[float64](), For[float64]())
	assert.Same(t, For[float32](), For[float32]())
}
