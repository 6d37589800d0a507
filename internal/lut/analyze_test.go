package lut

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/rmsmeter-tools/internal/testutil"
)

func TestAnalyze_FirmwareTable(t *testing.T) {
	s, err := Analyze(MustGenerate(DefaultConfig()))
	require.NoError(t, err)

	testutil.AssertInRange(t, s.Mean, DefaultOffset-testutil.RoundedTolerance, DefaultOffset+testutil.RoundedTolerance,
		"table mean")
	testutil.AssertRelativeError(t, DefaultAmplitude, s.Fundamental, testutil.SpectrumTolerance, "fundamental")
	assert.InDelta(t, -math.Pi/2, s.Phase, 1e-6)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, 100.0, s.PeakToPeak)
	// Rounding to 5 decimals leaves distortion well under -100 dB.
	assert.Less(t, s.THD, 1e-6)
}

func TestAnalyze_UnroundedIsPure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Decimals = maxDecimals
	s, err := Analyze(MustGenerate(cfg))
	require.NoError(t, err)

	assert.Less(t, s.THD, testutil.SpectrumTolerance*1e-3)
}

func TestAnalyze_DetectsHarmonic(t *testing.T) {
	n := 64
	values := make([]float64, n)
	for i := range values {
		x := 2 * math.Pi * float64(i) / float64(n)
		values[i] = math.Sin(x) + 0.1*math.Sin(3*x)
	}

	s, err := Analyze(values)
	require.NoError(t, err)

	testutil.AssertRelativeError(t, 1.0, s.Fundamental, testutil.SpectrumTolerance, "fundamental")
	testutil.AssertRelativeError(t, 0.1, s.THD, testutil.SpectrumTolerance, "THD")
	testutil.AssertRelativeError(t, 0.0, s.Mean, testutil.SpectrumTolerance, "zero mean")
}

func TestAnalyze_NyquistHarmonic(t *testing.T) {
	n := 32
	values := make([]float64, n)
	for i := range values {
		x := 2 * math.Pi * float64(i) / float64(n)
		values[i] = math.Sin(x) + 0.1*math.Cos(math.Pi*float64(i))
	}

	s, err := Analyze(values)
	require.NoError(t, err)

	testutil.AssertRelativeError(t, 1.0, s.Fundamental, testutil.SpectrumTolerance, "fundamental")
	testutil.AssertRelativeError(t, 0.1, s.THD, testutil.SpectrumTolerance, "Nyquist bin counted once")
}

func TestAnalyze_TooShort(t *testing.T) {
	_, err := Analyze([]float64{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestSpectrum_String(t *testing.T) {
	s := Spectrum{Mean: 50, Fundamental: 50, Min: 0, Max: 100, PeakToPeak: 100, THD: 1e-7}
	assert.Equal(t, "mean=50.00000 fundamental=50.00000 min=0.00000 max=100.00000 p-p=100.00000 thd=1.000e-07", s.String())
}
