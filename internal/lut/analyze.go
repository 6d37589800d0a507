package lut

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/rmsmeter-tools/internal/simdops"
)

// Spectrum summarises a one-period table.
type Spectrum struct {
	Mean        float64 // DC component
	Fundamental float64 // amplitude of bin 1
	Phase       float64 // phase of bin 1 in radians, -π/2 for a sine starting at 0
	Min         float64
	Max         float64
	PeakToPeak  float64
	THD         float64 // RMS of bins 2..N/2 relative to the fundamental
}

// String implements fmt.Stringer.
func (s Spectrum) String() string {
	return fmt.Sprintf("mean=%.5f fundamental=%.5f min=%.5f max=%.5f p-p=%.5f thd=%.3e",
		s.Mean, s.Fundamental, s.Min, s.Max, s.PeakToPeak, s.THD)
}

// Analyze computes the DFT of values, treating them as exactly one period.
func Analyze(values []float64) (Spectrum, error) {
	n := len(values)
	if n < minAnalysisSize {
		return Spectrum{}, fmt.Errorf("%w: %d entries, need at least %d for analysis",
			ErrInvalidSize, n, minAnalysisSize)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, values)

	scale := 2.0 / float64(n)
	fundamental := cmplx.Abs(coeffs[1]) * scale

	var harmonicPower float64
	for k := 2; k < len(coeffs); k++ {
		a := cmplx.Abs(coeffs[k]) * scale
		if n%2 == 0 && k == n/2 {
			// Nyquist bin has no mirrored partner.
			a /= nyquistBinDivisor
		}
		harmonicPower += a * a
	}

	s := Spectrum{
		Mean:        simdops.Mean(values),
		Fundamental: fundamental,
		Phase:       cmplx.Phase(coeffs[1]),
		Min:         floats.Min(values),
		Max:         floats.Max(values),
	}
	s.PeakToPeak = s.Max - s.Min
	if fundamental > 0 {
		s.THD = math.Sqrt(harmonicPower) / fundamental
	}
	return s, nil
}
