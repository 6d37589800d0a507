// Package testutil provides reusable test helper functions for lookup table and
// record decoding tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	RoundedTolerance  = 1e-5 // values already rounded to 5 decimals
	SpectrumTolerance = 1e-6
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, fmt.Sprintf("found NaN: s[%d] is NaN", i), msgAndArgs...)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, fmt.Sprintf("found Inf: s[%d] is Inf", i), msgAndArgs...)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, fmt.Sprintf("s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal),
				msgAndArgs...)
		}
	}
	return true
}

// AssertHalfWaveSymmetric verifies s[i] - center == -(s[i+n/2] - center) for
// an even-length table holding exactly one period around center.
func AssertHalfWaveSymmetric(t *testing.T, s []float64, center, tolerance float64) bool {
	t.Helper()
	n := len(s)
	if n%2 != 0 {
		return assert.Fail(t, fmt.Sprintf("table length %d is not even", n))
	}
	half := n / 2
	for i := range half {
		a := s[i] - center
		b := s[i+half] - center
		if !assert.InDelta(t, a, -b, tolerance,
			"half-wave symmetry broken at i=%d: s[%d]=%f, s[%d]=%f", i, i, s[i], i+half, s[i+half]) {
			return false
		}
	}
	return true
}

// AssertDecimalPlaces verifies that every element has at most the given number
// of digits after the decimal point.
func AssertDecimalPlaces(t *testing.T, s []float64, decimals int) bool {
	t.Helper()
	scale := math.Pow(10, float64(decimals))
	for i, v := range s {
		scaled := v * scale
		if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			return assert.Fail(t, fmt.Sprintf("s[%d]=%v has more than %d decimals", i, v, decimals))
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	if relError > tolerance {
		return assert.Fail(t, fmt.Sprintf("relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
			relError, tolerance, expected, actual), msgAndArgs...)
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, fmt.Sprintf("value %f is outside range [%f, %f]", value, minVal, maxVal),
			msgAndArgs...)
	}
	return true
}
