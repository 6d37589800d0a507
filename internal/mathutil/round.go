// Package mathutil provides numeric helpers shared by the table generator and
// its formatters.
package mathutil

import (
	"math"
	"strconv"
	"strings"
)

// Decimal precision limits for RoundDecimals.
const (
	MinDecimals = 0
	MaxDecimals = 15 // float64 carries ~15.95 significant decimal digits

	float64Bits = 64
)

// RoundDecimals rounds x to the given number of digits after the decimal point.
//
// The result is the float64 nearest to the correctly rounded decimal value,
// ties resolved on the exact binary value of x. Scaling by 10^decimals and
// calling math.Round is not used because the scaled product is itself rounded
// and can flip values that sit just below a tie (e.g. 2.675 → 2.68).
//
// NaN and ±Inf are returned unchanged. decimals is clamped to
// [MinDecimals, MaxDecimals].
func RoundDecimals(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	decimals = max(MinDecimals, min(decimals, MaxDecimals))

	s := strconv.FormatFloat(x, 'f', decimals, float64Bits)
	r, err := strconv.ParseFloat(s, float64Bits)
	if err != nil {
		// FormatFloat output always parses; keep x rather than panic.
		return x
	}
	if r == 0 {
		// -0.0 prints as "-0.0" in C initializers; normalise.
		return 0
	}
	return r
}

// FormatShortest returns the shortest fixed-notation decimal string that
// parses back to x, always containing a decimal point: 50 → "50.0",
// 57.82172 → "57.82172". C compilers accept either form, but a bare integer
// literal in a float initializer hides the intent.
func FormatShortest(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, float64Bits)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return s
	}
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
