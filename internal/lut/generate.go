// Package lut generates periodic lookup tables for firmware and renders them
// as source code literals.
//
// A table holds exactly one period: Size+1 points are spanned over [0, 1]
// and the last one is dropped, since sin(2π) repeats sin(0).
package lut

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/rmsmeter-tools/internal/mathutil"
	"github.com/tphakala/rmsmeter-tools/internal/simdops"
)

// Errors returned by Config.Validate and Generate.
var (
	ErrInvalidSize      = errors.New("lut: invalid table size")
	ErrInvalidDecimals  = errors.New("lut: invalid decimal precision")
	ErrNonFiniteScaling = errors.New("lut: amplitude and offset must be finite")
)

// Config describes a sine lookup table.
type Config struct {
	// Size is the number of entries in the table (one full period).
	Size int
	// Amplitude is the peak deviation from Offset.
	Amplitude float64
	// Offset is the value at phase zero.
	Offset float64
	// Decimals is the number of digits kept after the decimal point.
	Decimals int
}

// DefaultConfig returns the 40-entry table in [0, 100] used by the firmware.
func DefaultConfig() Config {
	return Config{
		Size:      DefaultSize,
		Amplitude: DefaultAmplitude,
		Offset:    DefaultOffset,
		Decimals:  DefaultDecimals,
	}
}

// Validate checks that the configuration describes a table Generate can build.
func (c Config) Validate() error {
	if c.Size < minSize || c.Size > maxSize {
		return fmt.Errorf("%w: %d (must be %d..%d)", ErrInvalidSize, c.Size, minSize, maxSize)
	}
	if c.Decimals < minDecimals || c.Decimals > maxDecimals {
		return fmt.Errorf("%w: %d (must be %d..%d)", ErrInvalidDecimals, c.Decimals, minDecimals, maxDecimals)
	}
	if math.IsNaN(c.Amplitude) || math.IsInf(c.Amplitude, 0) ||
		math.IsNaN(c.Offset) || math.IsInf(c.Offset, 0) {
		return ErrNonFiniteScaling
	}
	return nil
}

// Generate computes the table described by cfg. The result is freshly
// allocated and identical for identical configurations.
func Generate(cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Size+1 points over [0, 1]; the endpoint duplicates phase zero.
	points := floats.Span(make([]float64, cfg.Size+1), spanStart, spanEnd)
	table := points[:cfg.Size]

	for i, x := range table {
		table[i] = math.Sin(twoPiFactor * math.Pi * x)
	}
	simdops.ScaleOffset(table, table, cfg.Amplitude, cfg.Offset)

	for i, v := range table {
		table[i] = mathutil.RoundDecimals(v, cfg.Decimals)
	}
	return table, nil
}

// MustGenerate is like Generate but panics on an invalid configuration.
// It is intended for package-level tables built from constants.
func MustGenerate(cfg Config) []float64 {
	table, err := Generate(cfg)
	if err != nil {
		panic(err)
	}
	return table
}
