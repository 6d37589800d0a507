package rmstools

import (
	"strings"

	"github.com/tphakala/rmsmeter-tools/internal/lut"
	"github.com/tphakala/rmsmeter-tools/internal/record"
)

// Reading is one decoded record: five readings per ADC channel.
type Reading = record.Reading

// Errors returned by the decode helpers.
var (
	ErrShortRecord = record.ErrShortRecord
	ErrInvalidHex  = record.ErrInvalidHex
)

// SineTable returns a one-period sine table of the given size in [0, 100],
// rounded to five decimals.
func SineTable(size int) ([]float64, error) {
	cfg := lut.DefaultConfig()
	cfg.Size = size
	return lut.Generate(cfg)
}

// SineTableC returns the table as a C initializer line, including the
// trailing newline:
//
//	static float sine[40] = {50.0, 57.82172, ...};
func SineTableC(size int) (string, error) {
	table, err := SineTable(size)
	if err != nil {
		return "", err
	}

	f, err := lut.FormatterByName("c")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := f.Format(&sb, DefaultTableName, table); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// DecodeHex decodes a record using the low-byte layout.
func DecodeHex(line string) (Reading, error) {
	return record.Decode(line, record.LayoutLowByte)
}

// DecodeHexLE16 decodes a record reading each word as a little-endian uint16.
func DecodeHexLE16(line string) (Reading, error) {
	return record.Decode(line, record.LayoutLE16)
}

// HexField returns field i (0-9) of line, read from characters [2+4i, 2+4i+2).
func HexField(line string, i int) (uint8, error) {
	return record.Field(line, i)
}
