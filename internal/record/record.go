// Package record decodes the hex dump of the meter's BLE data characteristic
// into per-channel RMS readings.
//
// A record is copied from a BLE inspector as a single line: a two-character
// prefix (normally "0x") followed by the payload. Ten readings are stored as
// little-endian 16-bit words, four hex characters each. The first five belong
// to ADC1 and the next five to ADC2.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record geometry, in hex characters.
const (
	PrefixLen   = 2
	FieldStride = 4
	FieldCount  = 10
	PerChannel  = FieldCount / 2

	byteWidth = 2
	wordWidth = 4

	// MinLen is the shortest line Decode accepts: the prefix plus ten
	// complete words. The low-byte layout reads nothing past character 40
	// but still requires the final word.
	MinLen = PrefixLen + FieldStride*FieldCount

	hexBase   = 16
	bits8     = 8
	bits16    = 16
	byteShift = 8
)

// Errors returned while decoding.
var (
	ErrShortRecord = errors.New("record: line too short")
	ErrInvalidHex  = errors.New("record: invalid hex field")
	ErrFieldIndex  = errors.New("record: field index out of range")
)

// Layout selects how each 4-character word is turned into a reading.
type Layout int

const (
	// LayoutLowByte reads only the first byte of each word, i.e. the low byte
	// of the little-endian value. Readings are 0..255. This is what the
	// bench decoder has always printed.
	LayoutLowByte Layout = iota
	// LayoutLE16 reads the whole word as a little-endian uint16.
	LayoutLE16
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case LayoutLowByte:
		return "lowbyte"
	case LayoutLE16:
		return "le16"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout maps a command-line name to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "lowbyte", "low-byte", "":
		return LayoutLowByte, nil
	case "le16", "u16":
		return LayoutLE16, nil
	default:
		return 0, fmt.Errorf("record: unknown layout %q (want lowbyte or le16)", s)
	}
}

// Reading holds one decoded record.
type Reading struct {
	ADC1 [PerChannel]uint16
	ADC2 [PerChannel]uint16
}

// Values returns the ten readings in record order.
func (r Reading) Values() []uint16 {
	out := make([]uint16, 0, FieldCount)
	out = append(out, r.ADC1[:]...)
	return append(out, r.ADC2[:]...)
}

// fieldStart returns the character offset of field i.
func fieldStart(i int) int {
	return PrefixLen + FieldStride*i
}

// Field extracts field i as the two hex characters at
// [2+4i, 2+4i+2) and parses them as a byte.
//
// Field only needs the line to reach the end of the requested field, so
// partial lines can be inspected one field at a time.
func Field(line string, i int) (uint8, error) {
	if i < 0 || i >= FieldCount {
		return 0, fmt.Errorf("%w: %d", ErrFieldIndex, i)
	}
	start := fieldStart(i)
	end := start + byteWidth
	if len(line) < end {
		return 0, fmt.Errorf("%w: field %d needs %d characters, got %d", ErrShortRecord, i, end, len(line))
	}
	v, err := strconv.ParseUint(line[start:end], hexBase, bits8)
	if err != nil {
		return 0, fmt.Errorf("%w: field %d %q", ErrInvalidHex, i, line[start:end])
	}
	return uint8(v), nil
}

// Word extracts field i as a little-endian uint16 from the four hex
// characters at [2+4i, 2+4i+4).
func Word(line string, i int) (uint16, error) {
	if i < 0 || i >= FieldCount {
		return 0, fmt.Errorf("%w: %d", ErrFieldIndex, i)
	}
	start := fieldStart(i)
	end := start + wordWidth
	if len(line) < end {
		return 0, fmt.Errorf("%w: field %d needs %d characters, got %d", ErrShortRecord, i, end, len(line))
	}
	v, err := strconv.ParseUint(line[start:end], hexBase, bits16)
	if err != nil {
		return 0, fmt.Errorf("%w: field %d %q", ErrInvalidHex, i, line[start:end])
	}
	// Hex text is big-endian per byte pair; swap to little-endian.
	return uint16(v>>byteShift) | uint16(v)<<byteShift, nil
}

// Decode parses a full line with the given layout.
func Decode(line string, layout Layout) (Reading, error) {
	var r Reading
	if len(line) < MinLen {
		return r, fmt.Errorf("%w: need %d characters, got %d", ErrShortRecord, MinLen, len(line))
	}

	for i := range FieldCount {
		var (
			v   uint16
			err error
		)
		switch layout {
		case LayoutLowByte:
			var b uint8
			b, err = Field(line, i)
			v = uint16(b)
		case LayoutLE16:
			v, err = Word(line, i)
		default:
			return r, fmt.Errorf("record: unsupported layout %v", layout)
		}
		if err != nil {
			return r, err
		}
		if i < PerChannel {
			r.ADC1[i] = v
		} else {
			r.ADC2[i-PerChannel] = v
		}
	}
	return r, nil
}

// Write prints r as
//
//	ADC1: v0, v1, v2, v3, v4
//	ADC2: v5, v6, v7, v8, v9
//
// followed by a blank line.
func Write(w io.Writer, r Reading) error {
	bw := bufio.NewWriter(w)
	writeChannel(bw, "ADC1: ", r.ADC1)
	writeChannel(bw, "ADC2: ", r.ADC2)
	bw.WriteByte('\n')
	return bw.Flush()
}

func writeChannel(bw *bufio.Writer, label string, vals [PerChannel]uint16) {
	bw.WriteString(label)
	for i, v := range vals {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	bw.WriteByte('\n')
}
