package lut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tphakala/rmsmeter-tools/internal/mathutil"
)

// ErrUnknownFormat is returned by FormatterByName for unsupported names.
var ErrUnknownFormat = errors.New("lut: unknown output format")

// Formatter renders a named table as text.
type Formatter interface {
	Format(w io.Writer, name string, values []float64) error
}

// CArray renders a C array initializer on a single line:
//
//	static float sine[40] = {50.0, 57.82172, ...};
type CArray struct {
	// Qualifier precedes the type, e.g. "static" or "static const".
	// Empty omits it.
	Qualifier string
	// Type is the element type. Defaults to "float".
	Type string
}

// Format implements Formatter.
func (c CArray) Format(w io.Writer, name string, values []float64) error {
	typ := c.Type
	if typ == "" {
		typ = defaultCType
	}

	bw := bufio.NewWriter(w)
	if c.Qualifier != "" {
		bw.WriteString(c.Qualifier)
		bw.WriteByte(' ')
	}
	fmt.Fprintf(bw, "%s %s[%d] = {", typ, name, len(values))
	writeJoined(bw, values)
	bw.WriteString("};\n")
	return bw.Flush()
}

// GoSlice renders a Go array literal, suitable for TinyGo firmware.
type GoSlice struct{}

// Format implements Formatter.
func (GoSlice) Format(w io.Writer, name string, values []float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "var %s = [%d]float32{", name, len(values))
	writeJoined(bw, values)
	bw.WriteString("}\n")
	return bw.Flush()
}

// CSV renders one "index,value" row per entry after a header row.
type CSV struct{}

// Format implements Formatter.
func (CSV) Format(w io.Writer, name string, values []float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "index,%s\n", name)
	for i, v := range values {
		bw.WriteString(strconv.Itoa(i))
		bw.WriteByte(',')
		bw.WriteString(mathutil.FormatShortest(v))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeJoined(bw *bufio.Writer, values []float64) {
	for i, v := range values {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.WriteString(mathutil.FormatShortest(v))
	}
}

// FormatterByName maps a command-line format name to a Formatter.
func FormatterByName(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "c", "":
		return CArray{Qualifier: defaultCQualifier, Type: defaultCType}, nil
	case "go":
		return GoSlice{}, nil
	case "csv":
		return CSV{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want c, go or csv)", ErrUnknownFormat, name)
	}
}
