package lut

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firmwareCLine = "static float sine[40] = {" +
	"50.0, 57.82172, 65.45085, 72.69952, 79.38926, 85.35534, 90.45085, 94.55033, 97.55283, 99.38442, " +
	"100.0, 99.38442, 97.55283, 94.55033, 90.45085, 85.35534, 79.38926, 72.69952, 65.45085, 57.82172, " +
	"50.0, 42.17828, 34.54915, 27.30048, 20.61074, 14.64466, 9.54915, 5.44967, 2.44717, 0.61558, " +
	"0.0, 0.61558, 2.44717, 5.44967, 9.54915, 14.64466, 20.61074, 27.30048, 34.54915, 42.17828" +
	"};\n"

func TestCArray_FirmwareTable(t *testing.T) {
	f, err := FormatterByName("c")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, DefaultName, MustGenerate(DefaultConfig())))

	assert.Equal(t, firmwareCLine, buf.String())
}

func TestCArray_CommaCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CArray{Qualifier: "static"}.Format(&buf, "sine", MustGenerate(DefaultConfig())))

	body := buf.String()
	body = body[strings.Index(body, "{")+1 : strings.Index(body, "}")]
	assert.Len(t, strings.Split(body, ", "), DefaultSize)
}

func TestCArray_Variants(t *testing.T) {
	tests := []struct {
		name     string
		f        CArray
		values   []float64
		expected string
	}{
		{"No qualifier", CArray{}, []float64{1, 2.5}, "float lut[2] = {1.0, 2.5};\n"},
		{"Const double", CArray{Qualifier: "static const", Type: "double"}, []float64{0.25}, "static const double lut[1] = {0.25};\n"},
		{"Empty", CArray{Qualifier: "static"}, nil, "static float lut[0] = {};\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.f.Format(&buf, "lut", tt.values))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestGoSlice_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GoSlice{}.Format(&buf, "sine", []float64{50, 100, 0}))
	assert.Equal(t, "var sine = [3]float32{50.0, 100.0, 0.0}\n", buf.String())
}

func TestCSV_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV{}.Format(&buf, "sine", []float64{50, 57.82172}))
	assert.Equal(t, "index,sine\n0,50.0\n1,57.82172\n", buf.String())
}

func TestFormatterByName(t *testing.T) {
	for _, name := range []string{"", "c", "C", "go", "csv", "CSV"} {
		f, err := FormatterByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f, name)
	}

	_, err := FormatterByName("json")
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), `"json"`)
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestFormatters_PropagateWriteErrors(t *testing.T) {
	values := MustGenerate(DefaultConfig())
	for _, f := range []Formatter{CArray{}, GoSlice{}, CSV{}} {
		err := f.Format(failingWriter{}, "sine", values)
		assert.ErrorIs(t, err, errWrite)
	}
}
