package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/rmsmeter-tools/internal/record"
)

const sampleLine = "0x6401C80032000000FF0001000200030004000502"

func runDecode(t *testing.T, ctx context.Context, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(ctx, args, strings.NewReader(input), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Interactive(t *testing.T) {
	out, _, err := runDecode(t, t.Context(), sampleLine+"\n")
	require.NoError(t, err)

	want := "Press ctrl+C to exit\n" +
		"Hex: ADC1: 100, 200, 50, 0, 255\n" +
		"ADC2: 1, 2, 3, 4, 5\n" +
		"\n" +
		"Hex: "
	assert.Equal(t, want, out)
}

func TestRun_LE16(t *testing.T) {
	out, _, err := runDecode(t, t.Context(), sampleLine+"\n", "-layout", "le16", "-prompt", "")
	require.NoError(t, err)
	assert.Contains(t, out, "ADC1: 356, 200, 50, 0, 255\n")
	assert.NotContains(t, out, "Hex: ")
}

func TestRun_MalformedLine(t *testing.T) {
	out, _, err := runDecode(t, t.Context(), sampleLine+"\n0x1234\n"+sampleLine+"\n")
	require.ErrorIs(t, err, record.ErrShortRecord)
	assert.Equal(t, 1, strings.Count(out, "ADC1: "), "decoding stops at the bad line")
}

func TestRun_SkipInvalid(t *testing.T) {
	input := sampleLine + "\n0x1234\n" + strings.Replace(sampleLine, "64", "ZZ", 1) + "\n" + sampleLine + "\n"
	out, errOut, err := runDecode(t, t.Context(), input, "-skip-invalid")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "ADC1: "))
	assert.Contains(t, errOut, "skipping line")
	assert.Contains(t, errOut, "2 decoded, 2 skipped")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	out, _, err := runDecode(t, ctx, sampleLine+"\n")
	require.NoError(t, err, "interrupt is a clean exit")
	assert.NotContains(t, out, "ADC1: ")
}

func TestRun_InterruptWhileOpeningPort(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	time.AfterFunc(200*time.Millisecond, cancel)

	missing := filepath.Join(t.TempDir(), "ttyNONE")
	start := time.Now()
	out, errOut, err := runDecode(t, ctx, "", "-port", missing, "-open-timeout", "10s")

	require.NoError(t, err, "interrupt during port open is a clean exit")
	assert.Empty(t, out)
	assert.Empty(t, errOut)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rmsmeter.yml")
	require.NoError(t, os.WriteFile(path, []byte("decoder:\n  layout: le16\n  prompt: \"> \"\n"), 0o600))

	out, _, err := runDecode(t, t.Context(), sampleLine+"\n", "-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "> ADC1: 356, ")

	// Flags win over the file.
	out, _, err = runDecode(t, t.Context(), sampleLine+"\n", "-config", path, "-layout", "lowbyte")
	require.NoError(t, err)
	assert.Contains(t, out, "> ADC1: 100, ")
}

func TestRun_DumpConfig(t *testing.T) {
	out, _, err := runDecode(t, t.Context(), "", "-dump-config", "-layout", "le16", "-baud", "9600")
	require.NoError(t, err)
	assert.Contains(t, out, "layout: le16")
	assert.Contains(t, out, "baud: 9600")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Unknown flag", []string{"-nope"}},
		{"Unknown layout", []string{"-layout", "be16"}},
		{"Missing config", []string{"-config", filepath.Join(t.TempDir(), "missing.yml")}},
		{"Port unavailable", []string{"-port", filepath.Join(t.TempDir(), "ttyNONE"), "-open-timeout", "100ms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runDecode(t, t.Context(), sampleLine+"\n", tt.args...)
			require.Error(t, err)
		})
	}
}
