package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/rmsmeter-tools/internal/simdops"
)

const (
	// Tone preview defaults
	defaultWAVRate     = 48000
	defaultToneHz      = 440.0
	defaultToneSeconds = 2.0

	// WAV format constants
	wavBitDepth     = 16
	wavChannels     = 1
	wavFormatPCM    = 1
	maxInt16        = 32767.0
	previewHeadroom = 0.9 // keep the preview below full scale

	maxToneSeconds = 60.0
)

var errToneParams = errors.New("invalid tone parameters")

// renderTone plays table as a wavetable oscillator: each output sample picks
// the entry under the phase accumulator, as the firmware's PWM update does.
// The table is centred on its mean and normalised to previewHeadroom before
// conversion to 16-bit PCM.
func renderTone(table []float64, sampleRate int, freq, seconds float64) ([]int, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty table", errToneParams)
	}
	if sampleRate <= 0 || freq <= 0 || freq >= float64(sampleRate)/2 ||
		seconds <= 0 || seconds > maxToneSeconds {
		return nil, fmt.Errorf("%w: rate=%d freq=%g seconds=%g", errToneParams, sampleRate, freq, seconds)
	}

	centred := make([]float64, len(table))
	mean := simdops.Mean(table)
	peak := 0.0
	for i, v := range table {
		centred[i] = v - mean
		peak = math.Max(peak, math.Abs(centred[i]))
	}
	if peak > 0 {
		simdops.For[float64]().Scale(centred, centred, previewHeadroom*maxInt16/peak)
	}

	n := int(float64(sampleRate) * seconds)
	samples := make([]int, n)
	step := freq / float64(sampleRate)
	phase := 0.0
	for i := range samples {
		idx := int(phase*float64(len(centred))) % len(centred)
		samples[i] = int(math.Round(centred[idx]))
		phase += step
		if phase >= 1 {
			phase--
		}
	}
	return samples, nil
}

// writeWAV writes mono 16-bit PCM samples to path.
func writeWAV(path string, samples []int, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, wavChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Data:           samples,
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	// Close patches the RIFF sizes in the header.
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalise WAV header: %w", err)
	}
	return nil
}
