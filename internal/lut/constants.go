package lut

// Default table parameters. These reproduce the PWM brightness table flashed
// into the meter firmware.
const (
	DefaultSize      = 40
	DefaultAmplitude = 50.0
	DefaultOffset    = 50.0
	DefaultDecimals  = 5
	DefaultName      = "sine"
)

// Table limits
const (
	minSize = 1
	maxSize = 1 << 16 // keeps generated sources below a few hundred KB

	minDecimals = 0
	maxDecimals = 15
)

// Span constants
const (
	spanStart   = 0.0
	spanEnd     = 1.0
	twoPiFactor = 2.0
)

// C output defaults
const (
	defaultCQualifier = "static"
	defaultCType      = "float"
)

// Spectrum analysis
const (
	minAnalysisSize   = 4 // fundamental plus at least one harmonic
	nyquistBinDivisor = 2.0
)
