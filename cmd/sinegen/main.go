// Command sinegen prints the firmware PWM sine lookup table.
//
// Usage:
//
//	sinegen                          # static float sine[40] = {50.0, 57.82172, ...};
//	sinegen -n 64 -decimals 3        # 64 entries, 3 decimals
//	sinegen -format go -name lut     # var lut = [40]float32{...}
//	sinegen -analyze                 # print DC, fundamental and THD to stderr
//	sinegen -wav preview.wav         # render 2 s of the table as a tone
//
// Settings may also come from a YAML file (see -config and -dump-config);
// flags given on the command line take precedence.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/tphakala/rmsmeter-tools/internal/config"
	"github.com/tphakala/rmsmeter-tools/internal/lut"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	configPath string
	dumpConfig bool
	analyze    bool
	wavPath    string
	wavRate    int
	wavFreq    float64
	wavSeconds float64
	verbose    bool
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sinegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts options
		sine config.Sine
	)
	fs.StringVar(&opts.configPath, "config", config.DefaultFileName, "YAML config file (optional)")
	fs.BoolVar(&opts.dumpConfig, "dump-config", false, "Print the effective configuration as YAML and exit")
	fs.IntVar(&sine.Size, "n", lut.DefaultSize, "Number of table entries (one period)")
	fs.Float64Var(&sine.Amplitude, "amplitude", lut.DefaultAmplitude, "Peak deviation from the offset")
	fs.Float64Var(&sine.Offset, "offset", lut.DefaultOffset, "Value at phase zero")
	fs.IntVar(&sine.Decimals, "decimals", lut.DefaultDecimals, "Digits kept after the decimal point")
	fs.StringVar(&sine.Name, "name", lut.DefaultName, "Identifier of the generated array")
	fs.StringVar(&sine.Format, "format", "c", "Output format: c, go, csv")
	fs.BoolVar(&opts.analyze, "analyze", false, "Print spectrum analysis of the table to stderr")
	fs.StringVar(&opts.wavPath, "wav", "", "Render the table as a tone to this WAV file")
	fs.IntVar(&opts.wavRate, "wav-rate", defaultWAVRate, "WAV sample rate in Hz")
	fs.Float64Var(&opts.wavFreq, "wav-freq", defaultToneHz, "Tone frequency in Hz")
	fs.Float64Var(&opts.wavSeconds, "wav-seconds", defaultToneSeconds, "Tone duration in seconds")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := explicitFlags(fs)
	cfg, err := config.Load(opts.configPath, !set["config"])
	if err != nil {
		return err
	}
	overrideSine(&cfg.Sine, sine, set)

	if opts.verbose {
		log.Printf("Table: %d entries, amplitude %g, offset %g, %d decimals",
			cfg.Sine.Size, cfg.Sine.Amplitude, cfg.Sine.Offset, cfg.Sine.Decimals)
		log.Printf("Format: %s, name: %s", cfg.Sine.Format, cfg.Sine.Name)
	}

	if opts.dumpConfig {
		return config.WriteYAML(stdout, cfg)
	}

	formatter, err := lut.FormatterByName(cfg.Sine.Format)
	if err != nil {
		return err
	}

	table, err := lut.Generate(cfg.Sine.Table())
	if err != nil {
		return err
	}

	if err := formatter.Format(stdout, cfg.Sine.Name, table); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	if opts.analyze {
		spectrum, err := lut.Analyze(table)
		if err != nil {
			return err
		}
		fmt.Fprintln(stderr, color.CyanString("%s", spectrum))
	}

	if opts.wavPath != "" {
		samples, err := renderTone(table, opts.wavRate, opts.wavFreq, opts.wavSeconds)
		if err != nil {
			return err
		}
		if err := writeWAV(opts.wavPath, samples, opts.wavRate); err != nil {
			return err
		}
		if opts.verbose {
			log.Printf("Wrote %d samples at %d Hz to %s", len(samples), opts.wavRate, opts.wavPath)
		}
	}

	return nil
}

// explicitFlags returns the names of flags set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// overrideSine copies explicitly set flag values over the loaded config.
func overrideSine(dst *config.Sine, flags config.Sine, set map[string]bool) {
	if set["n"] {
		dst.Size = flags.Size
	}
	if set["amplitude"] {
		dst.Amplitude = flags.Amplitude
	}
	if set["offset"] {
		dst.Offset = flags.Offset
	}
	if set["decimals"] {
		dst.Decimals = flags.Decimals
	}
	if set["name"] {
		dst.Name = flags.Name
	}
	if set["format"] {
		dst.Format = flags.Format
	}
}
