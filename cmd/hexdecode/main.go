// Command hexdecode prints the ADC readings held in hex dumps of the meter's
// BLE data characteristic.
//
// Usage:
//
//	hexdecode                              # interactive: paste one line per prompt
//	hexdecode -layout le16                 # decode full 16-bit words
//	hexdecode -port /dev/ttyACM0           # read lines from the USB-serial bridge
//	hexdecode -skip-invalid < dumps.txt    # batch mode, report and skip bad lines
//
// Ctrl+C ends the session with exit status 0. A malformed line ends it with
// an error unless -skip-invalid is given.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/tphakala/rmsmeter-tools/internal/config"
	"github.com/tphakala/rmsmeter-tools/internal/console"
	"github.com/tphakala/rmsmeter-tools/internal/serialport"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hexdecode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath string
		dumpConfig bool
		verbose    bool
		dec        config.Decoder
	)
	fs.StringVar(&configPath, "config", config.DefaultFileName, "YAML config file (optional)")
	fs.BoolVar(&dumpConfig, "dump-config", false, "Print the effective configuration as YAML and exit")
	fs.StringVar(&dec.Layout, "layout", "lowbyte", "Record layout: lowbyte, le16")
	fs.StringVar(&dec.Prompt, "prompt", console.DefaultPrompt, "Prompt printed before each read (interactive only)")
	fs.BoolVar(&dec.SkipInvalid, "skip-invalid", false, "Report and skip malformed lines instead of exiting")
	fs.StringVar(&dec.Port, "port", "", "Read from this serial port instead of stdin")
	fs.IntVar(&dec.Baud, "baud", serialport.DefaultBaud, "Serial baud rate")
	fs.DurationVar(&dec.OpenTimeout, "open-timeout", serialport.DefaultOpenTimeout, "How long to retry opening the serial port")
	fs.BoolVar(&verbose, "v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.Load(configPath, !set["config"])
	if err != nil {
		return err
	}
	overrideDecoder(&cfg.Decoder, dec, set)

	if dumpConfig {
		return config.WriteYAML(stdout, cfg)
	}

	session, err := cfg.Decoder.Session()
	if err != nil {
		return err
	}
	session.Logger = log.New(stderr, "", log.LstdFlags)

	in := stdin
	if cfg.Decoder.Port != "" {
		if verbose {
			log.Printf("Opening %s at %d baud", cfg.Decoder.Port, cfg.Decoder.Baud)
		}
		port, err := serialport.Open(ctx, cfg.Decoder.Serial())
		if errors.Is(err, context.Canceled) {
			// Interrupted while waiting for the device.
			return nil
		}
		if err != nil {
			return err
		}
		defer port.Close()
		// Closing unblocks the session's reader on interrupt.
		stopClose := context.AfterFunc(ctx, func() { _ = port.Close() })
		defer stopClose()
		in = port
		// Device output is not interactive.
		session.Prompt = ""
	}

	if verbose {
		log.Printf("Layout: %s, skip invalid: %v", session.Layout, session.SkipInvalid)
	}

	start := time.Now()
	stats, err := session.Run(ctx, in, stdout)
	if verbose || stats.Skipped > 0 {
		log.New(stderr, "", 0).Print(color.YellowString(
			"%d decoded, %d skipped in %s", stats.Decoded, stats.Skipped, time.Since(start).Round(time.Millisecond)))
	}
	return err
}

// overrideDecoder copies explicitly set flag values over the loaded config.
func overrideDecoder(dst *config.Decoder, flags config.Decoder, set map[string]bool) {
	if set["layout"] {
		dst.Layout = flags.Layout
	}
	if set["prompt"] {
		dst.Prompt = flags.Prompt
	}
	if set["skip-invalid"] {
		dst.SkipInvalid = flags.SkipInvalid
	}
	if set["port"] {
		dst.Port = flags.Port
	}
	if set["baud"] {
		dst.Baud = flags.Baud
	}
	if set["open-timeout"] {
		dst.OpenTimeout = flags.OpenTimeout
	}
}
