// Package config loads tool settings from an optional YAML file layered over
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	"github.com/tphakala/rmsmeter-tools/internal/console"
	"github.com/tphakala/rmsmeter-tools/internal/lut"
	"github.com/tphakala/rmsmeter-tools/internal/record"
	"github.com/tphakala/rmsmeter-tools/internal/serialport"
)

// DefaultFileName is looked up in the working directory when no -config flag
// is given.
const DefaultFileName = "rmsmeter.yml"

const (
	keyDelim  = "."
	structTag = "koanf"
)

// Sine holds table generator settings.
type Sine struct {
	Size      int     `koanf:"size"`
	Amplitude float64 `koanf:"amplitude"`
	Offset    float64 `koanf:"offset"`
	Decimals  int     `koanf:"decimals"`
	Name      string  `koanf:"name"`
	// Format is one of c, go, csv.
	Format string `koanf:"format"`
}

// Decoder holds hex decoder settings.
type Decoder struct {
	Layout      string        `koanf:"layout"`
	Prompt      string        `koanf:"prompt"`
	SkipInvalid bool          `koanf:"skip_invalid"`
	Port        string        `koanf:"port"`
	Baud        int           `koanf:"baud"`
	OpenTimeout time.Duration `koanf:"open_timeout"`
}

// Config is the root of the YAML document.
type Config struct {
	Sine    Sine    `koanf:"sine"`
	Decoder Decoder `koanf:"decoder"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Sine: Sine{
			Size:      lut.DefaultSize,
			Amplitude: lut.DefaultAmplitude,
			Offset:    lut.DefaultOffset,
			Decimals:  lut.DefaultDecimals,
			Name:      lut.DefaultName,
			Format:    "c",
		},
		Decoder: Decoder{
			Layout:      record.LayoutLowByte.String(),
			Prompt:      console.DefaultPrompt,
			Baud:        serialport.DefaultBaud,
			OpenTimeout: serialport.DefaultOpenTimeout,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true; the defaults are returned unchanged.
func Load(path string, optional bool) (Config, error) {
	k, err := load(path, optional)
	if err != nil {
		return Config{}, err
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return c, nil
}

func load(path string, optional bool) (*koanf.Koanf, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(structs.Provider(Default(), structTag), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if path == "" {
		return k, nil
	}

	if _, err := os.Stat(path); err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return k, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return k, nil
}

// WriteYAML writes c as a YAML document, suitable as a starting config file.
func WriteYAML(w io.Writer, c Config) error {
	k := koanf.New(keyDelim)
	if err := k.Load(structs.Provider(c, structTag), nil); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	b, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// Table converts the sine section to a generator configuration.
func (s Sine) Table() lut.Config {
	return lut.Config{
		Size:      s.Size,
		Amplitude: s.Amplitude,
		Offset:    s.Offset,
		Decimals:  s.Decimals,
	}
}

// Session builds a console session from the decoder section.
func (d Decoder) Session() (*console.Session, error) {
	layout, err := record.ParseLayout(d.Layout)
	if err != nil {
		return nil, err
	}
	s := console.NewSession()
	s.Layout = layout
	s.Prompt = d.Prompt
	s.SkipInvalid = d.SkipInvalid
	return s, nil
}

// Serial returns the serial port settings from the decoder section.
func (d Decoder) Serial() serialport.Config {
	return serialport.Config{
		Name:        d.Port,
		Baud:        d.Baud,
		OpenTimeout: d.OpenTimeout,
	}
}
