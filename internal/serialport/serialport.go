// Package serialport opens the meter's USB-serial bridge as a line source for
// the decoder.
package serialport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/tarm/serial"
)

// Defaults for the CDC-ACM bridge on the meter's debug header.
const (
	DefaultBaud        = 115200
	DefaultOpenTimeout = 5 * time.Second

	initialInterval = 50 * time.Millisecond
	maxInterval     = 1 * time.Second
	multiplier      = 2.
)

// ErrNoPort is returned when Config.Name is empty.
var ErrNoPort = errors.New("serialport: no port name given")

// Config describes the port to open.
type Config struct {
	Name string
	Baud int
	// OpenTimeout bounds the total time spent retrying. The device
	// disappears for a moment each time the firmware resets.
	OpenTimeout time.Duration
}

// Opener opens a port once. It is replaced in tests.
type Opener func(cfg *serial.Config) (io.ReadCloser, error)

func openPort(cfg *serial.Config) (io.ReadCloser, error) {
	p, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open opens the port described by cfg, retrying with exponential backoff
// until cfg.OpenTimeout elapses or ctx is cancelled. A cancelled ctx yields
// an error wrapping ctx.Err().
func Open(ctx context.Context, cfg Config) (io.ReadCloser, error) {
	return OpenWith(ctx, cfg, openPort)
}

// OpenWith is Open with an explicit Opener.
func OpenWith(ctx context.Context, cfg Config, open Opener) (io.ReadCloser, error) {
	if cfg.Name == "" {
		return nil, ErrNoPort
	}
	if cfg.Baud <= 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = DefaultOpenTimeout
	}

	sc := &serial.Config{Name: cfg.Name, Baud: cfg.Baud}

	var port io.ReadCloser
	op := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		p, err := open(sc)
		if err != nil {
			return err
		}
		port = p
		return nil
	}

	b := &backoff.ExponentialBackOff{
		InitialInterval:     initialInterval,
		RandomizationFactor: 0.,
		Multiplier:          multiplier,
		MaxInterval:         maxInterval,
		MaxElapsedTime:      cfg.OpenTimeout,
		Clock:               backoff.SystemClock,
	}
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		// Retry reports the last open error when ctx ends mid-wait.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("serialport: open %s at %d baud: %w", cfg.Name, cfg.Baud, err)
	}
	return port, nil
}
