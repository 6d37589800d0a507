// Package console runs the interactive decode loop: prompt, read one hex line,
// print the decoded reading, repeat until interrupted or input ends.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"

	"github.com/tphakala/rmsmeter-tools/internal/record"
)

// Defaults for interactive use.
const (
	DefaultPrompt = "Hex: "
	Banner        = "Press ctrl+C to exit"
)

// Session holds the loop settings.
type Session struct {
	// Prompt is written before every read. Empty disables prompting, which
	// suits non-interactive sources such as a serial port.
	Prompt string
	// ShowBanner prints Banner once before the first prompt.
	ShowBanner bool
	// Layout selects how records are decoded.
	Layout record.Layout
	// SkipInvalid reports malformed lines through Logger and keeps going
	// instead of ending the session with the decode error.
	SkipInvalid bool
	// Logger receives skipped-line reports. Nil uses the standard logger.
	Logger *log.Logger
}

// NewSession returns a Session configured like the bench decoder: banner,
// "Hex: " prompt, low-byte layout, stop on the first malformed line.
func NewSession() *Session {
	return &Session{
		Prompt:     DefaultPrompt,
		ShowBanner: true,
		Layout:     record.LayoutLowByte,
	}
}

// Stats counts what a session processed.
type Stats struct {
	Decoded int
	Skipped int
}

type lineResult struct {
	line string
	err  error
}

// Run reads lines from in and writes decoded readings to out.
//
// Run returns nil when ctx is cancelled (the caller wires this to SIGINT) or
// when in reaches EOF. A malformed line ends the session with an error
// wrapping record.ErrShortRecord or record.ErrInvalidHex unless SkipInvalid
// is set. Lines of any length are accepted; characters past the record are
// ignored.
//
// Reads happen on a separate goroutine so cancellation is observed while
// blocked on input. That goroutine exits on the next line, EOF or error from
// in; callers that need it gone immediately should close in.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	var stats Stats

	if s.ShowBanner {
		if _, err := fmt.Fprintln(out, Banner); err != nil {
			return stats, err
		}
	}

	lines := make(chan lineResult, 1)
	next := make(chan struct{})
	go readLines(in, lines, next)
	defer close(next)

	for {
		if ctx.Err() != nil {
			return stats, nil
		}
		if s.Prompt != "" {
			if _, err := io.WriteString(out, s.Prompt); err != nil {
				return stats, err
			}
		}

		select {
		case <-ctx.Done():
			return stats, nil
		case next <- struct{}{}:
		}

		var res lineResult
		select {
		case <-ctx.Done():
			return stats, nil
		case res = <-lines:
		}

		if errors.Is(res.err, io.EOF) {
			return stats, nil
		}
		if res.err != nil {
			return stats, fmt.Errorf("console: read input: %w", res.err)
		}

		reading, err := record.Decode(res.line, s.Layout)
		if err != nil {
			if !s.SkipInvalid {
				return stats, err
			}
			stats.Skipped++
			s.logger().Print(color.YellowString("skipping line: %v", err))
			continue
		}

		if err := record.Write(out, reading); err != nil {
			return stats, err
		}
		stats.Decoded++
	}
}

func (s *Session) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// readLines delivers one line per receive on next. Lines have no length
// limit. It returns when next is closed or after delivering a terminal error.
// lines must be buffered so a read that completes after Run has returned does
// not block forever.
func readLines(in io.Reader, lines chan<- lineResult, next <-chan struct{}) {
	r := bufio.NewReader(in)
	var pending error

	for range next {
		if pending != nil {
			lines <- lineResult{err: pending}
			return
		}
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			lines <- lineResult{err: err}
			return
		}
		// A final line without newline is delivered before the error.
		pending = err
		lines <- lineResult{line: strings.TrimRight(line, "\r\n")}
	}
}
