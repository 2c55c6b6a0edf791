// Package clipboard writes text to the user's clipboard, trying the system
// clipboard first and the terminal's OSC 52 escape as a fallback.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var ErrUnavailable = errors.New("clipboard unavailable")

// Sink accepts text for the clipboard.
type Sink interface {
	WriteText(ctx context.Context, text string) error
}

// System uses the platform clipboard utilities (pbcopy, xclip, wl-copy...).
type System struct{}

func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return fmt.Errorf("system: %w", ErrUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system: %w", err)
	}
	return nil
}

// OSC52 asks the terminal emulator to set the clipboard. It only works when
// Out is a terminal that honours the sequence.
type OSC52 struct {
	Out        io.Writer
	IsTerminal func() bool
	// Env looks up multiplexer variables; nil means os.Getenv.
	Env func(string) string
}

// NewOSC52 targets f, usually os.Stderr so the escape does not interleave
// with the UI renderer on stdout.
func NewOSC52(f *os.File) *OSC52 {
	return &OSC52{
		Out:        f,
		IsTerminal: func() bool { return term.IsTerminal(int(f.Fd())) },
	}
}

func (o *OSC52) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o == nil || o.Out == nil || (o.IsTerminal != nil && !o.IsTerminal()) {
		return fmt.Errorf("osc52: %w", ErrUnavailable)
	}
	env := o.Env
	if env == nil {
		env = os.Getenv
	}
	seq := osc52.New(text)
	switch {
	case env("TMUX") != "":
		seq = seq.Tmux()
	case env("STY") != "":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.Out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Chain tries each sink in order and stops at the first success.
type Chain struct {
	Sinks  []Sink
	Logger *zap.Logger
}

func NewChain(log *zap.Logger, sinks ...Sink) *Chain {
	return &Chain{Sinks: sinks, Logger: log}
}

func (c *Chain) WriteText(ctx context.Context, text string) error {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	var errs []error
	for i, s := range c.Sinks {
		err := s.WriteText(ctx, text)
		if err == nil {
			if i > 0 {
				log.Debug("clipboard fallback used", zap.Int("sink", i))
			}
			return nil
		}
		log.Debug("clipboard sink failed", zap.Int("sink", i), zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return errors.Join(errs...)
}
