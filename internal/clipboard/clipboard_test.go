package clipboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubSink struct {
	err   error
	calls int
	last  string
}

func (s *stubSink) WriteText(_ context.Context, text string) error {
	s.calls++
	s.last = text
	return s.err
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	primary := &stubSink{}
	fallback := &stubSink{}
	require.NoError(t, NewChain(nil, primary, fallback).WriteText(context.Background(), "id"))
	require.Equal(t, 1, primary.calls)
	require.Zero(t, fallback.calls)
}

func TestChainFallsBack(t *testing.T) {
	primary := &stubSink{err: errors.New("denied")}
	fallback := &stubSink{}
	require.NoError(t, NewChain(nil, primary, fallback).WriteText(context.Background(), "id"))
	require.Equal(t, "id", fallback.last)
}

func TestChainJoinsErrors(t *testing.T) {
	denied := errors.New("denied")
	primary := &stubSink{err: denied}
	fallback := &stubSink{err: ErrUnavailable}
	err := NewChain(nil, primary, fallback).WriteText(context.Background(), "id")
	require.ErrorIs(t, err, denied)
	require.ErrorIs(t, err, ErrUnavailable)

	require.ErrorIs(t, NewChain(nil).WriteText(context.Background(), "id"), ErrUnavailable)
}

func TestOSC52WritesSequence(t *testing.T) {
	var buf bytes.Buffer
	o := &OSC52{Out: &buf, IsTerminal: func() bool { return true }, Env: func(string) string { return "" }}
	require.NoError(t, o.WriteText(context.Background(), "principal"))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\x1b]52;c;"), "got %q", out)
	require.Contains(t, out, "cHJpbmNpcGFs") // base64("principal")
}

func TestOSC52WrapsForTmux(t *testing.T) {
	var buf bytes.Buffer
	o := &OSC52{Out: &buf, IsTerminal: func() bool { return true }, Env: func(k string) string {
		if k == "TMUX" {
			return "/tmp/tmux-1000/default"
		}
		return ""
	}}
	require.NoError(t, o.WriteText(context.Background(), "principal"))
	require.True(t, strings.HasPrefix(buf.String(), "\x1bPtmux;"), "got %q", buf.String())
}

func TestOSC52RequiresTerminal(t *testing.T) {
	var buf bytes.Buffer
	o := &OSC52{Out: &buf, IsTerminal: func() bool { return false }}
	require.ErrorIs(t, o.WriteText(context.Background(), "x"), ErrUnavailable)
	require.Zero(t, buf.Len())

	var missing *OSC52
	require.ErrorIs(t, missing.WriteText(context.Background(), "x"), ErrUnavailable)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := &OSC52{Out: &bytes.Buffer{}}
	require.ErrorIs(t, o.WriteText(ctx, "x"), context.Canceled)
	require.ErrorIs(t, System{}.WriteText(ctx, "x"), context.Canceled)
}
