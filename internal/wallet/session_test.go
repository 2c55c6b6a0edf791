package wallet

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	available bool
	ok        bool
	connErr   error
	identity  Identity
	idErr     error
	gate      chan struct{}
	entered   chan struct{}
	connects  atomic.Int32
	idCalls   atomic.Int32
}

func (p *fakeProvider) IsAvailable() bool { return p.available }

func (p *fakeProvider) Connect(ctx context.Context) (bool, error) {
	p.connects.Add(1)
	if p.entered != nil {
		p.entered <- struct{}{}
	}
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return p.ok, p.connErr
}

func (p *fakeProvider) Identity(context.Context) (Identity, error) {
	p.idCalls.Add(1)
	return p.identity, p.idErr
}

type fakeClipboard struct {
	mu     sync.Mutex
	err    error
	writes []string
}

func (c *fakeClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

type manualClock struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTask) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTask{clock: c, at: c.now + d, fn: fn}
	c.tasks = append(c.tasks, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTask
	for _, t := range c.tasks {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func checkInvariant(t *testing.T) func(Snapshot) {
	return func(s Snapshot) {
		if (s.Identity != "") != (s.Status == StatusConnected) {
			t.Errorf("identity %q present with status %s", s.Identity, s.Status)
		}
	}
}

func connectedSession(t *testing.T, clip Clipboard, clock *manualClock) *Session {
	t.Helper()
	p := &fakeProvider{available: true, ok: true, identity: Raw("abcdefghijklmnop")}
	s := NewSession(Options{Provider: p, Clipboard: clip, Scheduler: clock, OnChange: checkInvariant(t)})
	require.NoError(t, s.Connect(context.Background()))
	require.Equal(t, StatusConnected, s.Snapshot().Status)
	return s
}

func TestConnectSuccess(t *testing.T) {
	p := &fakeProvider{available: true, ok: true, identity: Raw("  principal-abc  ")}
	var seen []Status
	s := NewSession(Options{Provider: p, OnChange: func(snap Snapshot) {
		checkInvariant(t)(snap)
		seen = append(seen, snap.Status)
	}})
	require.Equal(t, StatusIdle, s.Snapshot().Status)

	require.NoError(t, s.Connect(context.Background()))
	snap := s.Snapshot()
	require.Equal(t, StatusConnected, snap.Status)
	require.Equal(t, "principal-abc", snap.Identity)
	require.Equal(t, []Status{StatusConnecting, StatusConnected}, seen)

	// connected is terminal
	require.NoError(t, s.Connect(context.Background()))
	require.EqualValues(t, 1, p.connects.Load())
}

func TestConnectProviderUnavailable(t *testing.T) {
	var notices []string
	s := NewSession(Options{Provider: &fakeProvider{available: false}, OnNotice: func(n string) { notices = append(notices, n) }})
	require.ErrorIs(t, s.Connect(context.Background()), ErrProviderUnavailable)
	require.Equal(t, StatusIdle, s.Snapshot().Status)
	require.Len(t, notices, 1)

	s = NewSession(Options{})
	require.ErrorIs(t, s.Connect(context.Background()), ErrProviderUnavailable)
}

func TestConnectFailures(t *testing.T) {
	boom := errors.New("user closed the popup")
	cases := []struct {
		name     string
		provider *fakeProvider
		want     error
	}{
		{"connect error", &fakeProvider{available: true, connErr: boom}, ErrConnectionRejected},
		{"connect false", &fakeProvider{available: true, ok: false}, ErrConnectionRejected},
		{"identity error", &fakeProvider{available: true, ok: true, idErr: boom}, ErrIdentityUnavailable},
		{"empty raw identity", &fakeProvider{available: true, ok: true, identity: Raw("   ")}, ErrIdentityUnavailable},
		{"nil convertible", &fakeProvider{available: true, ok: true, identity: Convertible(nil)}, ErrIdentityUnavailable},
		{"zero identity", &fakeProvider{available: true, ok: true}, ErrIdentityUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var notices int
			s := NewSession(Options{Provider: tc.provider, OnChange: checkInvariant(t), OnNotice: func(string) { notices++ }})
			err := s.Connect(context.Background())
			require.ErrorIs(t, err, tc.want)
			snap := s.Snapshot()
			require.Equal(t, StatusFailed, snap.Status)
			require.Empty(t, snap.Identity)
			require.Equal(t, 1, notices)
		})
	}
}

func TestRetryAfterFailure(t *testing.T) {
	p := &fakeProvider{available: true, ok: false}
	s := NewSession(Options{Provider: p, OnChange: checkInvariant(t)})
	require.ErrorIs(t, s.Connect(context.Background()), ErrConnectionRejected)
	require.Equal(t, StatusFailed, s.Snapshot().Status)

	p.ok = true
	p.identity = Raw("retry-principal")
	require.NoError(t, s.Connect(context.Background()))
	require.Equal(t, "retry-principal", s.Snapshot().Identity)
	require.EqualValues(t, 2, p.connects.Load())
}

func TestConcurrentConnectCallsProviderOnce(t *testing.T) {
	p := &fakeProvider{
		available: true,
		ok:        true,
		identity:  Raw("only-once"),
		gate:      make(chan struct{}),
		entered:   make(chan struct{}, 1),
	}
	s := NewSession(Options{Provider: p, OnChange: checkInvariant(t)})

	first := make(chan error, 1)
	go func() { first <- s.Connect(context.Background()) }()
	<-p.entered
	require.Equal(t, StatusConnecting, s.Snapshot().Status)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Connect(context.Background()))
		}()
	}
	wg.Wait()
	close(p.gate)
	require.NoError(t, <-first)

	require.EqualValues(t, 1, p.connects.Load())
	require.EqualValues(t, 1, p.idCalls.Load())
	require.Equal(t, StatusConnected, s.Snapshot().Status)
}

func TestConnectTimeout(t *testing.T) {
	p := &fakeProvider{available: true, ok: true, gate: make(chan struct{})}
	s := NewSession(Options{Provider: p, ConnectTimeout: 20 * time.Millisecond})
	err := s.Connect(context.Background())
	require.ErrorIs(t, err, ErrConnectionRejected)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, StatusFailed, s.Snapshot().Status)
}

type panicky struct{}

func (panicky) String() string { panic("boom") }

func TestConvertibleIdentity(t *testing.T) {
	got, err := Convertible(stringer("from-object")).Normalize()
	require.NoError(t, err)
	require.Equal(t, "from-object", got)

	_, err = Convertible(panicky{}).Normalize()
	require.ErrorIs(t, err, ErrIdentityUnavailable)
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestCopyIdentityRequiresIdentity(t *testing.T) {
	clip := &fakeClipboard{}
	s := NewSession(Options{Clipboard: clip})
	require.ErrorIs(t, s.CopyIdentity(context.Background()), ErrNoIdentity)
	require.Empty(t, clip.writes)
}

func TestCopyIdentityRevertsAfterDelay(t *testing.T) {
	clock := &manualClock{}
	clip := &fakeClipboard{}
	s := connectedSession(t, clip, clock)

	require.NoError(t, s.CopyIdentity(context.Background()))
	require.Equal(t, []string{"abcdefghijklmnop"}, clip.writes)
	require.Equal(t, CopyCopied, s.Snapshot().CopyState)

	clock.Advance(1199 * time.Millisecond)
	require.Equal(t, CopyCopied, s.Snapshot().CopyState)
	clock.Advance(time.Millisecond)
	require.Equal(t, CopyIdle, s.Snapshot().CopyState)
	require.Equal(t, StatusConnected, s.Snapshot().Status)
}

func TestSecondCopyRestartsTimer(t *testing.T) {
	clock := &manualClock{}
	s := connectedSession(t, &fakeClipboard{}, clock)

	require.NoError(t, s.CopyIdentity(context.Background()))
	clock.Advance(time.Second)
	require.NoError(t, s.CopyIdentity(context.Background()))
	require.Equal(t, 1, clock.pending(), "earlier reversion must be cancelled")

	clock.Advance(time.Second) // past the first deadline
	require.Equal(t, CopyCopied, s.Snapshot().CopyState)
	clock.Advance(190 * time.Millisecond)
	require.Equal(t, CopyCopied, s.Snapshot().CopyState)
	clock.Advance(10 * time.Millisecond)
	require.Equal(t, CopyIdle, s.Snapshot().CopyState)
}

func TestCopyFailureLeavesStateIdle(t *testing.T) {
	clock := &manualClock{}
	clip := &fakeClipboard{err: errors.New("denied")}
	s := connectedSession(t, clip, clock)

	err := s.CopyIdentity(context.Background())
	require.ErrorIs(t, err, ErrClipboardWriteFailed)
	require.Equal(t, CopyIdle, s.Snapshot().CopyState)
	require.Zero(t, clock.pending())
}

func TestCloseResetsSession(t *testing.T) {
	clock := &manualClock{}
	s := connectedSession(t, &fakeClipboard{}, clock)
	require.NoError(t, s.CopyIdentity(context.Background()))

	s.Close()
	require.Equal(t, Snapshot{}, s.Snapshot())
	require.Zero(t, clock.pending())
}

func TestTruncateIdentity(t *testing.T) {
	require.Equal(t, "abcdefgh...lmnop", TruncateIdentity("abcdefghijklmnop"))
	require.Equal(t, "short", TruncateIdentity("short"))
	require.Equal(t, "abcdefghijklm", TruncateIdentity("abcdefghijklm"))
}

func TestQRCode(t *testing.T) {
	qr, err := QRCode("abcdefghijklmnop")
	require.NoError(t, err)
	require.NotEmpty(t, qr)
}

func TestCloseDuringConnectAllowsNoSecondAttempt(t *testing.T) {
	p := &fakeProvider{
		available: true,
		ok:        true,
		identity:  Raw("late-identity"),
		gate:      make(chan struct{}),
		entered:   make(chan struct{}, 1),
	}
	s := NewSession(Options{Provider: p, OnChange: checkInvariant(t)})

	first := make(chan error, 1)
	go func() { first <- s.Connect(context.Background()) }()
	<-p.entered

	s.Close()
	require.Equal(t, StatusIdle, s.Snapshot().Status)
	require.NoError(t, s.Connect(context.Background()))
	require.EqualValues(t, 1, p.connects.Load(), "closed attempt is still running")

	close(p.gate)
	require.NoError(t, <-first)
	require.Equal(t, Snapshot{}, s.Snapshot(), "late result of a closed attempt is discarded")

	require.NoError(t, s.Connect(context.Background()))
	require.EqualValues(t, 2, p.connects.Load())
	require.Equal(t, StatusConnected, s.Snapshot().Status)
	require.Equal(t, "late-identity", s.Snapshot().Identity)
}

type gatedClipboard struct {
	entered chan struct{}
	gate    chan struct{}
}

func (c *gatedClipboard) WriteText(context.Context, string) error {
	c.entered <- struct{}{}
	<-c.gate
	return nil
}

func TestCloseDuringCopyLeavesSessionIdle(t *testing.T) {
	clock := &manualClock{}
	clip := &gatedClipboard{entered: make(chan struct{}, 1), gate: make(chan struct{})}
	s := connectedSession(t, clip, clock)

	done := make(chan error, 1)
	go func() { done <- s.CopyIdentity(context.Background()) }()
	<-clip.entered

	s.Close()
	close(clip.gate)
	require.NoError(t, <-done)

	require.Equal(t, Snapshot{}, s.Snapshot())
	require.Zero(t, clock.pending(), "no revert scheduled on a closed session")
}
