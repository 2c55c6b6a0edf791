// Package wallet mediates the connection to an externally supplied wallet
// and exposes the connected identity for display and copying.
package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCopyRevert is how long the copied indicator stays up.
const DefaultCopyRevert = 1200 * time.Millisecond

// Provider is the wallet capability. IsAvailable must be cheap; it is checked
// before any other call.
type Provider interface {
	IsAvailable() bool
	Connect(ctx context.Context) (bool, error)
	Identity(ctx context.Context) (Identity, error)
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

type Status int

const (
	StatusIdle Status = iota
	StatusConnecting
	StatusConnected
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

type CopyState int

const (
	CopyIdle CopyState = iota
	CopyCopied
)

func (c CopyState) String() string {
	if c == CopyCopied {
		return "copied"
	}
	return "idle"
}

// Snapshot is a consistent view of the session.
type Snapshot struct {
	Status    Status
	Identity  string
	CopyState CopyState
}

// Options configure a Session. Only Provider and Clipboard carry behaviour;
// everything else has a default.
type Options struct {
	Provider       Provider
	Clipboard      Clipboard
	Scheduler      Scheduler
	CopyRevert     time.Duration
	ConnectTimeout time.Duration
	Logger         *zap.Logger
	// OnChange is called after every state change, outside the session lock.
	OnChange func(Snapshot)
	// OnNotice receives user-facing failure messages.
	OnNotice func(string)
}

// Session owns one wallet connection lifecycle. Only one connection attempt
// runs at a time; the identity is held in memory only.
type Session struct {
	id       string
	provider Provider
	clip     Clipboard
	sched    Scheduler
	revertIn time.Duration
	timeout  time.Duration
	log      *zap.Logger
	onChange func(Snapshot)
	onNotice func(string)

	mu       sync.Mutex
	status   Status
	identity string
	copy     CopyState
	revert   Task
	copySeq  uint64
	gen      uint64
	// inflight outlives Close so a closed session cannot start a second
	// provider call while the first is still running.
	inflight bool
}

func NewSession(opts Options) *Session {
	s := &Session{
		id:       uuid.NewString(),
		provider: opts.Provider,
		clip:     opts.Clipboard,
		sched:    opts.Scheduler,
		revertIn: opts.CopyRevert,
		timeout:  opts.ConnectTimeout,
		log:      opts.Logger,
		onChange: opts.OnChange,
		onNotice: opts.OnNotice,
	}
	if s.sched == nil {
		s.sched = SystemScheduler
	}
	if s.revertIn <= 0 {
		s.revertIn = DefaultCopyRevert
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.With(zap.String("session", s.id))
	return s
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{Status: s.status, Identity: s.identity, CopyState: s.copy}
}

// Connect runs one connection attempt. Calls made while an attempt is in
// flight (including one abandoned by Close), or after a successful one,
// return nil without touching the provider.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.inflight || s.status == StatusConnecting || s.status == StatusConnected {
		s.mu.Unlock()
		return nil
	}
	if s.provider == nil || !s.provider.IsAvailable() {
		s.mu.Unlock()
		s.log.Warn("wallet provider unavailable")
		s.notice("No wallet detected. Configure a wallet provider to connect.")
		return ErrProviderUnavailable
	}
	s.status = StatusConnecting
	s.identity = ""
	s.inflight = true
	gen := s.gen
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.changed(snap)
	s.log.Info("wallet connect started")

	identity, err := s.dial(ctx)

	s.mu.Lock()
	s.inflight = false
	if gen != s.gen {
		// closed while the provider was busy
		s.mu.Unlock()
		return err
	}
	if err != nil {
		s.status = StatusFailed
		s.identity = ""
	} else {
		s.status = StatusConnected
		s.identity = identity
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.changed(snap)

	if err != nil {
		s.log.Warn("wallet connect failed", zap.Error(err))
		s.notice("Failed to connect wallet: " + err.Error())
		return err
	}
	s.log.Info("wallet connected", zap.String("identity", TruncateIdentity(identity)))
	return nil
}

func (s *Session) dial(ctx context.Context) (identity string, err error) {
	defer func() {
		if r := recover(); r != nil {
			identity, err = "", fmt.Errorf("%w: provider panic: %v", ErrConnectionRejected, r)
		}
	}()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ok, err := s.provider.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConnectionRejected, err)
	}
	if !ok {
		return "", ErrConnectionRejected
	}
	id, err := s.provider.Identity(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIdentityUnavailable, err)
	}
	return id.Normalize()
}

// CopyIdentity writes the identity to the clipboard and raises the copied
// indicator. A copy made while the indicator is up restarts its timer.
// Clipboard failures are logged and returned but leave the state untouched.
func (s *Session) CopyIdentity(ctx context.Context) error {
	s.mu.Lock()
	identity := s.identity
	gen := s.gen
	s.mu.Unlock()
	if identity == "" {
		return ErrNoIdentity
	}
	if s.clip == nil {
		s.log.Warn("clipboard write failed", zap.String("reason", "no clipboard configured"))
		return ErrClipboardWriteFailed
	}
	if err := s.clip.WriteText(ctx, identity); err != nil {
		s.log.Warn("clipboard write failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrClipboardWriteFailed, err)
	}

	s.mu.Lock()
	if gen != s.gen {
		// closed during the write
		s.mu.Unlock()
		return nil
	}
	if s.revert != nil {
		s.revert.Stop()
	}
	s.copySeq++
	seq := s.copySeq
	s.copy = CopyCopied
	s.revert = s.sched.AfterFunc(s.revertIn, func() { s.expireCopy(seq) })
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.changed(snap)
	return nil
}

func (s *Session) expireCopy(seq uint64) {
	s.mu.Lock()
	if seq != s.copySeq || s.copy != CopyCopied {
		s.mu.Unlock()
		return
	}
	s.copy = CopyIdle
	s.revert = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.changed(snap)
}

// Close drops the identity, cancels the copy timer and returns the session to
// idle. An attempt still in flight is discarded when it settles.
func (s *Session) Close() {
	s.mu.Lock()
	if s.revert != nil {
		s.revert.Stop()
		s.revert = nil
	}
	s.gen++
	s.copySeq++
	s.status = StatusIdle
	s.identity = ""
	s.copy = CopyIdle
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.changed(snap)
}

func (s *Session) changed(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}

func (s *Session) notice(msg string) {
	if s.onNotice != nil {
		s.onNotice(msg)
	}
}
