package workbook

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"
)

// BreakerState is the state of a BreakerLoader.
type BreakerState int

const (
	// BreakerClosed passes loads through.
	BreakerClosed BreakerState = iota
	// BreakerOpen rejects remote loads until the reset timeout passes.
	BreakerOpen
	// BreakerHalfOpen lets a single trial load through.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrSourceUnavailable is returned while the breaker is open.
var ErrSourceUnavailable = eris.New("workbook: source unavailable")

// BreakerConfig controls a BreakerLoader.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failed remote loads that
	// opens the breaker. Default: 5.
	FailureThreshold int

	// ResetTimeout is how long the breaker stays open. Default: 30s.
	ResetTimeout time.Duration

	// OnStateChange is called with the lock held; it must not call back into the loader.
	OnStateChange func(from, to BreakerState)
}

// BreakerLoader wraps a Loader and stops calling it for remote sources after
// repeated failures. Local sources always pass through.
type BreakerLoader struct {
	next  Loader
	cfg   BreakerConfig
	clock clockwork.Clock

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	trial    bool // a half-open trial load is in flight
}

// NewBreakerLoader wraps next. A nil clock uses the real clock.
func NewBreakerLoader(next Loader, cfg BreakerConfig, clock clockwork.Clock) *BreakerLoader {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 30 * time.Second
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BreakerLoader{next: next, cfg: cfg, clock: clock}
}

// Load implements Loader.
func (b *BreakerLoader) Load(ctx context.Context, src Source) (*Workbook, error) {
	if !src.Remote() {
		return b.next.Load(ctx, src)
	}
	trial, err := b.allow()
	if err != nil {
		return nil, eris.Wrapf(err, "%s", src.Location)
	}

	wb, err := b.next.Load(ctx, src)
	b.record(err, trial)
	return wb, err
}

// State returns the current breaker state.
func (b *BreakerLoader) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.clock.Since(b.openedAt) >= b.cfg.ResetTimeout {
		return BreakerHalfOpen
	}
	return b.state
}

// Reset closes the breaker.
func (b *BreakerLoader) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.trial = false
	if b.state != BreakerClosed {
		b.transition(BreakerClosed)
	}
}

// allow reports whether a load may proceed and whether it is the half-open
// trial load. Only one trial is in flight at a time.
func (b *BreakerLoader) allow() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerOpen:
		if b.clock.Since(b.openedAt) < b.cfg.ResetTimeout {
			return false, ErrSourceUnavailable
		}
		b.transition(BreakerHalfOpen)
	case BreakerHalfOpen:
		if b.trial {
			return false, ErrSourceUnavailable
		}
	default:
		return false, nil
	}
	b.trial = true
	return true, nil
}

func (b *BreakerLoader) record(err error, trial bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if trial {
		b.trial = false
	}

	// A caller giving up says nothing about the source.
	if err == nil || errors.Is(err, context.Canceled) {
		b.failures = 0
		if b.state == BreakerHalfOpen && err == nil {
			b.transition(BreakerClosed)
		}
		return
	}

	b.failures++
	switch b.state {
	case BreakerClosed:
		if b.failures >= b.cfg.FailureThreshold {
			b.open()
		}
	case BreakerHalfOpen:
		b.open()
	}
}

func (b *BreakerLoader) open() {
	b.openedAt = b.clock.Now()
	b.transition(BreakerOpen)
}

func (b *BreakerLoader) transition(to BreakerState) {
	from := b.state
	b.state = to
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}
