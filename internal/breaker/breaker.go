package breaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hance08/walletsync/internal/logx"
)

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrOpen = errors.New("circuit breaker is open; fast-fail")

type Config struct {
	MaxFailures  int
	ResetTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{MaxFailures: 5, ResetTimeout: 30 * time.Second}
}

// Breaker stops calling a failing dependency for ResetTimeout after
// MaxFailures consecutive failures, then lets one trial call through.
type Breaker struct {
	name string
	cfg  Config
	now  func() time.Time

	mu          sync.Mutex
	state       State
	recentFails int
	openedAt    time.Time
}

func New(name string, cfg Config) *Breaker {
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = DefaultConfig().MaxFailures
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = DefaultConfig().ResetTimeout
	}
	return &Breaker{name: name, cfg: cfg, now: time.Now, state: Closed}
}

func (b *Breaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	b.mu.Lock()
	if b.state == Open {
		if b.now().Sub(b.openedAt) < b.cfg.ResetTimeout {
			b.mu.Unlock()
			return ErrOpen
		}
		b.state = HalfOpen
		logx.Info("BREAKER", b.name, " half-open, trying one call")
	} else if b.state == HalfOpen {
		// a trial call is already in flight
		b.mu.Unlock()
		return ErrOpen
	}
	b.mu.Unlock()

	err := op(ctx)
	if err == nil {
		b.onSuccess()
		return nil
	}
	b.onFailure(err)
	return err
}

func (b *Breaker) onSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != Closed {
		logx.Info("BREAKER", b.name, " closed after ", b.state.String())
	}
	b.state = Closed
	b.recentFails = 0
}

func (b *Breaker) onFailure(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recentFails++
	logx.Warn("BREAKER", b.name, " failure ", b.recentFails, ": ", err.Error())
	if b.state == HalfOpen || b.recentFails >= b.cfg.MaxFailures {
		b.state = Open
		b.openedAt = b.now()
		logx.Error("BREAKER", b.name, " opened after ", b.recentFails, " failures")
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
