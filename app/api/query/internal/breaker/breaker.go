package breaker

import (
	"sync"
	"time"
)

// State of a circuit breaker.
type State string

const (
	StateClosed   State = "CLOSED"
	StateOpen     State = "OPEN"
	StateHalfOpen State = "HALF_OPEN"
)

// Conf configures one breaker instance.
type Conf struct {
	// FailureThreshold is the number of in-window failures that opens the
	// circuit. Must be >= 1.
	FailureThreshold int
	// ResetTimeout is how long the circuit stays open before a trial call
	// is allowed through.
	ResetTimeout time.Duration
	// MonitoringWindow is the rolling window failures are counted in.
	MonitoringWindow time.Duration
}

// Breaker isolates a flaky remote dependency. One instance per guarded
// dependency; state is process-local and resets on restart. Callers may
// share an instance across workers, mutation is serialized internally.
type Breaker struct {
	mu sync.Mutex

	conf         Conf
	state        State
	failureCount int
	lastFailure  time.Time
	nextAttempt  time.Time
	failures     []time.Time

	now func() time.Time
}

// New returns a closed breaker.
func New(conf Conf) *Breaker {
	return &Breaker{
		conf:  conf,
		state: StateClosed,
		now:   time.Now,
	}
}

// CanExecute reports whether a call may proceed. It prunes failures that
// left the monitoring window and, when the open period has elapsed, moves
// the circuit to half-open to let one trial call through.
func (b *Breaker) CanExecute() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.prune(now)

	if b.state == StateOpen && !b.nextAttempt.IsZero() && !now.Before(b.nextAttempt) {
		b.state = StateHalfOpen
		b.failureCount = 0
	}

	return b.state != StateOpen
}

// RecordSuccess clears all failure history; a half-open circuit closes.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount = 0
	b.failures = nil

	if b.state == StateHalfOpen {
		b.state = StateClosed
		b.nextAttempt = time.Time{}
	}
}

// RecordFailure registers a failed call and opens the circuit once the
// in-window failure count reaches the threshold.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.failures = append(b.failures, now)
	b.failureCount++
	b.lastFailure = now

	if len(b.failures) >= b.conf.FailureThreshold {
		b.state = StateOpen
		b.nextAttempt = now.Add(b.conf.ResetTimeout)
	}
}

// State returns the current circuit state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// FailureCount returns the number of failures inside the current window.
func (b *Breaker) FailureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune(b.now())
	return len(b.failures)
}

// Reset forces the circuit back to closed and drops all history.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = StateClosed
	b.failureCount = 0
	b.failures = nil
	b.lastFailure = time.Time{}
	b.nextAttempt = time.Time{}
}

func (b *Breaker) prune(now time.Time) {
	kept := b.failures[:0]
	for _, ts := range b.failures {
		if now.Sub(ts) < b.conf.MonitoringWindow {
			kept = append(kept, ts)
		}
	}
	b.failures = kept
}
