package breaker

import (
	"testing"
	"time"
)

func newTestBreaker(threshold int, reset, window time.Duration) (*Breaker, *time.Time) {
	b := New(Conf{
		FailureThreshold: threshold,
		ResetTimeout:     reset,
		MonitoringWindow: window,
	})
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }
	return b, &clock
}

func TestBreakerStartsClosed(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(3, 30*time.Second, time.Minute)
	if got := b.State(); got != StateClosed {
		t.Fatalf("initial state = %v, want %v", got, StateClosed)
	}
	if !b.CanExecute() {
		t.Fatalf("closed breaker rejected execution")
	}
}

func TestBreakerOpensAtThreshold(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(3, 30*time.Second, time.Minute)

	b.RecordFailure()
	b.RecordFailure()
	if got := b.State(); got != StateClosed {
		t.Fatalf("state after 2 failures = %v, want %v", got, StateClosed)
	}

	b.RecordFailure()
	if got := b.State(); got != StateOpen {
		t.Fatalf("state after 3 failures = %v, want %v", got, StateOpen)
	}
	if b.CanExecute() {
		t.Fatalf("open breaker allowed execution before reset timeout")
	}
}

func TestBreakerHalfOpenAfterResetTimeout(t *testing.T) {
	t.Parallel()

	b, clock := newTestBreaker(2, 30*time.Second, time.Minute)
	b.RecordFailure()
	b.RecordFailure()
	if got := b.State(); got != StateOpen {
		t.Fatalf("state = %v, want %v", got, StateOpen)
	}

	*clock = clock.Add(29 * time.Second)
	if b.CanExecute() {
		t.Fatalf("breaker allowed trial call before reset timeout elapsed")
	}

	*clock = clock.Add(time.Second)
	if !b.CanExecute() {
		t.Fatalf("breaker rejected trial call after reset timeout")
	}
	if got := b.State(); got != StateHalfOpen {
		t.Fatalf("state after timeout = %v, want %v", got, StateHalfOpen)
	}
}

func TestBreakerHalfOpenSuccessCloses(t *testing.T) {
	t.Parallel()

	b, clock := newTestBreaker(2, 30*time.Second, time.Minute)
	b.RecordFailure()
	b.RecordFailure()
	*clock = clock.Add(31 * time.Second)
	if !b.CanExecute() {
		t.Fatalf("breaker rejected trial call")
	}

	b.RecordSuccess()
	if got := b.State(); got != StateClosed {
		t.Fatalf("state after trial success = %v, want %v", got, StateClosed)
	}
	if got := b.FailureCount(); got != 0 {
		t.Fatalf("failure count after success = %d, want 0", got)
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b, clock := newTestBreaker(2, 30*time.Second, time.Minute)
	b.RecordFailure()
	b.RecordFailure()
	*clock = clock.Add(31 * time.Second)
	if !b.CanExecute() {
		t.Fatalf("breaker rejected trial call")
	}

	// the half-open transition keeps the failure history, so one more
	// failure is over threshold again
	b.RecordFailure()
	if got := b.State(); got != StateOpen {
		t.Fatalf("state after trial failure = %v, want %v", got, StateOpen)
	}
}

func TestBreakerWindowExpiryForgivesFailures(t *testing.T) {
	t.Parallel()

	b, clock := newTestBreaker(3, 30*time.Second, time.Minute)
	b.RecordFailure()
	b.RecordFailure()

	*clock = clock.Add(61 * time.Second)
	if got := b.FailureCount(); got != 0 {
		t.Fatalf("failure count after window expiry = %d, want 0", got)
	}

	// old failures no longer count toward the threshold
	b.RecordFailure()
	b.CanExecute()
	if got := b.State(); got != StateClosed {
		t.Fatalf("state = %v, want %v", got, StateClosed)
	}
}

func TestBreakerReset(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(1, 30*time.Second, time.Minute)
	b.RecordFailure()
	if got := b.State(); got != StateOpen {
		t.Fatalf("state = %v, want %v", got, StateOpen)
	}

	b.Reset()
	if got := b.State(); got != StateClosed {
		t.Fatalf("state after reset = %v, want %v", got, StateClosed)
	}
	if got := b.FailureCount(); got != 0 {
		t.Fatalf("failure count after reset = %d, want 0", got)
	}
	if !b.CanExecute() {
		t.Fatalf("reset breaker rejected execution")
	}
}
