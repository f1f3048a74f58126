package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestBreaker(maxFailures, halfOpenCalls int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("test", &CircuitBreakerConfig{
		MaxFailures:      maxFailures,
		Timeout:          time.Second,
		HalfOpenMaxCalls: halfOpenCalls,
	})
	cb.now = clock.Now
	return cb, clock
}

func fail() error    { return fmt.Errorf("operation failed") }
func succeed() error { return nil }

func TestCircuitBreakerBasicFlow(t *testing.T) {
	cb, _ := newTestBreaker(3, 2)

	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected initial state to be Closed, got %v", cb.GetState())
	}

	if err := cb.Execute(succeed); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected state to remain Closed after success, got %v", cb.GetState())
	}
}

func TestCircuitBreakerFailureTransition(t *testing.T) {
	cb, _ := newTestBreaker(2, 2)

	if err := cb.Execute(fail); err == nil {
		t.Error("Expected error, got nil")
	}
	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected state to be Closed after first failure, got %v", cb.GetState())
	}

	if err := cb.Execute(fail); err == nil {
		t.Error("Expected error, got nil")
	}
	if cb.GetState() != CircuitBreakerOpen {
		t.Errorf("Expected state to be Open after reaching failure threshold, got %v", cb.GetState())
	}
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(2, 2)

	cb.Execute(fail)
	cb.Execute(succeed)
	cb.Execute(fail)

	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected non-consecutive failures to keep the breaker Closed, got %v", cb.GetState())
	}
}

func TestCircuitBreakerOpenState(t *testing.T) {
	cb, _ := newTestBreaker(1, 2)

	cb.Execute(fail)

	if cb.GetState() != CircuitBreakerOpen {
		t.Errorf("Expected state to be Open, got %v", cb.GetState())
	}

	err := cb.Execute(func() error {
		t.Error("Operation should not be executed when circuit is open")
		return nil
	})

	if err != ErrCircuitBreakerOpen {
		t.Errorf("Expected ErrCircuitBreakerOpen, got %v", err)
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)

	cb.Execute(fail)
	clock.Advance(2 * time.Second)

	executed := false
	err := cb.Execute(func() error {
		executed = true
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !executed {
		t.Error("Expected operation to be executed in half-open state")
	}
	if cb.GetState() != CircuitBreakerHalfOpen {
		t.Errorf("Expected HalfOpen after one trial success, got %v", cb.GetState())
	}

	cb.Execute(succeed)
	if cb.GetState() != CircuitBreakerClosed {
		t.Errorf("Expected Closed after enough trial successes, got %v", cb.GetState())
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)

	cb.Execute(fail)
	clock.Advance(2 * time.Second)

	if err := cb.Execute(fail); err == nil {
		t.Error("Expected trial failure to surface")
	}
	if cb.GetState() != CircuitBreakerOpen {
		t.Errorf("Expected Open after trial failure, got %v", cb.GetState())
	}
	if err := cb.Execute(succeed); err != ErrCircuitBreakerOpen {
		t.Errorf("Expected ErrCircuitBreakerOpen right after reopening, got %v", err)
	}
}

func TestCircuitBreakerStats(t *testing.T) {
	cb, _ := newTestBreaker(1, 1)
	cb.Execute(fail)

	stats := cb.GetStats()
	if stats["state"] != "open" {
		t.Errorf("Expected state 'open', got %v", stats["state"])
	}
	if stats["name"] != "test" {
		t.Errorf("Expected name 'test', got %v", stats["name"])
	}
}

func TestCircuitBreakerConcurrency(t *testing.T) {
	cb := NewCircuitBreaker("concurrent", &CircuitBreakerConfig{
		MaxFailures:      5,
		Timeout:          100 * time.Millisecond,
		HalfOpenMaxCalls: 3,
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				cb.Execute(func() error {
					if (id+j)%3 == 0 {
						return fmt.Errorf("failure %d-%d", id, j)
					}
					return nil
				})
			}
		}(i)
	}
	wg.Wait()

	err := cb.Execute(succeed)
	if err != nil && err != ErrCircuitBreakerOpen {
		t.Errorf("Unexpected error after concurrent operations: %v", err)
	}
}
