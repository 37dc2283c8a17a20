package nlp

import (
	"errors"
	"testing"
	"time"

	"resumescore/internal/config"
	apperrors "resumescore/internal/errors"
)

func breakerConfig(enabled bool) config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		Enabled:          enabled,
		MaxRequests:      2,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

func breakerLogger(t testing.TB) *apperrors.Logger {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func TestNewBreakerDisabled(t *testing.T) {
	b := NewBreaker[string]("test", breakerConfig(false), breakerLogger(t))
	if b != nil {
		t.Fatal("disabled config should yield a nil breaker")
	}

	// Nil breakers pass calls straight through
	result, err := b.Execute(func() (string, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute on nil breaker failed: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want ok", result)
	}
	if !b.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
}

func TestBreakerExecute(t *testing.T) {
	b := NewBreaker[int]("embed", breakerConfig(true), breakerLogger(t))
	if b == nil {
		t.Fatal("enabled config should yield a breaker")
	}

	result, err := b.Execute(func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result != 42 {
		t.Errorf("result = %d, want 42", result)
	}
	if !b.IsHealthy() {
		t.Error("breaker should be healthy after a success")
	}
}

func TestBreakerTripsAfterFailures(t *testing.T) {
	b := NewBreaker[int]("embed", breakerConfig(true), breakerLogger(t))
	failure := errors.New("backend down")

	// MinRequests 3 with threshold 0.6, so three straight
	// failures open the circuit.
	for range 3 {
		if _, err := b.Execute(func() (int, error) {
			return 0, failure
		}); !errors.Is(err, failure) {
			t.Fatalf("expected backend error, got %v", err)
		}
	}

	if b.IsHealthy() {
		t.Error("breaker should be open after repeated failures")
	}

	// Calls are now rejected without invoking the function
	invoked := false
	_, err := b.Execute(func() (int, error) {
		invoked = true
		return 0, nil
	})
	if err == nil {
		t.Error("open breaker should reject calls")
	}
	if invoked {
		t.Error("open breaker must not invoke the wrapped function")
	}
}

func TestBreakerStats(t *testing.T) {
	var nilBreaker *Breaker[int]
	stats := nilBreaker.Stats()
	if stats["enabled"].(bool) {
		t.Error("nil breaker stats should report enabled=false")
	}

	b := NewBreaker[int]("grammar", breakerConfig(true), breakerLogger(t))
	stats = b.Stats()
	if !stats["enabled"].(bool) {
		t.Error("stats should report enabled=true")
	}
	if stats["name"] != "grammar" {
		t.Errorf("name = %v, want grammar", stats["name"])
	}
	if stats["state"] != "closed" {
		t.Errorf("state = %v, want closed", stats["state"])
	}
}
