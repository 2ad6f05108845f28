package enrich

import (
	"context"
	"errors"
	"testing"
	"time"
)

func overloadedErr() error {
	return errors.New("rpc error: code = 503 desc = model is overloaded")
}

func fastPolicy(backoffs *[]int) Policy {
	return Policy{
		MaxAttempts: 3,
		Transient:   IsTransient,
		Backoff: func(attempt int) time.Duration {
			*backoffs = append(*backoffs, attempt)
			return time.Microsecond
		},
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	var backoffs []int
	attempts := 0
	err := Do(context.Background(), fastPolicy(&backoffs), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return overloadedErr()
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if len(backoffs) != 2 || backoffs[0] != 1 || backoffs[1] != 2 {
		t.Errorf("expected backoff after attempts 1 and 2, got %v", backoffs)
	}
}

func TestDo_NonTransientAbortsImmediately(t *testing.T) {
	var backoffs []int
	attempts := 0
	fatal := errors.New("invalid api key")
	err := Do(context.Background(), fastPolicy(&backoffs), func(ctx context.Context) error {
		attempts++
		return fatal
	})

	if !errors.Is(err, fatal) {
		t.Fatalf("expected original error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
	if len(backoffs) != 0 {
		t.Errorf("expected no backoff, got %v", backoffs)
	}
}

func TestDo_ExhaustsAttemptBudget(t *testing.T) {
	var backoffs []int
	attempts := 0
	err := Do(context.Background(), fastPolicy(&backoffs), func(ctx context.Context) error {
		attempts++
		return overloadedErr()
	})

	if err == nil {
		t.Fatal("expected the last error")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if len(backoffs) != 2 {
		t.Errorf("expected 2 backoffs, got %v", backoffs)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, DefaultPolicy(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Errorf("expected no attempt on a dead context, got %d", attempts)
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{
		MaxAttempts: 3,
		Transient:   IsTransient,
		Backoff: func(int) time.Duration {
			cancel()
			return time.Minute
		},
	}

	err := Do(ctx, p, func(ctx context.Context) error {
		return overloadedErr()
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultPolicy_Backoff(t *testing.T) {
	p := DefaultPolicy()
	if p.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", p.MaxAttempts)
	}
	if d := p.Backoff(1); d != time.Second {
		t.Errorf("expected 1s after first attempt, got %v", d)
	}
	if d := p.Backoff(2); d != 2*time.Second {
		t.Errorf("expected 2s after second attempt, got %v", d)
	}
}
