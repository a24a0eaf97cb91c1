// Package retry re-runs units of work that lost a race against a concurrent
// transaction.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

const (
	defaultMaxAttempts  = 5
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

var (
	// ErrConflict marks an error as retryable. Wrap it to opt in.
	ErrConflict = errors.New("transaction conflict")

	ErrInvalidMaxAttempts  = errors.New("max attempts must be positive")
	ErrNegativeBaseDelay   = errors.New("base delay must not be negative")
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

type Func func(ctx context.Context) error

type config struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
}

// Option configures retry behavior.
type Option func(*config) error

// Stats describes how a call to Do went.
type Stats struct {
	Attempts   int
	TotalDelay time.Duration
}

// Do runs fn until it succeeds, fails with an error that does not wrap
// ErrConflict, or the attempts run out.
//
// Delays grow as baseDelay * 2^(attempt-1) plus jitter: 0, 10, 20, 40, 80 ms
// with the defaults.
func Do(ctx context.Context, fn Func, opts ...Option) (Stats, error) {
	cfg := &config{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Stats{}, err
		}
	}

	var st Stats
	var lastErr error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := cfg.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * cfg.jitterFactor //nolint:gosec // jitter only
			delay += time.Duration(jitter)

			select {
			case <-time.After(delay):
				st.TotalDelay += delay
			case <-ctx.Done():
				return st, ctx.Err()
			}
		}

		st.Attempts++
		lastErr = fn(ctx)
		if lastErr == nil {
			return st, nil
		}
		if !errors.Is(lastErr, ErrConflict) {
			return st, lastErr
		}
	}
	return st, lastErr
}

func WithMaxAttempts(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return ErrInvalidMaxAttempts
		}
		c.maxAttempts = n
		return nil
	}
}

func WithBaseDelay(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return ErrNegativeBaseDelay
		}
		c.baseDelay = d
		return nil
	}
}

func WithJitterFactor(f float64) Option {
	return func(c *config) error {
		if f < 0.0 || f > 1.0 {
			return ErrInvalidJitterFactor
		}
		c.jitterFactor = f
		return nil
	}
}
