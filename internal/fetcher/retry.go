package fetcher

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sgmodkit/sgmerge/internal/domain"
)

// Retrier handles retry logic with exponential backoff. Delays are exact
// powers of the base (no jitter) so a run's retry schedule is reproducible:
// the n-th retry waits base^n seconds.
type Retrier struct {
	maxRetries int
	base       float64
}

// RetrierOptions contains options for creating a Retrier
type RetrierOptions struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// Base is the exponential backoff base in seconds.
	Base float64
}

// NewRetrier creates a new Retrier with the given options
func NewRetrier(opts RetrierOptions) *Retrier {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Base <= 0 {
		opts.Base = 2.0
	}

	return &Retrier{
		maxRetries: opts.MaxRetries,
		base:       opts.Base,
	}
}

// newBackoff creates a new exponential backoff
func (r *Retrier) newBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(r.base * float64(time.Second))
	b.Multiplier = r.base
	b.RandomizationFactor = 0
	b.MaxInterval = backoff.DefaultMaxElapsedTime
	b.MaxElapsedTime = 0
	b.Reset()

	return backoff.WithMaxRetries(b, uint64(r.maxRetries))
}

// Retry executes an operation with exponential backoff.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.WithContext(r.newBackoff(), ctx)

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}, b)
}

// RetryWithValue executes an operation with exponential backoff and returns
// a value. When all attempts fail the error from the final attempt is
// returned, so callers always see a concrete cause.
func RetryWithValue[T any](ctx context.Context, r *Retrier, operation func() (T, error)) (T, error) {
	var result T
	var lastErr error

	b := backoff.WithContext(r.newBackoff(), ctx)

	err := backoff.Retry(func() error {
		var err error
		result, err = operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}, b)

	if err != nil {
		if lastErr != nil {
			return result, lastErr
		}
		return result, err
	}

	return result, nil
}
