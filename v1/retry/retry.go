package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Aleph-Alpha/inference-client/v1/inference"
)

// Policy configures the exponential backoff between attempts.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64

	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64

	// RandomizationFactor adds jitter; 0.2 spreads each wait by ±20%.
	RandomizationFactor float64

	// MaxElapsedTime stops retrying once exceeded. 0 means no limit.
	MaxElapsedTime time.Duration

	// OnRetry is called before every wait with the error that caused it.
	OnRetry func(err error, wait time.Duration)
}

// DefaultPolicy retries up to five times starting at one second.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:          5,
		InitialInterval:     time.Second,
		MaxInterval:         30 * time.Second,
		Multiplier:          2.0,
		RandomizationFactor: 0.2,
		MaxElapsedTime:      5 * time.Minute,
	}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval
	eb.Multiplier = p.Multiplier
	eb.RandomizationFactor = p.RandomizationFactor
	eb.MaxElapsedTime = p.MaxElapsedTime
	eb.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(eb, p.MaxRetries), ctx)
}

// IsRetryable reports whether err is a transient inference failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	kind, ok := inference.KindOf(err)
	if !ok {
		return false
	}
	switch kind {
	case inference.KindTooManyRequests, inference.KindBusy, inference.KindTransport:
		return true
	default:
		return false
	}
}

// Do calls fn until it succeeds, fails permanently or the policy is exhausted,
// and returns the last error fn produced. If ctx ends while waiting between
// attempts, ctx.Err() is returned instead.
func Do[T any](ctx context.Context, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	op := func() (T, error) {
		out, err := fn(ctx)
		if err != nil && !IsRetryable(err) {
			return out, backoff.Permanent(err)
		}
		return out, err
	}

	var notify backoff.Notify
	if policy.OnRetry != nil {
		notify = policy.OnRetry
	}

	return backoff.RetryNotifyWithData(op, policy.backOff(ctx), notify)
}
