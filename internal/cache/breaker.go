// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package cache

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/metrics"
)

// BreakerSettings tunes a BreakerBackend.
type BreakerSettings struct {
	// Failures is the number of consecutive failures that opens the circuit.
	Failures uint32

	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration
}

// BreakerBackend wraps a Backend with a circuit breaker. While the circuit
// is open every call fails fast with gobreaker.ErrOpenState, which
// ResponseCache treats like any other fault: a miss or a no-op. This keeps
// an unreachable remote cache from adding its dial timeout to every request.
//
// Client cancellations do not count as failures.
type BreakerBackend struct {
	next Backend
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreakerBackend wraps next. Zero settings fall back to 5 failures and a
// 30 second open period.
func NewBreakerBackend(next Backend, settings BreakerSettings) *BreakerBackend {
	if settings.Failures == 0 {
		settings.Failures = 5
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}

	cbName := "cache-" + next.Name()

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1, // one trial request in half-open state
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= settings.Failures
			if shouldTrip {
				logging.Warn().Str("breaker", cbName).Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})

	return &BreakerBackend{next: next, cb: cb, name: cbName}
}

// execute runs fn through the breaker and records the outcome.
func execute[T any](b *BreakerBackend, fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		var zero T
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	typed, _ := result.(T)
	return typed, nil
}

type lookup struct {
	value []byte
	found bool
}

// Name implements Backend. The wrapped backend's name is reported so that
// metrics and stats show what actually stores the data.
func (b *BreakerBackend) Name() string {
	return b.next.Name()
}

// State returns the current circuit state.
func (b *BreakerBackend) State() gobreaker.State {
	return b.cb.State()
}

// Get implements Backend.
func (b *BreakerBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := execute(b, func() (lookup, error) {
		value, found, err := b.next.Get(ctx, key)
		return lookup{value: value, found: found}, err
	})
	return res.value, res.found, err
}

// Set implements Backend.
func (b *BreakerBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := execute(b, func() (struct{}, error) {
		return struct{}{}, b.next.Set(ctx, key, value, ttl)
	})
	return err
}

// Delete implements Backend.
func (b *BreakerBackend) Delete(ctx context.Context, key string) error {
	_, err := execute(b, func() (struct{}, error) {
		return struct{}{}, b.next.Delete(ctx, key)
	})
	return err
}

// DeletePattern implements Backend.
func (b *BreakerBackend) DeletePattern(ctx context.Context, glob string) (int, error) {
	return execute(b, func() (int, error) {
		return b.next.DeletePattern(ctx, glob)
	})
}

// Clear implements Backend.
func (b *BreakerBackend) Clear(ctx context.Context) error {
	_, err := execute(b, func() (struct{}, error) {
		return struct{}{}, b.next.Clear(ctx)
	})
	return err
}

// Keys implements Backend.
func (b *BreakerBackend) Keys(ctx context.Context, glob string) (int, error) {
	return execute(b, func() (int, error) {
		return b.next.Keys(ctx, glob)
	})
}

// Close implements Backend.
func (b *BreakerBackend) Close() error {
	return b.next.Close()
}

// Unwrap returns the wrapped backend.
func (b *BreakerBackend) Unwrap() Backend {
	return b.next
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var _ Backend = (*BreakerBackend)(nil)
