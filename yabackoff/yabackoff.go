// Package yabackoff provides an exponential back-off for retry loops, such as
// the initial PING against a Redis that is still starting up.
//
// # Quick start
//
//	backoff := yabackoff.NewExponential(100*time.Millisecond, 2, time.Second)
//	for attempt := 0; ; attempt++ {
//	    if err := dial(); err == nil {
//	        break
//	    }
//	    if err := backoff.WaitContext(ctx); err != nil {
//	        return err // ctx cancelled while waiting
//	    }
//	}
package yabackoff

import (
	"context"
	"time"
)

// Default* constants replace zero arguments of NewExponential and make the
// zero Exponential usable.
const (
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMultiplier      = 1.5
	DefaultMaxInterval     = 60 * time.Second
)

// Backoff is not safe for concurrent use.
type Backoff interface {
	// Next returns the delay for this attempt and advances the strategy.
	Next() time.Duration

	// Current returns what the next call to Next will return.
	Current() time.Duration

	// WaitContext sleeps for Next() or until ctx is done, whichever is first.
	WaitContext(ctx context.Context) error

	// Reset makes the next call to Next return the initial interval again.
	Reset()
}

// Exponential multiplies the delay by a constant factor on every Next,
// capping at maxInterval.
//
// Example:
//
//	backoff := yabackoff.NewExponential(100*time.Millisecond, 2, 300*time.Millisecond)
//	backoff.Next() // 100ms
//	backoff.Next() // 200ms
//	backoff.Next() // 300ms (capped)
type Exponential struct {
	initialInterval time.Duration
	multiplier      float64
	maxInterval     time.Duration
	currentInterval time.Duration
}

var _ Backoff = (*Exponential)(nil)

// NewExponential creates a new exponential back-off. Any zero argument is
// replaced by the corresponding package default.
func NewExponential(
	initialInterval time.Duration,
	multiplier float64,
	maxInterval time.Duration,
) *Exponential {
	backoff := &Exponential{
		initialInterval: initialInterval,
		multiplier:      multiplier,
		maxInterval:     maxInterval,
		currentInterval: initialInterval,
	}

	backoff.safety()

	return backoff
}

func (e *Exponential) Reset() {
	e.safety()

	e.currentInterval = e.initialInterval
}

func (e *Exponential) Next() time.Duration {
	e.safety()

	delay := e.currentInterval
	e.currentInterval = min(time.Duration(float64(e.currentInterval)*e.multiplier), e.maxInterval)

	return delay
}

func (e *Exponential) Current() time.Duration {
	e.safety()

	return e.currentInterval
}

func (e *Exponential) WaitContext(ctx context.Context) error {
	timer := time.NewTimer(e.Next())
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// safety substitutes defaults for zero fields.
func (e *Exponential) safety() {
	if e.initialInterval <= 0 {
		e.initialInterval = DefaultInitialInterval
	}

	if e.currentInterval <= 0 {
		e.currentInterval = e.initialInterval
	}

	if e.maxInterval <= 0 {
		e.maxInterval = DefaultMaxInterval
	}

	if e.multiplier < 1 {
		e.multiplier = DefaultMultiplier
	}
}
