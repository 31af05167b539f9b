// Package besteffort runs a single attempt against an unreliable capability and
// substitutes a static value when the attempt fails.
package besteffort

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPanic marks a produce call that panicked.
var ErrPanic = errors.New("besteffort: produce panicked")

// Result carries the produced value. When Degraded is set, Value came from the
// fallback and Err holds the reason.
type Result[T any] struct {
	Value    T
	Degraded bool
	Err      error
}

// Produce calls produce once under a deadline of timeout (none when timeout <= 0).
// Any error, panic, or deadline expiry yields fallback(). There are no retries.
func Produce[T any](ctx context.Context, timeout time.Duration, produce func(context.Context) (T, error), fallback func() T) Result[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	if produce == nil {
		return Result[T]{Value: fallback(), Degraded: true, Err: errors.New("besteffort: nil produce")}
	}

	callCtx := ctx
	cancel := func() {}
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	value, err := safeCall(callCtx, produce)
	if err == nil {
		// A produce that ignores ctx may return after the deadline; treat that as a timeout.
		err = callCtx.Err()
	}
	if err != nil {
		return Result[T]{Value: fallback(), Degraded: true, Err: err}
	}
	return Result[T]{Value: value}
}

func safeCall[T any](ctx context.Context, produce func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			value = zero
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	return produce(ctx)
}
