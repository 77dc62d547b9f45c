package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	dErrors "shoplink/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes  int32
	Errors     int32
	NotFounds  int32
	Mismatches int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.NotFounds + r.Mismatches
}

// RunConcurrent executes fn in parallel goroutines and collects results.
// Errors are categorized by domain code so handshake tests can assert on the
// split between successes, not-found outcomes, and state mismatches without
// repeating the WaitGroup + atomic counter boilerplate.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, errs, notFounds, mismatches atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeNotFound),
				dErrors.HasCode(err, dErrors.CodeHandshakeNotFound):
				notFounds.Add(1)
			case dErrors.HasCode(err, dErrors.CodeStateMismatch):
				mismatches.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes:  successes.Load(),
		Errors:     errs.Load(),
		NotFounds:  notFounds.Load(),
		Mismatches: mismatches.Load(),
	}
}

// RunConcurrentCtx executes fn in parallel goroutines with context support.
func RunConcurrentCtx(ctx context.Context, goroutines int, fn func(ctx context.Context, idx int) error) *ConcurrentResult {
	return RunConcurrent(goroutines, func(idx int) error {
		return fn(ctx, idx)
	})
}
