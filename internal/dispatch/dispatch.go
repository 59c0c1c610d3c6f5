// Package dispatch fans a batch of independent units of work out to
// goroutines and fans the results back in. A failing unit surfaces as a nil
// entry; it never cancels its siblings and never aborts the batch.
package dispatch

import (
	"context"
	"sync"
)

// Unit is one independent piece of work. It reports failure by returning
// nil; errors are expected to be handled (or swallowed) inside the unit.
type Unit[T any] func(ctx context.Context) *T

// All runs every unit concurrently and blocks until each has settled. The
// returned slice has the same length and positional order as units, with
// nil marking an absent result. The batch's wall-clock cost is the slowest
// unit's cost, not the sum.
func All[T any](ctx context.Context, units []Unit[T]) []*T {
	results := make([]*T, len(units))

	var wg sync.WaitGroup
	for i, unit := range units {
		if unit == nil {
			continue
		}
		wg.Add(1)
		go func(idx int, u Unit[T]) {
			defer wg.Done()
			results[idx] = u(ctx)
		}(i, unit)
	}
	wg.Wait()

	return results
}
