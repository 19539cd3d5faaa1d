package pipeline

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// runWave executes one task per item with bounded concurrency. All tasks
// are spawned eagerly; each blocks on the semaphore before doing any work,
// so at most `workers` run concurrently. Results land at their item's
// index, which keeps collection race-free without caring about completion
// order.
//
// The after callback, if set, observes each completed task with a running
// done-count for progress reporting. It is called from worker goroutines;
// callers pass something safe for concurrent use (our callers only log).
//
// Design decision: a weighted semaphore with eager spawning rather than
// errgroup.SetLimit. SetLimit blocks the spawning loop itself, which would
// serialize task creation behind slow tasks; spawning everything up front
// and gating on Acquire matches the wave model, and a cancelled context
// aborts the acquires of tasks that never got a slot.
func runWave[I, O any](ctx context.Context, workers int, items []I, task func(context.Context, I) O, after func(done int, out O)) ([]O, error) {
	sem := semaphore.NewWeighted(int64(workers))
	results := make([]O, len(items))

	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			results[i] = task(ctx, item)
			if after != nil {
				after(int(done.Add(1)), results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
