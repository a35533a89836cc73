// Package parallel runs independent tasks with a bounded worker count.
//
// Both helpers fan a task index range out over an errgroup: each task writes
// only its own result slot, so no accumulation lock is needed. The first
// error cancels the remaining tasks through the derived context.
package parallel

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrBadWorkerCount indicates a non-positive worker limit.
var ErrBadWorkerCount = errors.New("parallel: workers must be >= 1")

// ForEach invokes fn(ctx, i) for every i in [0, n) using at most workers
// goroutines. It returns the first error and cancels outstanding tasks.
// n <= 0 is a no-op.
func ForEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if workers < 1 {
		return ErrBadWorkerCount
	}
	if n <= 0 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i)
		})
	}
	return g.Wait()
}

// Map invokes fn(ctx, i) for every i in [0, n) using at most workers
// goroutines and collects results in task order. On error the partial
// results are discarded.
func Map[T any](ctx context.Context, n, workers int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	if workers < 1 {
		return nil, ErrBadWorkerCount
	}
	if n <= 0 {
		return nil, nil
	}
	out := make([]T, n)
	err := ForEach(ctx, n, workers, func(ctx context.Context, i int) error {
		v, err := fn(ctx, i)
		if err != nil {
			return err
		}
		out[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
