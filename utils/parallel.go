// Package utils contains small concurrency helpers shared across packages.
package utils

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// IndexFunc is the unit of work run by ForEachParallel for a single index.
type IndexFunc func(ctx context.Context, i int) error

// ForEachParallel runs work for every index in [0, total) with at most ParallelFactor calls in
// flight. The first failure cancels the context handed to the remaining work and is the error
// returned. A panic in work is reported as an error for its index.
func ForEachParallel(ctx context.Context, total int, work IndexFunc) error {
	if total <= 0 {
		return nil
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(ParallelFactor)
	for i := 0; i < total; i++ {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() (err error) {
			defer func() {
				if thePanic := recover(); thePanic != nil {
					err = fmt.Errorf("got panic running index %d in parallel: %v", i, thePanic)
				}
			}()
			return work(groupCtx, i)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
