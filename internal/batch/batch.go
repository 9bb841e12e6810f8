// Package batch fans independent jobs out over a bounded set of goroutines
// and returns their results in input order.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Map calls fn on every item with at most threads calls in flight
// (threads <= 0 uses all CPUs). The first error cancels the remaining calls
// and is returned. out[i] is fn's result for items[i].
func Map[T, R any](ctx context.Context, items []T, threads int, fn func(context.Context, T) (R, error)) ([]R, error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	out := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, it := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, it)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
