package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ErrgroupRunner is the module's default in-process Runner, backing both
// the sketch pass and the skewed-partition re-sample pass. The fan-out
// shape — errgroup.WithContext plus one group.Go call per task — is
// grounded on the same pattern used for per-shard extraction fan-out in
// distributed-shuffle tooling (aistore's dsort.Manager.iterRange/iterList:
// group, ctx := errgroup.WithContext(...); group.Go(...); group.Wait()).
//
// Limit bounds how many tasks run concurrently; zero means unbounded
// (one goroutine per partition).
type ErrgroupRunner struct {
	Limit int
}

// NewErrgroupRunner returns an ErrgroupRunner with no concurrency limit.
func NewErrgroupRunner() *ErrgroupRunner {
	return &ErrgroupRunner{}
}

func (r *ErrgroupRunner) Run(ctx context.Context, n int, task func(ctx context.Context, idx int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if r.Limit > 0 {
		g.SetLimit(r.Limit)
	}
	for i := 0; i < n; i++ {
		idx := i
		g.Go(func() error {
			return task(gctx, idx)
		})
	}
	return g.Wait()
}
