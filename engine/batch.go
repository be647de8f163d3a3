package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FileResult pairs one file path with whatever a per-file worker
// produced for it (spec §5(c)). The value is reported untyped so
// Batch is not tied to one analyzer's result shape; the structure
// analyzer is its caller.
type FileResult struct {
	Path  string
	Value interface{}
	Err   error
}

// FileWorker processes a single file and returns its per-file result.
type FileWorker func(ctx context.Context, path string) (interface{}, error)

// Batch runs worker over paths with bounded concurrency (capped at
// GOMAXPROCS), collecting one FileResult per path. Only FILE_ANALYSIS
// may parallelize across files (spec §5); every other phase must call
// workers sequentially instead. Results are returned in the same order
// as paths, regardless of completion order, so callers can merge
// per-worker output deterministically by walk order rather than by
// scheduling order (spec §5(c), §9).
func Batch(ctx context.Context, paths []string, worker FileWorker) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			value, err := worker(gctx, path)
			results[i] = FileResult{Path: path, Value: value, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
