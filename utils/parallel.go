package utils

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// MapInParallel evaluates f for each index in [0, n) on its own goroutine and returns the results
// in index order. The first failure cancels the context handed to the remaining calls; a failed
// call leaves its result at the zero value. A panic in f is returned as an error.
func MapInParallel[T any](ctx context.Context, n int, f func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	errs := make([]error, n)
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("panic in parallel call %d: %v", i, r)
				}
				errs[i] = err
			}()
			value, err := f(groupCtx, i)
			if err == nil {
				results[i] = value
			}
			return err
		})
	}
	firstErr := group.Wait()

	// calls that only stopped because of another failure are not reported
	var combined error
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			combined = multierr.Append(combined, err)
		}
	}
	if combined == nil {
		return results, firstErr
	}
	return results, combined
}
