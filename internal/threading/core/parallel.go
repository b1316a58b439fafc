package core

import (
	"context"
	"runtime"
	"sync"
)

// ParallelMap applies fn to every item on up to one goroutine per CPU and
// returns the results in input order. Items not reached before ctx is done
// keep the zero value of R.
func ParallelMap[T any, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	numWorkers := min(runtime.NumCPU(), len(items))
	chunkSize := max(1, len(items)/numWorkers)

	results := make([]R, len(items))
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		start := i
		end := min(i+chunkSize, len(items))

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				if ctx.Err() != nil {
					return
				}
				results[j] = fn(items[j])
			}
		}(start, end)
	}

	wg.Wait()
	return results
}
