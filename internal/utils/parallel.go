package utils

import (
	"context"
	"sync"
)

// ParallelForEach executes a function for each item with a bounded number
// of workers. Results are reported through the per-index errors slice, so
// callers can process outcomes in the original item order.
func ParallelForEach[T any](ctx context.Context, items []T, workers int, fn func(context.Context, int, T) error) []error {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	errors := make([]error, len(items))
	taskChan := make(chan int, len(items))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-taskChan:
					if !ok {
						return
					}
					err := fn(ctx, idx, items[idx])
					mu.Lock()
					errors[idx] = err
					mu.Unlock()
				}
			}
		}()
	}

	for i := range items {
		select {
		case <-ctx.Done():
			close(taskChan)
			wg.Wait()
			return errors
		case taskChan <- i:
		}
	}

	close(taskChan)
	wg.Wait()

	return errors
}
