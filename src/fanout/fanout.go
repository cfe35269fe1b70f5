package fanout

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/veritas-labs/veritas/src/logging"
)

// Task is one independent evidence-fetch operation.
type Task[T any] func(ctx context.Context) (T, error)

// Run launches every task against a bounded worker pool and collects whatever
// completes within its per-task timeout. A task that errors or times out is
// logged and dropped; its key is simply absent from the returned map. The
// batch never fails as a whole and, with a pool sized to the task count, its
// wall-clock cost is bounded by the timeout rather than the sum of the calls.
func Run[K comparable, T any](ctx context.Context, tasks map[K]Task[T], workers int, timeout time.Duration) map[K]T {
	if workers <= 0 {
		workers = 2
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[K]T, len(tasks))
	)
	semaphore := make(chan struct{}, workers)

	for key, task := range tasks {
		wg.Add(1)
		go func(k K, fn Task[T]) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				return
			}

			tctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			type outcome struct {
				val T
				err error
			}
			done := make(chan outcome, 1)
			go func() {
				v, err := fn(tctx)
				done <- outcome{val: v, err: err}
			}()

			// A straggler past its deadline is abandoned; its eventual
			// result, if any, lands in the buffered channel and is discarded.
			select {
			case out := <-done:
				if out.err != nil {
					if logging.IsTimeout(out.err) {
						log.Printf("fanout: task %v hit its deadline: %v", k, out.err)
					} else {
						log.Printf("fanout: task %v failed: %v", k, out.err)
					}
					return
				}
				mu.Lock()
				results[k] = out.val
				mu.Unlock()
			case <-tctx.Done():
				log.Printf("fanout: task %v timed out after %s", k, timeout)
			}
		}(key, task)
	}

	wg.Wait()
	return results
}
