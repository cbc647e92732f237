package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Job pairs an input with the outcome of processing it.
type Job[T any, R any] struct {
	Input  T
	Result R
	Err    error
	// Done is false when the context was cancelled before the job ran.
	Done bool
}

// ProcessFunc handles a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool fans inputs out over a fixed number of goroutines.
type Pool[T any, R any] struct {
	name    string
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a pool; workers below 1 are raised to 1.
func NewPool[T any, R any](name string, workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		name:    name,
		workers: workers,
		process: fn,
	}
}

// Execute processes every input and returns jobs in input order.
// Inputs not yet started when ctx is cancelled are returned with Done unset.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Job[T, R] {
	jobs := make([]Job[T, R], len(inputs))
	for i := range inputs {
		jobs[i].Input = inputs[i]
	}

	idxCh := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < min(p.workers, len(inputs)); w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range idxCh {
				result, err := p.process(ctx, inputs[idx])
				jobs[idx].Result = result
				jobs[idx].Err = err
				jobs[idx].Done = true
				if err != nil {
					log.Debug().Err(err).Str("pool", p.name).Int("worker", workerID).Int("index", idx).Msg("Job failed")
				}
			}
		}(w)
	}

send:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break send
		case idxCh <- i:
		}
	}
	close(idxCh)

	wg.Wait()
	return jobs
}

// Batch splits items into consecutive chunks of at most size items.
func Batch[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	var batches [][]T
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}
