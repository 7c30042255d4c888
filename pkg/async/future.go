package async

import (
	"context"
	"sync"
)

// Future is a one-shot completion signal: it resolves exactly once, either
// successfully or with an error, and any number of goroutines may wait on it
// concurrently via Wait.
type Future struct {
	done chan struct{}
	once sync.Once
	err  error
}

// New creates an unresolved Future paired with the resolve function used to
// complete it.
func New() (*Future, func(error)) {
	f := &Future{done: make(chan struct{})}
	resolve := func(err error) {
		f.once.Do(func() {
			f.err = err
			close(f.done)
		})
	}
	return f, resolve
}

// Resolved returns a Future that has already completed successfully.
func Resolved() *Future {
	f, resolve := New()
	resolve(nil)
	return f
}

// Failed returns a Future that has already completed with err.
func Failed(err error) *Future {
	f, resolve := New()
	resolve(err)
	return f
}

// Wait blocks until the future resolves or ctx is done, whichever comes
// first. A context cancellation does not resolve the future itself — it
// only unblocks this particular waiter.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Group joins a fixed set of futures into a single future that resolves once
// every member has resolved. It fails with the first non-nil error observed,
// but still waits for every member before resolving, matching the "wait for
// the full fan-in, then continue" join spec.md §4.5 and §5 require.
func Group(futures ...*Future) *Future {
	joined, resolve := New()
	if len(futures) == 0 {
		resolve(nil)
		return joined
	}

	go func() {
		var firstErr error
		var mu sync.Mutex
		var wg sync.WaitGroup
		wg.Add(len(futures))
		for _, fut := range futures {
			fut := fut
			go func() {
				defer wg.Done()
				if err := fut.Wait(context.Background()); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		resolve(firstErr)
	}()

	return joined
}

// Run executes fn in a new goroutine and returns a future that resolves with
// fn's result.
func Run(fn func() error) *Future {
	f, resolve := New()
	go func() {
		resolve(fn())
	}()
	return f
}
