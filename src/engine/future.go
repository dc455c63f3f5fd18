package engine

import "sync"

// Future carries the single result of a worker goroutine back to the
// owning loop. The result is handed out once: Poll returns ok=true on the
// first call after completion and ok=false afterwards.
type Future[T any] struct {
	done     chan struct{}
	val      T
	err      error
	mu       sync.Mutex
	consumed bool
}

// Go runs fn on a new goroutine.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Resolved returns an already completed future.
func Resolved[T any](v T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v, err: err}
	close(f.done)
	return f
}

// Done is closed when the worker has finished.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Poll never blocks.
func (f *Future[T]) Poll() (v T, ok bool, err error) {
	select {
	case <-f.done:
	default:
		return v, false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.consumed {
		return v, false, nil
	}
	f.consumed = true
	return f.val, true, f.err
}

// Wait blocks until completion; meant for tests and shutdown.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	f.mu.Lock()
	f.consumed = true
	f.mu.Unlock()
	return f.val, f.err
}
