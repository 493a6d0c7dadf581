package gambit

import (
	"context"
	"sync"
)

// Future carries the outcome of one submitted request. It resolves exactly
// once, either to a Response or to a *ClientError.
type Future[R Response] struct {
	response R
	err      error
	done     chan struct{}
	once     sync.Once
}

func newFuture[R Response]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// rejectedFuture returns a Future that has already failed with err.
func rejectedFuture[R Response](err error) *Future[R] {
	f := newFuture[R]()
	var zero R
	f.complete(zero, err)
	return f
}

func (f *Future[R]) complete(resp R, err error) {
	f.once.Do(func() {
		f.response = resp
		f.err = err
		close(f.done)
	})
}

// Done is closed once the Future has resolved.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the Future resolves or ctx is done. Cancelling ctx stops
// the wait only; the request itself keeps running.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.response, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Result blocks until the Future resolves.
func (f *Future[R]) Result() (R, error) {
	<-f.done
	return f.response, f.err
}
