// Package pool implements a cached worker pool: work is handed to an idle
// worker when one is waiting, otherwise a new worker is started. Workers that
// stay idle for longer than the idle timeout exit.
package pool

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by Submit after Shutdown.
var ErrClosed = errors.New("pool: closed")

// DefaultIdleTimeout is how long a worker waits for new work before exiting.
const DefaultIdleTimeout = 60 * time.Second

// Stats is a point-in-time snapshot of the pool.
type Stats struct {
	Workers   int
	Idle      int
	Submitted uint64
	Rejected  uint64
}

// Pool runs submitted tasks on goroutines it creates on demand.
type Pool struct {
	mu          sync.Mutex
	tasks       chan func()
	idleTimeout time.Duration
	closed      bool
	workers     int
	idle        int
	submitted   uint64
	rejected    uint64
	wg          sync.WaitGroup
	onChange    func(workers int)
}

// New creates a pool. A non-positive idleTimeout selects DefaultIdleTimeout.
// onChange, if non-nil, is called with the new worker count whenever a worker
// starts or exits.
func New(idleTimeout time.Duration, onChange func(workers int)) *Pool {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Pool{
		tasks:       make(chan func()),
		idleTimeout: idleTimeout,
		onChange:    onChange,
	}
}

// Submit schedules task and returns immediately. It never blocks waiting for
// a worker.
func (p *Pool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.rejected++
		return ErrClosed
	}
	p.submitted++

	// tasks is unbuffered, so this only succeeds if a worker is parked on it.
	select {
	case p.tasks <- task:
		return nil
	default:
	}

	p.workers++
	p.wg.Add(1)
	go p.worker(task)
	p.notify(p.workers)
	return nil
}

func (p *Pool) worker(task func()) {
	defer p.wg.Done()

	timer := time.NewTimer(p.idleTimeout)
	defer timer.Stop()

	for task != nil {
		task()
		task = nil

		p.setIdle(1)
		timer.Reset(p.idleTimeout)
		select {
		case next, ok := <-p.tasks:
			if ok {
				task = next
			}
		case <-timer.C:
		}
		p.setIdle(-1)
	}

	p.mu.Lock()
	p.workers--
	p.notify(p.workers)
	p.mu.Unlock()
}

func (p *Pool) setIdle(delta int) {
	p.mu.Lock()
	p.idle += delta
	p.mu.Unlock()
}

// notify must be called with p.mu held.
func (p *Pool) notify(workers int) {
	if p.onChange != nil {
		p.onChange(workers)
	}
}

// Shutdown stops accepting new tasks. Tasks already submitted run to
// completion; idle workers exit immediately. Calling Shutdown more than once
// is a no-op.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.tasks)
}

// Closed reports whether Shutdown has been called.
func (p *Pool) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Wait blocks until every worker has exited or ctx is done. It is only
// meaningful after Shutdown; before that, idle workers exit on their timeout.
// If ctx ends first, a helper goroutine stays parked until the remaining
// workers exit.
func (p *Pool) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Workers:   p.workers,
		Idle:      p.idle,
		Submitted: p.submitted,
		Rejected:  p.rejected,
	}
}
