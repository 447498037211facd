// Package workerpool runs tasks on a fixed number of goroutines.
//
// The event bus uses a Pool to cap how many subscriber invocations run at
// once during asynchronous publish:
//
//	pool := workerpool.New(8)
//	defer pool.Shutdown()
//
//	bus := pubsub.New(pubsub.WithWorkerPool(pool))
//
// Submit blocks until the task is queued. TrySubmit never blocks and
// returns ErrPoolFull instead, so callers can decide to retry or reject.
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by TrySubmit when all workers are busy and the
// task queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit and TrySubmit after Shutdown.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	size  int
	tasks chan func()
	wg    sync.WaitGroup

	// mu guards closed and the close of tasks. Submitters hold the read
	// lock while sending so Shutdown can never close tasks under them.
	mu     sync.RWMutex
	closed bool
}

// New creates a Pool with the given number of workers. A size below 1 is
// treated as 1.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		size: size,
		// 2× the worker count absorbs bursts from a single fan-out.
		tasks: make(chan func(), size*2),
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}

	return p
}

// Size reports the number of workers.
func (p *Pool) Size() int { return p.size }

// Submit queues task, blocking while the queue is full.
// It returns ErrPoolClosed once Shutdown has been called.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// TrySubmit queues task without blocking.
//   - Returns ErrPoolFull if the task queue is at capacity.
//   - Returns ErrPoolClosed if Shutdown has been called.
func (p *Pool) TrySubmit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting new tasks, runs everything already queued and
// waits for the workers to exit. It is safe to call multiple times.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

// safeRun keeps a panicking task from killing its worker.
func safeRun(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
