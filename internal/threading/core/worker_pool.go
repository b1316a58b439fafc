package core

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is a unit of work run by a WorkerPool.
type Job func(ctx context.Context) error

// WorkerPool runs jobs on a fixed set of goroutines and collects their errors.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once

	mu   sync.Mutex
	errs []error

	completed SafeCounter
	failed    SafeCounter
}

// NewWorkerPool creates a pool with numWorkers goroutines. Zero or less
// means one per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit queues job. The job is skipped if ctx is done before it starts.
// Errors returned by the job are collected and reported by Wait.
func (wp *WorkerPool) Submit(ctx context.Context, job Job) {
	wp.wg.Add(1)
	wp.jobQueue <- func() {
		if err := ctx.Err(); err != nil {
			wp.record(err)
			return
		}
		if err := job(ctx); err != nil {
			wp.record(err)
			return
		}
		wp.completed.Increment()
	}
}

func (wp *WorkerPool) record(err error) {
	wp.failed.Increment()
	wp.mu.Lock()
	wp.errs = append(wp.errs, err)
	wp.mu.Unlock()
}

// Wait blocks until every submitted job has finished and returns the joined
// errors of the failed ones. Collected errors are cleared.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	err := errors.Join(wp.errs...)
	wp.errs = nil
	return err
}

// Stop shuts the workers down. It is safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// Completed returns the number of jobs that finished without error.
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Get()
}

// Failed returns the number of jobs that returned an error or were skipped.
func (wp *WorkerPool) Failed() int64 {
	return wp.failed.Get()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// SafeCounter is a lock-free counter.
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeCounter creates a counter initialized to zero
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment atomically increments the counter and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Add atomically adds delta to the counter and returns the new value
func (c *SafeCounter) Add(delta int64) int64 {
	return c.value.Add(delta)
}

// Get atomically gets the counter value
func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}

// Set atomically sets the counter value
func (c *SafeCounter) Set(value int64) {
	c.value.Store(value)
}
