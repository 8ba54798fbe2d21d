// Package core runs jobs on a fixed pool of goroutines.
package core

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolStopped is returned when submitting to a stopped pool.
var ErrPoolStopped = errors.New("worker pool stopped")

// WorkerPool manages a pool of worker goroutines for parallel processing
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
	// held shared while submitting and exclusively while Stop drains
	submitMu   sync.RWMutex
	completed  SafeCounter
}

// NewWorkerPool creates a new worker pool with the specified number of
// workers; 0 or less uses the CPU count.
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

// Start initializes and starts all worker goroutines
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
			wp.completed.Increment()
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit queues a job. It blocks while the queue is full and gives up when
// ctx is done or the pool is stopped. A job queued before ctx is done is
// skipped if ctx is done by the time a worker picks it up.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) error {
	wp.submitMu.RLock()
	defer wp.submitMu.RUnlock()
	select {
	case <-wp.quit:
		return ErrPoolStopped
	default:
	}

	wp.wg.Add(1)
	wrapped := func() {
		if ctx.Err() == nil {
			job()
		}
	}
	select {
	case wp.jobQueue <- wrapped:
		return nil
	case <-ctx.Done():
		wp.wg.Done()
		return ctx.Err()
	case <-wp.quit:
		wp.wg.Done()
		return ErrPoolStopped
	}
}

// Wait waits for all currently queued jobs to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts down the worker pool. Jobs still queued are abandoned and no
// longer count toward Wait.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.quit)
		wp.submitMu.Lock()
		defer wp.submitMu.Unlock()
		for {
			select {
			case <-wp.jobQueue:
				wp.wg.Done()
			default:
				return
			}
		}
	})
}

// ParallelFor calls fn for every value in [start, end), split into one
// chunk per worker, and waits. Cancelling ctx stops between iterations.
func (wp *WorkerPool) ParallelFor(ctx context.Context, start, end int, fn func(int)) error {
	if start >= end {
		return nil
	}

	totalWork := end - start
	chunkSize := max(1, totalWork/wp.numWorkers)

	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := min(i+chunkSize, end)
		err := wp.Submit(ctx, func() {
			for j := chunkStart; j < chunkEnd; j++ {
				if ctx.Err() != nil {
					return
				}
				fn(j)
			}
		})
		if err != nil {
			wp.Wait()
			return err
		}
	}
	wp.Wait()
	return ctx.Err()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Completed is the number of jobs the workers have finished.
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Get()
}

// SafeCounter provides thread-safe counter operations using lock-free atomics.
type SafeCounter struct {
	value atomic.Int64
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
