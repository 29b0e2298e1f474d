package app

import (
	"context"
	"sync"
	"time"
)

// Task is one unit of pool work, typically a single video's download
// attempt sequence.
type Task func(ctx context.Context)

// WorkerPool bounds how many tasks run at once and paces slot reuse: after
// each task completes (success or final failure alike), the worker that ran
// it sleeps for the cooldown before pulling the next task. Other workers are
// unaffected. A slot is therefore never reused before the cooldown elapses.
type WorkerPool struct {
	workers  int
	cooldown time.Duration
	tasks    chan Task
	wg       sync.WaitGroup
	mu       sync.Mutex
	started  bool
}

// NewWorkerPool creates a pool with the given concurrency bound and
// per-completion cooldown. Workers below 1 are clamped to 1.
func NewWorkerPool(workers int, cooldown time.Duration) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers:  workers,
		cooldown: cooldown,
		tasks:    make(chan Task),
	}
}

// Start launches the worker goroutines
func (p *WorkerPool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Submit enqueues one task. Blocks until a worker accepts it, which keeps
// submission in caller order. Must not be called after Shutdown.
func (p *WorkerPool) Submit(task Task) {
	p.tasks <- task
}

// Shutdown closes the queue and waits for all workers to drain, including
// their trailing cooldowns.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()

	close(p.tasks)
	p.wg.Wait()
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for task := range p.tasks {
		task(ctx)
		p.coolDown(ctx)
	}
}

// coolDown holds the slot for the configured delay before it can take the
// next task. Cancellation cuts the wait short.
func (p *WorkerPool) coolDown(ctx context.Context) {
	if p.cooldown <= 0 {
		return
	}
	select {
	case <-time.After(p.cooldown):
	case <-ctx.Done():
	}
}
