package trials

import (
	"fmt"
	"sync"
)

// workerPool runs submitted trials on a fixed set of goroutines.
type workerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // protects taskQueue from concurrent close during send
	closed    bool         // protected by mu

	panicMu  sync.Mutex
	panicErr error // first recovered task panic
}

// newWorkerPool starts workers goroutines. workers <= 0 means one.
func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	pool := &workerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}
	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

func (wp *workerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		wp.run(task)
	}
}

// run executes task, turning a panic into the pool's error. A panic in a
// trial is an invariant violation in the simulation; it must surface, not
// kill the process from a background goroutine.
func (wp *workerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.panicMu.Lock()
			if wp.panicErr == nil {
				wp.panicErr = fmt.Errorf("trial panicked: %v", r)
			}
			wp.panicMu.Unlock()
		}
	}()
	task()
}

// submit adds a task to the pool.
// Returns false if the pool is closed, true if the task was queued.
func (wp *workerPool) submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// close stops accepting tasks and waits for queued ones to finish.
// It returns the first recovered task panic, if any.
func (wp *workerPool) close() error {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
	wp.panicMu.Lock()
	defer wp.panicMu.Unlock()
	return wp.panicErr
}
