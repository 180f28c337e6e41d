package concurrent

import (
	"errors"
	"time"
)

// ErrScheduleTimeout. no worker picked the task up within the deadline.
var ErrScheduleTimeout = errors.New("schedule error: timed out")

// GoroutinePool. bounded goroutine reuse for connection handling. up to size
// goroutines may be live at once; Spawn starts resident ones up front, the
// rest come up on demand when the work queue is full.
type GoroutinePool struct {
	sem  chan struct{}
	work chan func()
}

func NewGoroutinePool(size, queue int) *GoroutinePool {
	return &GoroutinePool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
}

// Spawn. start n resident workers waiting on the work queue.
func (p *GoroutinePool) Spawn(n int) {
	for i := 0; i < n; i++ {
		p.sem <- struct{}{}
		go p.worker(nil)
	}
}

// Schedule. hand the task to a worker, blocking until one takes it.
func (p *GoroutinePool) Schedule(task func()) {
	_ = p.schedule(task, nil)
}

// ScheduleTimeout. like Schedule but gives up with ErrScheduleTimeout when no
// worker frees up within timeout.
func (p *GoroutinePool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *GoroutinePool) schedule(task func(), deadline <-chan time.Time) error {
	select {
	case <-deadline:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *GoroutinePool) worker(task func()) {
	defer func() { <-p.sem }()

	if task != nil {
		task()
	}
	for task := range p.work {
		task()
	}
}

// Close. stop accepting tasks and let idle workers exit.
func (p *GoroutinePool) Close() {
	close(p.work)
}
