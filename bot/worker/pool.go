package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/TheBunnyMan123/bunny-bot/bot"
)

var ErrPoolClosed = errors.New("worker pool closed")

// Pool runs preview resolutions with bounded concurrency.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
	size   int
	logger bot.Logger
}

// New creates a worker pool with the given size.
func New(size int, logger bot.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = bot.NopLogger{}
	}

	queueSize := size * 8
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		tasks:  make(chan func(), queueSize),
		size:   size,
		logger: logger,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for task := range p.tasks {
				p.run(id, task)
			}
		}(i)
	}

	return p
}

// run executes one task. A panicking task is logged and does not take the worker down.
func (p *Pool) run(id int, task func()) {
	if task == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", "worker", id, "panic", fmt.Sprint(r))
		}
	}()
	task()
}

// Submit enqueues a task for execution.
func (p *Pool) Submit(task func()) error {
	// Holding mu while sending keeps StopNow from closing tasks under us.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}

	p.tasks <- task
	return nil
}

// SubmitWait enqueues a task and waits for it to complete.
func (p *Pool) SubmitWait(task func() error) error {
	return p.SubmitWaitContext(context.Background(), task)
}

// SubmitWaitContext enqueues a task and waits for it to complete or for ctx
// to end. The task keeps running after ctx ends; only its result is dropped.
func (p *Pool) SubmitWaitContext(ctx context.Context, task func() error) error {
	if task == nil {
		return nil
	}

	result := make(chan error, 1)
	err := p.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("worker task panicked: %v", r)
			}
		}()
		result <- task()
	})
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-result:
		return err
	}
}

// Shutdown waits for in-flight tasks until context is done.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.StopNow()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// StopNow closes the pool without waiting for tasks to finish.
func (p *Pool) StopNow() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
}

// Size returns the worker count.
func (p *Pool) Size() int {
	return p.size
}
