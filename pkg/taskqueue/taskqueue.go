// Package taskqueue is the in-process asynchronous job runner. Submission
// returns an opaque task id immediately; completion is observed only by
// polling. Tasks are not cancellable once enqueued.
package taskqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Task is one unit of background work. The returned value becomes the
// polled result; a non-nil error marks the task failed.
type Task func(ctx context.Context) (any, error)

type Result struct {
	Value any
	Err   error
}

type job struct {
	id   string
	name string
	run  Task
}

// Queue holds finished results for the life of the process; there is no
// expiry, matching a result backend without TTL. Enqueue blocks once the
// job buffer is full, which backpressures the submitting handler.
type Queue struct {
	log    *zap.Logger
	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	results map[string]Result
}

// New starts a pool of n workers draining the queue. Close stops them.
func New(workers int, log *zap.Logger) *Queue {
	if workers <= 0 {
		workers = 4
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		log:     log,
		jobs:    make(chan job, 64),
		ctx:     ctx,
		cancel:  cancel,
		results: make(map[string]Result),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue schedules t and returns its task id.
func (q *Queue) Enqueue(name string, t Task) string {
	id := uuid.NewString()
	q.jobs <- job{id: id, name: name, run: t}
	q.log.Info("task enqueued", zap.String("task", name), zap.String("id", id))
	return id
}

// Poll reports whether the task with the given id has finished, and its
// result when it has. Unknown and still-running ids both report not done.
func (q *Queue) Poll(id string) (Result, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	res, ok := q.results[id]
	return res, ok
}

// Close stops the workers. Tasks already picked up run to completion;
// queued but unstarted tasks are dropped.
func (q *Queue) Close() {
	q.cancel()
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case j := <-q.jobs:
			q.execute(j)
		}
	}
}

func (q *Queue) execute(j job) {
	start := time.Now()
	val, err := q.runSafe(j)

	q.mu.Lock()
	q.results[j.id] = Result{Value: val, Err: err}
	q.mu.Unlock()

	if err != nil {
		q.log.Warn("task failed",
			zap.String("task", j.name), zap.String("id", j.id),
			zap.Duration("took", time.Since(start)), zap.Error(err))
		return
	}
	q.log.Info("task completed",
		zap.String("task", j.name), zap.String("id", j.id),
		zap.Duration("took", time.Since(start)))
}

// runSafe keeps a panicking task from taking the worker down with it.
func (q *Queue) runSafe(j job) (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
		}
	}()
	return j.run(q.ctx)
}
