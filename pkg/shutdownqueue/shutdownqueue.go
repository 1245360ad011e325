// Package shutdownqueue collects cleanup tasks during startup and drains
// them in reverse order at the end of main. Registering in the order
// resources are opened means they close in the opposite order, so the HTTP
// server stops before the sweeper, and the sweeper before the database.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task releases one resource. It should honor ctx's deadline.
type Task func(ctx context.Context) error

var defaultQueue Queue

// Queue is a LIFO list of shutdown tasks. The zero value is ready to use.
type Queue struct {
	mu      sync.Mutex
	tasks   []Task
	drained bool
}

// Add registers a task. Nil tasks and tasks added after the drain started
// are ignored.
func (q *Queue) Add(t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.drained {
		return
	}

	q.tasks = append(q.tasks, t)
}

// Shutdown runs every registered task, newest first, and returns their
// errors joined. A panicking task is recovered and reported like an error.
// When ctx expires mid-drain the remaining tasks are skipped. Repeat calls
// are no-ops.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()

	if q.drained {
		q.mu.Unlock()

		return nil
	}

	q.drained = true
	tasks := q.tasks
	q.tasks = nil

	q.mu.Unlock()

	var errs []error

	for i := len(tasks) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			break
		}

		errs = append(errs, runTask(ctx, tasks[i]))
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}

// Add registers a task on the process-wide queue.
func Add(t Task) { defaultQueue.Add(t) }

// Shutdown drains the process-wide queue.
func Shutdown(ctx context.Context) error { return defaultQueue.Shutdown(ctx) }
