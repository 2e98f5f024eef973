package workers

import (
	"context"
	"fmt"
)

// Func adapts a plain function to the Worker interface.
type Func struct {
	WorkerName string
	Fn         func(ctx context.Context) error
}

func (f Func) Name() string { return f.WorkerName }

func (f Func) Run(ctx context.Context) error { return f.Fn(ctx) }

// Workers runs its workers in order.
type Workers struct {
	workers []Worker
}

// NewWorkers returns a Workers running ws in the given order.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts each worker after the previous one returned. It stops at the
// first worker error, or before the next worker once ctx is done.
func (w *Workers) Run(ctx context.Context) error {
	for _, worker := range w.workers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := worker.Run(ctx); err != nil {
			return fmt.Errorf("%s: %w", worker.Name(), err)
		}
	}
	return nil
}
