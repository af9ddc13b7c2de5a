package worker

import (
	"context"
	"errors"

	"github.com/fornellas/slogxt/log"
)

type worker struct {
	name  string
	errCh chan error
}

// WorkerManager runs a group of independent workers and joins their results. Workers do not
// affect each other: one failing does not cancel the rest, so a batch of figure compiles always
// attempts every figure.
type WorkerManager struct {
	workers []worker
	ctx     context.Context
}

// NewWorkerManager creates a new WorkerManager with the given context.
func NewWorkerManager(ctx context.Context) *WorkerManager {
	return &WorkerManager{ctx: ctx}
}

// StartWorker starts a new worker with the given name and function. The worker function receives
// the manager's context with its logger grouped under the worker name.
func (m *WorkerManager) StartWorker(name string, fn func(context.Context) error) {
	errCh := make(chan error, 1)
	go func() {
		ctx, logger := log.MustWithGroup(m.ctx, name)
		logger.Debug("Starting")
		err := fn(ctx)
		logger.Debug("Finished", "err", err)
		errCh <- err
	}()
	m.workers = append(m.workers, worker{name: name, errCh: errCh})
}

// Wait blocks until all workers have completed and returns their errors joined.
func (m *WorkerManager) Wait() (err error) {
	logger := log.MustLogger(m.ctx)
	logger.Debug("Waiting for workers")
	for _, worker := range m.workers {
		err = errors.Join(err, <-worker.errCh)
	}
	logger.Debug("All workers finished", "err", err)
	m.workers = nil
	return
}
