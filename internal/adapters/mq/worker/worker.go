// Package worker runs simulation jobs from the queue on a pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/talentroll/internal/domain/model"
	"github.com/okian/talentroll/pkg/logger"
	"github.com/okian/talentroll/pkg/metrics"
)

// Simulator computes the result of one job. Implementations must be safe for
// concurrent use; the samplers they hand out per job must not be shared.
type Simulator interface {
	Talent(ctx context.Context, job model.Job) (model.TalentResult, error)
}

// Sink receives the outcome of every job.
type Sink interface {
	Record(ctx context.Context, result model.TalentResult)
	Fail(ctx context.Context, job model.Job, err error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Job
}

// Worker processes jobs until the queue is drained.
type Worker interface {
	// Run starts the worker loop until the queue closes or ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker after its current job.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue Queue
	sim   Simulator
	sink  Sink
	name  string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, sim Simulator, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		sim:      sim,
		sink:     sink,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, job)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run has returned.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InMemoryWorker) process(ctx context.Context, job model.Job) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	result, err := w.sim.Talent(ctx, job)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "simulation_error")
		w.logger.Error(ctx, "simulation failed",
			logger.String("talent", job.Talent.Name),
			logger.Int("stream", job.Stream),
			logger.Error(err),
		)
		w.sink.Fail(ctx, job, err)
		return
	}
	w.sink.Record(ctx, result)
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A count below one uses one
// worker per CPU. opts are applied to every worker; a logger given through
// WithLogger also serves the pool, otherwise the global logger is used.
func NewPool(workerCount int, queue Queue, sim Simulator, sink Sink, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	shared := &InMemoryWorker{}
	for _, opt := range opts {
		opt(shared)
	}
	base := shared.logger
	if base == nil {
		base = logger.Get()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		logger:  base.With(logger.String("worker", "pool")),
	}

	for i := 0; i < workerCount; i++ {
		name := "worker-" + strconv.Itoa(i)
		workerOpts := append(append([]Option{}, opts...),
			WithName(name),
			WithLogger(base.With(logger.String("worker", name))),
		)
		pool.workers[i] = NewInMemoryWorker(queue, sim, sink, workerOpts...)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has returned or ctx is done.
func (p *Pool) Wait(ctx context.Context) error {
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "pool wait interrupted", logger.Int("worker_id", i))
			return fmt.Errorf("wait for workers: %w", ctx.Err())
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}

// Shutdown stops every worker.
func (p *Pool) Shutdown(ctx context.Context) error {
	for i, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return err
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}
