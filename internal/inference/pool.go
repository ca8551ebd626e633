package inference

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/suiron/internal/metrics"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool runs blocking inference work on a fixed set of worker goroutines so
// that callers (HTTP handlers, pipeline goroutines) never execute model code
// themselves. The job queue is buffered; when it fills, Submit blocks, which
// is the pool's only backpressure mechanism.
type Pool struct {
	jobs    chan job
	wg      sync.WaitGroup
	logger  *zap.Logger
	closeMu sync.RWMutex
	closed  bool
}

type job struct {
	id   string
	run  func() (interface{}, error)
	done chan outcome
}

type outcome struct {
	value interface{}
	err   error
}

// NewPool starts workers goroutines consuming a queue of queueSize jobs.
func NewPool(workers, queueSize int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pool{
		jobs:   make(chan job, queueSize),
		logger: logger,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		metrics.PoolQueueDepth.Dec()
		value, err := j.run()
		// The buffer guarantees this send never blocks, even when the waiter
		// already gave up on the job.
		j.done <- outcome{value: value, err: err}
	}
}

// Submit enqueues fn and waits for its result. The error returned by fn (or
// its value) is handed back to the caller. When ctx is canceled the wait is
// abandoned and ctx.Err() returned, but fn keeps running to completion on its
// worker; dispatched work is never canceled.
func (p *Pool) Submit(ctx context.Context, op string, fn func() (interface{}, error)) (interface{}, error) {
	p.closeMu.RLock()
	if p.closed {
		p.closeMu.RUnlock()
		return nil, ErrPoolClosed
	}
	j := job{
		id:   uuid.NewString(),
		run:  fn,
		done: make(chan outcome, 1),
	}
	p.logger.Debug("job queued", zap.String("job_id", j.id), zap.String("operation", op))

	metrics.PoolQueueDepth.Inc()
	select {
	case p.jobs <- j:
		p.closeMu.RUnlock()
	case <-ctx.Done():
		metrics.PoolQueueDepth.Dec()
		p.closeMu.RUnlock()
		return nil, ctx.Err()
	}

	select {
	case out := <-j.done:
		return out.value, out.err
	case <-ctx.Done():
		p.logger.Warn("waiter abandoned dispatched job",
			zap.String("job_id", j.id), zap.String("operation", op))
		return nil, ctx.Err()
	}
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (p *Pool) Close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()
	p.wg.Wait()
}
