package resolver

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/placescout/placescout/internal/metrics"
)

var ErrQueueFull = errors.New("resolver queue is full")

type Task func(ctx context.Context)

// Pool runs region resolutions on a fixed number of workers, capping
// how many outbound probes can be in flight at once. Submissions never
// block the caller: a full queue is reported as ErrQueueFull instead.
type Pool struct {
	concurrency int
	queue       chan Task
	busy        int64
	metrics     *metrics.Collector
	logger      *zerolog.Logger
}

type Config struct {
	Concurrency int
	QueueSize   int
}

func NewPool(cfg Config, collector *metrics.Collector, logger *zerolog.Logger) *Pool {
	return &Pool{
		concurrency: cfg.Concurrency,
		queue:       make(chan Task, cfg.QueueSize),
		metrics:     collector,
		logger:      logger,
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.metrics.ResolverWorkersAvailable.Add(float64(p.concurrency))
	for i := 0; i < p.concurrency; i++ {
		go p.work(ctx)
	}
	p.logger.Info().Int("concurrency", p.concurrency).Msg("Started resolver pool")
}

func (p *Pool) Submit(task Task) error {
	select {
	case p.queue <- task:
		return nil
	default:
		p.metrics.ResolverQueueRejected.Inc()
		return ErrQueueFull
	}
}

func (p *Pool) Busy() int64 {
	return atomic.LoadInt64(&p.busy)
}

func (p *Pool) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Msg("Stopping resolver worker")
			return
		case task := <-p.queue:
			p.run(ctx, task)
		}
	}
}

func (p *Pool) run(ctx context.Context, task Task) {
	atomic.AddInt64(&p.busy, 1)
	p.metrics.ResolverWorkersBusy.Inc()
	p.metrics.ResolverWorkersAvailable.Dec()
	defer func() {
		atomic.AddInt64(&p.busy, -1)
		p.metrics.ResolverWorkersBusy.Dec()
		p.metrics.ResolverWorkersAvailable.Inc()
	}()
	task(ctx)
}
