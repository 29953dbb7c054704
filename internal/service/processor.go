package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Processor composes queued submissions on a single background worker so
// the HTTP handler can answer before analysis finishes.
type Processor struct {
	composer Composer
	queue    chan Submission
	log      *zap.Logger

	mu      sync.RWMutex
	stopped bool
}

// NewProcessor creates a Processor holding at most size pending submissions
func NewProcessor(c Composer, size int, log *zap.Logger) *Processor {
	if size < 1 {
		size = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		composer: c,
		queue:    make(chan Submission, size),
		log:      log,
	}
}

// Submit enqueues sub without blocking. Returns ErrQueueFull when the queue
// is at capacity and ErrProcessorStopped once Run has returned or is draining.
func (p *Processor) Submit(sub Submission) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrProcessorStopped
	}
	select {
	case p.queue <- sub:
		p.log.Debug("submission queued", zap.String("submission", sub.ID), zap.Int("pending", len(p.queue)))
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending returns the number of queued submissions
func (p *Processor) Pending() int {
	return len(p.queue)
}

// Run processes submissions until ctx is cancelled. It then stops accepting
// submissions and drains the queue before returning.
func (p *Processor) Run(ctx context.Context) error {
	for {
		select {
		case sub := <-p.queue:
			p.process(ctx, sub)
		case <-ctx.Done():
			p.mu.Lock()
			p.stopped = true
			p.mu.Unlock()

			for {
				select {
				case sub := <-p.queue:
					p.process(ctx, sub)
				default:
					p.log.Info("processor stopped")
					return nil
				}
			}
		}
	}
}

// process runs one job to completion; shutdown does not abort it.
func (p *Processor) process(ctx context.Context, sub Submission) {
	start := time.Now()
	res, err := p.composer.Compose(context.WithoutCancel(ctx), sub)
	if err != nil {
		p.log.Error("failed to process submission", zap.String("submission", sub.ID), zap.String("type", sub.Type), zap.Error(err))
		return
	}
	p.log.Info("submission processed",
		zap.String("submission", sub.ID),
		zap.String("type", res.Type),
		zap.Bool("synced", res.Synced),
		zap.Duration("took", time.Since(start)),
	)
}
