// Package prefetch runs the background cache warmer that keeps pool
// snapshots and the category mapping fresh so interactive requests rarely
// pay the upstream latency.
package prefetch

import (
	"context"
	"time"

	"github.com/okian/lootpool/pkg/logger"
	"github.com/okian/lootpool/pkg/metrics"
)

const defaultInterval = 4 * time.Minute

// Warmer is the slice of the service the prefetcher drives; kept narrow so
// tests can fake it.
type Warmer interface {
	WarmCaches(ctx context.Context) (pools int, err error)
}

// Prefetcher periodically warms the caches until its context is canceled.
type Prefetcher struct {
	warmer   Warmer
	interval time.Duration
	logger   logger.Logger
}

// Option applies a configuration option to the Prefetcher.
type Option func(*Prefetcher)

// WithInterval sets the time between warm cycles.
func WithInterval(d time.Duration) Option {
	return func(p *Prefetcher) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets a custom logger for the prefetcher.
func WithLogger(l logger.Logger) Option {
	return func(p *Prefetcher) {
		if l != nil {
			p.logger = l
		}
	}
}

// New constructs a Prefetcher over the given warmer.
func New(w Warmer, opts ...Option) *Prefetcher {
	p := &Prefetcher{
		warmer:   w,
		interval: defaultInterval,
		logger:   logger.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run warms the caches immediately, then once per interval until ctx is
// canceled. It blocks; callers run it in a goroutine.
func (p *Prefetcher) Run(ctx context.Context) {
	p.warm(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info(ctx, "prefetcher stopped")
			return
		case <-ticker.C:
			p.warm(ctx)
		}
	}
}

func (p *Prefetcher) warm(ctx context.Context) {
	start := time.Now()
	pools, err := p.warmer.WarmCaches(ctx)
	if err != nil {
		p.logger.Warn(ctx, "cache warm cycle failed", logger.Error(err))
		return
	}

	metrics.RecordPrefetchRun()
	p.logger.Debug(ctx, "cache warm cycle done",
		logger.Int("pools", pools),
		logger.Duration("took", time.Since(start)),
	)
}
