// Package worker runs jobs with a fixed upper bound on concurrency.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/venuematch/pkg/logger"
)

const defaultLimit = 10

// Job is a unit of work. It receives the context passed to Go.
type Job func(ctx context.Context)

// Pool bounds how many jobs run at once. Submission blocks while every
// slot is busy. A Pool is meant for one fan-out: submit, then Wait.
type Pool struct {
	name   string
	limit  int
	slots  chan struct{}
	wg     sync.WaitGroup
	active atomic.Int64
	peak   atomic.Int64

	logger logger.Logger
}

// NewPool creates a pool running at most limit jobs concurrently. A
// non-positive limit falls back to 10.
func NewPool(limit int, opts ...Option) *Pool {
	if limit < 1 {
		limit = defaultLimit
	}

	p := &Pool{
		name:   "pool",
		limit:  limit,
		slots:  make(chan struct{}, limit),
		logger: logger.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)

	return p
}

// Go waits for a free slot and runs job in its own goroutine. It returns
// ctx.Err() without running job when ctx is done before a slot frees up.
func (p *Pool) Go(ctx context.Context, job Job) error {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%s: waiting for slot: %w", p.name, ctx.Err())
	}

	p.wg.Add(1)
	n := p.active.Add(1)
	p.recordPeak(n)

	go func() {
		defer func() {
			p.active.Add(-1)
			<-p.slots
			p.wg.Done()
		}()
		job(ctx)
	}()
	return nil
}

// Wait blocks until every submitted job has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
	p.logger.Debug(context.Background(), "pool drained",
		logger.Int("limit", p.limit),
		logger.Int("peak", int(p.peak.Load())),
	)
}

// Limit returns the concurrency bound.
func (p *Pool) Limit() int { return p.limit }

// Peak returns the highest number of jobs seen running at once.
func (p *Pool) Peak() int { return int(p.peak.Load()) }

func (p *Pool) recordPeak(n int64) {
	for {
		cur := p.peak.Load()
		if n <= cur || p.peak.CompareAndSwap(cur, n) {
			return
		}
	}
}
