// Package workerpool runs blocking calls on a bounded number of goroutines.
package workerpool

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultSize is the number of concurrent calls a pool allows when none is
// configured.
const DefaultSize = 16

// Pool bounds the number of blocking calls in flight.
type Pool struct {
	sem      *semaphore.Weighted
	size     int
	inFlight atomic.Int64
	observe  func(inFlight int64)
}

// Option configures a Pool.
type Option func(*Pool)

// WithObserver registers fn to be called with the number of calls in flight
// every time it changes.
func WithObserver(fn func(inFlight int64)) Option {
	return func(p *Pool) {
		p.observe = fn
	}
}

// New creates a pool that runs at most size calls at once.
func New(size int, opts ...Option) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	p := &Pool{
		sem:     semaphore.NewWeighted(int64(size)),
		size:    size,
		observe: func(int64) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the maximum number of concurrent calls.
func (p *Pool) Size() int {
	return p.size
}

// InFlight returns the number of calls currently running.
func (p *Pool) InFlight() int64 {
	return p.inFlight.Load()
}

type outcome[T any] struct {
	value T
	err   error
}

// Do runs fn on the pool and waits for its result or for ctx to end,
// whichever comes first.
//
// Cancellation is soft: when ctx ends first Do returns ctx.Err() right away
// while fn keeps running to completion in the background and its result is
// dropped. fn receives ctx and is expected to give up on its own once it is
// cancelled. A panic in fn is returned as an error.
func Do[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	done := make(chan outcome[T], 1)
	p.observe(p.inFlight.Add(1))
	go func() {
		defer func() {
			p.observe(p.inFlight.Add(-1))
			p.sem.Release(1)
		}()
		done <- run(ctx, fn)
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func run[T any](ctx context.Context, fn func(context.Context) (T, error)) (out outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome[T]{err: fmt.Errorf("workerpool: call panicked: %v", r)}
		}
	}()
	v, err := fn(ctx)
	return outcome[T]{value: v, err: err}
}
