package db

import (
	"context"
	"errors"
)

var ErrPoolExhausted = errors.New("connection pool exhausted")

// Limiter bounds how many callers may hold a database connection at once.
// With wait enabled a caller blocks until a slot frees up or its context is
// done; with wait disabled a saturated pool fails the caller immediately.
type Limiter struct {
	sem  chan struct{}
	wait bool
}

func NewLimiter(max int, wait bool) *Limiter {
	if max <= 0 {
		max = 1
	}
	return &Limiter{sem: make(chan struct{}, max), wait: wait}
}

func (l *Limiter) Acquire(ctx context.Context) (func(), error) {
	if !l.wait {
		select {
		case l.sem <- struct{}{}:
			return l.release, nil
		default:
			return nil, ErrPoolExhausted
		}
	}

	select {
	case l.sem <- struct{}{}:
		return l.release, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Limiter) release() {
	<-l.sem
}
