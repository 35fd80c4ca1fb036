// Package conc provides a bounded goroutine pool returning typed futures.
package conc

import (
	"github.com/cockroachdb/errors"
	ants "github.com/panjf2000/ants/v2"
)

// ErrTaskPanicked marks errors produced from a recovered task panic.
var ErrTaskPanicked = errors.New("task panicked")

// Pool runs tasks on a fixed number of ants workers.
type Pool[T any] struct {
	inner *ants.Pool
}

// NewPool creates a pool with cap workers.
func NewPool[T any](cap int, opts ...PoolOption) (*Pool[T], error) {
	opt := defaultPoolOption()
	for _, o := range opts {
		o(opt)
	}

	inner, err := ants.NewPool(cap, opt.antsOptions()...)
	if err != nil {
		return nil, errors.Wrap(err, "create ants pool")
	}

	return &Pool[T]{inner: inner}, nil
}

// Submit schedules method and returns its future. A panic inside method is
// recovered and reported through the future as an error marked with ErrTaskPanicked.
func (p *Pool[T]) Submit(method func() (T, error)) *Future[T] {
	future := newFuture[T]()

	err := p.inner.Submit(func() {
		defer close(future.ch)
		defer func() {
			if r := recover(); r != nil {
				future.err = errors.Wrapf(ErrTaskPanicked, "%v", r)
			}
		}()

		future.value, future.err = method()
	})
	if err != nil {
		future.err = errors.Wrap(err, "submit task")
		close(future.ch)
	}

	return future
}

// Cap returns the worker capacity.
func (p *Pool[T]) Cap() int {
	return p.inner.Cap()
}

// Release stops the pool. Pending futures still resolve.
func (p *Pool[T]) Release() {
	p.inner.Release()
}
