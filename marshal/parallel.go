package marshal

import (
	"context"
	"math"
	"reflect"

	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"field-marshaller/internal/conc"
)

var (
	errSkipped  = errors.New("item skipped after an earlier failure")
	errCanceled = errors.New("item skipped after cancellation")
)

// itemResult is what one pooled item produces.
type itemResult struct {
	one      *Mapping
	failures *FieldErrors
}

// runParallel serializes items on the worker pool and stores each result in its
// own slot. Once an item fails, items with a higher index are skipped, so the
// reported failure is always the lowest failing index.
func (m *Marshaller) runParallel(ctx context.Context, items reflect.Value, table Table, out []*Mapping, failures []*FieldErrors) error {
	pool, err := m.workerPool()
	if err != nil {
		return err
	}

	lowest := atomic.NewInt64(math.MaxInt64)
	futures := make([]*conc.Future[itemResult], len(out))

	for i := range out {
		item := items.Index(i).Interface()

		futures[i] = pool.Submit(func() (itemResult, error) {
			if int64(i) > lowest.Load() {
				return itemResult{}, errSkipped
			}

			if ctx.Err() != nil {
				lowerTo(lowest, i)
				return itemResult{}, errCanceled
			}

			defer func() {
				if r := recover(); r != nil {
					lowerTo(lowest, i)
					panic(r)
				}
			}()

			one, fe, err := m.marshalOne(item, table)
			if err != nil {
				lowerTo(lowest, i)
				return itemResult{}, err
			}

			return itemResult{one: one, failures: fe}, nil
		})
	}

	var (
		first    error
		canceled bool
	)

	for i, f := range futures {
		res, err := f.Await()

		switch {
		case err == nil:
			out[i], failures[i] = res.one, res.failures
			continue
		case errors.Is(err, errSkipped):
			continue
		case errors.Is(err, errCanceled):
			canceled = true
			continue
		case first != nil:
			continue
		}

		if errors.Is(err, conc.ErrTaskPanicked) {
			err = errors.Wrapf(ErrSerializerPanic, "%v", err)
		}

		first = &ItemError{Index: i, Err: err}
	}

	if first != nil {
		return first
	}

	if canceled {
		return errors.Wrap(ctx.Err(), "marshal batch canceled")
	}

	return nil
}

func lowerTo(v *atomic.Int64, i int) {
	for {
		cur := v.Load()
		if int64(i) >= cur || v.CompareAndSwap(cur, int64(i)) {
			return
		}
	}
}

func (m *Marshaller) workerPool() (*conc.Pool[itemResult], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	if m.pool == nil {
		pool, err := conc.NewPool[itemResult](m.opts.workers, conc.WithPreAlloc(m.opts.preAlloc))
		if err != nil {
			return nil, errors.Wrapf(err, "create pool of %d workers", m.opts.workers)
		}

		m.pool = pool
		m.log().Debug("marshal worker pool created",
			zap.Int("workers", pool.Cap()),
			zap.Bool("prealloc", m.opts.preAlloc))
	}

	return m.pool, nil
}
