package marshal

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"field-marshaller/internal/conc"
	"field-marshaller/internal/log"
	"field-marshaller/internal/metrics"
	"field-marshaller/resolve"
)

// Result is the outcome of Marshal.
//
// In single mode One and Errors are set and Report is empty. In batch mode Many
// holds one mapping per input item and Report holds the failures of the items
// that had any.
type Result struct {
	One    *Mapping
	Errors *FieldErrors
	Many   []*Mapping
	Report Report
}

// Valid returns true if no field failed validation.
func (r *Result) Valid() bool {
	return r.Errors.Len() == 0 && len(r.Report) == 0
}

// Marshaller serializes objects through field tables. It is safe for concurrent
// use. A Marshaller created with WithWorkers(n > 1) owns a worker pool and should
// be closed when no longer needed.
type Marshaller struct {
	opts options

	mu     sync.Mutex
	pool   *conc.Pool[itemResult]
	closed bool
}

// New creates a Marshaller.
func New(opts ...Option) *Marshaller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Marshaller{opts: o}
}

// MarshalOne serializes obj with table.
//
// Entries are processed in order. Load-only fields are skipped. Each name is
// resolved against obj with a sentinel default private to this call, and the
// field's Serialize output is stored under the name. Recognized validation
// failures are collected into the returned *FieldErrors, which stays nil when
// none happened; the failed name gets no output entry. Any other error aborts
// the call, annotated with the field name.
func (m *Marshaller) MarshalOne(obj any, table Table) (*Mapping, *FieldErrors, error) {
	if err := m.checkRename(table); err != nil {
		return nil, nil, err
	}

	return m.marshalOne(obj, table)
}

func (m *Marshaller) marshalOne(obj any, table Table) (*Mapping, *FieldErrors, error) {
	var (
		missing    = resolve.NewSentinel()
		out        = NewMapping(len(table))
		failures   *FieldErrors
		serialized int
	)

	for _, e := range table {
		if e.Field.LoadOnly() {
			if m.opts.metrics {
				metrics.LoadOnlySkipped.Inc()
			}
			continue
		}

		value := m.opts.resolver.Resolve(e.Name, obj, missing)

		v, err := e.Field.Serialize(value, e.Name, obj)
		if err != nil {
			msgs, ok := m.opts.matcher(err)
			if !ok {
				return nil, nil, errors.Wrapf(err, "serialize field %q", e.Name)
			}

			if failures == nil {
				failures = newFieldErrors()
			}
			failures.Add(e.Name, msgs...)

			if m.opts.metrics {
				metrics.ValidationFailures.WithLabelValues(e.Name).Inc()
			}
			continue
		}

		out.Set(e.Name, v)
		serialized++
	}

	if m.opts.metrics && serialized > 0 {
		metrics.FieldsSerialized.Add(float64(serialized))
	}

	return out, failures, nil
}

// Marshal serializes input with table. With many set, input must be a slice or
// array and every item is serialized in index order; a non-validation error in
// any item aborts the whole batch with an *ItemError. Cancellation of ctx is
// observed between items.
func (m *Marshaller) Marshal(ctx context.Context, input any, table Table, many bool) (*Result, error) {
	if err := m.checkRename(table); err != nil {
		return nil, err
	}

	if !many {
		one, failures, err := m.marshalOne(input, table)
		if err != nil {
			return nil, err
		}

		return &Result{One: one, Errors: failures, Report: Report{}}, nil
	}

	items := reflect.ValueOf(input)
	if !items.IsValid() || (items.Kind() != reflect.Slice && items.Kind() != reflect.Array) {
		return nil, errors.Wrapf(ErrNotSequence, "got %T", input)
	}

	return m.marshalMany(ctx, items, table)
}

func (m *Marshaller) marshalMany(ctx context.Context, items reflect.Value, table Table) (*Result, error) {
	n := items.Len()
	res := &Result{Many: make([]*Mapping, n), Report: Report{}}
	failures := make([]*FieldErrors, n)
	start := time.Now()

	logger := m.log()
	logger.Debug("marshal batch started", zap.Int("items", n), zap.Int("fields", len(table)), zap.Int("workers", m.opts.workers))

	var err error
	if m.opts.workers > 1 && n > 1 {
		err = m.runParallel(ctx, items, table, res.Many, failures)
	} else {
		err = m.runSequential(ctx, items, table, res.Many, failures)
	}

	for i, fe := range failures {
		if fe != nil {
			res.Report[i] = fe
		}
	}

	if m.opts.metrics {
		metrics.BatchItems.Add(float64(n))
		metrics.BatchFailedItems.Add(float64(len(res.Report)))
		metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		logger.Warn("marshal batch aborted", zap.Int("items", n), zap.Error(err))
		return nil, err
	}

	logger.Debug("marshal batch finished", zap.Int("items", n), zap.Int("failed", len(res.Report)), zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

func (m *Marshaller) runSequential(ctx context.Context, items reflect.Value, table Table, out []*Mapping, failures []*FieldErrors) error {
	for i := range out {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "marshal batch canceled before item %d", i)
		}

		one, fe, err := m.marshalOne(items.Index(i).Interface(), table)
		if err != nil {
			return &ItemError{Index: i, Err: err}
		}

		out[i] = one
		failures[i] = fe
	}

	return nil
}

func (m *Marshaller) checkRename(table Table) error {
	if m.opts.prefix != "" {
		return errors.Wrapf(ErrRenameUnsupported, "prefix %q", m.opts.prefix)
	}

	if e, ok := table.renamed(); ok {
		return errors.Wrapf(ErrRenameUnsupported, "field %q dumps to %q", e.Name, e.Field.(Renamer).DumpTo())
	}

	return nil
}

// Close releases the worker pool. Sequential calls keep working afterwards;
// parallel batches fail with ErrClosed.
func (m *Marshaller) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool != nil {
		m.pool.Release()
		m.pool = nil
	}

	m.closed = true
}

func (m *Marshaller) log() *zap.Logger {
	if m.opts.logger != nil {
		return m.opts.logger
	}

	return log.L()
}

// Marshal serializes input with table using a Marshaller configured by opts.
func Marshal(input any, table Table, many bool, opts ...Option) (*Result, error) {
	m := New(opts...)
	defer m.Close()

	return m.Marshal(context.Background(), input, table, many)
}

// MarshalOne serializes a single object using a Marshaller configured by opts.
func MarshalOne(obj any, table Table, opts ...Option) (*Mapping, *FieldErrors, error) {
	return New(opts...).MarshalOne(obj, table)
}
