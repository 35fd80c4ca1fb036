package fields

import (
	"time"

	"field-marshaller/marshal"
	"field-marshaller/primitive"
)

// DateTimeField formats points in time.
type DateTimeField struct {
	base
	layout string
}

// DateTime formats with layout, RFC 3339 with nanoseconds when empty. Input may be a
// time.Time, an RFC 3339 string or Unix seconds.
func DateTime(layout string, opts ...Option) *DateTimeField {
	if layout == "" {
		layout = time.RFC3339Nano
	}

	return &DateTimeField{
		base:   newBase(primitive.CategoryDatetime|primitive.CategoryTimestamp, opts),
		layout: layout,
	}
}

func (f *DateTimeField) Serialize(value any, _ string, _ any) (any, error) {
	out, err := convertScalar(&f.base, value, primitive.KindTime, MsgInvalidDateTime)
	if out == nil || err != nil {
		return nil, err
	}

	return out.(time.Time).Format(f.layout), nil
}

// TimeDeltaField serializes durations as an integer count of a unit.
type TimeDeltaField struct {
	base
	unit time.Duration
}

// TimeDelta counts whole units, seconds when unit is not positive. Input may be a
// time.Duration, a duration string, integer nanoseconds or float seconds.
func TimeDelta(unit time.Duration, opts ...Option) *TimeDeltaField {
	if unit <= 0 {
		unit = time.Second
	}

	return &TimeDeltaField{
		base: newBase(primitive.CategoryDuration|primitive.CategoryNanoseconds|primitive.CategorySeconds, opts),
		unit: unit,
	}
}

func (f *TimeDeltaField) Serialize(value any, _ string, _ any) (any, error) {
	v, ok := f.prepare(value)
	if !ok {
		return nil, nil
	}

	if v, ok = indirect(v); !ok {
		return nil, nil
	}

	out, err := primitive.Convert(v, primitive.KindDuration, f.categories)
	if err != nil {
		return nil, marshal.NewValidationError(MsgInvalidPeriod)
	}

	return int64(out.(time.Duration) / f.unit), nil
}
