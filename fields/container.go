package fields

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"field-marshaller/marshal"
	"field-marshaller/primitive"
)

// ListField serializes every element of a slice or array with an inner field.
type ListField struct {
	base
	inner marshal.Field
}

// List serializes elements with inner, or passes them through when inner is nil.
// Element failures are reported as "index: message".
func List(inner marshal.Field, opts ...Option) *ListField {
	if inner == nil {
		inner = Raw()
	}

	return &ListField{base: newBase(primitive.CategoryNone, opts), inner: inner}
}

func (f *ListField) Serialize(value any, key string, obj any) (any, error) {
	v, ok := f.prepare(value)
	if !ok {
		return nil, nil
	}

	v, ok = indirect(v)
	if !ok {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, marshal.NewValidationError(MsgInvalidList)
	}

	var (
		out  = make([]any, rv.Len())
		msgs []string
	)

	for i := range out {
		item, err := f.inner.Serialize(rv.Index(i).Interface(), key, obj)
		if err != nil {
			failed, ok := marshal.DefaultValidationMatcher(err)
			if !ok {
				return nil, errors.Wrapf(err, "element %d", i)
			}

			msgs = append(msgs, prefixed(strconv.Itoa(i), failed)...)
			continue
		}

		out[i] = item
	}

	if len(msgs) > 0 {
		return nil, marshal.NewValidationError(msgs...)
	}

	return out, nil
}

// DictField serializes maps into map[string]any, formatting keys as strings.
type DictField struct {
	base
	values marshal.Field
}

// Dict serializes map values with values, or passes them through when values is nil.
// Value failures are reported as "key: message".
func Dict(values marshal.Field, opts ...Option) *DictField {
	if values == nil {
		values = Raw()
	}

	return &DictField{base: newBase(primitive.CategoryAll, opts), values: values}
}

func (f *DictField) Serialize(value any, key string, obj any) (any, error) {
	v, ok := f.prepare(value)
	if !ok {
		return nil, nil
	}

	v, ok = indirect(v)
	if !ok {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, marshal.NewValidationError(MsgInvalidMapping)
	}

	entries := make([]dictEntry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, dictEntry{name: f.keyString(iter.Key().Interface()), value: iter.Value()})
	}

	// Keys are visited in sorted order.
	slices.SortStableFunc(entries, func(a, b dictEntry) int {
		return cmp.Compare(a.name, b.name)
	})

	var (
		out  = make(map[string]any, len(entries))
		msgs []string
	)

	for _, e := range entries {
		name := e.name

		item, err := f.values.Serialize(e.value.Interface(), key, obj)
		if err != nil {
			failed, ok := marshal.DefaultValidationMatcher(err)
			if !ok {
				return nil, errors.Wrapf(err, "key %q", name)
			}

			msgs = append(msgs, prefixed(name, failed)...)
			continue
		}

		out[name] = item
	}

	if len(msgs) > 0 {
		return nil, marshal.NewValidationError(msgs...)
	}

	return out, nil
}

type dictEntry struct {
	name  string
	value reflect.Value
}

func (f *DictField) keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}

	if s, err := primitive.Convert(k, primitive.KindString, f.categories); err == nil {
		return s.(string)
	}

	return fmt.Sprint(k)
}

// NestedField serializes a sub-object with its own table.
type NestedField struct {
	base
	table      marshal.Table
	marshaller *marshal.Marshaller
}

// Nested serializes the value with table into a *marshal.Mapping. Validation
// failures inside are reported as "field: message".
func Nested(table marshal.Table, opts ...Option) *NestedField {
	return &NestedField{
		base:       newBase(primitive.CategoryNone, opts),
		table:      table,
		marshaller: marshal.New(),
	}
}

// Using returns a copy of the field serializing through m, which carries the
// caller's validation matcher and resolver.
func (f *NestedField) Using(m *marshal.Marshaller) *NestedField {
	cp := *f
	cp.marshaller = m

	return &cp
}

func (f *NestedField) Serialize(value any, _ string, _ any) (any, error) {
	v, ok := f.prepare(value)
	if !ok {
		return nil, nil
	}

	out, failures, err := f.marshaller.MarshalOne(v, f.table)
	if err != nil {
		return nil, err
	}

	if failures != nil {
		var msgs []string
		for _, name := range failures.Fields() {
			msgs = append(msgs, prefixed(name, failures.Get(name))...)
		}

		return nil, marshal.NewValidationError(msgs...)
	}

	return out, nil
}

func prefixed(prefix string, msgs []string) []string {
	out := make([]string, len(msgs))
	for i, msg := range msgs {
		out[i] = prefix + ": " + msg
	}

	return out
}
