package fields

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"

	"field-marshaller/marshal"
	"field-marshaller/primitive"
)

const numberCategories = primitive.CategorySafeNumber | primitive.CategoryUnsafeNumber | primitive.CategoryTextNumber

// RawField passes values through unchanged.
type RawField struct{ base }

func Raw(opts ...Option) *RawField {
	return &RawField{base: newBase(primitive.CategoryNone, opts)}
}

func (f *RawField) Serialize(value any, _ string, _ any) (any, error) {
	v, _ := f.prepare(value)
	return v, nil
}

// StrField renders values as strings. It never fails: values without a known
// conversion are formatted with fmt.
type StrField struct{ base }

func Str(opts ...Option) *StrField {
	return &StrField{base: newBase(primitive.CategoryAll, opts)}
}

func (f *StrField) Serialize(value any, _ string, _ any) (any, error) {
	v, ok := f.prepare(value)
	if !ok {
		return nil, nil
	}

	if v, ok = indirect(v); !ok {
		return nil, nil
	}

	if s, ok := v.(string); ok {
		return s, nil
	}

	if out, err := primitive.Convert(v, primitive.KindString, f.categories); err == nil {
		return out, nil
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), nil
	}

	return fmt.Sprint(v), nil
}

// IntField serializes integers as int64.
type IntField struct{ base }

// Int accepts integers, floats (truncated) and numeric strings by default.
// Booleans are rejected unless primitive.CategoryNumericBool is allowed.
func Int(opts ...Option) *IntField {
	return &IntField{base: newBase(numberCategories, opts)}
}

func (f *IntField) Serialize(value any, _ string, _ any) (any, error) {
	return convertScalar(&f.base, value, primitive.KindInt64, MsgInvalidInteger)
}

// FloatField serializes numbers as float64.
type FloatField struct{ base }

func Float(opts ...Option) *FloatField {
	return &FloatField{base: newBase(numberCategories, opts)}
}

func (f *FloatField) Serialize(value any, _ string, _ any) (any, error) {
	return convertScalar(&f.base, value, primitive.KindFloat64, MsgInvalidNumber)
}

// BoolField serializes booleans. Integers 0 and 1 and the words true, false,
// yes, no, on, off are accepted by default.
type BoolField struct{ base }

func Bool(opts ...Option) *BoolField {
	return &BoolField{base: newBase(primitive.CategoryNumericBool|primitive.CategoryTextualBool, opts)}
}

func (f *BoolField) Serialize(value any, _ string, _ any) (any, error) {
	return convertScalar(&f.base, value, primitive.KindBool, MsgInvalidBoolean)
}

// ConstantField always serializes to the same value, whatever the source holds.
type ConstantField struct {
	base
	value any
}

func Constant(value any, opts ...Option) *ConstantField {
	return &ConstantField{base: newBase(primitive.CategoryNone, opts), value: value}
}

func (f *ConstantField) Serialize(_ any, _ string, _ any) (any, error) {
	return f.value, nil
}

func convertScalar(b *base, value any, to primitive.KindEnum, msg string) (any, error) {
	v, ok := b.prepare(value)
	if !ok {
		return nil, nil
	}

	if v, ok = indirect(v); !ok {
		return nil, nil
	}

	out, err := primitive.Convert(v, to, b.categories)
	if err != nil {
		if errors.Is(err, primitive.ErrOutOfRange) && to.IsNumber() {
			return nil, marshal.NewValidationError(MsgTooLarge)
		}

		return nil, marshal.NewValidationError(msg)
	}

	return out, nil
}

// indirect follows pointers. It returns false for nil pointers.
func indirect(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v, v != nil
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	return rv.Interface(), true
}
