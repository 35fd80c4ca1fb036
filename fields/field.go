package fields

import (
	"field-marshaller/primitive"
	"field-marshaller/resolve"
)

// base carries the options shared by every field.
type base struct {
	loadOnly   bool
	def        any
	hasDefault bool
	categories primitive.CategoryEnum
}

// Option configures a field.
type Option func(b *base)

// WithLoadOnly marks the field as load-only: it is skipped when dumping.
func WithLoadOnly() Option {
	return func(b *base) {
		b.loadOnly = true
	}
}

// WithDefault sets the value serialized when the name cannot be resolved.
func WithDefault(v any) Option {
	return func(b *base) {
		b.def = v
		b.hasDefault = true
	}
}

// WithCategories replaces the conversions a scalar field may apply to its input.
func WithCategories(categories primitive.CategoryEnum) Option {
	return func(b *base) {
		b.categories = categories
	}
}

func newBase(categories primitive.CategoryEnum, opts []Option) base {
	b := base{categories: categories}
	for _, opt := range opts {
		opt(&b)
	}

	return b
}

func (b *base) LoadOnly() bool {
	return b.loadOnly
}

// prepare substitutes the default for a missing value. It returns false when the
// output is nil without further work.
func (b *base) prepare(value any) (any, bool) {
	if resolve.IsSentinel(value) {
		if !b.hasDefault {
			return nil, false
		}

		value = b.def
	}

	return value, value != nil
}
