package resolve

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"field-marshaller/internal/log"
)

// Resolver looks keys up inside source objects. The zero value is not usable;
// create one with NewResolver. A Resolver is safe for concurrent use.
type Resolver struct {
	accessors []Accessor // string path segments, tried in order
	indexers  []Accessor // integer keys, tried in order
	logger    *zap.Logger
}

type Option func(*Resolver)

// WithAccessors replaces the chain tried for every string path segment.
// The default chain is KeyedAccessor followed by NamedAccessor.
func WithAccessors(accessors ...Accessor) Option {
	return func(r *Resolver) {
		r.accessors = accessors
	}
}

// WithIndexAccessors replaces the chain tried for integer keys.
// The default chain is KeyedAccessor alone.
func WithIndexAccessors(accessors ...Accessor) Option {
	return func(r *Resolver) {
		r.indexers = accessors
	}
}

// WithLogger sets the logger used for debug events. The global logger is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		accessors: []Accessor{KeyedAccessor{}, NamedAccessor{}},
		indexers:  []Accessor{KeyedAccessor{}},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

var defaultResolver = NewResolver()

// Default returns the resolver used by the package-level Resolve.
func Default() *Resolver {
	return defaultResolver
}

// Resolve looks key up in obj with the default resolver.
func Resolve(key, obj, def any) any {
	return defaultResolver.Resolve(key, obj, def)
}

// Supported reports whether key is an integer or a string. Other keys resolve to nil.
func Supported(key any) bool {
	switch key.(type) {
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}

	return false
}

// Resolve returns the value found under key in obj, or def when any step of the
// lookup fails. Integer keys use the index chain once. String keys are split on
// Separator and every segment walks one level deeper through the accessor chain.
// Keys of other kinds resolve to nil.
func (r *Resolver) Resolve(key, obj, def any) any {
	if path, ok := key.(string); ok {
		return r.resolvePath(path, obj, def)
	}

	if Supported(key) {
		if v, ok := lookup(r.indexers, obj, key); ok {
			return v
		}

		return def
	}

	if ce := r.log().Check(zapcore.DebugLevel, "unsupported lookup key"); ce != nil {
		ce.Write(zap.Any("key", key), zap.Stringer("shape", Dispatch(obj)))
	}

	return nil
}

// ResolvePath is Resolve for an already parsed path.
func (r *Resolver) ResolvePath(path Path, obj, def any) any {
	cur := obj

	for _, seg := range path.Segments {
		v, ok := lookup(r.accessors, cur, seg)
		if !ok {
			return def
		}

		cur = v
	}

	return cur
}

func (r *Resolver) resolvePath(path string, obj, def any) any {
	cur := obj

	for {
		seg, rest, more := strings.Cut(path, Separator)

		v, ok := lookup(r.accessors, cur, seg)
		if !ok {
			return def
		}

		cur = v

		if !more {
			return cur
		}

		path = rest
	}
}

func lookup(chain []Accessor, obj, key any) (any, bool) {
	for _, a := range chain {
		if v, ok := a.Lookup(obj, key); ok {
			return v, true
		}
	}

	return nil, false
}

func (r *Resolver) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}

	return log.L()
}
