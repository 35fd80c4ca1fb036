package resolve

import (
	"math"
	"reflect"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Keyed is implemented by values that support item lookup by arbitrary key.
type Keyed interface {
	GetItem(key any) (any, bool)
}

// Named is implemented by values that expose members by name.
type Named interface {
	GetAttr(name string) (any, bool)
}

// Accessor is one way of looking a key up inside a value.
// Lookup reports false when the key is absent or obj does not support the access.
type Accessor interface {
	Lookup(obj, key any) (any, bool)
}

// AccessorFunc adapts a plain function to Accessor.
type AccessorFunc func(obj, key any) (any, bool)

func (f AccessorFunc) Lookup(obj, key any) (any, bool) {
	return f(obj, key)
}

// KeyedAccessor performs item lookup: Keyed implementations, maps, slices,
// arrays and strings (integer keys, negative ones counting from the end), and
// structpb values. Strings are indexed by rune and yield a one-rune string.
type KeyedAccessor struct{}

func (KeyedAccessor) Lookup(obj, key any) (any, bool) {
	if isNilPointer(obj) {
		return nil, false
	}

	switch o := obj.(type) {
	case nil:
		return nil, false
	case Keyed:
		return o.GetItem(key)
	case *structpb.Struct:
		name, ok := key.(string)
		if !ok || o == nil {
			return nil, false
		}

		v, ok := o.GetFields()[name]
		if !ok {
			return nil, false
		}

		return v.AsInterface(), true
	case *structpb.ListValue:
		i, ok := intKey(key)
		if !ok || o == nil {
			return nil, false
		}

		values := o.GetValues()
		if i, ok = normalizeIndex(i, len(values)); !ok {
			return nil, false
		}

		return values[i].AsInterface(), true
	}

	rv, ok := indirect(reflect.ValueOf(obj))
	if !ok {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		mk, ok := mapKey(rv.Type().Key(), key)
		if !ok {
			return nil, false
		}

		v := rv.MapIndex(mk)
		if !v.IsValid() {
			return nil, false
		}

		return v.Interface(), true

	case reflect.Slice, reflect.Array:
		i, ok := intKey(key)
		if !ok {
			return nil, false
		}

		if i, ok = normalizeIndex(i, rv.Len()); !ok {
			return nil, false
		}

		return rv.Index(i).Interface(), true

	case reflect.String:
		i, ok := intKey(key)
		if !ok {
			return nil, false
		}

		runes := []rune(rv.String())
		if i, ok = normalizeIndex(i, len(runes)); !ok {
			return nil, false
		}

		return string(runes[i]), true
	}

	return nil, false
}

// NamedAccessor performs member lookup by string name: Named implementations,
// protobuf fields, struct fields and zero-argument methods.
type NamedAccessor struct {
	members *memberCache
}

// NewNamedAccessor returns a NamedAccessor with its own member cache.
func NewNamedAccessor() NamedAccessor {
	return NamedAccessor{members: new(memberCache)}
}

func (a NamedAccessor) Lookup(obj, key any) (any, bool) {
	name, ok := key.(string)
	if !ok || isNilPointer(obj) {
		return nil, false
	}

	switch o := obj.(type) {
	case nil:
		return nil, false
	case Named:
		return o.GetAttr(name)
	case proto.Message:
		return protoField(o, name)
	}

	cache := a.members
	if cache == nil {
		cache = &sharedMembers
	}

	return cache.lookup(reflect.ValueOf(obj), name)
}

// intKey reports the value of an integer key that fits into int.
func intKey(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int8:
		return int(k), true
	case int16:
		return int(k), true
	case int32:
		return int(k), true
	case int64:
		if k < math.MinInt || k > math.MaxInt {
			return 0, false
		}
		return int(k), true
	case uint:
		if k > math.MaxInt {
			return 0, false
		}
		return int(k), true
	case uint8:
		return int(k), true
	case uint16:
		return int(k), true
	case uint32:
		if uint64(k) > math.MaxInt {
			return 0, false
		}
		return int(k), true
	case uint64:
		if k > math.MaxInt {
			return 0, false
		}
		return int(k), true
	}

	return 0, false
}

// isNilPointer reports whether obj is a typed nil pointer, whose methods must
// not be called.
func isNilPointer(obj any) bool {
	rv := reflect.ValueOf(obj)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func normalizeIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}

	return i, i >= 0 && i < n
}

// mapKey converts key to the map key type kt. Keys already assignable are used
// as is; otherwise strings convert to string-kinded key types and integers to
// integer-kinded key types when the value fits.
func mapKey(kt reflect.Type, key any) (reflect.Value, bool) {
	if key == nil {
		return reflect.Value{}, false
	}

	kv := reflect.ValueOf(key)
	if kv.Type().AssignableTo(kt) {
		return kv, true
	}

	switch {
	case kv.Kind() == reflect.String && kt.Kind() == reflect.String:
		return kv.Convert(kt), true

	case isIntKind(kv.Kind()) && isIntKind(kt.Kind()):
		out := reflect.New(kt).Elem()

		switch {
		case isSignedKind(kv.Kind()) && isSignedKind(kt.Kind()):
			if out.OverflowInt(kv.Int()) {
				return reflect.Value{}, false
			}
			out.SetInt(kv.Int())
		case isSignedKind(kv.Kind()):
			if kv.Int() < 0 || out.OverflowUint(uint64(kv.Int())) {
				return reflect.Value{}, false
			}
			out.SetUint(uint64(kv.Int()))
		case isSignedKind(kt.Kind()):
			if kv.Uint() > math.MaxInt64 || out.OverflowInt(int64(kv.Uint())) {
				return reflect.Value{}, false
			}
			out.SetInt(int64(kv.Uint()))
		default:
			if out.OverflowUint(kv.Uint()) {
				return reflect.Value{}, false
			}
			out.SetUint(kv.Uint())
		}

		return out, true
	}

	return reflect.Value{}, false
}

func isIntKind(k reflect.Kind) bool {
	return isSignedKind(k) || (k >= reflect.Uint && k <= reflect.Uint64)
}

func isSignedKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}
