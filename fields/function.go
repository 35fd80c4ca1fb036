package fields

import (
	"path"
	"reflect"
	"runtime"

	"github.com/cockroachdb/errors"

	"field-marshaller/primitive"
)

var (
	ErrNotAFunction         = errors.New("provided serializer is not a function")
	ErrUnsupportedSignature = errors.New("function signature is not a recognizable serializer")
	ErrArgumentType         = errors.New("source object does not match the function argument")
)

var errorType = reflect.TypeFor[error]()

// FunctionField computes its output from the whole source object.
type FunctionField struct {
	base
	fn      reflect.Value
	arg     reflect.Type
	name    string
	hasBool bool
	hasErr  bool
}

// Function wraps fn, which must have one of the shapes:
//   - func(src T) R
//   - func(src T) (R, bool)
//   - func(src T) (R, error)
//   - func(src T) (R, bool, error)
//
// A false bool means "no value": the WithDefault value or nil is serialized.
// A returned error is passed on as is, so validation failures are recorded and
// other errors abort the call.
func Function(fn any, opts ...Option) (*FunctionField, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return nil, errors.Wrapf(ErrNotAFunction, "%T", fn)
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.IsVariadic() {
		return nil, errors.Wrapf(ErrUnsupportedSignature, "%s", fnType)
	}

	f := &FunctionField{
		base: newBase(primitive.CategoryNone, opts),
		fn:   fnVal,
		arg:  fnType.In(0),
		name: funcName(fnVal),
	}

	switch fnType.NumOut() {
	default:
		return nil, errors.Wrapf(ErrUnsupportedSignature, "%s", fnType)

	case 1:

	case 2:
		switch last := fnType.Out(1); {
		default:
			return nil, errors.Wrapf(ErrUnsupportedSignature, "%s", fnType)
		case last.Kind() == reflect.Bool:
			f.hasBool = true
		case isError(last):
			f.hasErr = true
		}

	case 3:
		if fnType.Out(1).Kind() != reflect.Bool || !isError(fnType.Out(2)) {
			return nil, errors.Wrapf(ErrUnsupportedSignature, "%s", fnType)
		}

		f.hasBool = true
		f.hasErr = true
	}

	return f, nil
}

// MustFunction is like Function but panics on an unsupported fn.
func MustFunction(fn any, opts ...Option) *FunctionField {
	f, err := Function(fn, opts...)
	if err != nil {
		panic(err)
	}

	return f
}

// Name returns the short name of the wrapped function.
func (f *FunctionField) Name() string {
	return f.name
}

func (f *FunctionField) Serialize(_ any, _ string, obj any) (any, error) {
	arg, err := argument(obj, f.arg)
	if err != nil {
		return nil, errors.Wrapf(err, "call %s", f.name)
	}

	outs := f.fn.Call([]reflect.Value{arg})

	if f.hasErr {
		if err := errorOf(outs[len(outs)-1]); err != nil {
			return nil, err
		}
	}

	if f.hasBool && !outs[1].Bool() {
		if f.hasDefault {
			return f.def, nil
		}

		return nil, nil
	}

	return outs[0].Interface(), nil
}

// argument adapts obj to the parameter type: values are passed as is, through a
// pointer dereference, or copied behind a new pointer.
func argument(obj any, typ reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() {
		switch typ.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(typ), nil
		}

		return reflect.Value{}, errors.Wrapf(ErrArgumentType, "nil for %s", typ)
	}

	switch {
	case rv.Type().AssignableTo(typ):
		return rv, nil
	case rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Type().AssignableTo(typ):
		return rv.Elem(), nil
	case typ.Kind() == reflect.Pointer && rv.Type().AssignableTo(typ.Elem()):
		ptr := reflect.New(typ.Elem())
		ptr.Elem().Set(rv)
		return ptr, nil
	}

	return reflect.Value{}, errors.Wrapf(ErrArgumentType, "%s for %s", rv.Type(), typ)
}

func funcName(fn reflect.Value) string {
	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return fn.Type().String()
	}

	_, name := path.Split(rf.Name())

	return name
}

func errorOf(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
	}

	return v.Interface().(error)
}

func isError(t reflect.Type) bool {
	return t != nil && t.Implements(errorType)
}
