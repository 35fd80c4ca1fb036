package resolve

import (
	"reflect"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

//go:generate go tool stringer -type=ShapeEnum -output=shape_string.go

// ShapeEnum classifies source values by the accessors that can look into them.
type ShapeEnum int

const (
	ShapeUnknown ShapeEnum = iota
	ShapeKeyed             // Keyed implementation
	ShapeNamed             // Named implementation
	ShapeStructValue       // *structpb.Struct or *structpb.ListValue
	ShapeProto             // any other protobuf message
	ShapeMap
	ShapeSequence // slice or array
	ShapeStruct
	ShapeNil // nil, nil pointer or nil interface

	// ShapeTotal is a constant that represents the total number of shapes defined
	ShapeTotal = int(iota)
)

// Dispatch classifies obj. Pointers are followed down to the pointee; a value
// that implements one of the capability interfaces or proto.Message is reported
// as such before its reflect kind is considered.
func Dispatch(obj any) ShapeEnum {
	switch obj.(type) {
	case nil:
		return ShapeNil
	case Keyed:
		return ShapeKeyed
	case Named:
		return ShapeNamed
	case *structpb.Struct, *structpb.ListValue:
		return ShapeStructValue
	case proto.Message:
		return ShapeProto
	}

	rv, ok := indirect(reflect.ValueOf(obj))
	if !ok {
		return ShapeNil
	}

	switch rv.Kind() {
	case reflect.Map:
		return ShapeMap
	case reflect.Slice, reflect.Array:
		return ShapeSequence
	case reflect.Struct:
		return ShapeStruct
	default:
		return ShapeUnknown
	}
}

// indirect follows pointers and interfaces. It returns false when it reaches a nil.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}

		rv = rv.Elem()
	}

	return rv, rv.IsValid()
}
