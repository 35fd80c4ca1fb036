package resolve

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// protoField reads a field of a protobuf message by its proto name or JSON name.
// Unset scalar fields read as their zero value, unset messages as nil.
func protoField(m proto.Message, name string) (any, bool) {
	pm := m.ProtoReflect()
	if !pm.IsValid() {
		return nil, false
	}

	fields := pm.Descriptor().Fields()

	fd := fields.ByName(protoreflect.Name(name))
	if fd == nil {
		fd = fields.ByJSONName(name)
	}
	if fd == nil {
		fd = fields.ByTextName(name)
	}
	if fd == nil {
		return nil, false
	}

	if fd.Message() != nil && !fd.IsList() && !fd.IsMap() && !pm.Has(fd) {
		return nil, true
	}

	return protoValue(fd, pm.Get(fd)), true
}

func protoValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch {
	case fd.IsList():
		list := v.List()
		out := make([]any, list.Len())

		for i := range out {
			out[i] = protoScalar(fd, list.Get(i))
		}

		return out

	case fd.IsMap():
		valueFd := fd.MapValue()

		if fd.MapKey().Kind() == protoreflect.StringKind {
			out := make(map[string]any, v.Map().Len())
			v.Map().Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
				out[k.String()] = protoScalar(valueFd, mv)
				return true
			})

			return out
		}

		out := make(map[any]any, v.Map().Len())
		v.Map().Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
			out[k.Interface()] = protoScalar(valueFd, mv)
			return true
		})

		return out
	}

	return protoScalar(fd, v)
}

// protoScalar converts a single protobuf value. Messages stay messages so that
// further path segments can descend into them; enums become their value names.
func protoScalar(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return v.Message().Interface()
	case protoreflect.EnumKind:
		n := v.Enum()
		if ev := fd.Enum().Values().ByNumber(n); ev != nil {
			return string(ev.Name())
		}
		return int32(n)
	default:
		return v.Interface()
	}
}
