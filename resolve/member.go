package resolve

import (
	"reflect"
	"sync"
)

// MemberTag is the struct tag consulted before the json tag when matching names.
const MemberTag = "marshal"

type memberKindEnum int

const (
	memberNone memberKindEnum = iota
	memberField
	memberMethod
)

// member is the cached outcome of matching a name against a type.
type member struct {
	kind   memberKindEnum
	index  []int // field index path inside the dereferenced struct
	method int   // method index in the method set of the looked-up type
}

type memberKey struct {
	typ  reflect.Type
	name string
}

// memberCache remembers name matches per (type, name). Entries are never evicted.
type memberCache struct {
	entries sync.Map // memberKey -> member
}

var sharedMembers memberCache

func (c *memberCache) lookup(rv reflect.Value, name string) (any, bool) {
	if !rv.IsValid() {
		return nil, false
	}

	key := memberKey{typ: rv.Type(), name: name}

	var m member
	if cached, ok := c.entries.Load(key); ok {
		m = cached.(member)
	} else {
		m = matchMember(rv.Type(), name)
		c.entries.Store(key, m)
	}

	switch m.kind {
	case memberField:
		sv, ok := indirect(rv)
		if !ok {
			return nil, false
		}

		fv, err := sv.FieldByIndexErr(m.index)
		if err != nil || !fv.CanInterface() {
			return nil, false
		}

		return fv.Interface(), true

	case memberMethod:
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, false
		}

		return rv.Method(m.method).Call(nil)[0].Interface(), true
	}

	return nil, false
}

// matchMember resolves name against typ. Fields of the dereferenced struct are
// tried first: exact name, MemberTag, json tag, folded name. Then methods of typ
// taking no arguments and returning one value: exact name, folded name.
func matchMember(typ reflect.Type, name string) member {
	if idx, ok := matchField(typ, name); ok {
		return member{kind: memberField, index: idx}
	}

	if i, ok := matchMethod(typ, name); ok {
		return member{kind: memberMethod, method: i}
	}

	return member{}
}

func matchField(typ reflect.Type, name string) ([]int, bool) {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct || name == "" {
		return nil, false
	}

	// 1) exact exported name
	if sf, ok := typ.FieldByName(name); ok && sf.IsExported() {
		return sf.Index, true
	}

	visible := exportedFields(typ)

	// 2) marshal tag
	for _, sf := range visible {
		if tagName(sf.Tag.Get(MemberTag)) == name {
			return sf.Index, true
		}
	}

	// 3) json tag
	for _, sf := range visible {
		if tagName(sf.Tag.Get("json")) == name {
			return sf.Index, true
		}
	}

	// 4) folded
	folded := foldName(name)
	for _, sf := range visible {
		if foldName(sf.Name) == folded {
			return sf.Index, true
		}
	}

	return nil, false
}

// exportedFields lists exported fields including promoted ones, outer first.
func exportedFields(typ reflect.Type) []reflect.StructField {
	all := reflect.VisibleFields(typ)
	out := make([]reflect.StructField, 0, len(all))

	for _, sf := range all {
		if sf.IsExported() {
			out = append(out, sf)
		}
	}

	return out
}

func matchMethod(typ reflect.Type, name string) (int, bool) {
	if typ.Kind() == reflect.Interface {
		return 0, false
	}

	if m, ok := typ.MethodByName(name); ok && isGetter(m.Type) {
		return m.Index, true
	}

	folded := foldName(name)
	for i := 0; i < typ.NumMethod(); i++ {
		m := typ.Method(i)
		if isGetter(m.Type) && foldName(m.Name) == folded {
			return i, true
		}
	}

	return 0, false
}

var errorType = reflect.TypeFor[error]()

// isGetter reports whether a method type, receiver included, takes no arguments
// and returns exactly one value. Methods returning only an error, such as Close,
// are actions rather than getters.
func isGetter(mt reflect.Type) bool {
	return mt.NumIn() == 1 && mt.NumOut() == 1 && !mt.IsVariadic() && mt.Out(0) != errorType
}
