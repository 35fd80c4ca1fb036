package marshal

import (
	"github.com/samber/lo"
)

// Field serializes one output entry.
//
// Serialize receives the value resolved for key in obj, or the call's sentinel
// when nothing was found (see resolve.IsSentinel). It returns the output value,
// a validation failure to be recorded, or any other error to abort the call.
type Field interface {
	LoadOnly() bool
	Serialize(value any, key string, obj any) (any, error)
}

// Renamer is implemented by fields that may ask for a different output key.
// A non-empty DumpTo is rejected with ErrRenameUnsupported.
type Renamer interface {
	DumpTo() string
}

// FieldFunc adapts a function to a dump-only Field.
type FieldFunc func(value any, key string, obj any) (any, error)

func (f FieldFunc) LoadOnly() bool { return false }

func (f FieldFunc) Serialize(value any, key string, obj any) (any, error) {
	return f(value, key, obj)
}

// Entry binds an output name to its field. The name is also the lookup path.
type Entry struct {
	Name  string
	Field Field
}

// Table is the ordered list of entries of a schema. It is read-only during a call.
type Table []Entry

// NewTable builds a table from entries, keeping their order.
func NewTable(entries ...Entry) Table {
	return Table(entries)
}

// E is a shorthand for Entry{Name: name, Field: field}.
func E(name string, field Field) Entry {
	return Entry{Name: name, Field: field}
}

// Names returns the entry names in order.
func (t Table) Names() []string {
	return lo.Map(t, func(e Entry, _ int) string {
		return e.Name
	})
}

// DumpNames returns the names of the entries that appear in output, in order.
func (t Table) DumpNames() []string {
	return lo.FilterMap(t, func(e Entry, _ int) (string, bool) {
		return e.Name, !e.Field.LoadOnly()
	})
}

// Lookup returns the field registered under name.
func (t Table) Lookup(name string) (Field, bool) {
	e, ok := lo.Find(t, func(e Entry) bool {
		return e.Name == name
	})

	return e.Field, ok
}

// renamed returns the first entry whose field asks for another output key.
func (t Table) renamed() (Entry, bool) {
	return lo.Find(t, func(e Entry) bool {
		r, ok := e.Field.(Renamer)
		return ok && r.DumpTo() != ""
	})
}
