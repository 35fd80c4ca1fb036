package marshal

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// FieldErrors holds the validation messages of one object, per field name in the
// order the failures happened. A nil *FieldErrors means no failures.
type FieldErrors struct {
	names    []string
	messages map[string][]string
}

func newFieldErrors() *FieldErrors {
	return &FieldErrors{messages: make(map[string][]string, 1)}
}

// Add appends messages to the entry of name, creating it if needed.
func (fe *FieldErrors) Add(name string, messages ...string) {
	if _, ok := fe.messages[name]; !ok {
		fe.names = append(fe.names, name)
	}

	fe.messages[name] = append(fe.messages[name], messages...)
}

// Get returns the messages recorded for name.
func (fe *FieldErrors) Get(name string) []string {
	if fe == nil {
		return nil
	}

	return fe.messages[name]
}

// Fields returns the failed field names in order.
func (fe *FieldErrors) Fields() []string {
	if fe == nil {
		return nil
	}

	return fe.names
}

func (fe *FieldErrors) Len() int {
	if fe == nil {
		return 0
	}

	return len(fe.names)
}

// Messages returns a copy of the entries as a plain map.
func (fe *FieldErrors) Messages() map[string][]string {
	if fe == nil {
		return nil
	}

	return lo.MapValues(fe.messages, func(msgs []string, _ string) []string {
		return slices.Clone(msgs)
	})
}

// String renders "field: message" parts joined by "; ".
func (fe *FieldErrors) String() string {
	var parts []string

	for _, name := range fe.Fields() {
		for _, msg := range fe.messages[name] {
			parts = append(parts, name+": "+msg)
		}
	}

	return strings.Join(parts, "; ")
}

// Err returns the failures as a single error, or nil when there are none.
func (fe *FieldErrors) Err() error {
	if fe.Len() == 0 {
		return nil
	}

	return errors.New(fe.String())
}

func (fe *FieldErrors) MarshalJSON() ([]byte, error) {
	m := NewMapping(fe.Len())
	for _, name := range fe.Fields() {
		m.Set(name, fe.messages[name])
	}

	return m.MarshalJSON()
}

func (fe *FieldErrors) MarshalYAML() (any, error) {
	m := NewMapping(fe.Len())
	for _, name := range fe.Fields() {
		m.Set(name, fe.messages[name])
	}

	return m.MarshalYAML()
}

// Report maps batch item indices to their validation failures. Items without
// failures have no entry.
type Report map[int]*FieldErrors

// Indices returns the failed indices in ascending order.
func (r Report) Indices() []int {
	indices := lo.Keys(r)
	slices.Sort(indices)

	return indices
}

// Range calls fn for each entry in ascending index order until fn returns false.
func (r Report) Range(fn func(index int, fe *FieldErrors) bool) {
	for _, i := range r.Indices() {
		if !fn(i, r[i]) {
			return
		}
	}
}

// String renders "index.field: message" parts in ascending index order.
func (r Report) String() string {
	var parts []string

	r.Range(func(index int, fe *FieldErrors) bool {
		prefix := strconv.Itoa(index) + "."
		for _, name := range fe.Fields() {
			for _, msg := range fe.Get(name) {
				parts = append(parts, prefix+name+": "+msg)
			}
		}

		return true
	})

	return strings.Join(parts, "; ")
}

// Err returns the failures as a single error, or nil when there are none.
func (r Report) Err() error {
	if len(r) == 0 {
		return nil
	}

	return errors.New(r.String())
}

// MarshalJSON encodes the report as an object keyed by index, ascending.
func (r Report) MarshalJSON() ([]byte, error) {
	return r.ordered().MarshalJSON()
}

func (r Report) MarshalYAML() (any, error) {
	return r.ordered().MarshalYAML()
}

func (r Report) ordered() *Mapping {
	m := NewMapping(len(r))
	r.Range(func(index int, fe *FieldErrors) bool {
		m.Set(strconv.Itoa(index), fe)
		return true
	})

	return m
}
