package marshal

import (
	"bytes"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Mapping is the ordered output of one object: field names to serialized values
// in table order. Setting an existing name replaces its value in place.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping creates an empty mapping with room for size entries.
func NewMapping(size int) *Mapping {
	return &Mapping{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

// Set stores v under name.
func (m *Mapping) Set(name string, v any) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}

	m.values[name] = v
}

// Get returns the value stored under name.
func (m *Mapping) Get(name string) (any, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.values[name]

	return v, ok
}

// Keys returns the names in insertion order. The slice must not be modified.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}

	return m.keys
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (m *Mapping) Range(fn func(name string, v any) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// ToMap copies the entries into a plain map, losing the order.
func (m *Mapping) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(name string, v any) bool {
		out[name] = v
		return true
	})

	return out
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := sonic.Marshal(k)
		if err != nil {
			return nil, errors.Wrapf(err, "encode key %q", k)
		}

		val, err := sonic.Marshal(m.values[k])
		if err != nil {
			return nil, errors.Wrapf(err, "encode value of %q", k)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes the mapping as a YAML mapping node in insertion order.
func (m *Mapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range m.Keys() {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, errors.Wrapf(err, "encode value of %q", k)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}

	return node, nil
}
