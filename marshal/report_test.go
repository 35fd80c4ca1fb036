package marshal

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFieldErrors(t *testing.T) {
	var none *FieldErrors

	assert.Equal(t, 0, none.Len())
	assert.Nil(t, none.Fields())
	assert.Nil(t, none.Get("x"))
	assert.NoError(t, none.Err())

	fe := newFieldErrors()
	fe.Add("b", "first")
	fe.Add("a", "second")
	fe.Add("b", "third")

	assert.Equal(t, []string{"b", "a"}, fe.Fields())
	assert.Equal(t, []string{"first", "third"}, fe.Get("b"))
	assert.EqualError(t, fe.Err(), "b: first; b: third; a: second")

	msgs := fe.Messages()
	msgs["b"][0] = "changed"
	assert.Equal(t, "first", fe.Get("b")[0])

	data, err := fe.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"b":["first","third"],"a":["second"]}`, string(data))
}

func TestReport(t *testing.T) {
	r := Report{}
	assert.NoError(t, r.Err())
	assert.Empty(t, r.Indices())

	for _, i := range []int{10, 2, 7} {
		fe := newFieldErrors()
		fe.Add("age", "bad")
		r[i] = fe
	}

	assert.Equal(t, []int{2, 7, 10}, r.Indices())
	assert.EqualError(t, r.Err(), "2.age: bad; 7.age: bad; 10.age: bad")

	data, err := sonic.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"2":{"age":["bad"]},"7":{"age":["bad"]},"10":{"age":["bad"]}}`, string(data))

	out, err := yaml.Marshal(r)
	require.NoError(t, err)
	var decoded map[string]map[string][]string
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, map[string]map[string][]string{
		"2":  {"age": {"bad"}},
		"7":  {"age": {"bad"}},
		"10": {"age": {"bad"}},
	}, decoded)

	var order yaml.Node
	require.NoError(t, yaml.Unmarshal(out, &order))
	root := order.Content[0]
	assert.Equal(t, "2", root.Content[0].Value)
	assert.Equal(t, "7", root.Content[2].Value)
	assert.Equal(t, "10", root.Content[4].Value)
}

func TestValidationError(t *testing.T) {
	assert.EqualError(t, NewValidationError(), "validation failed")
	assert.EqualError(t, NewValidationError("a"), "a")
	assert.EqualError(t, NewValidationError("a", "b"), "a; b")

	msgs, ok := DefaultValidationMatcher(NewValidationError())
	assert.True(t, ok)
	assert.Equal(t, []string{"validation failed"}, msgs)
}

func TestItemError(t *testing.T) {
	cause := NewValidationError("x")
	err := &ItemError{Index: 3, Err: cause}

	assert.EqualError(t, err, "item 3: x")
	assert.ErrorIs(t, err, cause)
}
