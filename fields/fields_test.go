package fields

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-marshaller/marshal"
	"field-marshaller/primitive"
	"field-marshaller/resolve"
)

type level int

func (l level) String() string { return [...]string{"low", "high"}[l] }

type color string

func requireValidation(t *testing.T, err error, msgs ...string) {
	t.Helper()

	var ve *marshal.ValidationError
	require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
	assert.Equal(t, msgs, ve.Messages)
}

func TestScalars(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	n := 5

	tests := []struct {
		name  string
		field marshal.Field
		in    any
		want  any
	}{
		{"raw", Raw(), []int{1}, []int{1}},
		{"str from string", Str(), "x", "x"},
		{"str from int", Str(), 42, "42"},
		{"str from float", Str(), 1.5, "1.5"},
		{"str from bool", Str(), true, "true"},
		{"str from stringer enum", Str(), level(1), "high"},
		{"str from string enum", Str(), color("red"), "red"},
		{"str from time", Str(), ts, "2024-05-06T07:08:09Z"},
		{"str from struct", Str(), struct{ A int }{1}, "{1}"},
		{"str from pointer", Str(), &n, "5"},
		{"int from int", Int(), 7, int64(7)},
		{"int from uint8", Int(), uint8(7), int64(7)},
		{"int from float truncates", Int(), 7.9, int64(7)},
		{"int from text", Int(), " 12 ", int64(12)},
		{"int from pointer", Int(), &n, int64(5)},
		{"float from int", Float(), 3, float64(3)},
		{"float from text", Float(), "2.5", 2.5},
		{"bool from bool", Bool(), false, false},
		{"bool from word", Bool(), "yes", true},
		{"bool from int", Bool(), 0, false},
		{"constant ignores input", Constant("v"), 1, "v"},
		{"constant ignores missing", Constant("v"), resolve.NewSentinel(), "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Serialize(tt.in, "key", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalarFailures(t *testing.T) {
	tests := []struct {
		name  string
		field marshal.Field
		in    any
		msg   string
	}{
		{"int from word", Int(), "abc", MsgInvalidInteger},
		{"int from bool", Int(), true, MsgInvalidInteger},
		{"int overflow", Int(), uint64(1 << 63), MsgTooLarge},
		{"int from slice", Int(), []int{1}, MsgInvalidInteger},
		{"float from word", Float(), "abc", MsgInvalidNumber},
		{"bool from 2", Bool(), 2, MsgInvalidBoolean},
		{"bool from word", Bool(), "maybe", MsgInvalidBoolean},
		{"int without text numbers", Int(WithCategories(primitive.CategorySafeNumber)), "1", MsgInvalidInteger},
		{"datetime from word", DateTime(""), "yesterday", MsgInvalidDateTime},
		{"timedelta from word", TimeDelta(0), "soon", MsgInvalidPeriod},
		{"email without at", Email(), "nobody", MsgInvalidEmail},
		{"email with display name", Email(), "Bob <bob@example.com>", MsgInvalidEmail},
		{"email from int", Email(), 3, MsgInvalidEmail},
		{"uuid from word", UUID(), "not-a-uuid", MsgInvalidUUID},
		{"uuid from int", UUID(), 3, MsgInvalidUUID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Serialize(tt.in, "key", nil)
			assert.Nil(t, got)
			requireValidation(t, err, tt.msg)
		})
	}
}

func TestMissingAndNil(t *testing.T) {
	all := map[string]marshal.Field{
		"raw":       Raw(),
		"str":       Str(),
		"int":       Int(),
		"float":     Float(),
		"bool":      Bool(),
		"datetime":  DateTime(""),
		"timedelta": TimeDelta(0),
		"email":     Email(),
		"uuid":      UUID(),
		"list":      List(nil),
		"dict":      Dict(nil),
		"nested":    Nested(marshal.NewTable()),
	}

	for name, f := range all {
		t.Run(name, func(t *testing.T) {
			got, err := f.Serialize(resolve.NewSentinel(), "key", nil)
			require.NoError(t, err)
			assert.Nil(t, got)

			got, err = f.Serialize(nil, "key", nil)
			require.NoError(t, err)
			assert.Nil(t, got)

			assert.False(t, f.LoadOnly())
		})
	}

	var nilTime *time.Time
	got, err := DateTime("").Serialize(nilTime, "key", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDefault(t *testing.T) {
	got, err := Int(WithDefault("12")).Serialize(resolve.NewSentinel(), "key", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)

	_, err = Int(WithDefault("x")).Serialize(resolve.NewSentinel(), "key", nil)
	requireValidation(t, err, MsgInvalidInteger)

	got, err = Str(WithDefault("n/a")).Serialize(nil, "key", nil)
	require.NoError(t, err)
	assert.Nil(t, got, "defaults apply to missing values only")

	assert.True(t, Str(WithLoadOnly()).LoadOnly())
}

func TestTemporal(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 500, time.UTC)

	got, err := DateTime("").Serialize(ts, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06T07:08:09.0000005Z", got)

	got, err = DateTime(time.DateOnly).Serialize(&ts, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", got)

	got, err = DateTime(time.DateTime).Serialize(int64(0), "key", nil)
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01 00:00:00", got)

	got, err = DateTime(time.DateOnly).Serialize("2024-05-06T07:08:09Z", "key", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", got)

	got, err = TimeDelta(0).Serialize(90*time.Second+500*time.Millisecond, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(90), got)

	got, err = TimeDelta(time.Millisecond).Serialize("1.5s", "key", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got)

	got, err = TimeDelta(time.Minute).Serialize(120.0, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestText(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	for _, in := range []any{id, [16]byte(id), id[:], id.String(), "{" + id.String() + "}", &id} {
		got, err := UUID().Serialize(in, "key", nil)
		require.NoError(t, err)
		assert.Equal(t, id.String(), got)
	}

	got, err := Email().Serialize("ada@example.com", "key", nil)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got)

	type address string
	got, err = Email().Serialize(address("bob@example.com"), "key", nil)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got)
}

func TestList(t *testing.T) {
	got, err := List(Int()).Serialize([]any{1, "2", 3.0}, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got)

	got, err = List(nil).Serialize([2]string{"a", "b"}, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)

	_, err = List(Int()).Serialize([]any{1, "x", true}, "key", nil)
	requireValidation(t, err, "1: "+MsgInvalidInteger, "2: "+MsgInvalidInteger)

	_, err = List(Int()).Serialize("abc", "key", nil)
	requireValidation(t, err, MsgInvalidList)

	got, err = List(Int()).Serialize((*[]int)(nil), "key", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = List(Int()).Serialize(&[]int{4}, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(4)}, got)

	boom := errors.New("boom")
	failing := marshal.FieldFunc(func(any, string, any) (any, error) { return nil, boom })
	_, err = List(failing).Serialize([]int{1}, "key", nil)
	assert.ErrorIs(t, err, boom)
}

func TestDict(t *testing.T) {
	got, err := Dict(Int()).Serialize(map[int]string{1: "10", 2: "20"}, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"1": int64(10), "2": int64(20)}, got)

	got, err = Dict(nil).Serialize(map[level]bool{1: true}, "key", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"high": true}, got)

	_, err = Dict(Int()).Serialize(map[string]any{"a": "x"}, "key", nil)
	requireValidation(t, err, "a: "+MsgInvalidInteger)

	_, err = Dict(nil).Serialize([]int{1}, "key", nil)
	requireValidation(t, err, MsgInvalidMapping)

	got, err = Dict(nil).Serialize((*map[string]int)(nil), "key", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Dict(Int()).Serialize(map[string]any{"c": "x", "a": "y", "b": 1}, "key", nil)
	requireValidation(t, err, "a: "+MsgInvalidInteger, "c: "+MsgInvalidInteger)
}

func TestDict_StableMessages(t *testing.T) {
	obj := map[string]any{
		"d": map[string]any{"a": "x", "b": "x", "c": "x", "d": "x", "e": "x", "f": "x", "g": "x"},
	}
	table := marshal.NewTable(marshal.E("d", Dict(Int())))

	_, first, err := marshal.MarshalOne(obj, table, marshal.WithMetrics(false))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, []string{
		"a: " + MsgInvalidInteger, "b: " + MsgInvalidInteger, "c: " + MsgInvalidInteger,
		"d: " + MsgInvalidInteger, "e: " + MsgInvalidInteger, "f: " + MsgInvalidInteger,
		"g: " + MsgInvalidInteger,
	}, first.Get("d"))

	for range 50 {
		_, again, err := marshal.MarshalOne(obj, table, marshal.WithMetrics(false))
		require.NoError(t, err)
		require.Equal(t, first.String(), again.String())
	}
}

func TestNested(t *testing.T) {
	type owner struct {
		Name string
		Age  any
	}

	table := marshal.NewTable(
		marshal.E("name", Str()),
		marshal.E("age", Int()),
	)

	got, err := Nested(table).Serialize(owner{Name: "Ada", Age: 3}, "owner", nil)
	require.NoError(t, err)

	m, ok := got.(*marshal.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "age"}, m.Keys())

	_, err = Nested(table).Serialize(&owner{Name: "Ada", Age: "old"}, "owner", nil)
	requireValidation(t, err, "age: "+MsgInvalidInteger)

	many := List(Nested(table))
	_, err = many.Serialize([]owner{{Age: 1}, {Age: "x"}}, "owners", nil)
	requireValidation(t, err, "1: age: "+MsgInvalidInteger)

	strict := marshal.New(marshal.WithValidationMatcher(func(error) ([]string, bool) { return nil, false }))
	_, err = Nested(table).Using(strict).Serialize(owner{Age: "old"}, "owner", nil)
	assert.ErrorContains(t, err, `serialize field "age"`)
}

func TestNestedInMarshal(t *testing.T) {
	type address struct{ City string }
	type user struct {
		Name    string
		Address address
	}

	table := marshal.NewTable(
		marshal.E("name", Str()),
		marshal.E("address", Nested(marshal.NewTable(marshal.E("city", Str())))),
	)

	out, failures, err := marshal.MarshalOne(user{Name: "Ada", Address: address{City: "Paris"}}, table, marshal.WithMetrics(false))
	require.NoError(t, err)
	assert.Nil(t, failures)

	data, err := out.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada","address":{"city":"Paris"}}`, string(data))
}
