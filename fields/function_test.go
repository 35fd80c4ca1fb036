package fields

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-marshaller/marshal"
)

type account struct {
	First, Last string
	Balance     int
}

func fullName(a account) string { return a.First + " " + a.Last }

func initials(a *account) (string, bool) {
	if a.First == "" {
		return "", false
	}
	return a.First[:1] + a.Last[:1], true
}

func balance(a account) (int, error) {
	if a.Balance < 0 {
		return 0, marshal.NewValidationError("negative balance")
	}
	return a.Balance, nil
}

func lookupOwner(a account) (string, bool, error) {
	if a.Last == "broken" {
		return "", false, errors.New("owner service unavailable")
	}
	return strings.ToUpper(a.Last), a.Last != "", nil
}

func TestFunction_Shapes(t *testing.T) {
	acc := account{First: "Ada", Last: "Lovelace", Balance: 10}

	tests := []struct {
		name string
		fn   any
		obj  any
		want any
	}{
		{"plain", fullName, acc, "Ada Lovelace"},
		{"plain from pointer", fullName, &acc, "Ada Lovelace"},
		{"with bool", initials, acc, "AL"},
		{"with bool from pointer", initials, &acc, "AL"},
		{"bool false", initials, account{}, nil},
		{"with error", balance, acc, 10},
		{"with bool and error", lookupOwner, acc, "LOVELACE"},
		{"with bool and error false", lookupOwner, account{}, nil},
		{"closure", func(a account) int { return a.Balance * 2 }, acc, 20},
		{"any argument", func(v any) any { return v }, 1, 1},
		{"nil pointer argument", func(a *account) bool { return a == nil }, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Function(tt.fn)
			require.NoError(t, err)

			got, err := f.Serialize(nil, "key", tt.obj)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFunction_Errors(t *testing.T) {
	_, err := balance(account{Balance: -1})
	require.Error(t, err)

	f := MustFunction(balance)
	_, err = f.Serialize(nil, "key", account{Balance: -1})
	msgs, ok := marshal.DefaultValidationMatcher(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"negative balance"}, msgs)

	_, err = MustFunction(lookupOwner).Serialize(nil, "key", account{Last: "broken"})
	assert.EqualError(t, err, "owner service unavailable")

	_, err = f.Serialize(nil, "key", "not an account")
	assert.ErrorIs(t, err, ErrArgumentType)
	assert.ErrorContains(t, err, "balance")

	_, err = f.Serialize(nil, "key", nil)
	assert.ErrorIs(t, err, ErrArgumentType)
}

func TestFunction_Default(t *testing.T) {
	f := MustFunction(initials, WithDefault("??"))

	got, err := f.Serialize(nil, "key", account{})
	require.NoError(t, err)
	assert.Equal(t, "??", got)
}

func TestFunction_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		fn     any
		target error
	}{
		{"not a function", 42, ErrNotAFunction},
		{"nil function", (func(int) int)(nil), ErrNotAFunction},
		{"no arguments", func() int { return 1 }, ErrUnsupportedSignature},
		{"two arguments", func(a, b int) int { return a }, ErrUnsupportedSignature},
		{"variadic", func(a ...int) int { return 0 }, ErrUnsupportedSignature},
		{"no results", func(int) {}, ErrUnsupportedSignature},
		{"bad second result", func(int) (int, string) { return 0, "" }, ErrUnsupportedSignature},
		{"bad third result", func(int) (int, bool, string) { return 0, false, "" }, ErrUnsupportedSignature},
		{"four results", func(int) (int, bool, error, error) { return 0, false, nil, nil }, ErrUnsupportedSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Function(tt.fn)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	assert.Panics(t, func() { MustFunction("nope") })
}

func TestFunction_Name(t *testing.T) {
	assert.Equal(t, "fields.fullName", MustFunction(fullName).Name())
}

func TestFunction_InMarshal(t *testing.T) {
	table := marshal.NewTable(
		marshal.E("full_name", MustFunction(fullName)),
		marshal.E("balance", MustFunction(balance)),
	)

	res, err := marshal.Marshal([]account{{First: "A", Last: "B", Balance: 1}, {Balance: -5}}, table, true, marshal.WithMetrics(false))
	require.NoError(t, err)

	v, _ := res.Many[0].Get("full_name")
	assert.Equal(t, "A B", v)
	assert.Equal(t, []int{1}, res.Report.Indices())
	assert.Equal(t, []string{"negative balance"}, res.Report[1].Get("balance"))
}
