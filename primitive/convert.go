package primitive

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotConvertible = errors.New("value is not convertible")
	ErrOutOfRange     = errors.New("value is out of range")
)

var (
	truthyWords = map[string]bool{"true": true, "yes": true, "on": true, "1": true}
	falsyWords  = map[string]bool{"false": true, "no": true, "off": true, "0": true}
)

// Convert turns v into a value of kind to, normalized to to.Type(), using only the
// conversions covered by allowed. A value already of kind to is normalized without
// consulting allowed. Named enum types convert to strings through their String method
// (CategoryEnumString) or through their underlying kind otherwise.
func Convert(v any, to KindEnum, allowed CategoryEnum) (any, error) {
	if to == KindPrimitiveEnum || to.Type() == nil {
		return nil, errors.Wrapf(ErrNotConvertible, "no canonical type for %s", to)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.Wrapf(ErrNotConvertible, "nil to %s", to)
	}

	from := FromReflectType(rv.Type())
	if from == 0 {
		return nil, errors.Wrapf(ErrNotConvertible, "%T to %s", v, to)
	}

	if from == KindPrimitiveEnum {
		if to == KindString && allowed.Allows(KindPrimitiveEnum, KindString) {
			if s, ok := v.(fmt.Stringer); ok {
				return s.String(), nil
			}
		}

		from = Underlying(rv.Type())
		rv = rv.Convert(from.Type())
	}

	if from == to {
		return rv.Convert(to.Type()).Interface(), nil
	}

	if !allowed.Allows(from, to) {
		return nil, errors.Wrapf(ErrNotConvertible, "%s to %s", from, to)
	}

	out, err := convert(rv, from, to)
	if err != nil {
		return nil, err
	}

	return out.Convert(to.Type()).Interface(), nil
}

func convert(rv reflect.Value, from, to KindEnum) (reflect.Value, error) {
	switch {
	case from.IsNumber() && to.IsNumber():
		return readNumber(rv, from).into(to)

	case from.IsNumber() && to == KindString:
		return reflect.ValueOf(readNumber(rv, from).String()), nil

	case from == KindString && to.IsNumber():
		n, err := parseNumber(rv.String(), to)
		if err != nil {
			return reflect.Value{}, err
		}
		return n.into(to)

	case from.IsInteger() && to == KindBool:
		switch n := readNumber(rv, from); {
		case n.isZero():
			return reflect.ValueOf(false), nil
		case n.isOne():
			return reflect.ValueOf(true), nil
		default:
			return reflect.Value{}, errors.Wrapf(ErrNotConvertible, "%s is not 0 or 1", n)
		}

	case from == KindBool && to.IsInteger():
		if rv.Bool() {
			return number{signed: true, i: 1}.into(to)
		}
		return number{signed: true}.into(to)

	case from == KindString && to == KindBool:
		word := strings.ToLower(strings.TrimSpace(rv.String()))
		switch {
		case truthyWords[word]:
			return reflect.ValueOf(true), nil
		case falsyWords[word]:
			return reflect.ValueOf(false), nil
		default:
			return reflect.Value{}, errors.Wrapf(ErrNotConvertible, "%q is not a boolean word", rv.String())
		}

	case from == KindBool && to == KindString:
		return reflect.ValueOf(strconv.FormatBool(rv.Bool())), nil

	case from == KindString && to == KindTime:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(rv.String()))
		if err != nil {
			return reflect.Value{}, errors.Mark(errors.Wrapf(err, "parse time %q", rv.String()), ErrNotConvertible)
		}
		return reflect.ValueOf(t), nil

	case from == KindTime && to == KindString:
		return reflect.ValueOf(rv.Interface().(time.Time).Format(time.RFC3339Nano)), nil

	case from.IsInteger() && to == KindTime:
		n := readNumber(rv, from)
		if !n.signed && n.u > math.MaxInt64 {
			return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%s seconds", n)
		}
		return reflect.ValueOf(time.Unix(n.int64(), 0).UTC()), nil

	case from == KindTime && to.IsInteger():
		return number{signed: true, i: rv.Interface().(time.Time).Unix()}.into(to)

	case from == KindString && to == KindDuration:
		d, err := time.ParseDuration(strings.TrimSpace(rv.String()))
		if err != nil {
			return reflect.Value{}, errors.Mark(errors.Wrapf(err, "parse duration %q", rv.String()), ErrNotConvertible)
		}
		return reflect.ValueOf(d), nil

	case from == KindDuration && to == KindString:
		return reflect.ValueOf(time.Duration(rv.Int()).String()), nil

	case from.IsInteger() && to == KindDuration:
		v, err := readNumber(rv, from).into(KindInt64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(time.Duration(v.Int())), nil

	case from == KindDuration && to.IsInteger():
		return number{signed: true, i: rv.Int()}.into(to)

	case from.IsFloat() && to == KindDuration:
		seconds := rv.Float()
		if math.IsNaN(seconds) || math.Abs(seconds*float64(time.Second)) > math.MaxInt64 {
			return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%v seconds", seconds)
		}
		return reflect.ValueOf(time.Duration(seconds * float64(time.Second))), nil

	case from == KindDuration && to.IsFloat():
		return number{float: true, f: time.Duration(rv.Int()).Seconds()}.into(to)
	}

	return reflect.Value{}, errors.Wrapf(ErrNotConvertible, "%s to %s", from, to)
}

// number holds any numeric value in its widest representation.
type number struct {
	signed bool
	float  bool
	i      int64
	u      uint64
	f      float64
}

func readNumber(rv reflect.Value, k KindEnum) number {
	switch {
	case k.IsSigned():
		return number{signed: true, i: rv.Int()}
	case k.IsUnsigned():
		return number{u: rv.Uint()}
	default:
		return number{float: true, f: rv.Float()}
	}
}

func parseNumber(s string, to KindEnum) (number, error) {
	s = strings.TrimSpace(s)

	var (
		n   number
		err error
	)

	switch {
	case to.IsSigned():
		n.signed = true
		n.i, err = strconv.ParseInt(s, 10, to.Bits())
	case to.IsUnsigned():
		n.u, err = strconv.ParseUint(s, 10, to.Bits())
	default:
		n.float = true
		n.f, err = strconv.ParseFloat(s, to.Bits())
	}

	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return number{}, errors.Wrapf(ErrOutOfRange, "%q as %s", s, to)
		}
		return number{}, errors.Wrapf(ErrNotConvertible, "%q as %s", s, to)
	}

	return n, nil
}

func (n number) isZero() bool {
	return n.i == 0 && n.u == 0 && n.f == 0
}

func (n number) isOne() bool {
	switch {
	case n.signed:
		return n.i == 1
	case n.float:
		return n.f == 1
	default:
		return n.u == 1
	}
}

func (n number) int64() int64 {
	if n.signed {
		return n.i
	}
	return int64(n.u)
}

func (n number) String() string {
	switch {
	case n.signed:
		return strconv.FormatInt(n.i, 10)
	case n.float:
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	default:
		return strconv.FormatUint(n.u, 10)
	}
}

// into converts n to kind to, rejecting values the target cannot hold.
// Fractions are truncated when converting floats to integers.
func (n number) into(to KindEnum) (reflect.Value, error) {
	typ := to.Type()

	switch {
	case to.IsSigned():
		lo, hi := signedRange(to.Bits())

		switch {
		case n.signed:
			if n.i < lo || n.i > hi {
				return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%s as %s", n, to)
			}
			return reflect.ValueOf(n.i).Convert(typ), nil
		case n.float:
			if math.IsNaN(n.f) || n.f < float64(lo) || n.f >= -float64(lo) || n.f > float64(hi) {
				return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%s as %s", n, to)
			}
			return reflect.ValueOf(int64(n.f)).Convert(typ), nil
		default:
			if n.u > uint64(hi) {
				return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%s as %s", n, to)
			}
			return reflect.ValueOf(int64(n.u)).Convert(typ), nil
		}

	case to.IsUnsigned():
		hi := uint64(math.MaxUint64) >> (64 - to.Bits())

		switch {
		case n.signed:
			if n.i < 0 || uint64(n.i) > hi {
				return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%s as %s", n, to)
			}
			return reflect.ValueOf(uint64(n.i)).Convert(typ), nil
		case n.float:
			if math.IsNaN(n.f) || n.f <= -1 || n.f >= math.Ldexp(1, to.Bits()) {
				return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%s as %s", n, to)
			}
			return reflect.ValueOf(uint64(n.f)).Convert(typ), nil
		default:
			if n.u > hi {
				return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%s as %s", n, to)
			}
			return reflect.ValueOf(n.u).Convert(typ), nil
		}

	default:
		var f float64

		switch {
		case n.signed:
			f = float64(n.i)
		case n.float:
			f = n.f
		default:
			f = float64(n.u)
		}

		if to == KindFloat32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return reflect.Value{}, errors.Wrapf(ErrOutOfRange, "%s as %s", n, to)
		}

		return reflect.ValueOf(f).Convert(typ), nil
	}
}

func signedRange(bits int) (lo, hi int64) {
	hi = int64(uint64(1)<<(bits-1) - 1)
	return -hi - 1, hi
}
