package primitive

type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                            // string <-> enum: textual representation of an enum type (uses String/IsValid methods)

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected
)

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

func init() {
	conversionPairs = make(map[CategoryEnum]map[ConversionPair]struct{})

	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		conversionPairs[category] = map[ConversionPair]struct{}{}
	}

	add := func(category CategoryEnum, from, to KindEnum) {
		conversionPairs[category][ConversionPair{from, to}] = struct{}{}
	}

	both := func(category CategoryEnum, a, b KindEnum) {
		add(category, a, b)
		add(category, b, a)
	}

	for from := KindEnum(1); int(from) < KindTotal; from++ {
		if !from.IsNumber() {
			continue
		}

		for to := KindEnum(1); int(to) < KindTotal; to++ {
			if !to.IsNumber() {
				continue
			}

			if isSafeNumber(from, to) {
				add(CategorySafeNumber, from, to)
			} else {
				add(CategoryUnsafeNumber, from, to)
			}
		}

		both(CategoryTextNumber, from, KindString)

		if from.IsInteger() {
			both(CategoryNumericBool, from, KindBool)
			both(CategoryTimestamp, from, KindTime)

			// uint64 nanoseconds overflow time.Duration
			if from != KindUint64 {
				both(CategoryNanoseconds, from, KindDuration)
			}
		}

		if from.IsFloat() {
			both(CategorySeconds, from, KindDuration)
		}
	}

	both(CategoryTextualBool, KindString, KindBool)
	both(CategoryDatetime, KindString, KindTime)
	both(CategoryDuration, KindString, KindDuration)
	both(CategoryEnumString, KindString, KindPrimitiveEnum)
	add(CategoryEnumString, KindPrimitiveEnum, KindPrimitiveEnum)
}

// isSafeNumber reports whether every value of from fits into to.
// int and uint are treated as 64 bits wide when read and 32 bits wide when written.
func isSafeNumber(from, to KindEnum) bool {
	if from == to {
		return true
	}

	srcBits, dstBits := from.Bits(), to.Bits()
	if from == KindInt || from == KindUint {
		srcBits = 64
	}

	if to == KindInt || to == KindUint {
		dstBits = 32
	}

	switch {
	default:
		return false
	case from.IsFloat():
		return to.IsFloat() && dstBits >= srcBits
	case to.IsFloat():
		return srcBits <= to.mantissa()
	case from.IsSigned():
		return to.IsSigned() && dstBits >= srcBits
	case from.IsUnsigned() && to.IsUnsigned():
		return dstBits >= srcBits
	case from.IsUnsigned():
		return dstBits > srcBits
	}
}

// Allows reports whether any category in allowed covers converting from into to.
func (allowed CategoryEnum) Allows(from, to KindEnum) bool {
	pair := ConversionPair{from, to}

	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if allowed&category == 0 {
			continue
		}

		if _, ok := conversionPairs[category][pair]; ok {
			return true
		}
	}

	return false
}

// Pairs returns every conversion pair allowed by the given categories.
func (allowed CategoryEnum) Pairs() map[ConversionPair]struct{} {
	res := map[ConversionPair]struct{}{}

	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if allowed&category == 0 {
			continue
		}

		for pair := range conversionPairs[category] {
			res[pair] = struct{}{}
		}
	}

	return res
}
