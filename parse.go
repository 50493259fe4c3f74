package decimal

import "math/big"

// Parse converts a decimal literal such as "123.456" or "-0.001" to a
// Decimal. It accepts an optional leading sign, an integer part, and an
// optional fractional part separated by a single '.'. It rejects an
// empty string, any byte that is not a digit, sign, or dot, more than
// one dot, and any magnitude too large to represent.
//
// A fractional part longer than MaxScale digits is rounded HalfEven to
// MaxScale digits rather than rejected (mirroring how the underlying
// 96-bit mantissa already behaves for every other lossy operation).
func Parse(s string) (Decimal, error) {
	return parse(s)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseExact is like Parse but returns the result rescaled to exactly the
// given scale: missing fractional digits are padded with zeros and extra
// ones are rounded HalfEven. It fails with ErrScaleExceeded if scale is
// greater than MaxScale.
func ParseExact(s string, scale uint32) (Decimal, error) {
	d, err := parse(s)
	if err != nil {
		return Decimal{}, err
	}
	return d.Rescale(scale)
}

func parse(s string) (Decimal, error) {
	if len(s) == 0 {
		return Decimal{}, newParseErr(Empty, s)
	}
	i := 0
	neg := false
	switch s[0] {
	case '+':
		i++
	case '-':
		neg = true
		i++
	}
	if i == len(s) {
		return Decimal{}, newParseErr(InvalidCharacter, s)
	}
	var intDigits, fracDigits []byte
	seenDot := false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.':
			if seenDot {
				return Decimal{}, newParseErr(MultipleDecimalPoints, s)
			}
			seenDot = true
		case c >= '0' && c <= '9':
			if seenDot {
				fracDigits = append(fracDigits, c)
			} else {
				intDigits = append(intDigits, c)
			}
		default:
			return Decimal{}, newParseErr(InvalidCharacter, s)
		}
	}
	if len(intDigits) == 0 && len(fracDigits) == 0 {
		return Decimal{}, newParseErr(InvalidCharacter, s)
	}
	if len(intDigits) == 0 {
		intDigits = []byte{'0'}
	}
	digits := append(intDigits, fracDigits...)
	scale := len(fracDigits)

	coef, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		return Decimal{}, newParseErr(InvalidCharacter, s) // unreachable given the scan above
	}

	if scale > MaxScale {
		coef = rescaleCoef(coef, scale, MaxScale, HalfEven, neg)
		scale = MaxScale
	}
	out, err := fromCoef(neg, coef, scale)
	if err != nil {
		return Decimal{}, newParseErr(OutOfRange, s)
	}
	return out, nil
}
