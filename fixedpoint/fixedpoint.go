// Package fixedpoint implements the sole sanctioned boundary between a
// constrained integer-only VM and the decimal core: scaling a raw
// unsigned integer by a fixed power-of-ten SCALE (commonly 10^18, the
// EVM "wei" convention) in each direction with explicit rounding and
// overflow policy.
package fixedpoint

import (
	"github.com/finprecision/decimal"
	"github.com/holiman/uint256"
)

// Scale is a compile-time or call-time fixed-point scale factor, e.g.
// Scale(18) for 10^18 ("wei" units).
type Scale struct {
	exponent int32
	factor   decimal.Decimal
}

// NewScale builds a Scale for 10^exponent raw units per whole unit.
func NewScale(exponent int32) Scale {
	factor, ok := decimal.Ten.Powi(exponent)
	if !ok {
		factor = decimal.Max
	}
	return Scale{exponent: exponent, factor: factor}
}

// Wei is the conventional 10^18 EVM fixed-point scale.
var Wei = NewScale(18)

// IntegerToDecimal converts a raw VM-scaled integer to a decimal,
// saturating to Max on overflow rather than failing (raw is unsigned, so
// the result is never negative): this
// direction only ever narrows the raw magnitude, and the spec
// reserves failure in this adapter pair for the opposite direction.
func (s Scale) IntegerToDecimal(raw *uint256.Int) decimal.Decimal {
	d, err := decimal.Parse(raw.ToBig().String())
	if err != nil {
		return decimal.Max
	}
	out, err := d.TryDiv(s.factor)
	if err != nil {
		return decimal.Max
	}
	return out
}

// DecimalToInteger converts a decimal to its raw VM-scaled integer
// representation, rounding TowardZero. It reports Underflow if value is
// nonzero but its magnitude is smaller than one raw unit (the rounded
// result would silently be zero). A negative value fails with Overflow,
// since the VM's integer type is unsigned.
func (s Scale) DecimalToInteger(value decimal.Decimal) (*uint256.Int, error) {
	if value.IsNegative() {
		return nil, decimal.ErrOverflow
	}
	scaled, err := value.TryMul(s.factor)
	if err != nil {
		return nil, err
	}
	truncated := scaled.Trunc(0)
	if truncated.IsZero() && value.IsPositive() {
		return nil, decimal.ErrUnderflow
	}
	mantissa, _, _ := truncated.Parts()
	raw, overflow := uint256.FromBig(mantissa)
	if overflow {
		return nil, decimal.ErrOverflow
	}
	return raw, nil
}
