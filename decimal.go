// Package decimal implements a deterministic, fixed-point decimal number
// with a 96-bit unsigned mantissa and a scale in [0, MaxScale]. It is
// designed so that every arithmetic, rounding, and transcendental
// operation produces bit-identical (mantissa, scale, sign) results
// regardless of the host platform — the same guarantee a native server,
// a smart-contract VM, and a zero-knowledge prover circuit all need from
// a shared numeric core.
//
// Decimal is a plain value (three uint32 words plus a sign bit and a
// scale byte); it is safe to copy, compare with ==, and share across
// goroutines without synchronization.
package decimal

import (
	"math/big"
	"strings"
)

// Decimal represents a finite, signed, fixed-point decimal number. Its
// zero value is the numeric value 0 at scale 0. The semantic value is
// (-1)^sign * mantissa * 10^(-scale), where mantissa is an unsigned
// integer that fits in 96 bits.
type Decimal struct {
	neg         bool
	scale       uint8
	lo, mid, hi uint32
}

var (
	// Zero is the decimal value 0.
	Zero = Decimal{}
	// One is the decimal value 1.
	One = mustFromCoef(false, big.NewInt(1), 0)
	// NegativeOne is the decimal value -1.
	NegativeOne = mustFromCoef(true, big.NewInt(1), 0)
	// Ten is the decimal value 10.
	Ten = mustFromCoef(false, big.NewInt(10), 0)
	// OneHundred is the decimal value 100.
	OneHundred = mustFromCoef(false, big.NewInt(100), 0)
	// OneThousand is the decimal value 1000.
	OneThousand = mustFromCoef(false, big.NewInt(1000), 0)
	// Max is the largest representable decimal: (2^96-1) at scale 0.
	Max = mustFromCoef(false, maxMantissa, 0)
	// Min is the smallest representable decimal: -(2^96-1) at scale 0.
	Min = mustFromCoef(true, maxMantissa, 0)
)

func mustFromCoef(neg bool, coef *big.Int, scale int) Decimal {
	d, err := fromCoef(neg, coef, scale)
	if err != nil {
		panic("decimal: invalid package-level constant")
	}
	return d
}

// New returns the decimal equal to mantissa * 10^(-scale). New is one of
// the three explicit constructors named in the spec (the others are
// NewFromInt and Parse/ParseExact).
func New(mantissa int64, scale uint32) (Decimal, error) {
	neg := mantissa < 0
	abs := mantissa
	if neg {
		abs = -mantissa
	}
	return fromCoef(neg, new(big.Int).SetInt64(abs), int(scale))
}

// MustNew is like New but panics on error. Intended for package-level
// variable initialization and tests, not production call sites, which
// use the fallible New.
func MustNew(mantissa int64, scale uint32) Decimal {
	d, err := New(mantissa, scale)
	if err != nil {
		panic(err)
	}
	return d
}

// NewFromInt converts a plain integer to a decimal at scale 0.
func NewFromInt(value int64) Decimal {
	d, err := New(value, 0)
	if err != nil {
		panic(err) // unreachable: int64 always fits 96 bits
	}
	return d
}

// FromParts builds a decimal from its raw 96-bit mantissa, stored as
// three little-endian 32-bit words, matching the wire layout used by the
// smart-contract and zero-knowledge adapters at the system boundary.
func FromParts(lo, mid, hi uint32, negative bool, scale uint32) (Decimal, error) {
	return fromCoef(negative, wordsToBig(lo, mid, hi), int(scale))
}

// Parts returns the unsigned 96-bit mantissa (as a big.Int, since Go has
// no native 96/128-bit integer type), the scale, and the sign. The pair
// (mantissa, scale) returned here is exactly the artifact the
// determinism contract checks: any conforming implementation on any
// host must return the same pair for the same logical operation.
func (d Decimal) Parts() (mantissa *big.Int, scale uint32, negative bool) {
	return d.coef(), uint32(d.scale), d.neg
}

// Scale returns the number of digits after the decimal point.
func (d Decimal) Scale() uint32 { return uint32(d.scale) }

// IsZero reports whether d represents the value 0.
func (d Decimal) IsZero() bool { return d.lo == 0 && d.mid == 0 && d.hi == 0 }

// IsNegative reports whether d is strictly less than zero.
func (d Decimal) IsNegative() bool { return d.neg && !d.IsZero() }

// IsPositive reports whether d is strictly greater than zero.
func (d Decimal) IsPositive() bool { return !d.neg && !d.IsZero() }

// Sign returns -1, 0, or +1 according to the sign of d.
func (d Decimal) Sign() int {
	switch {
	case d.IsZero():
		return 0
	case d.neg:
		return -1
	default:
		return 1
	}
}

// Signum returns NegativeOne, Zero, or One according to the sign of d.
func (d Decimal) Signum() Decimal {
	switch d.Sign() {
	case -1:
		return NegativeOne
	case 1:
		return One
	default:
		return Zero
	}
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	if d.IsZero() {
		return d
	}
	d.neg = !d.neg
	return d
}

// Abs returns the absolute value of d.
func (d Decimal) Abs() Decimal {
	d.neg = false
	return d
}

// CopySign returns a value with the magnitude of d and the sign of e.
func (d Decimal) CopySign(e Decimal) Decimal {
	d.neg = e.neg && !d.IsZero()
	return d
}

// signedBig returns the mantissa as a signed big.Int (negative when d is
// negative), used internally wherever ordinary signed arithmetic on the
// magnitude is simpler than tracking the sign by hand (Add/Sub).
func (d Decimal) signedBig() *big.Int {
	c := d.coef()
	if d.neg {
		c.Neg(c)
	}
	return c
}

// Normalize strips trailing zeros from the mantissa, decreasing the
// scale accordingly. Normalization never changes the represented value:
// it is idempotent and used for canonical display/hashing, not for
// value-carrying computation.
func (d Decimal) Normalize() Decimal {
	if d.IsZero() {
		return Decimal{}
	}
	coef := d.coef()
	scale := int(d.scale)
	ten := big.NewInt(10)
	for scale > 0 {
		q, r := new(big.Int).QuoRem(coef, ten, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		coef = q
		scale--
	}
	out, _ := fromCoef(d.neg, coef, scale)
	return out
}

// String renders d in its exact current scale (no implicit
// normalization): New(100, 2) and New(1, 0) compare Equal but print as
// "1.00" and "1" respectively. Use Normalize first for a canonical,
// trailing-zero-free rendering.
func (d Decimal) String() string {
	digits := d.coef().String()
	scale := int(d.scale)
	var b strings.Builder
	if d.neg && !d.IsZero() {
		b.WriteByte('-')
	}
	if scale == 0 {
		b.WriteString(digits)
		return b.String()
	}
	for len(digits) <= scale {
		digits = "0" + digits
	}
	intPart := digits[:len(digits)-scale]
	fracPart := digits[len(digits)-scale:]
	b.WriteString(intPart)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// Float64 converts d to the nearest float64. This conversion is provided
// purely for interoperating with display/logging code in the external
// collaborator subsystems (§1); it must never be used for value-carrying
// computation, which is the entire reason this package exists.
func (d Decimal) Float64() float64 {
	f := new(big.Float).SetInt(d.coef())
	scale := new(big.Float).SetInt(pow10Big(int(d.scale)))
	f.Quo(f, scale)
	v, _ := f.Float64()
	if d.neg {
		v = -v
	}
	return v
}
