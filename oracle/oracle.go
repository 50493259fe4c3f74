// Package oracle converts between external integer price encodings and
// the decimal core. Price oracles (Chainlink, Pyth, on-chain token
// balances) report values as a raw integer plus an implicit or explicit
// number of decimal places; this package is the total, lossless
// boundary between that world and [decimal.Decimal].
package oracle

import (
	"math/big"

	"github.com/finprecision/decimal"
	"github.com/holiman/uint256"
)

// Decimals identifies an external integer encoding's decimal places.
// Six, Eight, and Eighteen cover the overwhelmingly common oracle and
// token conventions (USDC-style, BTC-style, ETH-style); Custom covers
// everything else.
type Decimals struct {
	n uint8
}

var (
	Six      = Decimals{6}
	Eight    = Decimals{8}
	Eighteen = Decimals{18}
)

// Custom returns a Decimals value for an arbitrary decimal-place count.
func Custom(n uint8) Decimals { return Decimals{n} }

// N returns the number of implicit decimal places.
func (d Decimals) N() uint8 { return d.n }

// Normalize converts a raw integer, encoded with the given number of
// implicit decimal places, to a decimal. Total and lossless: dividing
// an int64 by 10^n for n <= 28 never overflows the 96-bit mantissa.
func Normalize(raw int64, decimals Decimals) decimal.Decimal {
	pow, _ := decimal.Ten.Powi(int32(decimals.n))
	d, _ := decimal.NewFromInt(raw).TryDiv(pow)
	return d
}

// Denormalize converts a decimal back to a raw integer at the given
// number of implicit decimal places, rounding TowardZero and reporting
// overflow or sign loss.
func Denormalize(value decimal.Decimal, decimals Decimals) (int64, error) {
	pow, ok := decimal.Ten.Powi(int32(decimals.n))
	if !ok {
		return 0, decimal.ErrOverflow
	}
	scaled, err := value.TryMul(pow)
	if err != nil {
		return 0, err
	}
	truncated := scaled.Trunc(0)
	mantissa, _, neg := truncated.Parts()
	if !mantissa.IsInt64() {
		return 0, decimal.ErrOverflow
	}
	v := mantissa.Int64()
	if neg {
		v = -v
	}
	return v, nil
}

// NormalizeBig128 converts a raw 128-bit unsigned integer (e.g. an
// 18-decimal ERC-20 token amount that overflows int64) into a decimal.
func NormalizeBig128(raw *uint256.Int, decimals Decimals) decimal.Decimal {
	d, err := fromBigAtScale(raw.ToBig(), int(decimals.n))
	if err != nil {
		return decimal.Max
	}
	return d
}

// DenormalizeBig128 converts a decimal back to a raw 128-bit unsigned
// integer at the given number of implicit decimal places, rounding
// TowardZero. It fails (returns ok == false) on sign loss or if the
// magnitude does not fit 256 bits.
func DenormalizeBig128(value decimal.Decimal, decimals Decimals) (*uint256.Int, bool) {
	if value.IsNegative() {
		return nil, false
	}
	pow, ok := decimal.Ten.Powi(int32(decimals.n))
	if !ok {
		return nil, false
	}
	scaled, err := value.TryMul(pow)
	if err != nil {
		return nil, false
	}
	truncated := scaled.Trunc(0)
	mantissa, _, _ := truncated.Parts()
	out, overflow := uint256.FromBig(mantissa)
	if overflow {
		return nil, false
	}
	return out, true
}

func fromBigAtScale(v *big.Int, scale int) (decimal.Decimal, error) {
	s, err := decimal.Parse(v.String())
	if err != nil {
		return decimal.Decimal{}, err
	}
	pow, ok := decimal.Ten.Powi(int32(scale))
	if !ok {
		return decimal.Decimal{}, decimal.ErrOverflow
	}
	return s.TryDiv(pow)
}

// ConvertDecimals rescales a raw integer reported at `from` implicit
// decimal places to the equivalent raw integer at `to` decimal places:
// multiplying when widening, integer-dividing (TowardZero) when
// narrowing.
func ConvertDecimals(value int64, from, to Decimals) (int64, error) {
	if to.n == from.n {
		return value, nil
	}
	d := decimal.NewFromInt(value)
	if to.n > from.n {
		pow, ok := decimal.Ten.Powi(int32(to.n - from.n))
		if !ok {
			return 0, decimal.ErrOverflow
		}
		scaled, err := d.TryMul(pow)
		if err != nil {
			return 0, err
		}
		mantissa, _, neg := scaled.Parts()
		if !mantissa.IsInt64() {
			return 0, decimal.ErrOverflow
		}
		v := mantissa.Int64()
		if neg {
			v = -v
		}
		return v, nil
	}
	pow, ok := decimal.Ten.Powi(int32(from.n - to.n))
	if !ok {
		return 0, decimal.ErrOverflow
	}
	scaled, err := d.TryDiv(pow)
	if err != nil {
		return 0, err
	}
	truncated := scaled.Trunc(0)
	mantissa, _, neg := truncated.Parts()
	v := mantissa.Int64()
	if neg {
		v = -v
	}
	return v, nil
}

// ConvertDecimalsBig128 rescales a raw 128-bit unsigned integer reported at
// `from` implicit decimal places to the equivalent raw integer at `to`
// decimal places, widening when value or scale would overflow an int64.
// Multiplies when widening, integer-divides (TowardZero) when narrowing.
func ConvertDecimalsBig128(value *uint256.Int, from, to Decimals) (*uint256.Int, bool) {
	if to.n == from.n {
		return new(uint256.Int).Set(value), true
	}
	d, err := fromBigAtScale(value.ToBig(), 0)
	if err != nil {
		return nil, false
	}
	if to.n > from.n {
		pow, ok := decimal.Ten.Powi(int32(to.n - from.n))
		if !ok {
			return nil, false
		}
		scaled, err := d.TryMul(pow)
		if err != nil {
			return nil, false
		}
		mantissa, _, _ := scaled.Parts()
		out, overflow := uint256.FromBig(mantissa)
		if overflow {
			return nil, false
		}
		return out, true
	}
	pow, ok := decimal.Ten.Powi(int32(from.n - to.n))
	if !ok {
		return nil, false
	}
	scaled, err := d.TryDiv(pow)
	if err != nil {
		return nil, false
	}
	truncated := scaled.Trunc(0)
	mantissa, _, _ := truncated.Parts()
	out, overflow := uint256.FromBig(mantissa)
	if overflow {
		return nil, false
	}
	return out, true
}

// PythPrice is Pyth Network's price encoding: an integer mantissa and a
// signed base-10 exponent, value = priceInteger * 10^exponent.
type PythPrice struct {
	PriceInteger int64
	Exponent     int32
}

// Normalize converts a Pyth-style price to a decimal, multiplying for a
// positive exponent and dividing for a negative one.
func (p PythPrice) Normalize() (decimal.Decimal, error) {
	base := decimal.NewFromInt(p.PriceInteger)
	if p.Exponent == 0 {
		return base, nil
	}
	pow, ok := decimal.Ten.Powi(abs32(p.Exponent))
	if !ok {
		return decimal.Decimal{}, decimal.ErrOverflow
	}
	if p.Exponent > 0 {
		return base.TryMul(pow)
	}
	return base.TryDiv(pow)
}

func abs32(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}
