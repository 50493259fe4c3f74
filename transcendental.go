package decimal

import "math/big"

// transPrec is the working precision (in bits) used internally by the
// transcendental functions. The spec allows a 1e-7 tolerance for
// transcendentals (unlike the bit-identical requirement on core
// arithmetic), so a high-precision big.Float Newton/series evaluation
// followed by a single HalfEven round back to MaxScale (or to the largest
// lower scale at which the result's mantissa fits 96 bits) is sufficient.
const transPrec = 200

const expOverflowBound = 100
const expUnderflowBound = -100

func (d Decimal) toFloat() *big.Float {
	f := new(big.Float).SetPrec(transPrec).SetInt(d.coef())
	scale := new(big.Float).SetPrec(transPrec).SetInt(pow10Big(int(d.scale)))
	f.Quo(f, scale)
	if d.neg {
		f.Neg(f)
	}
	return f
}

func fromFloat(f *big.Float) (Decimal, error) {
	neg := f.Sign() < 0
	if neg {
		f = new(big.Float).Neg(f)
	}
	half := big.NewFloat(0.5)
	for scale := MaxScale; ; scale-- {
		scaled := new(big.Float).SetPrec(transPrec).Mul(f, new(big.Float).SetPrec(transPrec).SetInt(pow10Big(scale)))
		coef, _ := scaled.Int(nil)
		frac := new(big.Float).SetPrec(transPrec).Sub(scaled, new(big.Float).SetInt(coef))
		if c := frac.Cmp(half); c > 0 || (c == 0 && coef.Bit(0) == 1) {
			coef.Add(coef, big.NewInt(1))
		}
		if coef.Cmp(maxMantissa) <= 0 || scale == 0 {
			return fromCoef(neg, coef, scale)
		}
	}
}

// Sqrt returns the square root of d, or ok == false if d is negative.
func (d Decimal) Sqrt() (Decimal, bool) {
	if d.IsNegative() {
		return Decimal{}, false
	}
	if d.IsZero() {
		return Zero, true
	}
	x := d.toFloat()
	r := new(big.Float).SetPrec(transPrec).Sqrt(x)
	out, err := fromFloat(r)
	if err != nil {
		return Decimal{}, false
	}
	return out, true
}

// TrySqrt is like Sqrt but returns a typed ArithmeticError: NegativeSqrt
// for negative d, Overflow if the result does not fit.
func (d Decimal) TrySqrt() (Decimal, error) {
	if d.IsNegative() {
		return Decimal{}, newArithErr(NegativeSqrt)
	}
	r, ok := d.Sqrt()
	if !ok {
		return Decimal{}, newArithErr(Overflow)
	}
	return r, nil
}

// Exp returns e^d. It reports ok == false on overflow (d > 100); for
// very negative d (d < -100) it returns Zero rather than failing, since
// the true result underflows to an unrepresentable magnitude smaller
// than the smallest representable decimal.
func (d Decimal) Exp() (Decimal, bool) {
	hundred := NewFromInt(expOverflowBound)
	if d.Greater(hundred) {
		return Decimal{}, false
	}
	if d.Less(hundred.Neg()) {
		return Zero, true
	}
	r := bigExp(d.toFloat())
	out, err := fromFloat(r)
	if err != nil {
		return Decimal{}, false
	}
	return out, true
}

// TryExp is like Exp but returns ArithmeticError Overflow on failure.
func (d Decimal) TryExp() (Decimal, error) {
	r, ok := d.Exp()
	if !ok {
		return Decimal{}, newArithErr(Overflow)
	}
	return r, nil
}

// bigExp computes e^x for arbitrary x via doubling range reduction:
// e^x = (e^(x/2^k))^(2^k), choosing k so the reduced argument is small
// enough for the Taylor series to converge quickly.
func bigExp(x *big.Float) *big.Float {
	k := 0
	reduced := new(big.Float).SetPrec(transPrec).Set(x)
	one := big.NewFloat(1).SetPrec(transPrec)
	half := big.NewFloat(0.5).SetPrec(transPrec)
	for new(big.Float).Abs(reduced).Cmp(one) > 0 {
		reduced.Mul(reduced, half)
		k++
	}
	sum := big.NewFloat(1).SetPrec(transPrec)
	term := big.NewFloat(1).SetPrec(transPrec)
	for n := 1; n <= 60; n++ {
		term.Mul(term, reduced)
		term.Quo(term, big.NewFloat(float64(n)).SetPrec(transPrec))
		sum.Add(sum, term)
		if term.MinPrec() == 0 {
			break
		}
	}
	for i := 0; i < k; i++ {
		sum.Mul(sum, sum)
	}
	return sum
}

// Ln returns the natural logarithm of d. It reports ok == false if d is
// not strictly positive.
func (d Decimal) Ln() (Decimal, bool) {
	if !d.IsPositive() {
		return Decimal{}, false
	}
	r := bigLn(d.toFloat())
	out, err := fromFloat(r)
	if err != nil {
		return Decimal{}, false
	}
	return out, true
}

// TryLn is like Ln but returns LogOfZero or LogOfNegative on failure.
func (d Decimal) TryLn() (Decimal, error) {
	if d.IsZero() {
		return Decimal{}, newArithErr(LogOfZero)
	}
	if d.IsNegative() {
		return Decimal{}, newArithErr(LogOfNegative)
	}
	r, ok := d.Ln()
	if !ok {
		return Decimal{}, newArithErr(Overflow)
	}
	return r, nil
}

// Log10 returns the base-10 logarithm of d.
func (d Decimal) Log10() (Decimal, bool) {
	l, ok := d.Ln()
	if !ok {
		return Decimal{}, false
	}
	ln10 := bigLn(big.NewFloat(10).SetPrec(transPrec))
	out, err := fromFloat(new(big.Float).SetPrec(transPrec).Quo(l.toFloat(), ln10))
	if err != nil {
		return Decimal{}, false
	}
	return out, true
}

// TryLog10 is like Log10 but returns a typed ArithmeticError on failure.
func (d Decimal) TryLog10() (Decimal, error) {
	if d.IsZero() {
		return Decimal{}, newArithErr(LogOfZero)
	}
	if d.IsNegative() {
		return Decimal{}, newArithErr(LogOfNegative)
	}
	r, ok := d.Log10()
	if !ok {
		return Decimal{}, newArithErr(Overflow)
	}
	return r, nil
}

// bigLn computes ln(x) for x > 0 using the arctanh series
// ln(x) = 2*artanh((x-1)/(x+1)), after range-reducing x into [0.5, 2)
// by repeatedly dividing or multiplying by e so the series converges
// quickly, tracking the number of factors of e removed.
func bigLn(x *big.Float) *big.Float {
	one := big.NewFloat(1).SetPrec(transPrec)
	e := bigE()
	count := big.NewFloat(0).SetPrec(transPrec)
	reduced := new(big.Float).SetPrec(transPrec).Set(x)
	two := big.NewFloat(2).SetPrec(transPrec)
	half := big.NewFloat(0.5).SetPrec(transPrec)
	for reduced.Cmp(two) >= 0 {
		reduced.Quo(reduced, e)
		count.Add(count, one)
	}
	for reduced.Cmp(half) < 0 {
		reduced.Mul(reduced, e)
		count.Sub(count, one)
	}
	num := new(big.Float).SetPrec(transPrec).Sub(reduced, one)
	den := new(big.Float).SetPrec(transPrec).Add(reduced, one)
	z := new(big.Float).SetPrec(transPrec).Quo(num, den)
	zsq := new(big.Float).SetPrec(transPrec).Mul(z, z)
	sum := new(big.Float).SetPrec(transPrec).Set(z)
	term := new(big.Float).SetPrec(transPrec).Set(z)
	for n := 1; n < 80; n++ {
		term.Mul(term, zsq)
		denom := big.NewFloat(float64(2*n+1)).SetPrec(transPrec)
		part := new(big.Float).SetPrec(transPrec).Quo(term, denom)
		sum.Add(sum, part)
		if part.MinPrec() == 0 {
			break
		}
	}
	sum.Mul(sum, two)
	return sum.Add(sum, count)
}

var bigEValue *big.Float

func bigE() *big.Float {
	if bigEValue == nil {
		bigEValue = bigExp(big.NewFloat(1).SetPrec(transPrec))
	}
	return bigEValue
}

// E returns Euler's number, rounded to MaxScale digits.
func E() Decimal {
	d, _ := fromFloat(bigE())
	return d
}

// Pi returns the constant pi, rounded to MaxScale digits.
func Pi() Decimal {
	d, _ := fromFloat(bigPi())
	return d
}

func bigPi() *big.Float {
	// Machin's formula: pi/4 = 4*arctan(1/5) - arctan(1/239)
	a := bigArctanInv(5)
	b := bigArctanInv(239)
	four := big.NewFloat(4).SetPrec(transPrec)
	pi := new(big.Float).SetPrec(transPrec).Mul(a, four)
	pi.Sub(pi, b)
	pi.Mul(pi, four)
	return pi
}

func bigArctanInv(inv int64) *big.Float {
	divisor := new(big.Float).SetPrec(transPrec).SetInt64(inv)
	x := new(big.Float).SetPrec(transPrec).Quo(big.NewFloat(1).SetPrec(transPrec), divisor)
	xsq := new(big.Float).SetPrec(transPrec).Mul(x, x)
	sum := new(big.Float).SetPrec(transPrec).Set(x)
	term := new(big.Float).SetPrec(transPrec).Set(x)
	sign := 1
	for n := 1; n < 60; n++ {
		term.Mul(term, xsq)
		denom := big.NewFloat(float64(2*n + 1)).SetPrec(transPrec)
		part := new(big.Float).SetPrec(transPrec).Quo(term, denom)
		if sign > 0 {
			sum.Sub(sum, part)
		} else {
			sum.Add(sum, part)
		}
		sign = -sign
		if part.MinPrec() == 0 {
			break
		}
	}
	return sum
}

// Powi returns d^n for integer n via exponentiation by squaring, which
// is exact (no exp/ln round-trip) except for the HalfEven rounding that
// TryMul applies to any intermediate product whose scale would exceed
// MaxScale, and, for negative n, the rounding of the reciprocal 1/d.
func (d Decimal) Powi(n int32) (Decimal, bool) {
	if n == 0 {
		return One, true
	}
	base := d
	exp := n
	if n < 0 {
		inv, err := One.TryDiv(d)
		if err != nil {
			return Decimal{}, false
		}
		base = inv
		exp = -n
	}
	result := One
	for exp > 0 {
		if exp&1 == 1 {
			r, ok := result.CheckedMul(base)
			if !ok {
				return Decimal{}, false
			}
			result = r
		}
		b, ok := base.CheckedMul(base)
		if !ok {
			return Decimal{}, false
		}
		base = b
		exp >>= 1
	}
	return result, true
}

// TryPowi is like Powi but returns typed ArithmeticErrors.
func (d Decimal) TryPowi(n int32) (Decimal, error) {
	if n < 0 && d.IsZero() {
		return Decimal{}, newArithErr(DivisionByZero)
	}
	r, ok := d.Powi(n)
	if !ok {
		return Decimal{}, newArithErr(Overflow)
	}
	return r, nil
}

// Pow returns d^exponent using x^y = e^(y*ln(x)). Negative bases are
// only supported for integer exponents, delegating to Powi for exactness
// and correct sign handling; a non-integer exponent on a negative base
// has no real result and reports ok == false.
func (d Decimal) Pow(exponent Decimal) (Decimal, bool) {
	if exponent.IsZero() {
		return One, true
	}
	if d.IsZero() {
		if exponent.IsPositive() {
			return Zero, true
		}
		return Decimal{}, false
	}
	if d.Equal(One) {
		return One, true
	}
	if exponent.Equal(One) {
		return d, true
	}
	if d.IsNegative() {
		intExp, err := exponent.Rescale(0)
		if err != nil || !exponent.Equal(intExp) {
			return Decimal{}, false
		}
		mag, ok := intExp.fits64()
		if !ok || mag > 1<<31-1 {
			return Decimal{}, false
		}
		n := int32(mag)
		if intExp.neg {
			n = -n
		}
		return d.Powi(n)
	}
	lnX, ok := d.Ln()
	if !ok {
		return Decimal{}, false
	}
	product, ok := lnX.CheckedMul(exponent)
	if !ok {
		return Decimal{}, false
	}
	return product.Exp()
}

// TryPow is like Pow but returns ArithmeticError Overflow on failure.
func (d Decimal) TryPow(exponent Decimal) (Decimal, error) {
	r, ok := d.Pow(exponent)
	if !ok {
		return Decimal{}, newArithErr(Overflow)
	}
	return r, nil
}
