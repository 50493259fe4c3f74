package decimal

import "math/big"

// alignedSigned returns d's coefficient as a signed big.Int scaled up to
// `scale`, which must be >= d.Scale().
func (d Decimal) alignedSigned(scale int) *big.Int {
	c := d.signedBig()
	if diff := scale - int(d.scale); diff > 0 {
		c.Mul(c, pow10Big(diff))
	}
	return c
}

func fromSigned(c *big.Int, scale int) (Decimal, error) {
	neg := c.Sign() < 0
	abs := new(big.Int).Abs(c)
	return fromCoef(neg, abs, scale)
}

// TryAdd returns d + e, or an [ArithmeticError] (always Overflow, since
// addition result scale is bounded by max(d.Scale(), e.Scale()) <=
// MaxScale) if the exact sum does not fit 96 bits.
func (d Decimal) TryAdd(e Decimal) (Decimal, error) {
	scale := maxInt(int(d.scale), int(e.scale))
	sum := new(big.Int).Add(d.alignedSigned(scale), e.alignedSigned(scale))
	return fromSigned(sum, scale)
}

// CheckedAdd is like TryAdd but reports failure as ok == false.
func (d Decimal) CheckedAdd(e Decimal) (Decimal, bool) {
	r, err := d.TryAdd(e)
	return r, err == nil
}

// SaturatingAdd returns d + e clamped to [Min, Max] on overflow.
func (d Decimal) SaturatingAdd(e Decimal) Decimal {
	r, err := d.TryAdd(e)
	if err == nil {
		return r
	}
	return saturate(d.Sign() >= 0 && e.Sign() >= 0)
}

// MustAdd is like TryAdd but panics on error. For scripts and tests;
// production call sites should use TryAdd.
func (d Decimal) MustAdd(e Decimal) Decimal {
	r, err := d.TryAdd(e)
	if err != nil {
		panic(err)
	}
	return r
}

// TrySub returns d - e.
func (d Decimal) TrySub(e Decimal) (Decimal, error) {
	return d.TryAdd(e.Neg())
}

// CheckedSub is like TrySub but reports failure as ok == false.
func (d Decimal) CheckedSub(e Decimal) (Decimal, bool) {
	r, err := d.TrySub(e)
	return r, err == nil
}

// SaturatingSub returns d - e clamped to [Min, Max] on overflow.
func (d Decimal) SaturatingSub(e Decimal) Decimal {
	r, err := d.TrySub(e)
	if err == nil {
		return r
	}
	return saturate(d.Sign() >= 0 && e.Sign() <= 0)
}

// MustSub is like TrySub but panics on error.
func (d Decimal) MustSub(e Decimal) Decimal {
	r, err := d.TrySub(e)
	if err != nil {
		panic(err)
	}
	return r
}

// TryMul returns d * e. The exact scale is d.Scale()+e.Scale(), rounded
// HalfEven down to MaxScale if that sum exceeds it, and lowered further
// (again HalfEven) while the mantissa does not fit 96 bits.
func (d Decimal) TryMul(e Decimal) (Decimal, error) {
	neg := d.neg != e.neg
	exact := new(big.Int).Mul(d.coef(), e.coef())
	exactScale := int(d.scale) + int(e.scale)
	scale := exactScale
	if scale > MaxScale {
		scale = MaxScale
	}
	for {
		product := rescaleCoef(exact, exactScale, scale, HalfEven, neg)
		if product.Cmp(maxMantissa) <= 0 || scale == 0 {
			return fromCoef(neg, product, scale)
		}
		scale--
	}
}

// CheckedMul is like TryMul but reports failure as ok == false.
func (d Decimal) CheckedMul(e Decimal) (Decimal, bool) {
	r, err := d.TryMul(e)
	return r, err == nil
}

// SaturatingMul returns d * e clamped to [Min, Max] on overflow.
func (d Decimal) SaturatingMul(e Decimal) Decimal {
	r, err := d.TryMul(e)
	if err == nil {
		return r
	}
	return saturate(d.neg == e.neg)
}

// MustMul is like TryMul but panics on error.
func (d Decimal) MustMul(e Decimal) Decimal {
	r, err := d.TryMul(e)
	if err != nil {
		panic(err)
	}
	return r
}

// TryDiv returns d / e, the most precise mantissa fitting within
// MaxScale fractional digits, rounded HalfEven. An exact quotient is
// returned at the smallest scale, not below d.Scale()-e.Scale(), that
// represents it (10 / 4 is 2.5, 10 / 2 is 5); an inexact one at the
// largest scale up to MaxScale whose mantissa fits 96 bits. It
// distinguishes DivisionByZero (e is zero) from Overflow (the quotient
// does not fit 96 bits even at scale 0).
func (d Decimal) TryDiv(e Decimal) (Decimal, error) {
	if e.IsZero() {
		return Decimal{}, newArithErr(DivisionByZero)
	}
	if d.IsZero() {
		return Zero, nil
	}
	neg := d.neg != e.neg
	// |d / e| == num / denom; each pass computes the quotient at one scale.
	num := new(big.Int).Mul(d.coef(), pow10Big(int(e.scale)))
	denom := new(big.Int).Mul(e.coef(), pow10Big(int(d.scale)))
	minScale := maxInt(int(d.scale)-int(e.scale), 0)
	for scale := MaxScale; ; scale-- {
		q, r := new(big.Int).QuoRem(new(big.Int).Mul(num, pow10Big(scale)), denom, new(big.Int))
		if r.Sign() != 0 {
			twiceR := new(big.Int).Lsh(r, 1)
			cmp := twiceR.Cmp(denom)
			if roundQuotient(HalfEven, neg, q.Bit(0) != 0, cmp, false) {
				q.Add(q, big.NewInt(1))
			}
		} else if scale > minScale && new(big.Int).Rem(q, big.NewInt(10)).Sign() == 0 {
			continue
		}
		if q.Cmp(maxMantissa) <= 0 || scale == 0 {
			return fromCoef(neg, q, scale)
		}
	}
}

// CheckedDiv is like TryDiv but reports failure as ok == false (for
// either DivisionByZero or Overflow).
func (d Decimal) CheckedDiv(e Decimal) (Decimal, bool) {
	r, err := d.TryDiv(e)
	return r, err == nil
}

// MustDiv is like TryDiv but panics on error.
func (d Decimal) MustDiv(e Decimal) Decimal {
	r, err := d.TryDiv(e)
	if err != nil {
		panic(err)
	}
	return r
}

// TryRem returns the remainder of d / e with the sign of d (T-division),
// at scale max(d.Scale(), e.Scale()). Fails with DivisionByZero if e is
// zero.
func (d Decimal) TryRem(e Decimal) (Decimal, error) {
	if e.IsZero() {
		return Decimal{}, newArithErr(DivisionByZero)
	}
	scale := maxInt(int(d.scale), int(e.scale))
	dn := d.alignedSigned(scale)
	en := e.alignedSigned(scale)
	en.Abs(en)
	r := new(big.Int).Rem(dn, en)
	return fromSigned(r, scale)
}

// CheckedRem is like TryRem but reports failure as ok == false.
func (d Decimal) CheckedRem(e Decimal) (Decimal, bool) {
	r, err := d.TryRem(e)
	return r, err == nil
}

func saturate(positive bool) Decimal {
	if positive {
		return Max
	}
	return Min
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
