package options

import "github.com/finprecision/decimal"

// Coefficients for the Abramowitz & Stegun 7.1.26 rational approximation
// to the error function, accurate to about 1.5e-7.
var (
	erfP  = decimal.MustParse("0.3275911")
	erfA1 = decimal.MustParse("0.254829592")
	erfA2 = decimal.MustParse("-0.284496736")
	erfA3 = decimal.MustParse("1.421413741")
	erfA4 = decimal.MustParse("-1.453152027")
	erfA5 = decimal.MustParse("1.061405429")

	sqrt2     = mustSqrt(two)
	twoPi     = decimal.MustParse("6.283185307")
	sqrtTwoPi = mustSqrt(twoPi)
)

func mustSqrt(d decimal.Decimal) decimal.Decimal {
	s, ok := d.Sqrt()
	if !ok {
		panic("options: sqrt of negative constant")
	}
	return s
}

// erf approximates the error function via Abramowitz & Stegun 7.1.26.
func erf(x decimal.Decimal) (decimal.Decimal, error) {
	neg := x.IsNegative()
	ax := x.Abs()

	denom, err := erfP.TryMul(ax)
	if err != nil {
		return decimal.Decimal{}, err
	}
	denom, err = decimal.One.TryAdd(denom)
	if err != nil {
		return decimal.Decimal{}, err
	}
	t, err := decimal.One.TryDiv(denom)
	if err != nil {
		return decimal.Decimal{}, err
	}

	poly := erfA5
	for _, c := range []decimal.Decimal{erfA4, erfA3, erfA2, erfA1} {
		poly, err = poly.TryMul(t)
		if err != nil {
			return decimal.Decimal{}, err
		}
		poly, err = poly.TryAdd(c)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}
	poly, err = poly.TryMul(t)
	if err != nil {
		return decimal.Decimal{}, err
	}

	negXSq, err := ax.TryMul(ax)
	if err != nil {
		return decimal.Decimal{}, err
	}
	expTerm, err := negXSq.Neg().TryExp()
	if err != nil {
		return decimal.Decimal{}, err
	}
	product, err := poly.TryMul(expTerm)
	if err != nil {
		return decimal.Decimal{}, err
	}
	result, err := decimal.One.TrySub(product)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if neg {
		return result.Neg(), nil
	}
	return result, nil
}

// NormalCDF returns the standard normal cumulative distribution at x,
// via erf(x/sqrt(2)). For |x| > 8 it saturates to 0 or 1, matching the
// approximation's effective range.
func NormalCDF(x decimal.Decimal) (decimal.Decimal, error) {
	eight := decimal.MustNew(8, 0)
	if x.Greater(eight) {
		return decimal.One, nil
	}
	if x.Less(eight.Neg()) {
		return decimal.Zero, nil
	}
	arg, err := x.TryDiv(sqrt2)
	if err != nil {
		return decimal.Decimal{}, err
	}
	e, err := erf(arg)
	if err != nil {
		return decimal.Decimal{}, err
	}
	sum, err := decimal.One.TryAdd(e)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sum.TryDiv(two)
}

// NormalPDF returns the standard normal probability density at x.
func NormalPDF(x decimal.Decimal) (decimal.Decimal, error) {
	xSq, err := x.TryMul(x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	halfNegXSq, err := xSq.TryDiv(two)
	if err != nil {
		return decimal.Decimal{}, err
	}
	expTerm, err := halfNegXSq.Neg().TryExp()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return expTerm.TryDiv(sqrtTwoPi)
}
