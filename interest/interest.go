// Package interest implements time-value-of-money primitives (simple
// and compound interest, effective annual rate, future/present value,
// net present value) and the percentage helpers (percentage-of,
// percentage-change, bps-to-decimal) layered directly on the decimal
// core.
package interest

import "github.com/finprecision/decimal"

// Simple returns principal accrued at a simple annual rate over the
// given number of years: principal * (1 + rate*years).
func Simple(principal, rate, years decimal.Decimal) (decimal.Decimal, error) {
	growth, err := rate.TryMul(years)
	if err != nil {
		return decimal.Decimal{}, err
	}
	factor, err := decimal.One.TryAdd(growth)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return principal.TryMul(factor)
}

// Compound returns principal accrued at an annual rate, compounded
// periodsPerYear times a year, over the given number of years:
// principal * (1 + rate/periodsPerYear)^(periodsPerYear*years).
func Compound(principal, rate decimal.Decimal, periodsPerYear int32, years decimal.Decimal) (decimal.Decimal, error) {
	n := decimal.NewFromInt(int64(periodsPerYear))
	periodRate, err := rate.TryDiv(n)
	if err != nil {
		return decimal.Decimal{}, err
	}
	base, err := decimal.One.TryAdd(periodRate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	totalPeriods, err := n.TryMul(years)
	if err != nil {
		return decimal.Decimal{}, err
	}
	// Use the exact integer-power path whenever totalPeriods happens to
	// be a whole number (the overwhelmingly common case: fixed terms
	// over whole years); fall back to the general exp/ln pow otherwise.
	var factor decimal.Decimal
	var ok bool
	if whole, err := totalPeriods.Rescale(0); err == nil && whole.Equal(totalPeriods) {
		mantissa, _, neg := whole.Parts()
		if !mantissa.IsInt64() {
			return decimal.Decimal{}, decimal.ErrOverflow
		}
		n64 := mantissa.Int64()
		if neg {
			n64 = -n64
		}
		factor, ok = base.Powi(int32(n64))
	} else {
		factor, ok = base.Pow(totalPeriods)
	}
	if !ok {
		return decimal.Decimal{}, decimal.ErrOverflow
	}
	return principal.TryMul(factor)
}

// EffectiveAnnualRate converts a nominal annual rate compounded
// periodsPerYear times a year into its effective annual rate:
// (1 + rate/periodsPerYear)^periodsPerYear - 1.
func EffectiveAnnualRate(rate decimal.Decimal, periodsPerYear int32) (decimal.Decimal, error) {
	n := decimal.NewFromInt(int64(periodsPerYear))
	periodRate, err := rate.TryDiv(n)
	if err != nil {
		return decimal.Decimal{}, err
	}
	base, err := decimal.One.TryAdd(periodRate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	factor, ok := base.Powi(periodsPerYear)
	if !ok {
		return decimal.Decimal{}, decimal.ErrOverflow
	}
	return factor.TrySub(decimal.One)
}

// FutureValue returns the future value of a present amount compounded
// continuously at rate over years: presentValue * exp(rate*years).
func FutureValue(presentValue, rate, years decimal.Decimal) (decimal.Decimal, error) {
	exponent, err := rate.TryMul(years)
	if err != nil {
		return decimal.Decimal{}, err
	}
	growth, err := exponent.TryExp()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return presentValue.TryMul(growth)
}

// PresentValue discounts a future amount continuously at rate over
// years: futureValue * exp(-rate*years).
func PresentValue(futureValue, rate, years decimal.Decimal) (decimal.Decimal, error) {
	exponent, err := rate.TryMul(years)
	if err != nil {
		return decimal.Decimal{}, err
	}
	discount, err := exponent.Neg().TryExp()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return futureValue.TryMul(discount)
}

// CashFlow is a single dated cash flow used by NetPresentValue: a
// payment occurring `years` from now (negative for an initial outlay).
type CashFlow struct {
	Years  decimal.Decimal
	Amount decimal.Decimal
}

// NetPresentValue discounts every flow to present value at the given
// continuously-compounded rate and sums the results.
func NetPresentValue(rate decimal.Decimal, flows []CashFlow) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, f := range flows {
		pv, err := PresentValue(f.Amount, rate, f.Years)
		if err != nil {
			return decimal.Decimal{}, err
		}
		sum, err = sum.TryAdd(pv)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}
	return sum, nil
}

// PercentageOf returns value * pct / 100.
func PercentageOf(value, pct decimal.Decimal) (decimal.Decimal, error) {
	product, err := value.TryMul(pct)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return product.TryDiv(decimal.OneHundred)
}

// PercentageChange returns (to - from) / |from| * 100, i.e. the signed
// percentage change from `from` to `to`.
func PercentageChange(from, to decimal.Decimal) (decimal.Decimal, error) {
	diff, err := to.TrySub(from)
	if err != nil {
		return decimal.Decimal{}, err
	}
	ratio, err := diff.TryDiv(from.Abs())
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ratio.TryMul(decimal.OneHundred)
}

// BpsToDecimal converts a basis-points value to its decimal fraction:
// bps / 10000.
func BpsToDecimal(bps decimal.Decimal) (decimal.Decimal, error) {
	tenThousand := decimal.MustNew(10000, 0)
	return bps.TryDiv(tenThousand)
}
