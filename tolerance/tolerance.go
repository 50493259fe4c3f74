// Package tolerance provides the five equality predicates used
// throughout the financial layer wherever exact decimal equality is
// too strict for a computed (as opposed to parsed) value: absolute,
// relative, ulp, percentage, and basis-points tolerance.
package tolerance

import "github.com/finprecision/decimal"

func absDiff(a, b decimal.Decimal) decimal.Decimal {
	return a.SaturatingSub(b).Abs()
}

// Absolute reports whether |a - b| <= tol.
func Absolute(a, b, tol decimal.Decimal) bool {
	return absDiff(a, b).LessOrEqual(tol)
}

// Relative reports whether |a - b| <= max(|a|, |b|) * tol.
func Relative(a, b, tol decimal.Decimal) bool {
	bound := a.Abs().Max(b.Abs()).MustMul(tol)
	return absDiff(a, b).LessOrEqual(bound)
}

// Ulp reports whether a and b are close under either Absolute or
// Relative tolerance, matching the common "close enough" convention of
// an absolute floor plus a relative component.
func Ulp(a, b, absTol, relTol decimal.Decimal) bool {
	return Absolute(a, b, absTol) || Relative(a, b, relTol)
}

// Percentage reports whether |a - b| <= |b| * pct / 100.
func Percentage(a, b, pct decimal.Decimal) bool {
	bound := b.Abs().MustMul(pct).MustDiv(decimal.OneHundred)
	return absDiff(a, b).LessOrEqual(bound)
}

// BasisPoints reports whether |a - b| <= |b| * bps / 10000. Agrees with
// Percentage at bps = pct * 100.
func BasisPoints(a, b, bps decimal.Decimal) bool {
	tenThousand := decimal.MustNew(10000, 0)
	bound := b.Abs().MustMul(bps).MustDiv(tenThousand)
	return absDiff(a, b).LessOrEqual(bound)
}
