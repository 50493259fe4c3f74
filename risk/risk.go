// Package risk implements lending-protocol risk metrics: health factor,
// loan-to-value, collateral ratio, max borrowable, utilization, and
// liquidation price.
package risk

import "github.com/finprecision/decimal"

// HealthSentinel is returned by HealthFactor when debt is zero: the
// conceptual health factor is +infinity, represented as a large but
// finite sentinel rather than an error, so callers can still compare it.
var HealthSentinel = decimal.Max

// HealthFactor is collateral * liquidationThreshold / debt. Zero debt
// returns HealthSentinel instead of failing, since a debt-free position
// can never be liquidated.
func HealthFactor(collateral, liquidationThreshold, debt decimal.Decimal) (decimal.Decimal, error) {
	if debt.IsZero() {
		return HealthSentinel, nil
	}
	weighted, err := collateral.TryMul(liquidationThreshold)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return weighted.TryDiv(debt)
}

// LoanToValue is debt / collateral.
func LoanToValue(debt, collateral decimal.Decimal) (decimal.Decimal, error) {
	return debt.TryDiv(collateral)
}

// CollateralRatio is collateral / debt.
func CollateralRatio(collateral, debt decimal.Decimal) (decimal.Decimal, error) {
	return collateral.TryDiv(debt)
}

// MaxBorrowable is max(0, collateral*maxLTV - currentDebt).
func MaxBorrowable(collateral, maxLTV, currentDebt decimal.Decimal) (decimal.Decimal, error) {
	capacity, err := collateral.TryMul(maxLTV)
	if err != nil {
		return decimal.Decimal{}, err
	}
	remaining, err := capacity.TrySub(currentDebt)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if remaining.IsNegative() {
		return decimal.Zero, nil
	}
	return remaining, nil
}

// Utilization is borrows / supply. Zero supply with zero borrows returns
// zero; zero supply with nonzero borrows fails with DivisionByZero unless
// inconsistentAsZero is set, in which case it returns zero as well.
func Utilization(borrows, supply decimal.Decimal, inconsistentAsZero bool) (decimal.Decimal, error) {
	if supply.IsZero() {
		if borrows.IsZero() || inconsistentAsZero {
			return decimal.Zero, nil
		}
		return decimal.Decimal{}, decimal.ErrDivisionByZero
	}
	return borrows.TryDiv(supply)
}

// AvailableLiquidity is max(0, supply - borrows).
func AvailableLiquidity(supply, borrows decimal.Decimal) (decimal.Decimal, error) {
	remaining, err := supply.TrySub(borrows)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if remaining.IsNegative() {
		return decimal.Zero, nil
	}
	return remaining, nil
}

// LiquidationPrice is the collateral-asset price at which debt exactly
// equals collateralAmount * threshold.
func LiquidationPrice(debt, collateralAmount, threshold decimal.Decimal) (decimal.Decimal, error) {
	denom, err := collateralAmount.TryMul(threshold)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return debt.TryDiv(denom)
}
