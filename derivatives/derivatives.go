// Package derivatives implements perpetual-futures position math: PnL,
// liquidation price, funding, leverage, and margin — all pure functions
// over a Position.
package derivatives

import "github.com/finprecision/decimal"

// Position is an immutable perpetual-futures position.
type Position struct {
	Size                   decimal.Decimal // always positive; direction carried by IsLong
	EntryPrice             decimal.Decimal
	IsLong                 bool
	Leverage               decimal.Decimal
	Collateral             decimal.Decimal
	MaintenanceMarginRate  decimal.Decimal
}

// FundingParams describes the inputs to a single funding-rate computation.
type FundingParams struct {
	MarkPrice      decimal.Decimal
	IndexPrice     decimal.Decimal
	InterestRate   decimal.Decimal
	PremiumCap     decimal.Decimal
	IntervalHours  decimal.Decimal
}

var hoursPerYear = decimal.MustNew(8760, 0)

func sign(isLong bool) decimal.Decimal {
	if isLong {
		return decimal.One
	}
	return decimal.One.Neg()
}

// PnL returns the mark-to-market profit or loss at price.
func PnL(p Position, price decimal.Decimal) (decimal.Decimal, error) {
	diff, err := price.TrySub(p.EntryPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	signed, err := diff.TryMul(sign(p.IsLong))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return p.Size.TryMul(signed)
}

// LiquidationPrice solves for the mark price at which collateral exactly
// covers the maintenance margin requirement.
func LiquidationPrice(p Position) (decimal.Decimal, error) {
	notionalMM, err := p.Size.TryMul(p.EntryPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	notionalMM, err = notionalMM.TryMul(p.MaintenanceMarginRate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	buffer, err := p.Collateral.TrySub(notionalMM)
	if err != nil {
		return decimal.Decimal{}, err
	}
	delta, err := buffer.TryDiv(p.Size)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if p.IsLong {
		return p.EntryPrice.TrySub(delta)
	}
	return p.EntryPrice.TryAdd(delta)
}

// FundingRate computes the funding rate for one interval, clamped to
// [-PremiumCap, +PremiumCap].
func FundingRate(fp FundingParams) (decimal.Decimal, error) {
	diff, err := fp.MarkPrice.TrySub(fp.IndexPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	premium, err := diff.TryDiv(fp.IndexPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	intervalFrac, err := fp.IntervalHours.TryDiv(hoursPerYear)
	if err != nil {
		return decimal.Decimal{}, err
	}
	interestTerm, err := fp.InterestRate.TryMul(intervalFrac)
	if err != nil {
		return decimal.Decimal{}, err
	}
	raw, err := premium.TryAdd(interestTerm)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return raw.Clamp(fp.PremiumCap.Neg(), fp.PremiumCap), nil
}

// FundingPayment returns the funding cash flow for a position over one
// interval; positive means the position pays funding.
func FundingPayment(p Position, fp FundingParams) (decimal.Decimal, error) {
	rate, err := FundingRate(fp)
	if err != nil {
		return decimal.Decimal{}, err
	}
	notional, err := p.Size.TryMul(fp.MarkPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	payment, err := notional.TryMul(rate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return payment.TryMul(sign(p.IsLong))
}

// EffectiveLeverage is notional value divided by collateral.
func EffectiveLeverage(p Position, markPrice decimal.Decimal) (decimal.Decimal, error) {
	notional, err := p.Size.TryMul(markPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return notional.TryDiv(p.Collateral)
}

// MarginRatio is collateral adjusted by unrealized PnL, divided by notional.
func MarginRatio(p Position, markPrice decimal.Decimal) (decimal.Decimal, error) {
	pnl, err := PnL(p, markPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	equity, err := p.Collateral.TryAdd(pnl)
	if err != nil {
		return decimal.Decimal{}, err
	}
	notional, err := p.Size.TryMul(markPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return equity.TryDiv(notional)
}

// MaxPositionSize returns the largest size obtainable with collateral at
// the requested leverage and entry price.
func MaxPositionSize(collateral, leverage, entryPrice decimal.Decimal) (decimal.Decimal, error) {
	notional, err := collateral.TryMul(leverage)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return notional.TryDiv(entryPrice)
}

// RequiredCollateral is the collateral needed to open size at entryPrice
// with the given leverage.
func RequiredCollateral(size, entryPrice, leverage decimal.Decimal) (decimal.Decimal, error) {
	notional, err := size.TryMul(entryPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return notional.TryDiv(leverage)
}

// BreakevenPrice is the mark price at which PnL exactly offsets round-trip
// fees (expressed as a fraction of notional, e.g. entry + exit taker fee).
func BreakevenPrice(p Position, feeRate decimal.Decimal) (decimal.Decimal, error) {
	feeAdjust, err := p.EntryPrice.TryMul(feeRate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if p.IsLong {
		return p.EntryPrice.TryAdd(feeAdjust)
	}
	return p.EntryPrice.TrySub(feeAdjust)
}

// AverageEntryOnAdd returns the size-weighted average entry price after
// adding addSize at addPrice to an existing position of the same side.
func AverageEntryOnAdd(p Position, addSize, addPrice decimal.Decimal) (decimal.Decimal, error) {
	existingNotional, err := p.Size.TryMul(p.EntryPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	addNotional, err := addSize.TryMul(addPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	totalNotional, err := existingNotional.TryAdd(addNotional)
	if err != nil {
		return decimal.Decimal{}, err
	}
	totalSize, err := p.Size.TryAdd(addSize)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return totalNotional.TryDiv(totalSize)
}
