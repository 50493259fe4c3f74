// Package amm implements constant-product swap math, concentrated
// liquidity (Uniswap-V3 style), and proportional pool share accounting.
package amm

import "github.com/finprecision/decimal"

var (
	tenThousand = decimal.MustNew(10000, 0)
	two         = decimal.MustNew(2, 0)
)

// SwapOutput returns the output amount for swapping in into a pool with
// reserves (reserveIn, reserveOut), charging feeBps on the input.
func SwapOutput(reserveIn, reserveOut, in decimal.Decimal, feeBps int32) (decimal.Decimal, error) {
	feeFactor, err := tenThousand.TrySub(decimal.NewFromInt(int64(feeBps)))
	if err != nil {
		return decimal.Decimal{}, err
	}
	numerator, err := reserveOut.TryMul(in)
	if err != nil {
		return decimal.Decimal{}, err
	}
	numerator, err = numerator.TryMul(feeFactor)
	if err != nil {
		return decimal.Decimal{}, err
	}
	denomLeft, err := reserveIn.TryMul(tenThousand)
	if err != nil {
		return decimal.Decimal{}, err
	}
	denomRight, err := in.TryMul(feeFactor)
	if err != nil {
		return decimal.Decimal{}, err
	}
	denom, err := denomLeft.TryAdd(denomRight)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return numerator.TryDiv(denom)
}

// SwapInputForOutput inverts SwapOutput: returns the input amount needed
// to receive at least out units, rounded up by one unit at the computed
// input's own scale to guard against truncation letting the pool
// under-deliver.
func SwapInputForOutput(reserveIn, reserveOut, out decimal.Decimal, feeBps int32) (decimal.Decimal, error) {
	feeFactor, err := tenThousand.TrySub(decimal.NewFromInt(int64(feeBps)))
	if err != nil {
		return decimal.Decimal{}, err
	}
	numerator, err := reserveIn.TryMul(out)
	if err != nil {
		return decimal.Decimal{}, err
	}
	numerator, err = numerator.TryMul(tenThousand)
	if err != nil {
		return decimal.Decimal{}, err
	}
	denomLeft, err := reserveOut.TrySub(out)
	if err != nil {
		return decimal.Decimal{}, err
	}
	denom, err := denomLeft.TryMul(feeFactor)
	if err != nil {
		return decimal.Decimal{}, err
	}
	in, err := numerator.TryDiv(denom)
	if err != nil {
		return decimal.Decimal{}, err
	}
	ulp := decimal.MustNew(1, in.Scale())
	return in.TryAdd(ulp)
}

// PriceImpact measures the fractional gap between the realized swap rate
// and the pool's marginal spot rate, clamped to >= 0.
func PriceImpact(reserveIn, reserveOut, in decimal.Decimal, feeBps int32) (decimal.Decimal, error) {
	out, err := SwapOutput(reserveIn, reserveOut, in, feeBps)
	if err != nil {
		return decimal.Decimal{}, err
	}
	realizedRate, err := out.TryDiv(in)
	if err != nil {
		return decimal.Decimal{}, err
	}
	spotRate, err := reserveOut.TryDiv(reserveIn)
	if err != nil {
		return decimal.Decimal{}, err
	}
	ratio, err := realizedRate.TryDiv(spotRate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	impact, err := decimal.One.TrySub(ratio)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if impact.IsNegative() {
		return decimal.Zero, nil
	}
	return impact, nil
}

var tickBase = decimal.MustParse("1.0001")

// sqrtTickBase is sqrt(1.0001), the per-tick multiplicative step used by
// binary exponentiation in SqrtPriceAtTick.
var sqrtTickBase = mustSqrt(tickBase)

func mustSqrt(d decimal.Decimal) decimal.Decimal {
	s, ok := d.Sqrt()
	if !ok {
		panic("amm: sqrt of negative constant")
	}
	return s
}

func mustLn(d decimal.Decimal) decimal.Decimal {
	l, ok := d.Ln()
	if !ok {
		panic("amm: ln of non-positive constant")
	}
	return l
}

// SqrtPriceAtTick computes 1.0001^(tick/2) by binary exponentiation of
// sqrt(1.0001), matching Uniswap-V3's tick spacing convention.
func SqrtPriceAtTick(tick int32) (decimal.Decimal, error) {
	neg := tick < 0
	n := tick
	if neg {
		n = -n
	}
	result := decimal.One
	base := sqrtTickBase
	for n > 0 {
		if n&1 == 1 {
			var err error
			result, err = result.TryMul(base)
			if err != nil {
				return decimal.Decimal{}, err
			}
		}
		var err error
		base, err = base.TryMul(base)
		if err != nil {
			return decimal.Decimal{}, err
		}
		n >>= 1
	}
	if neg {
		return decimal.One.TryDiv(result)
	}
	return result, nil
}

var lnTickBase = mustLn(tickBase)

// TickAtSqrtPrice inverts SqrtPriceAtTick: tick = 2*ln(sqrtPrice)/ln(1.0001),
// truncated toward zero. Round-trip error against SqrtPriceAtTick is at
// most one tick.
func TickAtSqrtPrice(sqrtPrice decimal.Decimal) (int32, error) {
	lnPrice, err := sqrtPrice.TryLn()
	if err != nil {
		return 0, err
	}
	ratio, err := lnPrice.TryMul(two)
	if err != nil {
		return 0, err
	}
	ratio, err = ratio.TryDiv(lnTickBase)
	if err != nil {
		return 0, err
	}
	truncated := ratio.Trunc(0)
	mantissa, _, neg := truncated.Parts()
	if !mantissa.IsInt64() {
		return 0, decimal.ErrOverflow
	}
	n := int32(mantissa.Int64())
	if neg {
		n = -n
	}
	return n, nil
}

// LiquidityFromAmounts computes the concentrated-liquidity L such that
// depositing (amount0, amount1) exactly fills the range
// [sqrtLower, sqrtUpper] at the current sqrtPrice.
func LiquidityFromAmounts(sqrtPrice, sqrtLower, sqrtUpper, amount0, amount1 decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case sqrtPrice.LessOrEqual(sqrtLower):
		return liquidity0(sqrtLower, sqrtUpper, amount0)
	case sqrtPrice.GreaterOrEqual(sqrtUpper):
		return liquidity1(sqrtLower, sqrtUpper, amount1)
	default:
		l0, err := liquidity0(sqrtPrice, sqrtUpper, amount0)
		if err != nil {
			return decimal.Decimal{}, err
		}
		l1, err := liquidity1(sqrtLower, sqrtPrice, amount1)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return l0.Min(l1), nil
	}
}

func liquidity0(sqrtA, sqrtB, amount0 decimal.Decimal) (decimal.Decimal, error) {
	diff, err := sqrtB.TrySub(sqrtA)
	if err != nil {
		return decimal.Decimal{}, err
	}
	product, err := sqrtA.TryMul(sqrtB)
	if err != nil {
		return decimal.Decimal{}, err
	}
	numerator, err := amount0.TryMul(product)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return numerator.TryDiv(diff)
}

func liquidity1(sqrtA, sqrtB, amount1 decimal.Decimal) (decimal.Decimal, error) {
	diff, err := sqrtB.TrySub(sqrtA)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount1.TryDiv(diff)
}

// AmountsFromLiquidity is the inverse of LiquidityFromAmounts: given L and
// the current price relative to the range, returns (amount0, amount1).
func AmountsFromLiquidity(sqrtPrice, sqrtLower, sqrtUpper, liquidity decimal.Decimal) (amount0, amount1 decimal.Decimal, err error) {
	switch {
	case sqrtPrice.LessOrEqual(sqrtLower):
		amount0, err = amount0FromL(sqrtLower, sqrtUpper, liquidity)
		return amount0, decimal.Zero, err
	case sqrtPrice.GreaterOrEqual(sqrtUpper):
		amount1, err = amount1FromL(sqrtLower, sqrtUpper, liquidity)
		return decimal.Zero, amount1, err
	default:
		amount0, err = amount0FromL(sqrtPrice, sqrtUpper, liquidity)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		amount1, err = amount1FromL(sqrtLower, sqrtPrice, liquidity)
		return amount0, amount1, err
	}
}

func amount0FromL(sqrtA, sqrtB, liquidity decimal.Decimal) (decimal.Decimal, error) {
	diff, err := sqrtB.TrySub(sqrtA)
	if err != nil {
		return decimal.Decimal{}, err
	}
	numerator, err := liquidity.TryMul(diff)
	if err != nil {
		return decimal.Decimal{}, err
	}
	product, err := sqrtA.TryMul(sqrtB)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return numerator.TryDiv(product)
}

func amount1FromL(sqrtA, sqrtB, liquidity decimal.Decimal) (decimal.Decimal, error) {
	diff, err := sqrtB.TrySub(sqrtA)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return liquidity.TryMul(diff)
}

// PositionValue values a concentrated-liquidity position in terms of
// asset 1 (e.g. the quote asset), at the current sqrtPrice.
func PositionValue(sqrtPrice, sqrtLower, sqrtUpper, liquidity decimal.Decimal) (decimal.Decimal, error) {
	amount0, amount1, err := AmountsFromLiquidity(sqrtPrice, sqrtLower, sqrtUpper, liquidity)
	if err != nil {
		return decimal.Decimal{}, err
	}
	price, err := sqrtPrice.TryMul(sqrtPrice)
	if err != nil {
		return decimal.Decimal{}, err
	}
	value0, err := amount0.TryMul(price)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return value0.TryAdd(amount1)
}

// ImpermanentLoss compares the value of a full-range position at
// sqrtPriceNow against simply holding the initial (amount0, amount1),
// both valued in asset 1, returned as a negative fraction (loss) of the
// HODL value.
func ImpermanentLoss(sqrtPriceInitial, sqrtPriceNow, amount0, amount1 decimal.Decimal) (decimal.Decimal, error) {
	hodlPriceNow, err := sqrtPriceNow.TryMul(sqrtPriceNow)
	if err != nil {
		return decimal.Decimal{}, err
	}
	hodlValue0, err := amount0.TryMul(hodlPriceNow)
	if err != nil {
		return decimal.Decimal{}, err
	}
	hodlValue, err := hodlValue0.TryAdd(amount1)
	if err != nil {
		return decimal.Decimal{}, err
	}

	liquidity, err := LiquidityFromAmounts(sqrtPriceInitial, decimal.Zero, decimal.MustParse("1000000000000"), amount0, amount1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	poolValue, err := PositionValue(sqrtPriceNow, decimal.Zero, decimal.MustParse("1000000000000"), liquidity)
	if err != nil {
		return decimal.Decimal{}, err
	}

	diff, err := poolValue.TrySub(hodlValue)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return diff.TryDiv(hodlValue)
}

// InitialMint returns the LP supply minted for the first deposit of
// (amount0, amount1): sqrt(amount0 * amount1).
func InitialMint(amount0, amount1 decimal.Decimal) (decimal.Decimal, error) {
	product, err := amount0.TryMul(amount1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return product.TrySqrt()
}

// ProportionalMint returns the LP supply minted for a deposit into a pool
// with existing reserves and totalSupply, matching the worse of the two
// asset ratios so the depositor never dilutes existing holders.
func ProportionalMint(reserve0, reserve1, amount0, amount1, totalSupply decimal.Decimal) (decimal.Decimal, error) {
	share0, err := amount0.TryDiv(reserve0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	share1, err := amount1.TryDiv(reserve1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	share := share0.Min(share1)
	return share.TryMul(totalSupply)
}

// ProportionalBurn returns the (amount0, amount1) redeemed for burning
// lpAmount of totalSupply LP tokens against reserves (reserve0, reserve1).
func ProportionalBurn(reserve0, reserve1, lpAmount, totalSupply decimal.Decimal) (amount0, amount1 decimal.Decimal, err error) {
	share, err := lpAmount.TryDiv(totalSupply)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	amount0, err = reserve0.TryMul(share)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	amount1, err = reserve1.TryMul(share)
	return amount0, amount1, err
}
