package decimal

// Round returns d rounded to dp digits after the decimal point using
// mode. The returned value always has scale == dp.
func (d Decimal) Round(dp uint32, mode RoundingMode) Decimal {
	coef := rescaleCoef(d.coef(), int(d.scale), int(dp), mode, d.neg)
	out, err := fromCoef(d.neg, coef, int(dp))
	if err != nil {
		// Rounding up at the representable boundary (e.g. rounding
		// Max's last digit) can overflow by one unit; saturate rather
		// than panic, matching the saturating family's contract.
		if d.neg {
			return Min
		}
		return Max
	}
	return out
}

// RoundDefault rounds to dp digits using the package default mode,
// HalfEven.
func (d Decimal) RoundDefault(dp uint32) Decimal {
	return d.Round(dp, HalfEven)
}

// Trunc truncates (rounds toward zero) to dp digits.
func (d Decimal) Trunc(dp uint32) Decimal {
	return d.Round(dp, TowardZero)
}

// Floor rounds toward negative infinity, to an integer (scale 0).
func (d Decimal) Floor() Decimal {
	return d.Round(0, Down)
}

// Ceil rounds toward positive infinity, to an integer (scale 0).
func (d Decimal) Ceil() Decimal {
	return d.Round(0, Up)
}

// Rescale changes the scale of d to the given value using HalfEven
// rounding when narrowing. It fails with ErrScaleExceeded if scale is
// outside [0, MaxScale].
func (d Decimal) Rescale(scale uint32) (Decimal, error) {
	if scale > MaxScale {
		return Decimal{}, newArithErr(ScaleExceeded)
	}
	coef := rescaleCoef(d.coef(), int(d.scale), int(scale), HalfEven, d.neg)
	return fromCoef(d.neg, coef, int(scale))
}
