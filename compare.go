package decimal

import "math/big"

// Cmp compares d and e as rational numbers and returns -1, 0, or +1.
// Decimals with different scales that represent the same value compare
// equal: New(100, 2) and New(1, 0) both yield Cmp == 0.
func (d Decimal) Cmp(e Decimal) int {
	if d.IsZero() && e.IsZero() {
		return 0
	}
	if d.neg != e.neg {
		if d.IsZero() && !e.neg {
			return -1
		}
		if e.IsZero() && !d.neg {
			return 1
		}
		if d.neg {
			return -1
		}
		return 1
	}
	// Same sign: align scales and compare magnitudes.
	dc, ec := d.coef(), e.coef()
	switch {
	case d.scale < e.scale:
		dc = new(big.Int).Mul(dc, pow10Big(int(e.scale)-int(d.scale)))
	case e.scale < d.scale:
		ec = new(big.Int).Mul(ec, pow10Big(int(d.scale)-int(e.scale)))
	}
	cmp := dc.Cmp(ec)
	if d.neg {
		cmp = -cmp
	}
	return cmp
}

// Equal reports whether d and e represent the same rational value.
func (d Decimal) Equal(e Decimal) bool { return d.Cmp(e) == 0 }

// Less reports whether d < e.
func (d Decimal) Less(e Decimal) bool { return d.Cmp(e) < 0 }

// LessOrEqual reports whether d <= e.
func (d Decimal) LessOrEqual(e Decimal) bool { return d.Cmp(e) <= 0 }

// Greater reports whether d > e.
func (d Decimal) Greater(e Decimal) bool { return d.Cmp(e) > 0 }

// GreaterOrEqual reports whether d >= e.
func (d Decimal) GreaterOrEqual(e Decimal) bool { return d.Cmp(e) >= 0 }

// Min returns the smaller of d and e.
func (d Decimal) Min(e Decimal) Decimal {
	if d.Cmp(e) <= 0 {
		return d
	}
	return e
}

// Max returns the larger of d and e.
func (d Decimal) Max(e Decimal) Decimal {
	if d.Cmp(e) >= 0 {
		return d
	}
	return e
}

// Clamp restricts d to the closed interval [lo, hi].
func (d Decimal) Clamp(lo, hi Decimal) Decimal {
	return d.Max(lo).Min(hi)
}
