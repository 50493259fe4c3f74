package decimal

import (
	"math/big"
	"sync"
)

// MaxScale is the maximum number of digits after the decimal point a
// [Decimal] can carry. Matches the spec's scale bound of 28, the same
// bound rust_decimal (and .NET's System.Decimal, which rust_decimal's
// on-disk layout mirrors) uses for a 96-bit mantissa.
const MaxScale = 28

// maxMantissa is 2^96 - 1, the largest unsigned value a 96-bit mantissa
// (three little-endian uint32 words) can hold.
var maxMantissa = func() *big.Int {
	n := new(big.Int).Lsh(big.NewInt(1), 96)
	return n.Sub(n, big.NewInt(1))
}()

var mask32 = big.NewInt(0xFFFFFFFF)

// wordsToBig reconstructs the unsigned 96-bit coefficient from its three
// little-endian 32-bit words. This is the layout the original Rust core
// documents as Decimal::from_parts(lo, mid, hi, ...).
func wordsToBig(lo, mid, hi uint32) *big.Int {
	z := new(big.Int).SetUint64(uint64(hi))
	z.Lsh(z, 32)
	z.Or(z, big.NewInt(int64(mid)))
	z.Lsh(z, 32)
	z.Or(z, big.NewInt(int64(lo)))
	return z
}

// bigToWords splits a non-negative coefficient known to fit 96 bits into
// its three little-endian words. Panics (a programmer-error guard, never
// reachable through the exported API) if coef exceeds maxMantissa.
func bigToWords(coef *big.Int) (lo, mid, hi uint32) {
	if coef.Sign() < 0 || coef.Cmp(maxMantissa) > 0 {
		panic("decimal: coefficient out of 96-bit range")
	}
	t := new(big.Int).And(coef, mask32)
	lo = uint32(t.Uint64())
	t.Rsh(coef, 32)
	t.And(t, mask32)
	mid = uint32(t.Uint64())
	t.Rsh(coef, 64)
	hi = uint32(t.Uint64())
	return lo, mid, hi
}

// fits64 reports whether the coefficient fits in a uint64 (hi word zero)
// and returns that value. Pow uses it to detect an integer exponent;
// the arithmetic itself always works on the big.Int coefficient.
func (d Decimal) fits64() (uint64, bool) {
	if d.hi != 0 {
		return 0, false
	}
	return uint64(d.mid)<<32 | uint64(d.lo), true
}

// coef reconstructs the unsigned coefficient as a *big.Int.
func (d Decimal) coef() *big.Int {
	return wordsToBig(d.lo, d.mid, d.hi)
}

// fromCoef builds a Decimal from a sign, an unsigned coefficient, and a
// scale, normalizing nothing and failing with ErrOverflow/ErrScaleExceeded
// if either bound is violated.
func fromCoef(neg bool, coef *big.Int, scale int) (Decimal, error) {
	if scale < 0 || scale > MaxScale {
		return Decimal{}, newArithErr(ScaleExceeded)
	}
	if coef.Sign() == 0 {
		neg = false
	}
	if coef.Cmp(maxMantissa) > 0 {
		return Decimal{}, newArithErr(Overflow)
	}
	lo, mid, hi := bigToWords(coef)
	//nolint:gosec
	return Decimal{neg: neg, scale: uint8(scale), lo: lo, mid: mid, hi: hi}, nil
}

// rescaleCoef shifts coef so its implied scale changes from 'from' to
// 'to'. Widening (to > from) multiplies by 10^(to-from) exactly. Narrowing
// rounds using mode via the shared roundQuotient helper.
func rescaleCoef(coef *big.Int, from, to int, mode RoundingMode, neg bool) *big.Int {
	if to == from {
		return new(big.Int).Set(coef)
	}
	if to > from {
		return new(big.Int).Mul(coef, pow10Big(to-from))
	}
	shift := from - to
	div := pow10Big(shift)
	q, r := new(big.Int).QuoRem(coef, div, new(big.Int))
	if r.Sign() == 0 {
		return q
	}
	twiceR := new(big.Int).Lsh(r, 1)
	cmp := twiceR.Cmp(div)
	if roundQuotient(mode, neg, q.Bit(0) != 0, cmp, false) {
		q.Add(q, big.NewInt(1))
	}
	return q
}

var (
	pow10BigMu    sync.RWMutex
	pow10BigCache = map[int]*big.Int{}
)

// pow10Big returns 10^n as a *big.Int, memoized. n is always small and
// bounded (well under 200) in this package, so the cache never grows large.
// Guarded by a mutex since Decimal values (and the package-level functions
// operating on them) are documented as safe to share across goroutines.
func pow10Big(n int) *big.Int {
	pow10BigMu.RLock()
	v, ok := pow10BigCache[n]
	pow10BigMu.RUnlock()
	if ok {
		return v
	}
	v = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	pow10BigMu.Lock()
	pow10BigCache[n] = v
	pow10BigMu.Unlock()
	return v
}

// precision returns the number of decimal digits in a non-negative coef.
func precision(coef *big.Int) int {
	if coef.Sign() == 0 {
		return 1
	}
	return len(coef.String())
}
