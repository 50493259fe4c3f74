// Package interpolate implements the three 1-D interpolators used by
// the financial layer over a bounded, ordered point set: linear,
// log-linear (for strictly positive series such as discount factors),
// and a natural cubic spline solved via the Thomas algorithm.
package interpolate

import "github.com/finprecision/decimal"

// MaxPoints bounds each interpolator's point storage.
const MaxPoints = 32

// Interpolator is the capability set shared by every variant in this
// package.
type Interpolator interface {
	Interpolate(x decimal.Decimal) (decimal.Decimal, error)
}

type point struct {
	x, y decimal.Decimal
}

func insertSorted(points *[MaxPoints]point, count int, p point) (int, error) {
	if count >= MaxPoints {
		return count, decimal.ErrOverflow
	}
	idx := count
	for i := 0; i < count; i++ {
		if p.x.Less(points[i].x) {
			idx = i
			break
		}
	}
	copy(points[idx+1:count+1], points[idx:count])
	points[idx] = p
	return count + 1, nil
}

func bracket(points *[MaxPoints]point, count int, x decimal.Decimal) (lo, hi int, exact bool) {
	if x.LessOrEqual(points[0].x) {
		return 0, 0, true
	}
	if x.GreaterOrEqual(points[count-1].x) {
		return count - 1, count - 1, true
	}
	for i := 0; i < count-1; i++ {
		if !points[i].x.Greater(x) && !points[i+1].x.Less(x) {
			return i, i + 1, false
		}
	}
	return count - 1, count - 1, true
}

// Linear interpolates a straight line between bracketing points and
// extrapolates flat beyond the endpoints.
type Linear struct {
	points [MaxPoints]point
	count  int
}

// NewLinear returns an empty linear interpolator.
func NewLinear() *Linear { return &Linear{} }

// Add inserts a point, keeping the set sorted by x.
func (l *Linear) Add(x, y decimal.Decimal) error {
	n, err := insertSorted(&l.points, l.count, point{x, y})
	if err != nil {
		return err
	}
	l.count = n
	return nil
}

func (l *Linear) Interpolate(x decimal.Decimal) (decimal.Decimal, error) {
	if l.count == 0 {
		return decimal.Decimal{}, decimal.ErrDivisionByZero
	}
	lo, hi, exact := bracket(&l.points, l.count, x)
	if exact {
		return l.points[lo].y, nil
	}
	return linearAt(l.points[lo], l.points[hi], x)
}

func linearAt(a, b point, x decimal.Decimal) (decimal.Decimal, error) {
	dx, err := b.x.TrySub(a.x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	dy, err := b.y.TrySub(a.y)
	if err != nil {
		return decimal.Decimal{}, err
	}
	offset, err := x.TrySub(a.x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	slope, err := dy.TryDiv(dx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	delta, err := slope.TryMul(offset)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return a.y.TryAdd(delta)
}

// LogLinear interpolates in ln(y) space, preserving the positivity of
// its output; y values must be strictly positive, enforced on
// insertion. Extrapolation returns the nearest endpoint's y directly
// (not a log-space projection) — intentional, to keep extrapolated
// values monotone and positive.
type LogLinear struct {
	points [MaxPoints]point
	count  int
}

// NewLogLinear returns an empty log-linear interpolator.
func NewLogLinear() *LogLinear { return &LogLinear{} }

// Add inserts a point; fails if y is not strictly positive.
func (l *LogLinear) Add(x, y decimal.Decimal) error {
	if !y.IsPositive() {
		return decimal.ErrLogOfNegative
	}
	n, err := insertSorted(&l.points, l.count, point{x, y})
	if err != nil {
		return err
	}
	l.count = n
	return nil
}

func (l *LogLinear) Interpolate(x decimal.Decimal) (decimal.Decimal, error) {
	if l.count == 0 {
		return decimal.Decimal{}, decimal.ErrDivisionByZero
	}
	lo, hi, exact := bracket(&l.points, l.count, x)
	if exact {
		return l.points[lo].y, nil
	}
	a, b := l.points[lo], l.points[hi]
	lnA, ok := a.y.Ln()
	if !ok {
		return decimal.Decimal{}, decimal.ErrLogOfNegative
	}
	lnB, ok := b.y.Ln()
	if !ok {
		return decimal.Decimal{}, decimal.ErrLogOfNegative
	}
	lnAt, err := linearAt(point{a.x, lnA}, point{b.x, lnB}, x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	out, ok := lnAt.Exp()
	if !ok {
		return decimal.Decimal{}, decimal.ErrOverflow
	}
	return out, nil
}

// CubicSpline is a natural cubic spline: after all points are added the
// caller must invoke Compute, which solves for each node's second
// derivative under natural boundary conditions (M0 = Mn-1 = 0) using
// the Thomas algorithm for the resulting tridiagonal system.
// Interpolating before Compute fails.
type CubicSpline struct {
	points   [MaxPoints]point
	m        [MaxPoints]decimal.Decimal // second derivatives
	count    int
	computed bool
}

// NewCubicSpline returns an empty, uncomputed cubic spline.
func NewCubicSpline() *CubicSpline { return &CubicSpline{} }

// Add inserts a point and invalidates any previous Compute result.
func (c *CubicSpline) Add(x, y decimal.Decimal) error {
	n, err := insertSorted(&c.points, c.count, point{x, y})
	if err != nil {
		return err
	}
	c.count = n
	c.computed = false
	return nil
}

// Compute solves the tridiagonal natural-spline system for the second
// derivative at each node via the Thomas algorithm.
func (c *CubicSpline) Compute() error {
	n := c.count
	if n < 2 {
		return decimal.ErrDivisionByZero
	}
	if n == 2 {
		c.m[0], c.m[1] = decimal.Zero, decimal.Zero
		c.computed = true
		return nil
	}

	h := make([]decimal.Decimal, n-1)
	for i := 0; i < n-1; i++ {
		dx, err := c.points[i+1].x.TrySub(c.points[i].x)
		if err != nil {
			return err
		}
		h[i] = dx
	}

	// Tridiagonal system for interior nodes: a*M[i-1] + b*M[i] + c*M[i+1] = d
	size := n - 2
	a := make([]decimal.Decimal, size)
	bdiag := make([]decimal.Decimal, size)
	cdiag := make([]decimal.Decimal, size)
	d := make([]decimal.Decimal, size)

	two := decimal.MustNew(2, 0)
	six := decimal.MustNew(6, 0)
	for k := 0; k < size; k++ {
		i := k + 1
		a[k] = h[i-1]
		sumH, err := h[i-1].TryAdd(h[i])
		if err != nil {
			return err
		}
		bdiag[k], err = two.TryMul(sumH)
		if err != nil {
			return err
		}
		cdiag[k] = h[i]

		dy1, err := c.points[i+1].y.TrySub(c.points[i].y)
		if err != nil {
			return err
		}
		dy0, err := c.points[i].y.TrySub(c.points[i-1].y)
		if err != nil {
			return err
		}
		term1, err := dy1.TryDiv(h[i])
		if err != nil {
			return err
		}
		term0, err := dy0.TryDiv(h[i-1])
		if err != nil {
			return err
		}
		diff, err := term1.TrySub(term0)
		if err != nil {
			return err
		}
		d[k], err = diff.TryMul(six)
		if err != nil {
			return err
		}
	}

	m, err := thomas(a, bdiag, cdiag, d)
	if err != nil {
		return err
	}
	c.m[0] = decimal.Zero
	for k := 0; k < size; k++ {
		c.m[k+1] = m[k]
	}
	c.m[n-1] = decimal.Zero
	c.computed = true
	return nil
}

// thomas solves the tridiagonal system with sub-diagonal a, diagonal b,
// super-diagonal cIn, and right-hand side d, all of the same length.
func thomas(a, b, cIn, d []decimal.Decimal) ([]decimal.Decimal, error) {
	n := len(b)
	cPrime := make([]decimal.Decimal, n)
	dPrime := make([]decimal.Decimal, n)

	cPrime[0], _ = cIn[0].TryDiv(b[0])
	var err error
	dPrime[0], err = d[0].TryDiv(b[0])
	if err != nil {
		return nil, err
	}

	for i := 1; i < n; i++ {
		ac, err := a[i].TryMul(cPrime[i-1])
		if err != nil {
			return nil, err
		}
		denom, err := b[i].TrySub(ac)
		if err != nil {
			return nil, err
		}
		if i < n-1 {
			cPrime[i], err = cIn[i].TryDiv(denom)
			if err != nil {
				return nil, err
			}
		}
		ad, err := a[i].TryMul(dPrime[i-1])
		if err != nil {
			return nil, err
		}
		num, err := d[i].TrySub(ad)
		if err != nil {
			return nil, err
		}
		dPrime[i], err = num.TryDiv(denom)
		if err != nil {
			return nil, err
		}
	}

	x := make([]decimal.Decimal, n)
	x[n-1] = dPrime[n-1]
	for i := n - 2; i >= 0; i-- {
		cx, err := cPrime[i].TryMul(x[i+1])
		if err != nil {
			return nil, err
		}
		x[i], err = dPrime[i].TrySub(cx)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

func (c *CubicSpline) Interpolate(x decimal.Decimal) (decimal.Decimal, error) {
	if !c.computed {
		return decimal.Decimal{}, decimal.ErrDivisionByZero
	}
	n := c.count
	if x.LessOrEqual(c.points[0].x) {
		return c.points[0].y, nil
	}
	if x.GreaterOrEqual(c.points[n-1].x) {
		return c.points[n-1].y, nil
	}
	i := 0
	for ; i < n-2; i++ {
		if x.LessOrEqual(c.points[i+1].x) {
			break
		}
	}
	return c.segmentValue(i, x)
}

func (c *CubicSpline) segmentValue(i int, x decimal.Decimal) (decimal.Decimal, error) {
	xi, xi1 := c.points[i].x, c.points[i+1].x
	yi, yi1 := c.points[i].y, c.points[i+1].y
	mi, mi1 := c.m[i], c.m[i+1]

	h, err := xi1.TrySub(xi)
	if err != nil {
		return decimal.Decimal{}, err
	}
	aNum, err := xi1.TrySub(x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	a, err := aNum.TryDiv(h)
	if err != nil {
		return decimal.Decimal{}, err
	}
	bNum, err := x.TrySub(xi)
	if err != nil {
		return decimal.Decimal{}, err
	}
	b, err := bNum.TryDiv(h)
	if err != nil {
		return decimal.Decimal{}, err
	}

	aTerm, err := a.TryMul(yi)
	if err != nil {
		return decimal.Decimal{}, err
	}
	bTerm, err := b.TryMul(yi1)
	if err != nil {
		return decimal.Decimal{}, err
	}

	a3, ok := a.Powi(3)
	if !ok {
		return decimal.Decimal{}, decimal.ErrOverflow
	}
	aCubicTerm, err := a3.TrySub(a)
	if err != nil {
		return decimal.Decimal{}, err
	}
	b3, ok := b.Powi(3)
	if !ok {
		return decimal.Decimal{}, decimal.ErrOverflow
	}
	bCubicTerm, err := b3.TrySub(b)
	if err != nil {
		return decimal.Decimal{}, err
	}

	miTerm, err := aCubicTerm.TryMul(mi)
	if err != nil {
		return decimal.Decimal{}, err
	}
	mi1Term, err := bCubicTerm.TryMul(mi1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	bracketSum, err := miTerm.TryAdd(mi1Term)
	if err != nil {
		return decimal.Decimal{}, err
	}
	hSq, err := h.TryMul(h)
	if err != nil {
		return decimal.Decimal{}, err
	}
	curveTerm, err := bracketSum.TryMul(hSq)
	if err != nil {
		return decimal.Decimal{}, err
	}
	six := decimal.MustNew(6, 0)
	curveTerm, err = curveTerm.TryDiv(six)
	if err != nil {
		return decimal.Decimal{}, err
	}

	sum, err := aTerm.TryAdd(bTerm)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sum.TryAdd(curveTerm)
}

var (
	_ Interpolator = (*Linear)(nil)
	_ Interpolator = (*LogLinear)(nil)
	_ Interpolator = (*CubicSpline)(nil)
)
