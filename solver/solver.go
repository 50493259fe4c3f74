// Package solver implements the numerical root-finders used by the
// options layer (implied volatility) and any other fixed-point or
// root-finding need over the decimal core: Newton-Raphson (analytic and
// numerical derivative), bisection, Brent, and secant.
package solver

import "github.com/finprecision/decimal"

// Fn is a scalar function of one decimal variable.
type Fn func(x decimal.Decimal) (decimal.Decimal, error)

// Result is the common return shape for every solver in this package.
// Iterative algorithms never fail for slow convergence: they return
// their best estimate with Converged = false instead, leaving the
// "accept best effort or reject" decision to the caller.
type Result struct {
	Root       decimal.Decimal
	Iterations int
	Residual   decimal.Decimal
	Converged  bool
}

const (
	defaultTolerance = "0.000000000001" // 1e-12
	defaultMaxIter   = 100
	derivativeFloor  = "0.00000000000000000001" // 1e-20
	numericalStep    = "0.00000001"              // 1e-8
)

func defaultTol() decimal.Decimal { return decimal.MustParse(defaultTolerance) }

// Options configures tolerance and iteration cap; zero value selects
// the package defaults (tol=1e-12, maxIter=100).
type Options struct {
	Tolerance decimal.Decimal
	MaxIter   int
}

func (o Options) resolve() (decimal.Decimal, int) {
	tol := o.Tolerance
	if tol.IsZero() {
		tol = defaultTol()
	}
	maxIter := o.MaxIter
	if maxIter == 0 {
		maxIter = defaultMaxIter
	}
	return tol, maxIter
}

// Newton runs Newton-Raphson using an analytic derivative. It reports
// non-converged once the derivative magnitude drops below 1e-20 or the
// iteration cap is reached.
func Newton(f, fPrime Fn, guess decimal.Decimal, opts Options) Result {
	tol, maxIter := opts.resolve()
	floor := decimal.MustParse(derivativeFloor)
	x := guess
	var fx decimal.Decimal
	for i := 0; i < maxIter; i++ {
		var err error
		fx, err = f(x)
		if err != nil {
			return Result{Root: x, Iterations: i, Residual: decimal.Zero, Converged: false}
		}
		if fx.Abs().Less(tol) {
			return Result{Root: x, Iterations: i, Residual: fx.Abs(), Converged: true}
		}
		dfx, err := fPrime(x)
		if err != nil || dfx.Abs().Less(floor) {
			return Result{Root: x, Iterations: i, Residual: fx.Abs(), Converged: false}
		}
		step, err := fx.TryDiv(dfx)
		if err != nil {
			return Result{Root: x, Iterations: i, Residual: fx.Abs(), Converged: false}
		}
		x = x.MustSub(step)
	}
	return Result{Root: x, Iterations: maxIter, Residual: fx.Abs(), Converged: false}
}

// NewtonNumerical is like Newton but approximates the derivative by
// central difference with step 1e-8, for functions without a closed
// form derivative.
func NewtonNumerical(f Fn, guess decimal.Decimal, opts Options) Result {
	h := decimal.MustParse(numericalStep)
	twoH := h.MustMul(decimal.MustNew(2, 0))
	deriv := func(x decimal.Decimal) (decimal.Decimal, error) {
		fPlus, err := f(x.MustAdd(h))
		if err != nil {
			return decimal.Decimal{}, err
		}
		fMinus, err := f(x.MustSub(h))
		if err != nil {
			return decimal.Decimal{}, err
		}
		diff, err := fPlus.TrySub(fMinus)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return diff.TryDiv(twoH)
	}
	return Newton(f, deriv, guess, opts)
}

// Bisection requires f(a) and f(b) to have opposite signs (reported as
// DivisionByZero, signaling "no bracket"). Converges once the bracket
// width or the midpoint residual drops below tolerance.
func Bisection(f Fn, a, b decimal.Decimal, opts Options) (Result, error) {
	tol, maxIter := opts.resolve()
	fa, err := f(a)
	if err != nil {
		return Result{}, err
	}
	fb, err := f(b)
	if err != nil {
		return Result{}, err
	}
	if fa.Sign() == 0 {
		return Result{Root: a, Residual: decimal.Zero, Converged: true}, nil
	}
	if fb.Sign() == 0 {
		return Result{Root: b, Residual: decimal.Zero, Converged: true}, nil
	}
	if fa.Sign() == fb.Sign() {
		return Result{}, decimal.ErrDivisionByZero
	}
	two := decimal.MustNew(2, 0)
	for i := 0; i < maxIter; i++ {
		mid := a.MustAdd(b).MustDiv(two)
		fm, err := f(mid)
		if err != nil {
			return Result{}, err
		}
		if fm.Abs().Less(tol) || b.MustSub(a).Abs().Less(tol) {
			return Result{Root: mid, Iterations: i + 1, Residual: fm.Abs(), Converged: true}, nil
		}
		if fm.Sign() == fa.Sign() {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	mid := a.MustAdd(b).MustDiv(two)
	fm, _ := f(mid)
	return Result{Root: mid, Iterations: maxIter, Residual: fm.Abs(), Converged: false}, nil
}

// Secant uses two initial guesses and reports non-converged if the
// secant-line slope magnitude drops below 1e-20.
func Secant(f Fn, x0, x1 decimal.Decimal, opts Options) Result {
	tol, maxIter := opts.resolve()
	floor := decimal.MustParse(derivativeFloor)
	f0, err := f(x0)
	if err != nil {
		return Result{Root: x0, Converged: false}
	}
	for i := 0; i < maxIter; i++ {
		f1, err := f(x1)
		if err != nil {
			return Result{Root: x1, Iterations: i, Converged: false}
		}
		if f1.Abs().Less(tol) {
			return Result{Root: x1, Iterations: i, Residual: f1.Abs(), Converged: true}
		}
		denom := f1.MustSub(f0)
		if denom.Abs().Less(floor) {
			return Result{Root: x1, Iterations: i, Residual: f1.Abs(), Converged: false}
		}
		slope := denom.MustDiv(x1.MustSub(x0))
		if slope.Abs().Less(floor) {
			return Result{Root: x1, Iterations: i, Residual: f1.Abs(), Converged: false}
		}
		xNext := x1.MustSub(f1.MustDiv(slope))
		x0, f0 = x1, f1
		x1 = xNext
	}
	fLast, _ := f(x1)
	return Result{Root: x1, Iterations: maxIter, Residual: fLast.Abs(), Converged: false}
}

// Brent combines bisection, secant, and inverse quadratic interpolation
// to converge at least as fast as bisection on any bracketed root.
func Brent(f Fn, a, b decimal.Decimal, opts Options) (Result, error) {
	tol, maxIter := opts.resolve()
	fa, err := f(a)
	if err != nil {
		return Result{}, err
	}
	fb, err := f(b)
	if err != nil {
		return Result{}, err
	}
	if fa.Sign() == fb.Sign() && fa.Sign() != 0 {
		return Result{}, decimal.ErrDivisionByZero
	}
	if fa.Abs().Less(fb.Abs()) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	mflag := true
	d := a
	two := decimal.MustNew(2, 0)

	for i := 0; i < maxIter; i++ {
		if fb.Abs().Less(tol) {
			return Result{Root: b, Iterations: i, Residual: fb.Abs(), Converged: true}, nil
		}
		if b.MustSub(a).Abs().Less(tol) {
			return Result{Root: b, Iterations: i, Residual: fb.Abs(), Converged: true}, nil
		}

		var s decimal.Decimal
		if !fa.Equal(fc) && !fb.Equal(fc) {
			s = inverseQuadratic(a, b, c, fa, fb, fc)
		} else {
			s = b.MustSub(fb.MustMul(b.MustSub(a)).MustDiv(fb.MustSub(fa)))
		}

		mid := a.MustAdd(b).MustDiv(two)
		needBisect := !between(s, mid, b) ||
			(mflag && s.MustSub(b).Abs().GreaterOrEqual(b.MustSub(c).Abs().MustDiv(two))) ||
			(!mflag && s.MustSub(b).Abs().GreaterOrEqual(c.MustSub(d).Abs().MustDiv(two)))
		if needBisect {
			s = mid
			mflag = true
		} else {
			mflag = false
		}

		fs, err := f(s)
		if err != nil {
			return Result{}, err
		}
		d = c
		c, fc = b, fb
		if fa.Sign() != fs.Sign() {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if fa.Abs().Less(fb.Abs()) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return Result{Root: b, Iterations: maxIter, Residual: fb.Abs(), Converged: false}, nil
}

func between(s, lo, hi decimal.Decimal) bool {
	if lo.Greater(hi) {
		lo, hi = hi, lo
	}
	return s.GreaterOrEqual(lo) && s.LessOrEqual(hi)
}

func inverseQuadratic(a, b, c, fa, fb, fc decimal.Decimal) decimal.Decimal {
	t1 := a.MustMul(fb).MustMul(fc).MustDiv(fa.MustSub(fb).MustMul(fa.MustSub(fc)))
	t2 := b.MustMul(fa).MustMul(fc).MustDiv(fb.MustSub(fa).MustMul(fb.MustSub(fc)))
	t3 := c.MustMul(fa).MustMul(fb).MustDiv(fc.MustSub(fa).MustMul(fc.MustSub(fb)))
	return t1.MustAdd(t2).MustAdd(t3)
}
