package solver

import (
	"testing"

	"github.com/finprecision/decimal"
)

func sqrt2Fn(x decimal.Decimal) (decimal.Decimal, error) {
	sq, err := x.TryMul(x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sq.TrySub(decimal.MustParse("2"))
}

func sqrt2Deriv(x decimal.Decimal) (decimal.Decimal, error) {
	two := decimal.MustNew(2, 0)
	return x.TryMul(two)
}

var sqrt2 = decimal.MustParse("1.4142135")
var looseTol = decimal.MustParse("0.0001")

func TestNewton_sqrt2(t *testing.T) {
	r := Newton(sqrt2Fn, sqrt2Deriv, decimal.MustParse("1"), Options{})
	if !r.Converged {
		t.Fatalf("Newton did not converge: %+v", r)
	}
	if r.Root.MustSub(sqrt2).Abs().Greater(looseTol) {
		t.Errorf("Newton root = %q, want ~%q", r.Root, sqrt2)
	}
}

func TestNewtonNumerical_sqrt2(t *testing.T) {
	r := NewtonNumerical(sqrt2Fn, decimal.MustParse("1"), Options{})
	if !r.Converged {
		t.Fatalf("NewtonNumerical did not converge: %+v", r)
	}
	if r.Root.MustSub(sqrt2).Abs().Greater(looseTol) {
		t.Errorf("NewtonNumerical root = %q, want ~%q", r.Root, sqrt2)
	}
}

func TestBisection_sqrt2(t *testing.T) {
	r, err := Bisection(sqrt2Fn, decimal.MustParse("0"), decimal.MustParse("2"), Options{})
	if err != nil {
		t.Fatalf("Bisection failed: %v", err)
	}
	if !r.Converged {
		t.Fatalf("Bisection did not converge: %+v", r)
	}
	if r.Root.MustSub(sqrt2).Abs().Greater(looseTol) {
		t.Errorf("Bisection root = %q, want ~%q", r.Root, sqrt2)
	}
}

func TestBisection_requiresBracket(t *testing.T) {
	_, err := Bisection(sqrt2Fn, decimal.MustParse("10"), decimal.MustParse("20"), Options{})
	if err == nil {
		t.Errorf("Bisection without a sign change should fail")
	}
}

func TestSecant_sqrt2(t *testing.T) {
	r := Secant(sqrt2Fn, decimal.MustParse("1"), decimal.MustParse("2"), Options{})
	if !r.Converged {
		t.Fatalf("Secant did not converge: %+v", r)
	}
	if r.Root.MustSub(sqrt2).Abs().Greater(looseTol) {
		t.Errorf("Secant root = %q, want ~%q", r.Root, sqrt2)
	}
}

func TestBrent_sqrt2_withinBisectionIterations(t *testing.T) {
	bisect, err := Bisection(sqrt2Fn, decimal.MustParse("0"), decimal.MustParse("2"), Options{})
	if err != nil {
		t.Fatalf("Bisection failed: %v", err)
	}
	brent, err := Brent(sqrt2Fn, decimal.MustParse("0"), decimal.MustParse("2"), Options{})
	if err != nil {
		t.Fatalf("Brent failed: %v", err)
	}
	if !brent.Converged {
		t.Fatalf("Brent did not converge: %+v", brent)
	}
	if brent.Root.MustSub(sqrt2).Abs().Greater(looseTol) {
		t.Errorf("Brent root = %q, want ~%q", brent.Root, sqrt2)
	}
	if brent.Iterations > bisect.Iterations {
		t.Errorf("Brent took %d iterations, bisection took %d; Brent should not be slower", brent.Iterations, bisect.Iterations)
	}
}
