package tolerance

import (
	"testing"

	"github.com/finprecision/decimal"
)

func TestAbsolute(t *testing.T) {
	a, b, tol := decimal.MustParse("1.001"), decimal.MustParse("1.000"), decimal.MustParse("0.01")
	if !Absolute(a, b, tol) {
		t.Errorf("Absolute should hold within tolerance")
	}
	if Absolute(a, b, decimal.MustParse("0.0001")) {
		t.Errorf("Absolute should fail outside tolerance")
	}
}

func TestRelative(t *testing.T) {
	a, b := decimal.MustParse("100"), decimal.MustParse("101")
	if !Relative(a, b, decimal.MustParse("0.02")) {
		t.Errorf("Relative should hold within 2%%")
	}
	if Relative(a, b, decimal.MustParse("0.001")) {
		t.Errorf("Relative should fail at 0.1%%")
	}
}

func TestPercentageBpsAgree(t *testing.T) {
	a, b := decimal.MustParse("100"), decimal.MustParse("99")
	pct := decimal.MustParse("2")
	bps := decimal.MustParse("200") // pct * 100
	if Percentage(a, b, pct) != BasisPoints(a, b, bps) {
		t.Errorf("Percentage(%v) and BasisPoints(%v) must agree at bps = pct*100", pct, bps)
	}
}

func TestUlp(t *testing.T) {
	a, b := decimal.MustParse("0.0000001"), decimal.Zero
	if !Ulp(a, b, decimal.MustParse("0.000001"), decimal.MustParse("0.01")) {
		t.Errorf("Ulp should succeed via absolute component near zero")
	}
}
