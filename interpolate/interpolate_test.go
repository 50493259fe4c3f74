package interpolate

import (
	"testing"

	"github.com/finprecision/decimal"
)

func TestLinear(t *testing.T) {
	l := NewLinear()
	must(t, l.Add(decimal.MustParse("0"), decimal.MustParse("0")))
	must(t, l.Add(decimal.MustParse("10"), decimal.MustParse("100")))

	got, err := l.Interpolate(decimal.MustParse("5"))
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if want := decimal.MustParse("50"); !got.Equal(want) {
		t.Errorf("Interpolate(5) = %q, want %q", got, want)
	}

	// Flat extrapolation.
	got, err = l.Interpolate(decimal.MustParse("100"))
	if err != nil || !got.Equal(decimal.MustParse("100")) {
		t.Errorf("Interpolate(100) = %v, %v, want 100", got, err)
	}
}

func TestLogLinear_rejectsNonPositive(t *testing.T) {
	l := NewLogLinear()
	if err := l.Add(decimal.MustParse("1"), decimal.Zero); err == nil {
		t.Errorf("Add with y=0 should fail")
	}
}

func TestLogLinear_preservesPositivity(t *testing.T) {
	l := NewLogLinear()
	must(t, l.Add(decimal.MustParse("0"), decimal.MustParse("1")))
	must(t, l.Add(decimal.MustParse("10"), decimal.MustParse("0.5")))

	got, err := l.Interpolate(decimal.MustParse("5"))
	if err != nil {
		t.Fatalf("Interpolate failed: %v", err)
	}
	if !got.IsPositive() {
		t.Errorf("LogLinear interpolated value must stay positive, got %q", got)
	}
}

func TestCubicSpline_requiresCompute(t *testing.T) {
	c := NewCubicSpline()
	must(t, c.Add(decimal.MustParse("0"), decimal.MustParse("0")))
	must(t, c.Add(decimal.MustParse("1"), decimal.MustParse("1")))
	if _, err := c.Interpolate(decimal.MustParse("0.5")); err == nil {
		t.Errorf("Interpolate before Compute should fail")
	}
}

func TestCubicSpline_smoothness(t *testing.T) {
	c := NewCubicSpline()
	for _, p := range [][2]string{{"0", "0"}, {"1", "1"}, {"2", "4"}, {"3", "9"}} {
		must(t, c.Add(decimal.MustParse(p[0]), decimal.MustParse(p[1])))
	}
	must(t, c.Compute())

	got, err := c.Interpolate(decimal.MustParse("1.5"))
	if err != nil {
		t.Fatalf("Interpolate(1.5) failed: %v", err)
	}
	lo, hi := decimal.MustParse("2"), decimal.MustParse("3")
	if got.Less(lo) || got.Greater(hi) {
		t.Errorf("Interpolate(1.5) = %q, want in [2, 3]", got)
	}

	// Endpoint recovery is exact.
	start, err := c.Interpolate(decimal.MustParse("0"))
	if err != nil || !start.Equal(decimal.Zero) {
		t.Errorf("Interpolate(0) = %v, %v, want 0", start, err)
	}
	end, err := c.Interpolate(decimal.MustParse("3"))
	if err != nil || !end.Equal(decimal.MustParse("9")) {
		t.Errorf("Interpolate(3) = %v, %v, want 9", end, err)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
