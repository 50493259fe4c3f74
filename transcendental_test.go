package decimal

import "testing"

// tolerance is the 1e-7 bound the determinism contract allows for
// transcendental functions (unlike core arithmetic, which must be
// bit-identical).
var tolerance = MustParse("0.0000001")

func closeEnough(t *testing.T, got, want Decimal, msg string) {
	t.Helper()
	sub, err := got.TrySub(want)
	if err != nil {
		t.Fatalf("%s: subtraction failed: %v", msg, err)
	}
	if sub.Abs().Greater(tolerance) {
		t.Errorf("%s: got %q, want ~%q (diff %q)", msg, got, want, sub.Abs())
	}
}

func TestDecimal_Sqrt(t *testing.T) {
	tests := []struct{ in, want string }{
		{"4", "2"},
		{"9", "3"},
		{"0", "0"},
		{"2", "1.4142135"},
	}
	for _, tt := range tests {
		got, ok := MustParse(tt.in).Sqrt()
		if !ok {
			t.Fatalf("Sqrt(%q) failed", tt.in)
		}
		closeEnough(t, got, MustParse(tt.want), "Sqrt("+tt.in+")")
	}
}

func TestDecimal_Sqrt_negative(t *testing.T) {
	if _, ok := MustParse("-1").Sqrt(); ok {
		t.Errorf("Sqrt(-1) should fail")
	}
	_, err := MustParse("-1").TrySqrt()
	if err == nil {
		t.Errorf("TrySqrt(-1) did not fail")
	}
}

func TestDecimal_ExpLn_inverse(t *testing.T) {
	x := MustParse("5")
	ln, ok := x.Ln()
	if !ok {
		t.Fatalf("Ln(5) failed")
	}
	back, ok := ln.Exp()
	if !ok {
		t.Fatalf("Exp(ln(5)) failed")
	}
	closeEnough(t, back, x, "Exp(Ln(5))")
}

func TestDecimal_Exp_bounds(t *testing.T) {
	if _, ok := MustParse("200").Exp(); ok {
		t.Errorf("Exp(200) should overflow")
	}
	got, ok := MustParse("-200").Exp()
	if !ok || !got.Equal(Zero) {
		t.Errorf("Exp(-200) = %v, %v, want 0, true", got, ok)
	}
}

func TestDecimal_Ln_invalid(t *testing.T) {
	if _, ok := Zero.Ln(); ok {
		t.Errorf("Ln(0) should fail")
	}
	if _, ok := MustParse("-1").Ln(); ok {
		t.Errorf("Ln(-1) should fail")
	}
	_, err := Zero.TryLn()
	if err == nil {
		t.Errorf("TryLn(0) did not fail")
	}
}

func TestDecimal_Powi(t *testing.T) {
	tests := []struct {
		base string
		n    int32
		want string
	}{
		{"2", 0, "1"},
		{"2", 1, "2"},
		{"2", 10, "1024"},
		{"2", -1, "0.5"},
		{"2", -2, "0.25"},
	}
	for _, tt := range tests {
		got, ok := MustParse(tt.base).Powi(tt.n)
		if !ok {
			t.Fatalf("Powi(%q, %v) failed", tt.base, tt.n)
		}
		if !got.Equal(MustParse(tt.want)) {
			t.Errorf("Powi(%q, %v) = %q, want %q", tt.base, tt.n, got, tt.want)
		}
	}
}

func TestDecimal_Pow(t *testing.T) {
	got, ok := MustParse("2").Pow(MustParse("3"))
	if !ok {
		t.Fatalf("Pow(2,3) failed")
	}
	closeEnough(t, got, MustParse("8"), "Pow(2,3)")
}

func TestDecimal_Pow_exponentOne(t *testing.T) {
	base := MustParse("123.456789")
	got, ok := base.Pow(One)
	if !ok {
		t.Fatalf("Pow(123.456789, 1) failed")
	}
	if !got.Equal(base) {
		t.Errorf("Pow(%q, 1) = %q, want exact %q", base, got, base)
	}
}

func TestE_Pi(t *testing.T) {
	closeEnough(t, E(), MustParse("2.7182818"), "E()")
	closeEnough(t, Pi(), MustParse("3.1415926"), "Pi()")
}
