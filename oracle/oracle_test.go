package oracle

import (
	"testing"

	"github.com/finprecision/decimal"
	"github.com/holiman/uint256"
)

func TestNormalizeDenormalize_roundTrip(t *testing.T) {
	tests := []struct {
		raw      int64
		decimals Decimals
		want     string
	}{
		{150000000, Six, "150"},
		{100000000, Eight, "1"},
		{1, Six, "0.000001"},
		{-250000, Six, "-0.25"},
	}
	for _, tt := range tests {
		got := Normalize(tt.raw, tt.decimals)
		if got.String() != tt.want {
			t.Errorf("Normalize(%v, %v) = %q, want %q", tt.raw, tt.decimals.N(), got, tt.want)
		}
		back, err := Denormalize(got, tt.decimals)
		if err != nil {
			t.Fatalf("Denormalize failed: %v", err)
		}
		if back != tt.raw {
			t.Errorf("Denormalize(Normalize(%v)) = %v, want %v", tt.raw, back, tt.raw)
		}
	}
}

func TestConvertDecimals(t *testing.T) {
	got, err := ConvertDecimals(1_000000, Six, Eighteen)
	if err != nil {
		t.Fatalf("ConvertDecimals failed: %v", err)
	}
	if want := int64(1_000000_000000000000); got != want {
		t.Errorf("ConvertDecimals widen = %v, want %v", got, want)
	}

	got2, err := ConvertDecimals(1_000000_000000000000, Eighteen, Six)
	if err != nil {
		t.Fatalf("ConvertDecimals failed: %v", err)
	}
	if got2 != 1_000000 {
		t.Errorf("ConvertDecimals narrow = %v, want 1000000", got2)
	}
}

func TestConvertDecimalsBig128(t *testing.T) {
	raw := uint256.NewInt(1_000000)
	got, ok := ConvertDecimalsBig128(raw, Six, Eighteen)
	if !ok {
		t.Fatalf("ConvertDecimalsBig128 widen failed")
	}
	want := uint256.MustFromDecimal("1000000000000000000")
	if got.Cmp(want) != 0 {
		t.Errorf("ConvertDecimalsBig128 widen = %v, want %v", got, want)
	}

	back, ok := ConvertDecimalsBig128(got, Eighteen, Six)
	if !ok {
		t.Fatalf("ConvertDecimalsBig128 narrow failed")
	}
	if back.Cmp(raw) != 0 {
		t.Errorf("ConvertDecimalsBig128 round trip = %v, want %v", back, raw)
	}
}

func TestPythPrice_Normalize(t *testing.T) {
	tests := []struct {
		p    PythPrice
		want string
	}{
		{PythPrice{PriceInteger: 12345, Exponent: -2}, "123.45"},
		{PythPrice{PriceInteger: 5, Exponent: 3}, "5000"},
		{PythPrice{PriceInteger: 7, Exponent: 0}, "7"},
	}
	for _, tt := range tests {
		got, err := tt.p.Normalize()
		if err != nil {
			t.Fatalf("Normalize(%+v) failed: %v", tt.p, err)
		}
		if got.String() != tt.want {
			t.Errorf("Normalize(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestDenormalizeBig128(t *testing.T) {
	v := decimal.MustParse("1234.567891234567891234")
	raw, ok := DenormalizeBig128(v, Eighteen)
	if !ok {
		t.Fatalf("DenormalizeBig128 failed")
	}
	back := NormalizeBig128(raw, Eighteen)
	if !back.Equal(v.Trunc(18)) {
		t.Errorf("round trip = %q, want %q", back, v.Trunc(18))
	}
}

func TestDenormalizeBig128_negativeFails(t *testing.T) {
	if _, ok := DenormalizeBig128(decimal.MustParse("-1"), Six); ok {
		t.Errorf("negative value should fail DenormalizeBig128")
	}
}

func TestCustomDecimals(t *testing.T) {
	d := Custom(3)
	if d.N() != 3 {
		t.Errorf("Custom(3).N() = %v, want 3", d.N())
	}
	_ = uint256.NewInt(0)
}
