package interest

import (
	"testing"

	"github.com/finprecision/decimal"
)

func TestSimple(t *testing.T) {
	got, err := Simple(decimal.MustParse("1000"), decimal.MustParse("0.05"), decimal.MustParse("2"))
	if err != nil {
		t.Fatalf("Simple failed: %v", err)
	}
	if want := decimal.MustParse("1100"); !got.Equal(want) {
		t.Errorf("Simple = %q, want %q", got, want)
	}
}

func TestCompound_wholePeriods(t *testing.T) {
	got, err := Compound(decimal.MustParse("1000"), decimal.MustParse("0.1"), 1, decimal.MustParse("2"))
	if err != nil {
		t.Fatalf("Compound failed: %v", err)
	}
	if want := decimal.MustParse("1210"); !got.Equal(want) {
		t.Errorf("Compound = %q, want %q", got, want)
	}
}

func TestEffectiveAnnualRate(t *testing.T) {
	got, err := EffectiveAnnualRate(decimal.MustParse("0.12"), 12)
	if err != nil {
		t.Fatalf("EffectiveAnnualRate failed: %v", err)
	}
	want := decimal.MustParse("0.1268")
	diff := got.MustSub(want).Abs()
	if diff.Greater(decimal.MustParse("0.0001")) {
		t.Errorf("EffectiveAnnualRate = %q, want ~%q", got, want)
	}
}

func TestFutureValuePresentValue_roundTrip(t *testing.T) {
	pv := decimal.MustParse("1000")
	rate := decimal.MustParse("0.05")
	years := decimal.MustParse("3")
	fv, err := FutureValue(pv, rate, years)
	if err != nil {
		t.Fatalf("FutureValue failed: %v", err)
	}
	back, err := PresentValue(fv, rate, years)
	if err != nil {
		t.Fatalf("PresentValue failed: %v", err)
	}
	diff := back.MustSub(pv).Abs()
	if diff.Greater(decimal.MustParse("0.001")) {
		t.Errorf("round trip PV(FV(pv)) = %q, want ~%q", back, pv)
	}
}

func TestNetPresentValue(t *testing.T) {
	flows := []CashFlow{
		{Years: decimal.Zero, Amount: decimal.MustParse("-1000")},
		{Years: decimal.One, Amount: decimal.MustParse("600")},
		{Years: decimal.MustParse("2"), Amount: decimal.MustParse("600")},
	}
	got, err := NetPresentValue(decimal.MustParse("0.1"), flows)
	if err != nil {
		t.Fatalf("NetPresentValue failed: %v", err)
	}
	if !got.IsPositive() {
		t.Errorf("NetPresentValue = %q, want positive", got)
	}
}

func TestPercentageOf(t *testing.T) {
	got, err := PercentageOf(decimal.MustParse("200"), decimal.MustParse("15"))
	if err != nil {
		t.Fatalf("PercentageOf failed: %v", err)
	}
	if want := decimal.MustParse("30"); !got.Equal(want) {
		t.Errorf("PercentageOf = %q, want %q", got, want)
	}
}

func TestPercentageChange(t *testing.T) {
	got, err := PercentageChange(decimal.MustParse("50"), decimal.MustParse("75"))
	if err != nil {
		t.Fatalf("PercentageChange failed: %v", err)
	}
	if want := decimal.MustParse("50"); !got.Equal(want) {
		t.Errorf("PercentageChange = %q, want %q", got, want)
	}
}

func TestBpsToDecimal(t *testing.T) {
	got, err := BpsToDecimal(decimal.MustParse("250"))
	if err != nil {
		t.Fatalf("BpsToDecimal failed: %v", err)
	}
	if want := decimal.MustParse("0.025"); !got.Equal(want) {
		t.Errorf("BpsToDecimal = %q, want %q", got, want)
	}
}
