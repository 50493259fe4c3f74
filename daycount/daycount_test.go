package daycount

import (
	"testing"

	"github.com/finprecision/decimal"
)

func TestIsLeapYear(t *testing.T) {
	cases := map[int32]bool{2000: true, 1900: false, 2004: true, 2023: false, 2024: true}
	for year, want := range cases {
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestJulianDayNumber_knownValue(t *testing.T) {
	// 2000-01-01 has JDN 2451545.
	d := Date{Year: 2000, Month: 1, Day: 1}
	if got := d.JulianDayNumber(); got != 2451545 {
		t.Errorf("JulianDayNumber = %d, want 2451545", got)
	}
}

func TestDaysBetween(t *testing.T) {
	d1 := Date{Year: 2023, Month: 1, Day: 1}
	d2 := Date{Year: 2023, Month: 12, Day: 31}
	if got := DaysBetween(d1, d2); got != 364 {
		t.Errorf("DaysBetween = %d, want 364", got)
	}
}

func TestActual360(t *testing.T) {
	d1 := Date{Year: 2023, Month: 1, Day: 1}
	d2 := Date{Year: 2023, Month: 7, Day: 1}
	yf, err := Actual360.YearFraction(d1, d2)
	if err != nil {
		t.Fatalf("YearFraction failed: %v", err)
	}
	days := DaysBetween(d1, d2)
	want, _ := decimal.NewFromInt(days).TryDiv(decimal.MustNew(360, 0))
	if !yf.Equal(want) {
		t.Errorf("Actual360 = %q, want %q", yf, want)
	}
}

func TestActualActual_nonLeapFullYear(t *testing.T) {
	d1 := Date{Year: 2023, Month: 1, Day: 1}
	d2 := Date{Year: 2024, Month: 1, Day: 1}
	yf, err := ActualActual.YearFraction(d1, d2)
	if err != nil {
		t.Fatalf("YearFraction failed: %v", err)
	}
	// 365 actual days over average of 365 (2023) and 366 (2024) = 365.5
	want := decimal.MustParse("365").MustDiv(decimal.MustParse("365.5"))
	if !yf.Equal(want) {
		t.Errorf("ActualActual = %q, want %q", yf, want)
	}
}

func TestThirty360US_endOfMonthRule(t *testing.T) {
	d1 := Date{Year: 2023, Month: 1, Day: 31}
	d2 := Date{Year: 2023, Month: 2, Day: 28}
	yf, err := Thirty360US.YearFraction(d1, d2)
	if err != nil {
		t.Fatalf("YearFraction failed: %v", err)
	}
	// d1=31 -> 30; d2=28 stays (only adjusted if 31). days = 30*(2-1) + (28-30) = 28
	want := decimal.MustParse("28").MustDiv(decimal.MustParse("360"))
	if !yf.Equal(want) {
		t.Errorf("Thirty360US = %q, want %q", yf, want)
	}
}

func TestThirty360E_bothEndsAdjusted(t *testing.T) {
	d1 := Date{Year: 2023, Month: 1, Day: 31}
	d2 := Date{Year: 2023, Month: 3, Day: 31}
	yf, err := Thirty360E.YearFraction(d1, d2)
	if err != nil {
		t.Fatalf("YearFraction failed: %v", err)
	}
	// both day1 and day2 become 30: days = 30*(3-1) + (30-30) = 60
	want := decimal.MustParse("60").MustDiv(decimal.MustParse("360"))
	if !yf.Equal(want) {
		t.Errorf("Thirty360E = %q, want %q", yf, want)
	}
}

func TestDateValid(t *testing.T) {
	if !(Date{Year: 2024, Month: 2, Day: 29}).Valid() {
		t.Errorf("2024-02-29 should be valid (leap year)")
	}
	if (Date{Year: 2023, Month: 2, Day: 29}).Valid() {
		t.Errorf("2023-02-29 should be invalid (non-leap year)")
	}
	if (Date{Year: 2023, Month: 13, Day: 1}).Valid() {
		t.Errorf("month 13 should be invalid")
	}
}
