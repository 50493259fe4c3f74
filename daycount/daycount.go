// Package daycount implements calendar date arithmetic and the five
// year-fraction conventions used to annualize a period between two dates.
package daycount

import (
	"fmt"

	"github.com/finprecision/decimal"
)

// Date is a plain calendar date; no timezone, no clock.
type Date struct {
	Year  int32
	Month uint8 // 1..12
	Day   uint8 // 1..daysInMonth(Year, Month)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsLeapYear applies the Gregorian rule: divisible by 4, not by 100 unless
// also by 400.
func IsLeapYear(year int32) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year int32, month uint8) uint8 {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// Valid reports whether the date's fields fall within their ranges.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day < 1 || d.Day > daysInMonth(d.Year, d.Month) {
		return false
	}
	return true
}

// JulianDayNumber converts a Gregorian date to its Julian day number using
// the standard Fliegel & Van Flandern formula.
func (d Date) JulianDayNumber() int64 {
	y := int64(d.Year)
	m := int64(d.Month)
	day := int64(d.Day)
	a := (m - 14) / 12
	jdn := (1461*(y+4800+a))/4 +
		(367*(m-2-12*a))/12 -
		(3*((y+4900+a)/100))/4 +
		day - 32075
	return jdn
}

// DaysBetween returns the number of actual calendar days from d1 to d2
// (negative if d2 precedes d1).
func DaysBetween(d1, d2 Date) int64 {
	return d2.JulianDayNumber() - d1.JulianDayNumber()
}

// Convention identifies a year-fraction day-count rule.
type Convention int

const (
	Actual360 Convention = iota
	Actual365Fixed
	ActualActual
	Thirty360US
	Thirty360E
)

func (c Convention) String() string {
	switch c {
	case Actual360:
		return "Actual/360"
	case Actual365Fixed:
		return "Actual/365Fixed"
	case ActualActual:
		return "Actual/Actual"
	case Thirty360US:
		return "30/360 (US)"
	case Thirty360E:
		return "30E/360"
	default:
		return "unknown"
	}
}

// YearFraction computes the year fraction between d1 and d2 under c.
func (c Convention) YearFraction(d1, d2 Date) (decimal.Decimal, error) {
	switch c {
	case Actual360:
		return actualOver(d1, d2, 360)
	case Actual365Fixed:
		return actualOver(d1, d2, 365)
	case ActualActual:
		return actualActual(d1, d2)
	case Thirty360US:
		return thirty360(d1, d2, false)
	case Thirty360E:
		return thirty360(d1, d2, true)
	default:
		return decimal.Decimal{}, fmt.Errorf("daycount: unknown convention %d", c)
	}
}

func actualOver(d1, d2 Date, base int64) (decimal.Decimal, error) {
	days := DaysBetween(d1, d2)
	return decimal.NewFromInt(days).TryDiv(decimal.NewFromInt(base))
}

// actualActual divides actual days by the average of the two endpoint
// years' day counts (365 or 366), per the convention's simplified rule.
func actualActual(d1, d2 Date) (decimal.Decimal, error) {
	days := DaysBetween(d1, d2)
	y1Days := yearLength(d1.Year)
	y2Days := yearLength(d2.Year)
	sum, err := decimal.NewFromInt(y1Days).TryAdd(decimal.NewFromInt(y2Days))
	if err != nil {
		return decimal.Decimal{}, err
	}
	avg, err := sum.TryDiv(decimal.MustNew(2, 0))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromInt(days).TryDiv(avg)
}

func yearLength(year int32) int64 {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

func thirty360(d1, d2 Date, european bool) (decimal.Decimal, error) {
	day1 := int64(d1.Day)
	day2 := int64(d2.Day)

	if day1 == 31 {
		day1 = 30
	}
	if european {
		if day2 == 31 {
			day2 = 30
		}
	} else {
		if day2 == 31 && day1 >= 30 {
			day2 = 30
		}
	}

	days := 360*(int64(d2.Year)-int64(d1.Year)) +
		30*(int64(d2.Month)-int64(d1.Month)) +
		(day2 - day1)
	return decimal.NewFromInt(days).TryDiv(decimal.MustNew(360, 0))
}
