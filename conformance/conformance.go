// Package conformance pins the cross-target determinism contract: for
// every vector in the fixed set below, the computed (mantissa, scale)
// pair must match exactly on every host. It also carries property-based
// checks (identities, negation, commutativity, ordering, rounding bounds) that any
// conforming implementation on any target must satisfy.
package conformance

import "github.com/finprecision/decimal"

// Vector is one pinned determinism test case: apply op to the inputs and
// expect the exact (mantissa, scale, negative) triple.
type Vector struct {
	Name       string
	Op         func() (decimal.Decimal, error)
	WantMant   string // decimal string of the expected unsigned mantissa
	WantScale  uint32
	WantNeg    bool
}

// Check runs the vector's operation and reports whether the result's
// (mantissa, scale, sign) triple matches exactly.
func (v Vector) Check() (ok bool, got decimal.Decimal, err error) {
	got, err = v.Op()
	if err != nil {
		return false, got, err
	}
	mantissa, scale, neg := got.Parts()
	return mantissa.String() == v.WantMant && scale == v.WantScale && neg == v.WantNeg, got, nil
}

func mustParse(s string) decimal.Decimal { return decimal.MustParse(s) }

// ArithmeticVectors covers the sum/product/quotient pinned cases from the
// determinism contract.
var ArithmeticVectors = []Vector{
	{
		Name:      "sum",
		Op:        func() (decimal.Decimal, error) { return mustParse("1.1").TryAdd(mustParse("2.2")) },
		WantMant:  "33",
		WantScale: 1,
	},
	{
		Name:      "product",
		Op:        func() (decimal.Decimal, error) { return mustParse("1.5").TryMul(mustParse("2.5")) },
		WantMant:  "375",
		WantScale: 2,
	},
	{
		Name:      "quotient",
		Op:        func() (decimal.Decimal, error) { return mustParse("10").TryDiv(mustParse("4")) },
		WantMant:  "25",
		WantScale: 1,
	},
}

// RoundingVectors covers all seven rounding modes on 2.5 -> integer.
var RoundingVectors = []struct {
	Name string
	Mode decimal.RoundingMode
	Want string
}{
	{"down", decimal.Down, "2"},
	{"up", decimal.Up, "3"},
	{"towardZero", decimal.TowardZero, "2"},
	{"awayFromZero", decimal.AwayFromZero, "3"},
	{"halfEven", decimal.HalfEven, "2"},
	{"halfUp", decimal.HalfUp, "3"},
	{"halfDown", decimal.HalfDown, "2"},
}

// CompoundVector is the DeFi compound-interest pinned scenario: 1000 at
// 5% for 3 whole periods, compounded once per period.
var CompoundVector = Vector{
	Name: "compound_3_periods",
	Op: func() (decimal.Decimal, error) {
		base, err := decimal.One.TryAdd(mustParse("0.05"))
		if err != nil {
			return decimal.Decimal{}, err
		}
		factor, ok := base.Powi(3)
		if !ok {
			return decimal.Decimal{}, decimal.ErrOverflow
		}
		return mustParse("1000").TryMul(factor)
	},
	WantMant:  "1157625000",
	WantScale: 6,
}

// StringRoundTripVectors are decimal strings expected to parse and
// re-render byte-identically.
var StringRoundTripVectors = []string{
	"0", "1", "-1", "1.5", "-1.5", "0.0001", "79228162514264337593543950335",
}
