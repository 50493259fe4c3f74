package conformance

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finprecision/decimal"
)

func TestArithmeticVectors(t *testing.T) {
	for _, v := range ArithmeticVectors {
		t.Run(v.Name, func(t *testing.T) {
			ok, got, err := v.Check()
			require.NoError(t, err)
			assert.True(t, ok, "vector %s produced %q, want mantissa=%s scale=%d neg=%v", v.Name, got, v.WantMant, v.WantScale, v.WantNeg)
		})
	}
}

func TestRoundingVectors(t *testing.T) {
	twoPointFive := decimal.MustParse("2.5")
	for _, v := range RoundingVectors {
		t.Run(v.Name, func(t *testing.T) {
			got := twoPointFive.Round(0, v.Mode)
			want := decimal.MustParse(v.Want)
			assert.True(t, got.Equal(want), "Round(2.5, %s) = %q, want %q", v.Name, got, want)
		})
	}
}

func TestCompoundVector(t *testing.T) {
	ok, got, err := CompoundVector.Check()
	require.NoError(t, err)
	want := decimal.MustParse("1000").MustMul(decimal.MustParse("1.157625"))
	assert.True(t, got.Equal(want), "compound vector = %q, want %q", got, want)
	assert.True(t, ok, "compound vector = %q, want mantissa=%s scale=%d", got, CompoundVector.WantMant, CompoundVector.WantScale)
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range StringRoundTripVectors {
		d, err := decimal.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, d.String())
	}
}

// Property: additive and multiplicative identities hold for arbitrary
// small decimals.
func TestProperty_identities(t *testing.T) {
	f := func(n int32) bool {
		d := decimal.NewFromInt(int64(n % 1_000_000))
		sum, err := d.TryAdd(decimal.Zero)
		if err != nil || !sum.Equal(d) {
			return false
		}
		prod, err := d.TryMul(decimal.One)
		if err != nil || !prod.Equal(d) {
			return false
		}
		zero, err := d.TryMul(decimal.Zero)
		return err == nil && zero.IsZero()
	}
	require.NoError(t, quick.Check(f, nil))
}

// Property: negation is involutive and the additive inverse cancels.
func TestProperty_negation(t *testing.T) {
	f := func(n int32) bool {
		d := decimal.NewFromInt(int64(n))
		if !d.Neg().Neg().Equal(d) {
			return false
		}
		sum, err := d.TryAdd(d.Neg())
		return err == nil && sum.IsZero()
	}
	require.NoError(t, quick.Check(f, nil))
}

// Property: commutativity of addition and multiplication for operands
// bounded well within the 96-bit mantissa.
func TestProperty_commutativity(t *testing.T) {
	f := func(a, b int32) bool {
		da := decimal.NewFromInt(int64(a))
		db := decimal.NewFromInt(int64(b))
		sum1, err1 := da.TryAdd(db)
		sum2, err2 := db.TryAdd(da)
		if err1 != nil || err2 != nil || !sum1.Equal(sum2) {
			return false
		}
		prod1, err1 := da.TryMul(db)
		prod2, err2 := db.TryMul(da)
		return err1 == nil && err2 == nil && prod1.Equal(prod2)
	}
	require.NoError(t, quick.Check(f, nil))
}

// Property: cmp is antisymmetric and min/max resolve to one of the
// operands.
func TestProperty_ordering(t *testing.T) {
	f := func(a, b int32) bool {
		da := decimal.NewFromInt(int64(a))
		db := decimal.NewFromInt(int64(b))
		if da.Cmp(db) != -db.Cmp(da) {
			return false
		}
		lo := da.Min(db)
		hi := da.Max(db)
		return lo.LessOrEqual(hi) && (lo.Equal(da) || lo.Equal(db)) && (hi.Equal(da) || hi.Equal(db))
	}
	require.NoError(t, quick.Check(f, nil))
}

// Property: floor <= value <= ceil, and trunc moves toward zero.
func TestProperty_roundingBounds(t *testing.T) {
	f := func(n int32) bool {
		d := decimal.NewFromInt(int64(n)).MustDiv(decimal.MustNew(7, 0))
		if d.Floor().Greater(d) || d.Ceil().Less(d) {
			return false
		}
		trunc := d.Trunc(0)
		return trunc.Abs().LessOrEqual(d.Abs())
	}
	require.NoError(t, quick.Check(f, nil))
}

// Scenario: health factor with collateral=10000, debt=5000, threshold=0.8
// is exactly 1.6.
func TestScenario_healthFactor(t *testing.T) {
	weighted := decimal.MustParse("10000").MustMul(decimal.MustParse("0.8"))
	hf := weighted.MustDiv(decimal.MustParse("5000"))
	assert.True(t, hf.Equal(decimal.MustParse("1.6")))
}

// Scenario: funding-rate cap — mark=2100, index=2000, interest=0, cap=0.01,
// interval=8h. Raw premium is 0.05, clamped to exactly 0.01.
func TestScenario_fundingRateCap(t *testing.T) {
	premium := decimal.MustParse("2100").MustSub(decimal.MustParse("2000")).MustDiv(decimal.MustParse("2000"))
	require.True(t, premium.Equal(decimal.MustParse("0.05")))
	clamped := premium.Clamp(decimal.MustParse("-0.01"), decimal.MustParse("0.01"))
	assert.True(t, clamped.Equal(decimal.MustParse("0.01")))
}
