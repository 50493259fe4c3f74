package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finprecision/decimal"
)

func TestFlat(t *testing.T) {
	f := NewFlat(decimal.MustParse("0.05"))
	zr, err := f.ZeroRate(decimal.MustParse("2"))
	require.NoError(t, err)
	assert.True(t, zr.Equal(decimal.MustParse("0.05")))

	df, err := f.DiscountFactor(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, df.Equal(decimal.One))

	fwd, err := f.ForwardRate(decimal.MustParse("1"), decimal.MustParse("2"))
	require.NoError(t, err)
	assert.True(t, fwd.Equal(decimal.MustParse("0.05")))
}

func TestPiecewise_interpolationAndExtrapolation(t *testing.T) {
	p := NewPiecewise()
	require.NoError(t, p.AddNode(Node{Time: decimal.MustParse("1"), Rate: decimal.MustParse("0.02")}))
	require.NoError(t, p.AddNode(Node{Time: decimal.MustParse("5"), Rate: decimal.MustParse("0.04")}))
	require.NoError(t, p.AddNode(Node{Time: decimal.MustParse("2"), Rate: decimal.MustParse("0.025")}))

	require.Equal(t, 3, p.NodeCount())

	// Exact match at a node.
	r, err := p.ZeroRate(decimal.MustParse("2"))
	require.NoError(t, err)
	assert.True(t, r.Equal(decimal.MustParse("0.025")))

	// Linear interpolation between nodes 2 and 3 (sorted: 1, 2, 5).
	r, err = p.ZeroRate(decimal.MustParse("3.5"))
	require.NoError(t, err)
	want := decimal.MustParse("0.0325") // halfway between 0.025 at t=2 and 0.04 at t=5
	assert.True(t, r.Equal(want), "ZeroRate(3.5) = %q, want %q", r, want)

	// Flat extrapolation beyond both endpoints.
	rLow, err := p.ZeroRate(decimal.MustParse("0"))
	require.NoError(t, err)
	assert.True(t, rLow.Equal(decimal.MustParse("0.02")))

	rHigh, err := p.ZeroRate(decimal.MustParse("10"))
	require.NoError(t, err)
	assert.True(t, rHigh.Equal(decimal.MustParse("0.04")))
}

func TestPiecewise_forwardRate_requiresOrder(t *testing.T) {
	p := NewPiecewise()
	require.NoError(t, p.AddNode(Node{Time: decimal.MustParse("1"), Rate: decimal.MustParse("0.03")}))
	require.NoError(t, p.AddNode(Node{Time: decimal.MustParse("2"), Rate: decimal.MustParse("0.04")}))

	_, err := p.ForwardRate(decimal.MustParse("2"), decimal.MustParse("1"))
	assert.Error(t, err)
}

func TestPiecewise_capacity(t *testing.T) {
	p := NewPiecewise()
	for i := 0; i < MaxNodes; i++ {
		require.NoError(t, p.AddNode(Node{Time: decimal.NewFromInt(int64(i + 1)), Rate: decimal.MustParse("0.01")}))
	}
	err := p.AddNode(Node{Time: decimal.NewFromInt(999), Rate: decimal.MustParse("0.01")})
	assert.Error(t, err)
}
