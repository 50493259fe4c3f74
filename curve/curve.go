// Package curve implements yield-curve term structures: a flat
// continuously-compounded rate and a piecewise curve built from
// discrete (time, rate) nodes, both satisfying the same TermStructure
// capability set.
package curve

import "github.com/finprecision/decimal"

// MaxNodes bounds a piecewise curve's node storage, matching the
// fixed-capacity contract the constrained-VM target requires.
const MaxNodes = 32

// TermStructure is the capability set shared by every yield-curve
// implementation in this package.
type TermStructure interface {
	DiscountFactor(t decimal.Decimal) (decimal.Decimal, error)
	ZeroRate(t decimal.Decimal) (decimal.Decimal, error)
	ForwardRate(t1, t2 decimal.Decimal) (decimal.Decimal, error)
	InstantaneousForward(t decimal.Decimal) (decimal.Decimal, error)
}

// instantDt is the step used to approximate InstantaneousForward.
var instantDt = decimal.MustNew(1, 4) // 0.0001

func discountFromRate(rate, t decimal.Decimal) (decimal.Decimal, error) {
	rt, err := rate.TryMul(t)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rt.Neg().TryExp()
}

func forwardRate(ts TermStructure, t1, t2 decimal.Decimal) (decimal.Decimal, error) {
	if !t2.Greater(t1) {
		return decimal.Decimal{}, decimal.ErrDivisionByZero
	}
	r1, err := ts.ZeroRate(t1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r2, err := ts.ZeroRate(t2)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r1t1, err := r1.TryMul(t1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r2t2, err := r2.TryMul(t2)
	if err != nil {
		return decimal.Decimal{}, err
	}
	num, err := r2t2.TrySub(r1t1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	denom, err := t2.TrySub(t1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return num.TryDiv(denom)
}

func instantaneousForward(ts TermStructure, t decimal.Decimal) (decimal.Decimal, error) {
	t2, err := t.TryAdd(instantDt)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ts.ForwardRate(t, t2)
}

// Flat is a term structure with a single continuously-compounded rate
// applicable at every maturity.
type Flat struct {
	rate decimal.Decimal
}

// NewFlat builds a flat term structure at the given constant rate.
func NewFlat(rate decimal.Decimal) Flat { return Flat{rate: rate} }

// Rate returns the underlying constant rate.
func (f Flat) Rate() decimal.Decimal { return f.rate }

func (f Flat) DiscountFactor(t decimal.Decimal) (decimal.Decimal, error) {
	return discountFromRate(f.rate, t)
}

func (f Flat) ZeroRate(decimal.Decimal) (decimal.Decimal, error) { return f.rate, nil }

func (f Flat) ForwardRate(decimal.Decimal, decimal.Decimal) (decimal.Decimal, error) {
	return f.rate, nil
}

func (f Flat) InstantaneousForward(decimal.Decimal) (decimal.Decimal, error) {
	return f.rate, nil
}

// Node is a single (time, rate) point on a piecewise curve.
type Node struct {
	Time decimal.Decimal
	Rate decimal.Decimal
}

// Piecewise is a bounded, time-sorted sequence of rate nodes with
// linear interpolation in rate space between nodes and flat
// extrapolation beyond the endpoints.
type Piecewise struct {
	nodes [MaxNodes]Node
	count int
}

// NewPiecewise returns an empty piecewise term structure.
func NewPiecewise() *Piecewise { return &Piecewise{} }

// AddNode inserts a node, keeping the sequence sorted by time. Fails
// with Overflow once MaxNodes nodes are present.
func (p *Piecewise) AddNode(n Node) error {
	if p.count >= MaxNodes {
		return decimal.ErrOverflow
	}
	idx := p.count
	for i := 0; i < p.count; i++ {
		if n.Time.Less(p.nodes[i].Time) {
			idx = i
			break
		}
	}
	copy(p.nodes[idx+1:p.count+1], p.nodes[idx:p.count])
	p.nodes[idx] = n
	p.count++
	return nil
}

// NodeCount returns the number of nodes currently on the curve.
func (p *Piecewise) NodeCount() int { return p.count }

func (p *Piecewise) findBracket(t decimal.Decimal) (lower, upper *Node) {
	for i := 0; i < p.count; i++ {
		n := &p.nodes[i]
		if !n.Time.Greater(t) {
			lower = n
		}
		if !n.Time.Less(t) && upper == nil {
			upper = n
		}
	}
	return lower, upper
}

func (p *Piecewise) DiscountFactor(t decimal.Decimal) (decimal.Decimal, error) {
	rate, err := p.ZeroRate(t)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return discountFromRate(rate, t)
}

func (p *Piecewise) ZeroRate(t decimal.Decimal) (decimal.Decimal, error) {
	if p.count == 0 {
		return decimal.Decimal{}, decimal.ErrDivisionByZero
	}
	lower, upper := p.findBracket(t)
	switch {
	case lower != nil && upper != nil && lower.Time.Equal(upper.Time):
		return lower.Rate, nil
	case lower != nil && upper != nil:
		tRange, err := upper.Time.TrySub(lower.Time)
		if err != nil {
			return decimal.Decimal{}, err
		}
		rRange, err := upper.Rate.TrySub(lower.Rate)
		if err != nil {
			return decimal.Decimal{}, err
		}
		tOffset, err := t.TrySub(lower.Time)
		if err != nil {
			return decimal.Decimal{}, err
		}
		slope, err := rRange.TryDiv(tRange)
		if err != nil {
			return decimal.Decimal{}, err
		}
		delta, err := slope.TryMul(tOffset)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return lower.Rate.TryAdd(delta)
	case lower != nil:
		return lower.Rate, nil
	case upper != nil:
		return upper.Rate, nil
	default:
		return decimal.Decimal{}, decimal.ErrDivisionByZero
	}
}

func (p *Piecewise) ForwardRate(t1, t2 decimal.Decimal) (decimal.Decimal, error) {
	return forwardRate(p, t1, t2)
}

func (p *Piecewise) InstantaneousForward(t decimal.Decimal) (decimal.Decimal, error) {
	return instantaneousForward(p, t)
}

var (
	_ TermStructure = Flat{}
	_ TermStructure = (*Piecewise)(nil)
)
