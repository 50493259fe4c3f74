// Package options implements Black-Scholes European option pricing, the
// five standard Greeks, and Newton-Raphson implied volatility with a
// Brenner-Subrahmanyam seed.
package options

import (
	"github.com/finprecision/decimal"
)

// Params collects the five Black-Scholes inputs. Spot, Strike, Time, and
// Volatility must be strictly positive; Rate may be any sign.
type Params struct {
	Spot       decimal.Decimal
	Strike     decimal.Decimal
	Rate       decimal.Decimal
	Time       decimal.Decimal
	Volatility decimal.Decimal
}

// Greeks holds the five standard sensitivities.
type Greeks struct {
	Delta decimal.Decimal
	Gamma decimal.Decimal
	Theta decimal.Decimal
	Vega  decimal.Decimal
	Rho   decimal.Decimal
}

func validate(p Params) error {
	if !p.Spot.IsPositive() || !p.Strike.IsPositive() {
		return decimal.ErrLogOfNegative
	}
	if !p.Time.IsPositive() || !p.Volatility.IsPositive() {
		return decimal.ErrDivisionByZero
	}
	return nil
}

var two = decimal.MustNew(2, 0)
var hundred = decimal.MustNew(100, 0)
var oneYear = decimal.MustNew(365, 0)

// d1d2 computes the Black-Scholes d1 and d2 intermediates.
func d1d2(p Params) (d1, d2 decimal.Decimal, err error) {
	ratio, err := p.Spot.TryDiv(p.Strike)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	lnRatio, err := ratio.TryLn()
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	volSq, err := p.Volatility.TryMul(p.Volatility)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	halfVolSq, err := volSq.TryDiv(two)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	drift, err := p.Rate.TryAdd(halfVolSq)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	driftT, err := drift.TryMul(p.Time)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	numerator, err := lnRatio.TryAdd(driftT)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	sqrtT, err := p.Time.TrySqrt()
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	volSqrtT, err := p.Volatility.TryMul(sqrtT)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	d1, err = numerator.TryDiv(volSqrtT)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	d2, err = d1.TrySub(volSqrtT)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	return d1, d2, nil
}

func discountFactor(p Params) (decimal.Decimal, error) {
	negRT, err := p.Rate.TryMul(p.Time)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return negRT.Neg().TryExp()
}

// Call returns the Black-Scholes price of a European call.
func Call(p Params) (decimal.Decimal, error) {
	if err := validate(p); err != nil {
		return decimal.Decimal{}, err
	}
	d1, d2, err := d1d2(p)
	if err != nil {
		return decimal.Decimal{}, err
	}
	nd1, err := NormalCDF(d1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	nd2, err := NormalCDF(d2)
	if err != nil {
		return decimal.Decimal{}, err
	}
	df, err := discountFactor(p)
	if err != nil {
		return decimal.Decimal{}, err
	}
	left, err := p.Spot.TryMul(nd1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	right, err := p.Strike.TryMul(df)
	if err != nil {
		return decimal.Decimal{}, err
	}
	right, err = right.TryMul(nd2)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return left.TrySub(right)
}

// Put returns the Black-Scholes price of a European put.
func Put(p Params) (decimal.Decimal, error) {
	if err := validate(p); err != nil {
		return decimal.Decimal{}, err
	}
	d1, d2, err := d1d2(p)
	if err != nil {
		return decimal.Decimal{}, err
	}
	nNegD2, err := NormalCDF(d2.Neg())
	if err != nil {
		return decimal.Decimal{}, err
	}
	nNegD1, err := NormalCDF(d1.Neg())
	if err != nil {
		return decimal.Decimal{}, err
	}
	df, err := discountFactor(p)
	if err != nil {
		return decimal.Decimal{}, err
	}
	left, err := p.Strike.TryMul(df)
	if err != nil {
		return decimal.Decimal{}, err
	}
	left, err = left.TryMul(nNegD2)
	if err != nil {
		return decimal.Decimal{}, err
	}
	right, err := p.Spot.TryMul(nNegD1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return left.TrySub(right)
}

// CallGreeks computes delta, gamma, theta, vega, rho for a call.
func CallGreeks(p Params) (Greeks, error) {
	return greeks(p, true)
}

// PutGreeks computes delta, gamma, theta, vega, rho for a put.
func PutGreeks(p Params) (Greeks, error) {
	return greeks(p, false)
}

func greeks(p Params, isCall bool) (Greeks, error) {
	if err := validate(p); err != nil {
		return Greeks{}, err
	}
	d1, d2, err := d1d2(p)
	if err != nil {
		return Greeks{}, err
	}
	sqrtT, err := p.Time.TrySqrt()
	if err != nil {
		return Greeks{}, err
	}
	pdfD1, err := NormalPDF(d1)
	if err != nil {
		return Greeks{}, err
	}
	df, err := discountFactor(p)
	if err != nil {
		return Greeks{}, err
	}

	// nd2Plain is N(d2) for a call, N(-d2) for a put: the argument sign
	// flips with option type, but the formulas below apply their own
	// +/- sign on top of this plain value.
	var delta decimal.Decimal
	var nd2Plain decimal.Decimal
	if isCall {
		delta, err = NormalCDF(d1)
		if err != nil {
			return Greeks{}, err
		}
		nd2Plain, err = NormalCDF(d2)
		if err != nil {
			return Greeks{}, err
		}
	} else {
		negND1, err := NormalCDF(d1.Neg())
		if err != nil {
			return Greeks{}, err
		}
		delta = negND1.Neg()
		nd2Plain, err = NormalCDF(d2.Neg())
		if err != nil {
			return Greeks{}, err
		}
	}

	// gamma = N'(d1) / (S*sigma*sqrt(T))
	gammaDenom, err := p.Spot.TryMul(p.Volatility)
	if err != nil {
		return Greeks{}, err
	}
	gammaDenom, err = gammaDenom.TryMul(sqrtT)
	if err != nil {
		return Greeks{}, err
	}
	gamma, err := pdfD1.TryDiv(gammaDenom)
	if err != nil {
		return Greeks{}, err
	}

	// vega = S*sqrt(T)*N'(d1) / 100
	vega, err := p.Spot.TryMul(sqrtT)
	if err != nil {
		return Greeks{}, err
	}
	vega, err = vega.TryMul(pdfD1)
	if err != nil {
		return Greeks{}, err
	}
	vega, err = vega.TryDiv(hundred)
	if err != nil {
		return Greeks{}, err
	}

	// theta = -(S*N'(d1)*sigma)/(2*sqrt(T)) -+ r*K*e^(-rT)*N(+-d2), /365
	term1, err := p.Spot.TryMul(pdfD1)
	if err != nil {
		return Greeks{}, err
	}
	term1, err = term1.TryMul(p.Volatility)
	if err != nil {
		return Greeks{}, err
	}
	term1Denom, err := two.TryMul(sqrtT)
	if err != nil {
		return Greeks{}, err
	}
	term1, err = term1.TryDiv(term1Denom)
	if err != nil {
		return Greeks{}, err
	}
	term1 = term1.Neg()

	term2, err := p.Rate.TryMul(p.Strike)
	if err != nil {
		return Greeks{}, err
	}
	term2, err = term2.TryMul(df)
	if err != nil {
		return Greeks{}, err
	}
	term2, err = term2.TryMul(nd2Plain)
	if err != nil {
		return Greeks{}, err
	}
	var thetaAnnual decimal.Decimal
	if isCall {
		thetaAnnual, err = term1.TrySub(term2)
	} else {
		thetaAnnual, err = term1.TryAdd(term2)
	}
	if err != nil {
		return Greeks{}, err
	}
	theta, err := thetaAnnual.TryDiv(oneYear)
	if err != nil {
		return Greeks{}, err
	}

	// rho_call = K*T*e^(-rT)*N(d2)/100; rho_put = -K*T*e^(-rT)*N(-d2)/100
	rho, err := p.Strike.TryMul(p.Time)
	if err != nil {
		return Greeks{}, err
	}
	rho, err = rho.TryMul(df)
	if err != nil {
		return Greeks{}, err
	}
	rho, err = rho.TryMul(nd2Plain)
	if err != nil {
		return Greeks{}, err
	}
	rho, err = rho.TryDiv(hundred)
	if err != nil {
		return Greeks{}, err
	}
	if !isCall {
		rho = rho.Neg()
	}

	return Greeks{Delta: delta, Gamma: gamma, Theta: theta, Vega: vega, Rho: rho}, nil
}
