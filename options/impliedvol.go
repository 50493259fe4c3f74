package options

import "github.com/finprecision/decimal"

var (
	volFloor       = decimal.MustParse("0.01")
	volCeiling     = decimal.MustParse("5.0")
	defaultIVTol   = decimal.MustParse("0.0001")
	vegaFloor      = decimal.MustParse("0.00000001")
	defaultMaxIter = 100
)

// ImpliedVolResult mirrors the solver package's Result shape: iterative
// implied-vol search never fails for slow convergence.
type ImpliedVolResult struct {
	Volatility decimal.Decimal
	Iterations int
	Residual   decimal.Decimal
	Converged  bool
}

// ImpliedVolatility solves for the volatility that reprices p (with its
// Volatility field ignored) to marketPrice, for a call if isCall else a
// put. Uses Newton-Raphson seeded by the Brenner-Subrahmanyam estimate.
func ImpliedVolatility(p Params, marketPrice decimal.Decimal, isCall bool) (ImpliedVolResult, error) {
	if !p.Spot.IsPositive() || !p.Strike.IsPositive() || !p.Time.IsPositive() {
		return ImpliedVolResult{}, decimal.ErrDivisionByZero
	}

	seed, err := brennerSubrahmanyam(p, marketPrice)
	if err != nil {
		return ImpliedVolResult{}, err
	}
	sigma := seed.Clamp(volFloor, volCeiling)

	for i := 0; i < defaultMaxIter; i++ {
		trial := p
		trial.Volatility = sigma
		modelPrice, err := priceOf(trial, isCall)
		if err != nil {
			return ImpliedVolResult{}, err
		}

		diff, err := modelPrice.TrySub(marketPrice)
		if err != nil {
			return ImpliedVolResult{}, err
		}
		if diff.Abs().Less(defaultIVTol) {
			return ImpliedVolResult{Volatility: sigma, Iterations: i, Residual: diff.Abs(), Converged: true}, nil
		}

		d1, _, err := d1d2(trial)
		if err != nil {
			return ImpliedVolResult{}, err
		}
		pdfD1, err := NormalPDF(d1)
		if err != nil {
			return ImpliedVolResult{}, err
		}
		sqrtT, err := p.Time.TrySqrt()
		if err != nil {
			return ImpliedVolResult{}, err
		}
		vegaUnscaled, err := p.Spot.TryMul(sqrtT)
		if err != nil {
			return ImpliedVolResult{}, err
		}
		vegaUnscaled, err = vegaUnscaled.TryMul(pdfD1)
		if err != nil {
			return ImpliedVolResult{}, err
		}
		if vegaUnscaled.Abs().Less(vegaFloor) {
			return ImpliedVolResult{Volatility: sigma, Iterations: i, Residual: diff.Abs(), Converged: false}, nil
		}

		step, err := diff.TryDiv(vegaUnscaled)
		if err != nil {
			return ImpliedVolResult{}, err
		}
		sigma, err = sigma.TrySub(step)
		if err != nil {
			return ImpliedVolResult{}, err
		}
		sigma = sigma.Clamp(volFloor, volCeiling)
	}

	trial := p
	trial.Volatility = sigma
	modelPrice, err := priceOf(trial, isCall)
	if err != nil {
		return ImpliedVolResult{}, err
	}
	residual, err := modelPrice.TrySub(marketPrice)
	if err != nil {
		return ImpliedVolResult{}, err
	}
	return ImpliedVolResult{Volatility: sigma, Iterations: defaultMaxIter, Residual: residual.Abs(), Converged: false}, nil
}

func priceOf(p Params, isCall bool) (decimal.Decimal, error) {
	if isCall {
		return Call(p)
	}
	return Put(p)
}

// brennerSubrahmanyam computes sigma_0 = sqrt(2*pi/T) * (price/S).
func brennerSubrahmanyam(p Params, marketPrice decimal.Decimal) (decimal.Decimal, error) {
	ratio, err := twoPi.TryDiv(p.Time)
	if err != nil {
		return decimal.Decimal{}, err
	}
	sqrtRatio, err := ratio.TrySqrt()
	if err != nil {
		return decimal.Decimal{}, err
	}
	priceOverSpot, err := marketPrice.TryDiv(p.Spot)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sqrtRatio.TryMul(priceOverSpot)
}
