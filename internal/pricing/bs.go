package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal is the standard normal distribution used for Φ and φ.
// distuv distributions are value types and safe for concurrent use.
var stdNormal = distuv.UnitNormal

// Price calculates the premium of a European option using the
// Black-Scholes model with a continuous dividend yield.
//
// Parameters:
//   - side: Call or Put
//   - S: spot price of the underlying asset
//   - K: strike price of the option
//   - T: time to expiry in years
//   - r: risk-free interest rate (annual, continuously compounded)
//   - q: dividend yield (annual, continuously compounded)
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//
// Degenerate cases are handled explicitly:
//   - T = 0 returns the intrinsic value (the European payoff at maturity).
//   - sigma = 0 prices the deterministic forward: the terminal price is
//     S·exp((r-q)T) with certainty and the payoff is discounted at r.
//
// Returns ErrInvalidInput for S <= 0, K <= 0, T < 0, sigma < 0 or an
// unknown side. Pure function of its inputs, no side effects.
func Price(side Side, S, K, T, r, q, sigma float64) (float64, error) {
	if err := checkSide(side); err != nil {
		return 0, err
	}
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}

	if T == 0 {
		if side == Call {
			return math.Max(S-K, 0), nil
		}
		return math.Max(K-S, 0), nil
	}

	if sigma == 0 {
		forward := S * math.Exp((r-q)*T)
		disc := math.Exp(-r * T)
		if side == Call {
			return disc * math.Max(forward-K, 0), nil
		}
		return disc * math.Max(K-forward, 0), nil
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	discQ := math.Exp(-q * T)
	discR := math.Exp(-r * T)

	if side == Call {
		return S*discQ*stdNormal.CDF(d1) - K*discR*stdNormal.CDF(d2), nil
	}
	return K*discR*stdNormal.CDF(-d2) - S*discQ*stdNormal.CDF(-d1), nil
}

// Vega calculates the sensitivity of the option premium to volatility,
// dPrice/dSigma per 1.0 volatility unit (not per percentage point). This
// is the derivative a Newton step on implied volatility divides by.
//
// Returns 0 when T = 0 or sigma = 0: the premium has no volatility
// sensitivity at those degeneracies. Same precondition failures as Price.
func Vega(S, K, T, r, q, sigma float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}

	if T == 0 || sigma == 0 {
		return 0, nil
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	return S * math.Exp(-q*T) * stdNormal.Prob(d1) * sqrtT, nil
}

func checkSide(side Side) error {
	if !side.valid() {
		return fmt.Errorf("%w: unknown option side %d", ErrInvalidInput, int(side))
	}
	return nil
}
