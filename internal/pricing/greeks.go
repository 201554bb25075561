package pricing

import "math"

// Greeks bundles the first-order sensitivities of a European option
// premium. All values are per unit change in the respective parameter
// (vega per 1.0 of volatility, rho per 1.0 of rate, theta per year).
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// ComputeGreeks evaluates delta, gamma, vega, theta and rho in a single
// pass. At the degeneracies T = 0 or sigma = 0 the premium is a kinked
// deterministic payoff with no defined sensitivities and the zero value
// is returned, consistent with Vega.
func ComputeGreeks(side Side, S, K, T, r, q, sigma float64) (Greeks, error) {
	if err := checkSide(side); err != nil {
		return Greeks{}, err
	}
	if err := validateInputs(S, K, T, sigma); err != nil {
		return Greeks{}, err
	}

	if T == 0 || sigma == 0 {
		return Greeks{}, nil
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	discQ := math.Exp(-q * T)
	discR := math.Exp(-r * T)
	pdf1 := stdNormal.Prob(d1)

	g := Greeks{
		Gamma: discQ * pdf1 / (S * sigma * sqrtT),
		Vega:  S * discQ * pdf1 * sqrtT,
	}

	if side == Call {
		g.Delta = discQ * stdNormal.CDF(d1)
		g.Theta = -S*discQ*pdf1*sigma/(2*sqrtT) -
			r*K*discR*stdNormal.CDF(d2) +
			q*S*discQ*stdNormal.CDF(d1)
		g.Rho = K * T * discR * stdNormal.CDF(d2)
		return g, nil
	}

	g.Delta = -discQ * stdNormal.CDF(-d1)
	g.Theta = -S*discQ*pdf1*sigma/(2*sqrtT) +
		r*K*discR*stdNormal.CDF(-d2) -
		q*S*discQ*stdNormal.CDF(-d1)
	g.Rho = -K * T * discR * stdNormal.CDF(-d2)
	return g, nil
}
