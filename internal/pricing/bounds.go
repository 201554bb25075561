package pricing

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Bounds returns the model-free no-arbitrage price interval for a
// European option under continuous discounting and dividend yield:
//
//	call: [max(0, S·exp(-qT) - K·exp(-rT)), S·exp(-qT)]
//	put:  [max(0, K·exp(-rT) - S·exp(-qT)), K·exp(-rT)]
//
// A market price outside this interval cannot correspond to any
// non-negative volatility under the model. lower <= upper always holds.
func Bounds(side Side, S, K, T, r, q float64) (lower, upper float64) {
	discQ := math.Exp(-q * T)
	discR := math.Exp(-r * T)

	if side == Call {
		return math.Max(0, S*discQ-K*discR), S * discQ
	}
	return math.Max(0, K*discR-S*discQ), K * discR
}

// ParityHolds reports whether a call/put price pair satisfies put-call
// parity, C - P = S·exp(-qT) - K·exp(-rT), within tol. The check is
// independent of any volatility estimate.
func ParityHolds(S, K, T, r, q, callPrice, putPrice, tol float64) bool {
	lhs := callPrice - putPrice
	rhs := S*math.Exp(-q*T) - K*math.Exp(-r*T)
	return scalar.EqualWithinAbs(lhs, rhs, tol)
}
