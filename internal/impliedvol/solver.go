// Package impliedvol inverts the Black-Scholes pricing function,
// recovering the volatility that reproduces an observed market price.
//
// The solver is two-staged: Newton-Raphson first, which converges
// quadratically while vega is well-conditioned, then bisection over the
// sigma bracket as the safety net when Newton stalls or diverges (deep
// in or out of the money, near expiry, poor initial guess). Bisection is
// guaranteed to converge whenever the bracket contains a sign change,
// at roughly twice the iterations per accuracy digit.
//
// Structural input errors surface as pricing.ErrInvalidInput. Expected
// numerical non-convergence never does: it is reported in the Result
// (and as a quiet NaN by the ImpliedVol convenience wrapper), so batch
// callers can skip unsolvable points without aborting.
package impliedvol

import (
	"math"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Method identifies which sub-procedure produced a Result.
type Method int

const (
	MethodNone Method = iota
	MethodNewton
	MethodBisection
)

func (m Method) String() string {
	switch m {
	case MethodNewton:
		return "newton"
	case MethodBisection:
		return "bisection"
	}
	return "none"
}

// Reason explains why a solve attempt failed.
type Reason int

const (
	ReasonNone          Reason = iota
	ReasonNegativePrice        // market price below zero
	ReasonExpired              // T <= 0, no time value to invert
	ReasonOutOfBounds          // market price outside the no-arbitrage interval
	ReasonVegaFloor            // vega too small for a stable Newton step
	ReasonDiverged             // Newton step left the sigma range
	ReasonNoBracket            // no sign change between SigmaMin and SigmaMax
	ReasonMaxIterations        // iteration cap exhausted
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNegativePrice:
		return "negative market price"
	case ReasonExpired:
		return "expired"
	case ReasonOutOfBounds:
		return "price outside no-arbitrage bounds"
	case ReasonVegaFloor:
		return "vega below floor"
	case ReasonDiverged:
		return "newton step left sigma range"
	case ReasonNoBracket:
		return "no bracketing sign change"
	case ReasonMaxIterations:
		return "max iterations exhausted"
	}
	return "unknown"
}

// Result is the outcome of a solve attempt. Failed results carry a quiet
// NaN in Sigma so the value can never be mistaken for a volatility.
type Result struct {
	Sigma      float64
	Converged  bool
	Method     Method
	Reason     Reason
	Iterations int
}

func failure(m Method, reason Reason, iters int) Result {
	return Result{Sigma: math.NaN(), Method: m, Reason: reason, Iterations: iters}
}

// Solve recovers the implied volatility for an observed market price.
// Newton-Raphson is attempted first; any Newton failure falls through to
// bisection, and a converged Newton result takes precedence. The error
// is non-nil only for structurally invalid inputs; every numerically
// expected non-convergence is reported through the Result.
func Solve(side pricing.Side, marketPrice, S, K, T, r, q float64, cfg Config) (Result, error) {
	if err := pricing.Validate(side, S, K, T, 0); err != nil {
		return Result{}, err
	}
	cfg = cfg.withDefaults()

	res := newton(side, marketPrice, S, K, T, r, q, cfg)
	if res.Converged {
		return res, nil
	}

	logger.Debugf("newton failed (%s) for %s S=%g K=%g T=%g, trying bisection",
		res.Reason, side, S, K, T)
	return bisection(side, marketPrice, S, K, T, r, q, cfg), nil
}

// ImpliedVol is the float-level convenience wrapper over Solve, using
// the default configuration with initialSigma as the Newton starting
// guess (non-positive values keep the default of 0.2). Non-convergence
// is returned as a quiet NaN with a nil error.
func ImpliedVol(side pricing.Side, marketPrice, S, K, T, r, q, initialSigma float64) (float64, error) {
	cfg := DefaultConfig()
	if initialSigma > 0 {
		cfg.InitialSigma = initialSigma
	}
	res, err := Solve(side, marketPrice, S, K, T, r, q, cfg)
	if err != nil {
		return math.NaN(), err
	}
	return res.Sigma, nil
}

// Newton runs only the Newton-Raphson stage. Exposed for callers that
// want to inspect the first-stage outcome without the fallback.
func Newton(side pricing.Side, marketPrice, S, K, T, r, q float64, cfg Config) (Result, error) {
	if err := pricing.Validate(side, S, K, T, 0); err != nil {
		return Result{}, err
	}
	return newton(side, marketPrice, S, K, T, r, q, cfg.withDefaults()), nil
}

// Bisection runs only the bracketing stage.
func Bisection(side pricing.Side, marketPrice, S, K, T, r, q float64, cfg Config) (Result, error) {
	if err := pricing.Validate(side, S, K, T, 0); err != nil {
		return Result{}, err
	}
	return bisection(side, marketPrice, S, K, T, r, q, cfg.withDefaults()), nil
}

// reject applies the rejection rules shared by both stages: a negative
// market price, an expired option (T <= 0 leaves no time value, so the
// inversion is ill-defined even when the price equals intrinsic), and,
// when enabled, a market price outside the no-arbitrage interval.
func reject(side pricing.Side, marketPrice, S, K, T, r, q float64, cfg Config) Reason {
	if marketPrice < 0 {
		return ReasonNegativePrice
	}
	if T <= 0 {
		return ReasonExpired
	}
	if cfg.EnforceBounds {
		lower, upper := pricing.Bounds(side, S, K, T, r, q)
		if marketPrice < lower-boundsTol || marketPrice > upper+boundsTol {
			return ReasonOutOfBounds
		}
	}
	return ReasonNone
}

func newton(side pricing.Side, marketPrice, S, K, T, r, q float64, cfg Config) Result {
	if reason := reject(side, marketPrice, S, K, T, r, q, cfg); reason != ReasonNone {
		return failure(MethodNewton, reason, 0)
	}

	sigma := math.Min(math.Max(cfg.InitialSigma, cfg.SigmaMin), cfg.SigmaMax)

	for i := 0; i < cfg.MaxIter; i++ {
		// inputs were validated before the loop; sigma stays in range
		price, _ := pricing.Price(side, S, K, T, r, q, sigma)
		diff := price - marketPrice

		if math.Abs(diff) < cfg.Tol {
			return Result{Sigma: sigma, Converged: true, Method: MethodNewton, Iterations: i}
		}

		vega, _ := pricing.Vega(S, K, T, r, q, sigma)
		if vega < cfg.VegaFloor {
			return failure(MethodNewton, ReasonVegaFloor, i)
		}

		sigma -= diff / vega
		logger.Tracef("newton iter=%d sigma=%g diff=%g vega=%g", i, sigma, diff, vega)

		// an out-of-range step signals divergence; clamping here would
		// just let the next iteration oscillate against the bound
		if sigma < cfg.SigmaMin || sigma > cfg.SigmaMax {
			return failure(MethodNewton, ReasonDiverged, i)
		}
	}

	return failure(MethodNewton, ReasonMaxIterations, cfg.MaxIter)
}

func bisection(side pricing.Side, marketPrice, S, K, T, r, q float64, cfg Config) Result {
	if reason := reject(side, marketPrice, S, K, T, r, q, cfg); reason != ReasonNone {
		return failure(MethodBisection, reason, 0)
	}

	low, high := cfg.SigmaMin, cfg.SigmaMax
	pLow, _ := pricing.Price(side, S, K, T, r, q, low)
	pHigh, _ := pricing.Price(side, S, K, T, r, q, high)
	fLow := pLow - marketPrice
	fHigh := pHigh - marketPrice

	if fLow*fHigh > 0 {
		return failure(MethodBisection, ReasonNoBracket, 0)
	}

	for i := 0; i < cfg.BisectMaxIter; i++ {
		mid := 0.5 * (low + high)
		pMid, _ := pricing.Price(side, S, K, T, r, q, mid)
		fMid := pMid - marketPrice

		if math.Abs(fMid) < cfg.Tol || high-low < cfg.Tol {
			return Result{Sigma: mid, Converged: true, Method: MethodBisection, Iterations: i}
		}

		// boundary ties go to the lower half
		if fLow*fMid <= 0 {
			high = mid
		} else {
			low = mid
			fLow = fMid
		}
		logger.Tracef("bisection iter=%d bracket=[%g,%g]", i, low, high)
	}

	return failure(MethodBisection, ReasonMaxIterations, cfg.BisectMaxIter)
}
