package impliedvol

import (
	"errors"
	"math"
	"testing"

	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/testutil"
)

// Round-trip: invert a model price and recover the generating sigma.
func TestSolveRoundTrip(t *testing.T) {
	S, r, q := 100.0, 0.03, 0.01

	for _, side := range []pricing.Side{pricing.Call, pricing.Put} {
		for _, K := range []float64{90, 100, 110} {
			for _, T := range []float64{0.25, 1.0, 2.0} {
				for _, sigma := range []float64{0.1, 0.2, 0.5, 1.0, 2.0, 3.0} {
					market, err := pricing.Price(side, S, K, T, r, q, sigma)
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}

					res, err := Solve(side, market, S, K, T, r, q, DefaultConfig())
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					if !res.Converged {
						t.Fatalf("no convergence for %s K=%g T=%g sigma=%g: %s",
							side, K, T, sigma, res.Reason)
					}
					if math.Abs(res.Sigma-sigma) > 1e-4 {
						t.Fatalf("recovered %g, want %g (%s K=%g T=%g via %s)",
							res.Sigma, sigma, side, K, T, res.Method)
					}
				}
			}
		}
	}
}

func TestImpliedVolWrapper(t *testing.T) {
	S, K, T, r, q := 100.0, 100.0, 1.0, 0.05, 0.0
	market, _ := pricing.Price(pricing.Call, S, K, T, r, q, 0.25)

	iv, err := ImpliedVol(pricing.Call, market, S, K, T, r, q, 0.2)
	testutil.NoError(t, err)
	testutil.InDelta(t, "implied vol", iv, 0.25, 1e-4)
}

// Negative and above-upper-bound market prices are unsolvable, never errors.
func TestSolveRejectsOutOfBoundsPrices(t *testing.T) {
	S, K, T, r, q := 100.0, 100.0, 1.0, 0.05, 0.0

	res, err := Solve(pricing.Call, -1, S, K, T, r, q, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged || res.Reason != ReasonNegativePrice {
		t.Fatalf("expected negative-price rejection, got %+v", res)
	}

	_, upper := pricing.Bounds(pricing.Call, S, K, T, r, q)
	res, err = Solve(pricing.Call, upper+10, S, K, T, r, q, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged || res.Reason != ReasonOutOfBounds {
		t.Fatalf("expected out-of-bounds rejection, got %+v", res)
	}

	iv, err := ImpliedVol(pricing.Call, upper+10, S, K, T, r, q, 0.2)
	testutil.NoError(t, err)
	testutil.IsNaN(t, "implied vol of unsolvable price", iv)
}

// T <= 0 is rejected even when the market price equals intrinsic value.
func TestSolveRejectsExpiredOption(t *testing.T) {
	res, err := Solve(pricing.Call, 10, 100, 90, 0, 0.05, 0, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged || res.Reason != ReasonExpired {
		t.Fatalf("expected expiry rejection, got %+v", res)
	}
	if !math.IsNaN(res.Sigma) {
		t.Fatalf("failed result should carry NaN, got %g", res.Sigma)
	}
}

// Deep out-of-the-money and short-dated: vega underflows the floor, Newton
// gives up and the bisection fallback still brackets the root.
func TestBisectionFallbackWhenVegaUnderflows(t *testing.T) {
	S, K, T, r, q := 100.0, 200.0, 0.05, 0.05, 0.0
	const trueSigma = 0.9
	market, err := pricing.Price(pricing.Call, S, K, T, r, q, trueSigma)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nres, err := Newton(pricing.Call, market, S, K, T, r, q, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nres.Converged || nres.Reason != ReasonVegaFloor {
		t.Fatalf("expected newton vega-floor failure, got %+v", nres)
	}

	res, err := Solve(pricing.Call, market, S, K, T, r, q, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged || res.Method != MethodBisection {
		t.Fatalf("expected bisection convergence, got %+v", res)
	}
	testutil.InDelta(t, "fallback sigma", res.Sigma, trueSigma, 1e-4)
}

// Without a sign change in [SigmaMin, SigmaMax] bisection must refuse.
func TestBisectionRequiresBracket(t *testing.T) {
	S, K, T, r, q := 100.0, 100.0, 1.0, 0.0, 0.0
	cfg := DefaultConfig()
	cfg.EnforceBounds = false

	// above the price at SigmaMax but still below the hard upper bound
	high, _ := pricing.Price(pricing.Call, S, K, T, r, q, cfg.SigmaMax)
	res, err := Bisection(pricing.Call, high+0.5, S, K, T, r, q, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged || res.Reason != ReasonNoBracket {
		t.Fatalf("expected no-bracket failure, got %+v", res)
	}
}

// A Newton step that leaves the sigma range signals divergence, no clamping.
func TestNewtonDivergesOnOutOfRangeStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnforceBounds = false

	res, err := Newton(pricing.Call, 200, 100, 100, 1, 0.05, 0, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged || res.Reason != ReasonDiverged {
		t.Fatalf("expected divergence failure, got %+v", res)
	}
}

func TestNewtonIterationCap(t *testing.T) {
	S, K, T, r, q := 100.0, 100.0, 1.0, 0.05, 0.0
	market, _ := pricing.Price(pricing.Call, S, K, T, r, q, 1.0)

	cfg := DefaultConfig()
	cfg.MaxIter = 1
	res, err := Newton(pricing.Call, market, S, K, T, r, q, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Converged || res.Reason != ReasonMaxIterations {
		t.Fatalf("expected iteration-cap failure, got %+v", res)
	}
}

// Structural violations are hard errors, not NaN results.
func TestSolveInvalidInputs(t *testing.T) {
	_, err := Solve(pricing.Call, 10, -100, 100, 1, 0.05, 0, DefaultConfig())
	if !errors.Is(err, pricing.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative spot, got %v", err)
	}

	_, err = Solve(pricing.Side(9), 10, 100, 100, 1, 0.05, 0, DefaultConfig())
	if !errors.Is(err, pricing.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad side, got %v", err)
	}

	iv, err := ImpliedVol(pricing.Put, 10, 100, -5, 1, 0.05, 0, 0.2)
	if !errors.Is(err, pricing.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative strike, got %v", err)
	}
	if !math.IsNaN(iv) {
		t.Fatalf("expected NaN alongside the error, got %g", iv)
	}
}

func TestConfigDefaults(t *testing.T) {
	def := DefaultConfig()
	if def.InitialSigma != 0.2 || def.Tol != 1e-7 || def.MaxIter != 100 ||
		def.BisectMaxIter != 200 || def.VegaFloor != 1e-10 ||
		def.SigmaMin != 1e-6 || def.SigmaMax != 5.0 || !def.EnforceBounds {
		t.Fatalf("unexpected defaults: %+v", def)
	}

	// zero numeric fields are filled, overrides survive
	filled := Config{Tol: 1e-9}.withDefaults()
	if filled.Tol != 1e-9 {
		t.Fatalf("override lost: %+v", filled)
	}
	if filled.MaxIter != 100 || filled.SigmaMax != 5.0 {
		t.Fatalf("defaults not filled: %+v", filled)
	}
}
