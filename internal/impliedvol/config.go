package impliedvol

// Config collects the numeric knobs of the implied volatility solver.
// The zero value of any numeric field is replaced by the documented
// default, so callers only set what they need to override. EnforceBounds
// is an ordinary flag with no defaulting: DefaultConfig turns it on, a
// hand-built Config leaves it off.
type Config struct {
	InitialSigma  float64 // starting guess for Newton, default 0.2
	Tol           float64 // convergence tolerance on the price diff, default 1e-7
	MaxIter       int     // Newton iteration cap, default 100
	BisectMaxIter int     // bisection iteration cap, default 200
	VegaFloor     float64 // minimum vega for a stable Newton step, default 1e-10
	SigmaMin      float64 // lower sigma bound / bisection bracket low, default 1e-6
	SigmaMax      float64 // upper sigma bound / bisection bracket high, default 5.0
	EnforceBounds bool    // reject market prices outside the no-arbitrage interval
}

// boundsTol is the slack allowed on either side of the no-arbitrage
// interval before a market price is rejected.
const boundsTol = 1e-12

// DefaultConfig returns the solver defaults, with bounds enforcement on.
func DefaultConfig() Config {
	return Config{
		InitialSigma:  0.2,
		Tol:           1e-7,
		MaxIter:       100,
		BisectMaxIter: 200,
		VegaFloor:     1e-10,
		SigmaMin:      1e-6,
		SigmaMax:      5.0,
		EnforceBounds: true,
	}
}

// withDefaults fills zero-valued numeric fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.InitialSigma == 0 {
		c.InitialSigma = def.InitialSigma
	}
	if c.Tol == 0 {
		c.Tol = def.Tol
	}
	if c.MaxIter == 0 {
		c.MaxIter = def.MaxIter
	}
	if c.BisectMaxIter == 0 {
		c.BisectMaxIter = def.BisectMaxIter
	}
	if c.VegaFloor == 0 {
		c.VegaFloor = def.VegaFloor
	}
	if c.SigmaMin == 0 {
		c.SigmaMin = def.SigmaMin
	}
	if c.SigmaMax == 0 {
		c.SigmaMax = def.SigmaMax
	}
	return c
}
