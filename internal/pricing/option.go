package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks structurally malformed option parameters: a
// non-positive spot or strike, a negative maturity or volatility, or an
// unknown option side. Numerical non-convergence never wraps this error.
var ErrInvalidInput = errors.New("invalid input")

// Side identifies the exercise direction of a European option.
type Side int

const (
	Call Side = iota
	Put
)

func (s Side) String() string {
	switch s {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// valid reports whether s is one of the two defined sides.
func (s Side) valid() bool {
	return s == Call || s == Put
}

// ParseSide converts "call" or "put" (case-insensitive, surrounding
// whitespace ignored) into a Side.
func ParseSide(str string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return 0, fmt.Errorf("%w: option side must be \"call\" or \"put\", got %q", ErrInvalidInput, str)
}

// Option holds the Black-Scholes model parameters for a single European
// option. Values are plain floats; an Option is immutable by convention
// and carries no identity beyond its fields.
type Option struct {
	S     float64 // spot price of the underlying
	K     float64 // strike price
	T     float64 // time to maturity in years
	R     float64 // continuously compounded risk-free rate
	Q     float64 // continuous dividend yield
	Sigma float64 // annualized volatility
}

// NewOption builds an Option with the conventional defaults of zero
// dividend yield and 20% volatility.
func NewOption(S, K, T, r float64) Option {
	return Option{S: S, K: K, T: T, R: r, Sigma: 0.2}
}

// Validate checks that the parameters are mathematically admissible.
func (o Option) Validate() error {
	return validateInputs(o.S, o.K, o.T, o.Sigma)
}

// Price returns the Black-Scholes premium for the given side.
func (o Option) Price(side Side) (float64, error) {
	return Price(side, o.S, o.K, o.T, o.R, o.Q, o.Sigma)
}

// Vega returns the volatility sensitivity of the option premium.
func (o Option) Vega() (float64, error) {
	return Vega(o.S, o.K, o.T, o.R, o.Q, o.Sigma)
}

// Validate checks an option side together with its scalar parameters.
func Validate(side Side, S, K, T, sigma float64) error {
	if err := checkSide(side); err != nil {
		return err
	}
	return validateInputs(S, K, T, sigma)
}

func validateInputs(S, K, T, sigma float64) error {
	if !(S > 0) {
		return fmt.Errorf("%w: spot S must be > 0, got %g", ErrInvalidInput, S)
	}
	if !(K > 0) {
		return fmt.Errorf("%w: strike K must be > 0, got %g", ErrInvalidInput, K)
	}
	if T < 0 {
		return fmt.Errorf("%w: maturity T must be >= 0, got %g", ErrInvalidInput, T)
	}
	if sigma < 0 {
		return fmt.Errorf("%w: volatility sigma must be >= 0, got %g", ErrInvalidInput, sigma)
	}
	return nil
}
