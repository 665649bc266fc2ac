package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDomain is returned (wrapped) for any invalid statistical parameter:
// a confidence level outside (0,1), a non-positive sample size or trial
// count, or a probability outside [0,1].
var ErrDomain = errors.New("domain error")

// Quantile returns the two-sided critical value z for confidence level gamma,
// i.e. the z with Phi(z) = (1+gamma)/2.
func Quantile(gamma float64) (float64, error) {
	if err := CheckConfidence(gamma); err != nil {
		return 0, err
	}
	return distuv.UnitNormal.Quantile((1 + gamma) / 2), nil
}

// CheckConfidence reports an ErrDomain unless gamma is in (0,1).
func CheckConfidence(gamma float64) error {
	if math.IsNaN(gamma) || gamma <= 0 || gamma >= 1 {
		return fmt.Errorf("%w: confidence level %v not in (0,1)", ErrDomain, gamma)
	}
	return nil
}

// CheckProbability reports an ErrDomain unless p is in [0,1]; name labels
// the parameter in the message.
func CheckProbability(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %s=%v not in [0,1]", ErrDomain, name, p)
	}
	return nil
}

// CheckSize reports an ErrDomain unless n is at least 1.
func CheckSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: sample size n=%d must be positive", ErrDomain, n)
	}
	return nil
}
