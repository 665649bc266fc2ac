package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a closed interval [Lower, Upper] on the probability scale.
// Wald and prediction intervals may extend past [0,1].
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

func (iv Interval) Contains(p float64) bool { return iv.Lower <= p && p <= iv.Upper }

func (iv Interval) Width() float64 { return iv.Upper - iv.Lower }

func (iv Interval) String() string { return fmt.Sprintf("[%.6f, %.6f]", iv.Lower, iv.Upper) }

// Wald returns h ± z·sqrt(h(1-h)/n) with no boundary correction.
func Wald(h float64, n int, gamma float64) (Interval, error) {
	if err := checkEstimate(h, n); err != nil {
		return Interval{}, err
	}
	return normalApprox(h, n, gamma)
}

// PredictionInterval forecasts the observed proportion of n future trials
// given a known success probability p.
func PredictionInterval(p float64, n int, gamma float64) (Interval, error) {
	if err := CheckSize(n); err != nil {
		return Interval{}, err
	}
	if err := CheckProbability("p", p); err != nil {
		return Interval{}, err
	}
	return normalApprox(p, n, gamma)
}

func normalApprox(center float64, n int, gamma float64) (Interval, error) {
	z, err := Quantile(gamma)
	if err != nil {
		return Interval{}, err
	}
	half := z * math.Sqrt(center*(1-center)/float64(n))
	return Interval{Lower: center - half, Upper: center + half}, nil
}

// ClopperPearson returns the exact interval for the count k = round(h·n).
//
// The count is rounded half to even, so a fractional h landing exactly
// between two counts goes to the even one (h=0.25, n=2 gives k=0). Callers
// holding an integer count should use FromCount instead.
func ClopperPearson(h float64, n int, gamma float64) (Interval, error) {
	if err := checkEstimate(h, n); err != nil {
		return Interval{}, err
	}
	return clopperPearsonCount(int(math.RoundToEven(h*float64(n))), n, gamma)
}

func clopperPearsonCount(k, n int, gamma float64) (Interval, error) {
	if err := CheckConfidence(gamma); err != nil {
		return Interval{}, err
	}
	alpha := 1 - gamma
	iv := Interval{Lower: 0, Upper: 1}
	if k > 0 {
		iv.Lower = distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}.Quantile(alpha / 2)
	}
	if k < n {
		iv.Upper = distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}.Quantile(1 - alpha/2)
	}
	return iv, nil
}

func checkEstimate(h float64, n int) error {
	if err := CheckSize(n); err != nil {
		return err
	}
	return CheckProbability("h", h)
}

// Method names a confidence interval estimator.
type Method string

const (
	MethodWald           Method = "wald"
	MethodWilson         Method = "wilson"
	MethodClopperPearson Method = "clopper-pearson"
)

// Estimator maps an observed proportion to a confidence interval.
type Estimator func(h float64, n int, gamma float64) (Interval, error)

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wilson":
		return MethodWilson, nil
	case "wald":
		return MethodWald, nil
	case "clopper-pearson", "clopper_pearson", "cp", "exact":
		return MethodClopperPearson, nil
	}
	return "", fmt.Errorf("unknown interval method %q", s)
}

func (m Method) Estimator() (Estimator, error) {
	switch m {
	case MethodWald:
		return Wald, nil
	case MethodWilson, "":
		return Wilson, nil
	case MethodClopperPearson:
		return ClopperPearson, nil
	}
	return nil, fmt.Errorf("unknown interval method %q", string(m))
}

func Compute(m Method, h float64, n int, gamma float64) (Interval, error) {
	est, err := m.Estimator()
	if err != nil {
		return Interval{}, err
	}
	return est(h, n, gamma)
}

// FromCount computes the interval for k successes out of n. Clopper-Pearson
// uses k directly, without the proportion round trip.
func FromCount(m Method, k, n int, gamma float64) (Interval, error) {
	if err := CheckSize(n); err != nil {
		return Interval{}, err
	}
	if k < 0 || k > n {
		return Interval{}, fmt.Errorf("%w: count k=%d not in [0,%d]", ErrDomain, k, n)
	}
	if m == MethodClopperPearson {
		return clopperPearsonCount(k, n, gamma)
	}
	return Compute(m, float64(k)/float64(n), n, gamma)
}
