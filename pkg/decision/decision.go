package decision

import (
	"fmt"

	"github.com/yasi-python/propstat/pkg/model"
	"github.com/yasi-python/propstat/pkg/power"
	"github.com/yasi-python/propstat/pkg/region"
	"github.com/yasi-python/propstat/pkg/stats"
)

type Tail string

const (
	TailLower    Tail = "lower"
	TailUpper    Tail = "upper"
	TailTwoSided Tail = "two-sided"
)

func ParseTail(s string) (Tail, error) {
	switch s {
	case "lower", "left":
		return TailLower, nil
	case "upper", "right", "":
		return TailUpper, nil
	case "two-sided", "two_sided", "both":
		return TailTwoSided, nil
	}
	return "", fmt.Errorf("unknown tail %q", s)
}

// Rule is a binomial test of H0: p = P0 at level Alpha.
type Rule struct {
	N     int
	P0    float64
	Alpha float64
	Tail  Tail
}

// tolerance for cumulative sums landing on alpha
const eps = 1e-12

// Build returns the largest tail region whose mass under H0 does not exceed
// Alpha. A two-sided rule spends Alpha/2 on each tail. A tail whose single
// boundary outcome already exceeds its budget contributes nothing.
func Build(r Rule) (region.Region, error) {
	if err := r.validate(); err != nil {
		return region.Region{}, err
	}
	null := model.Binomial{N: r.N, P: r.P0}
	switch r.Tail {
	case TailLower:
		return lowerTail(null, r.Alpha), nil
	case TailUpper:
		return upperTail(null, r.Alpha), nil
	}
	return lowerTail(null, r.Alpha/2).Union(upperTail(null, r.Alpha/2)), nil
}

func (r Rule) validate() error {
	if err := stats.CheckSize(r.N); err != nil {
		return err
	}
	if err := stats.CheckProbability("p0", r.P0); err != nil {
		return err
	}
	if r.Alpha <= 0 || r.Alpha >= 1 {
		return fmt.Errorf("%w: significance level alpha=%v not in (0,1)", stats.ErrDomain, r.Alpha)
	}
	switch r.Tail {
	case TailLower, TailUpper, TailTwoSided:
		return nil
	}
	return fmt.Errorf("unknown tail %q", r.Tail)
}

func lowerTail(null model.Binomial, budget float64) region.Region {
	l, cum := -1, 0.0
	for x := 0; x <= null.N; x++ {
		cum += null.PMF(x)
		if cum > budget+eps {
			break
		}
		l = x
	}
	return region.Range(0, l)
}

func upperTail(null model.Binomial, budget float64) region.Region {
	r, cum := null.N+1, 0.0
	for x := null.N; x >= 0; x-- {
		cum += null.PMF(x)
		if cum > budget+eps {
			break
		}
		r = x
	}
	return region.Range(r, null.N)
}

type Action string

const (
	ActionReject Action = "reject"
	ActionRetain Action = "retain"
)

type Input struct {
	Rule     Rule
	Observed int
}

type Decision struct {
	Action   Action         `json:"action"`
	Region   region.Region  `json:"-"`
	Notation string         `json:"region"`
	Size     float64        `json:"size"`
	Estimate stats.Interval `json:"estimate"`
	Reason   string         `json:"reason"`
}

// Evaluate builds the rule's region and checks the observed count against it.
// Estimate is the Wilson interval for the observed proportion at 1-Alpha.
func Evaluate(in Input) (Decision, error) {
	k, err := Build(in.Rule)
	if err != nil {
		return Decision{}, err
	}
	if in.Observed < 0 || in.Observed > in.Rule.N {
		return Decision{}, fmt.Errorf("%w: observed count %d not in [0,%d]", stats.ErrDomain, in.Observed, in.Rule.N)
	}
	est, err := stats.FromCount(stats.MethodWilson, in.Observed, in.Rule.N, 1-in.Rule.Alpha)
	if err != nil {
		return Decision{}, err
	}
	d := Decision{
		Region:   k,
		Notation: region.FormatPlain(k, in.Rule.N),
		Size:     power.Size(model.Binomial{N: in.Rule.N, P: in.Rule.P0}, k),
		Estimate: est,
	}
	switch {
	case k.Empty():
		d.Action, d.Reason = ActionRetain, "empty_region"
	case k.Contains(in.Observed):
		d.Action, d.Reason = ActionReject, "observed_in_region"
	default:
		d.Action, d.Reason = ActionRetain, "observed_outside_region"
	}
	return d, nil
}
