// Package coverage estimates the empirical coverage of a confidence
// interval method by repeated binomial sampling.
package coverage

import (
	"fmt"
	"math/rand/v2"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yasi-python/propstat/pkg/stats"
)

// second PCG word; the caller's seed is the first
const pcgStream = 0x9e3779b97f4a7c15

type Params struct {
	PTrue  float64      `json:"p_true"`
	N      int          `json:"n"`
	Gamma  float64      `json:"gamma"`
	Trials int          `json:"trials"`
	Seed   uint64       `json:"seed"`
	Method stats.Method `json:"method"`
}

func (p Params) validate() error {
	if err := stats.CheckProbability("p_true", p.PTrue); err != nil {
		return err
	}
	if err := stats.CheckSize(p.N); err != nil {
		return err
	}
	if p.Trials < 1 {
		return fmt.Errorf("%w: trial count m=%d must be positive", stats.ErrDomain, p.Trials)
	}
	return stats.CheckConfidence(p.Gamma)
}

// Draw is one simulated sample.
type Draw struct {
	K        int            `json:"k"`
	Interval stats.Interval `json:"interval"`
	Covers   bool           `json:"covers"`
}

type Result struct {
	Params   Params  `json:"params"`
	Draws    []Draw  `json:"draws"`
	Coverage float64 `json:"coverage"`
}

// Simulate draws Trials binomial(N, PTrue) counts from a generator seeded
// with Seed and records whether each interval covers PTrue. The same
// Params always produce the same Result. An empty Method means Wilson.
func Simulate(p Params) (*Result, error) {
	if p.Method == "" {
		p.Method = stats.MethodWilson
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	est, err := p.Method.Estimator()
	if err != nil {
		return nil, err
	}

	src := rand.NewPCG(p.Seed, pcgStream)
	bin := distuv.Binomial{N: float64(p.N), P: p.PTrue, Src: src}

	res := &Result{Params: p, Draws: make([]Draw, p.Trials)}
	hits := 0
	for i := range res.Draws {
		k := draw(bin, p.N)
		iv, err := est(float64(k)/float64(p.N), p.N, p.Gamma)
		if err != nil {
			return nil, fmt.Errorf("trial %d (k=%d): %w", i, k, err)
		}
		covers := iv.Contains(p.PTrue)
		if covers {
			hits++
		}
		res.Draws[i] = Draw{K: k, Interval: iv, Covers: covers}
	}
	res.Coverage = float64(hits) / float64(p.Trials)
	return res, nil
}

// draw short-circuits p=0 and p=1, where the sampler would take logs of zero.
func draw(bin distuv.Binomial, n int) int {
	switch bin.P {
	case 0:
		return 0
	case 1:
		return n
	}
	return int(bin.Rand())
}

func (r *Result) Intervals() []stats.Interval {
	out := make([]stats.Interval, len(r.Draws))
	for i, d := range r.Draws {
		out[i] = d.Interval
	}
	return out
}

func (r *Result) Covers() []bool {
	out := make([]bool, len(r.Draws))
	for i, d := range r.Draws {
		out[i] = d.Covers
	}
	return out
}

// Summary describes a simulation run. MissesBelow counts intervals lying
// entirely below the true parameter, MissesAbove entirely above it.
type Summary struct {
	Coverage    float64 `json:"coverage"`
	Hits        int     `json:"hits"`
	MissesBelow int     `json:"misses_below"`
	MissesAbove int     `json:"misses_above"`
	MeanWidth   float64 `json:"mean_width"`
	MedianWidth float64 `json:"median_width"`
	P05Width    float64 `json:"p05_width"`
	P95Width    float64 `json:"p95_width"`
}

func (r *Result) Summary() (Summary, error) {
	s := Summary{Coverage: r.Coverage}
	widths := make([]float64, 0, len(r.Draws))
	for _, d := range r.Draws {
		switch {
		case d.Covers:
			s.Hits++
		case d.Interval.Upper < r.Params.PTrue:
			s.MissesBelow++
		default:
			s.MissesAbove++
		}
		widths = append(widths, d.Interval.Width())
	}
	var err error
	if s.MeanWidth, err = mstats.Mean(widths); err != nil {
		return s, fmt.Errorf("mean width: %w", err)
	}
	if s.MedianWidth, err = mstats.Median(widths); err != nil {
		return s, fmt.Errorf("median width: %w", err)
	}
	if s.P05Width, err = mstats.Percentile(widths, 5); err != nil {
		return s, fmt.Errorf("p05 width: %w", err)
	}
	if s.P95Width, err = mstats.Percentile(widths, 95); err != nil {
		return s, fmt.Errorf("p95 width: %w", err)
	}
	return s, nil
}
