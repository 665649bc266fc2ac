// Package power computes rejection probabilities of a fixed region under
// alternative models.
package power

import (
	"fmt"
	"math"

	"github.com/yasi-python/propstat/pkg/model"
	"github.com/yasi-python/propstat/pkg/region"
)

// Point is one evaluation of the power function.
type Point struct {
	P     float64 `json:"p"`
	Power float64 `json:"power"`
}

// At returns P(X in k) under m. Members of k outside m's support contribute nothing.
func At(m model.Model, k region.Region) float64 {
	var sum float64
	for _, x := range m.Support() {
		if k.Contains(x) {
			sum += m.PMF(x)
		}
	}
	return math.Min(1, sum)
}

// Size is the attained significance level: the power under the null model.
func Size(null model.Model, k region.Region) float64 { return At(null, k) }

// Curve evaluates At for every p in ps, in order and including duplicates.
// The factory is called once per entry; nothing is cached.
func Curve(f model.Factory, ps []float64, k region.Region) ([]Point, error) {
	out := make([]Point, 0, len(ps))
	for i, p := range ps {
		m, err := f(p)
		if err != nil {
			return nil, fmt.Errorf("power curve point %d (p=%v): %w", i, p, err)
		}
		out = append(out, Point{P: p, Power: At(m, k)})
	}
	return out, nil
}

// Bar is one outcome of the mirrored null/alternative view.
type Bar struct {
	K        int     `json:"k"`
	Null     float64 `json:"null"`
	Alt      float64 `json:"alt"`
	InRegion bool    `json:"in_region"`
}

// Mirror lists the mass of both models for every outcome within sigmaRange
// standard deviations of the null mean. Bars in the region carry the size
// under the null and the power under the alternative.
func Mirror(null model.Binomial, alt model.Model, k region.Region, sigmaRange float64) []Bar {
	lo, hi := null.SigmaWindow(sigmaRange)
	out := make([]Bar, 0, hi-lo+1)
	for x := lo; x <= hi; x++ {
		out = append(out, Bar{
			K:        x,
			Null:     null.PMF(x),
			Alt:      alt.PMF(x),
			InRegion: k.Contains(x),
		})
	}
	return out
}
