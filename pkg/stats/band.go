package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BandPoint is one point of the prediction band: the prediction interval
// for a known probability P.
type BandPoint struct {
	P     float64 `json:"p"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Grid returns points evenly spaced values from lo to hi inclusive.
// The endpoints are exactly lo and hi.
func Grid(lo, hi float64, points int) []float64 {
	switch {
	case points <= 0:
		return nil
	case points == 1:
		return []float64{lo}
	}
	g := floats.Span(make([]float64, points), lo, hi)
	// Span's last step can round past hi (0.1..1 over 8 points gives 1+2^-52)
	g[0], g[len(g)-1] = lo, hi
	return g
}

// PredictionBand evaluates the curves p ± z·sqrt(p(1-p)/n) at every p in ps.
// Reading the band horizontally at an observed h gives the confidence
// interval; reading it vertically at p gives the prediction interval.
func PredictionBand(n int, gamma float64, ps []float64) ([]BandPoint, error) {
	if err := CheckSize(n); err != nil {
		return nil, err
	}
	z, err := Quantile(gamma)
	if err != nil {
		return nil, err
	}
	out := make([]BandPoint, 0, len(ps))
	for _, p := range ps {
		if err := CheckProbability("p", p); err != nil {
			return nil, err
		}
		half := z * math.Sqrt(p*(1-p)/float64(n))
		out = append(out, BandPoint{P: p, Lower: p - half, Upper: p + half})
	}
	return out, nil
}

// PredictionOverlay returns prediction intervals at steps evenly spaced
// probabilities across ci, clipped to [0,1].
func PredictionOverlay(ci Interval, n int, gamma float64, steps int) ([]BandPoint, error) {
	lo := math.Max(0, ci.Lower)
	hi := math.Min(1, ci.Upper)
	if hi < lo {
		return nil, nil
	}
	return PredictionBand(n, gamma, Grid(lo, hi, steps))
}
