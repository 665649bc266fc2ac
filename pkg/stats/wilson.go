package stats

import "math"

// Wilson returns the Wilson score interval for an observed proportion h out of n.
func Wilson(h float64, n int, gamma float64) (Interval, error) {
	if err := checkEstimate(h, n); err != nil {
		return Interval{}, err
	}
	z, err := Quantile(gamma)
	if err != nil {
		return Interval{}, err
	}
	center, rad := wilsonZ(h, float64(n), z)
	// clamp only absorbs rounding at h=0 and h=1
	return Interval{
		Lower: math.Max(0, center-rad),
		Upper: math.Min(1, center+rad),
	}, nil
}

// WilsonLowerBound returns the lower bound of the Wilson score interval for a proportion p = successes/n
// at an explicit critical value z. Returns 0 when n == 0.
func WilsonLowerBound(successes, n int, z float64) float64 {
	if n == 0 {
		return 0.0
	}
	center, rad := wilsonZ(float64(successes)/float64(n), float64(n), z)
	return math.Max(0, center-rad)
}

func wilsonZ(p, n, z float64) (center, rad float64) {
	den := 1.0 + (z*z)/n
	center = (p + (z*z)/(2.0*n)) / den
	rad = z * math.Sqrt((p*(1.0-p)+(z*z)/(4.0*n))/n) / den
	return center, rad
}
