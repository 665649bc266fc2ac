// Package model holds the discrete probability models a rejection region
// is evaluated against.
package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yasi-python/propstat/pkg/stats"
)

// Model is a discrete distribution over a finite, ordered support of counts.
type Model interface {
	Support() []int
	PMF(x int) float64
}

// Factory builds the alternative model for a parameter p.
type Factory func(p float64) (Model, error)

type Binomial struct {
	N int
	P float64
}

func NewBinomial(n int, p float64) (Binomial, error) {
	if n < 0 {
		return Binomial{}, fmt.Errorf("%w: binomial n=%d is negative", stats.ErrDomain, n)
	}
	if err := stats.CheckProbability("p", p); err != nil {
		return Binomial{}, err
	}
	return Binomial{N: n, P: p}, nil
}

// BinomialFactory returns a Factory producing Binomial(n, p).
func BinomialFactory(n int) Factory {
	return func(p float64) (Model, error) {
		return NewBinomial(n, p)
	}
}

func (b Binomial) Support() []int { return span(0, b.N) }

func (b Binomial) PMF(x int) float64 {
	if x < 0 || x > b.N {
		return 0
	}
	// distuv takes log(p), which is -Inf at the degenerate ends
	switch b.P {
	case 0:
		return indicator(x == 0)
	case 1:
		return indicator(x == b.N)
	}
	return distuv.Binomial{N: float64(b.N), P: b.P}.Prob(float64(x))
}

func (b Binomial) Mean() float64 { return float64(b.N) * b.P }

func (b Binomial) StdDev() float64 { return math.Sqrt(float64(b.N) * b.P * (1 - b.P)) }

// SigmaWindow returns the outcomes within k standard deviations of the mean,
// truncated toward zero and clipped to the support.
func (b Binomial) SigmaWindow(k float64) (lo, hi int) {
	mu, sigma := b.Mean(), b.StdDev()
	lo = max(0, int(mu-k*sigma))
	hi = min(b.N, int(mu+k*sigma))
	return lo, hi
}

// Hypergeometric counts successes in Draws draws without replacement from
// a population of Population items holding Successes successes.
type Hypergeometric struct {
	Population int
	Successes  int
	Draws      int
}

func NewHypergeometric(population, successes, draws int) (Hypergeometric, error) {
	h := Hypergeometric{Population: population, Successes: successes, Draws: draws}
	if !h.valid() {
		return Hypergeometric{}, fmt.Errorf("%w: hypergeometric(N=%d, K=%d, n=%d)",
			stats.ErrDomain, population, successes, draws)
	}
	return h, nil
}

func (h Hypergeometric) valid() bool {
	return h.Population >= 0 && h.Successes >= 0 && h.Draws >= 0 &&
		h.Successes <= h.Population && h.Draws <= h.Population
}

// Support is empty for a struct whose fields NewHypergeometric would reject.
func (h Hypergeometric) Support() []int {
	if !h.valid() {
		return nil
	}
	return span(h.bounds())
}

func (h Hypergeometric) bounds() (lo, hi int) {
	return max(0, h.Draws-(h.Population-h.Successes)), min(h.Draws, h.Successes)
}

// PMF is 0 everywhere for invalid fields.
func (h Hypergeometric) PMF(x int) float64 {
	if !h.valid() {
		return 0
	}
	lo, hi := h.bounds()
	if x < lo || x > hi {
		return 0
	}
	lp := combin.LogGeneralizedBinomial(float64(h.Successes), float64(x)) +
		combin.LogGeneralizedBinomial(float64(h.Population-h.Successes), float64(h.Draws-x)) -
		combin.LogGeneralizedBinomial(float64(h.Population), float64(h.Draws))
	return math.Exp(lp)
}

func span(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for x := lo; x <= hi; x++ {
		out = append(out, x)
	}
	return out
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
