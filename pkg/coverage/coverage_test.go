package coverage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasi-python/propstat/pkg/stats"
)

func TestWilsonCoverageNearNominal(t *testing.T) {
	p := Params{PTrue: 0.3, N: 50, Gamma: 0.95, Trials: 2000, Seed: 42}
	res, err := Simulate(p)
	require.NoError(t, err)
	assert.Equal(t, stats.MethodWilson, res.Params.Method)
	assert.Len(t, res.Draws, 2000)
	assert.GreaterOrEqual(t, res.Coverage, 0.90)
	assert.LessOrEqual(t, res.Coverage, 0.99)
}

func TestSimulateIsReproducible(t *testing.T) {
	p := Params{PTrue: 0.3, N: 50, Gamma: 0.95, Trials: 500, Seed: 7}
	a, err := Simulate(p)
	require.NoError(t, err)
	b, err := Simulate(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	p.Seed = 8
	c, err := Simulate(p)
	require.NoError(t, err)
	assert.NotEqual(t, a.Draws, c.Draws)
}

func TestSimulateMethods(t *testing.T) {
	for _, m := range []stats.Method{stats.MethodWald, stats.MethodWilson, stats.MethodClopperPearson} {
		res, err := Simulate(Params{PTrue: 0.4, N: 30, Gamma: 0.9, Trials: 300, Seed: 1, Method: m})
		require.NoError(t, err, m)
		assert.GreaterOrEqual(t, res.Coverage, 0.0)
		assert.LessOrEqual(t, res.Coverage, 1.0)

		var hits int
		for i, d := range res.Draws {
			assert.GreaterOrEqual(t, d.K, 0)
			assert.LessOrEqual(t, d.K, 30)
			assert.Equal(t, d.Interval.Contains(0.4), d.Covers, "draw %d", i)
			if d.Covers {
				hits++
			}
		}
		assert.Equal(t, float64(hits)/300, res.Coverage)
	}
}

func TestClopperPearsonIsConservative(t *testing.T) {
	res, err := Simulate(Params{PTrue: 0.3, N: 50, Gamma: 0.95, Trials: 2000, Seed: 3, Method: stats.MethodClopperPearson})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Coverage, 0.93)
}

func TestSimulateDegenerateTruth(t *testing.T) {
	res, err := Simulate(Params{PTrue: 0, N: 20, Gamma: 0.95, Trials: 10, Seed: 1, Method: stats.MethodClopperPearson})
	require.NoError(t, err)
	for _, d := range res.Draws {
		assert.Equal(t, 0, d.K)
	}
	assert.Equal(t, 1.0, res.Coverage)

	res, err = Simulate(Params{PTrue: 1, N: 20, Gamma: 0.95, Trials: 10, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Draws[0].K)
}

func TestSimulateDomain(t *testing.T) {
	for name, p := range map[string]Params{
		"n=0":      {PTrue: 0.3, N: 0, Gamma: 0.95, Trials: 10},
		"m=0":      {PTrue: 0.3, N: 10, Gamma: 0.95, Trials: 0},
		"p>1":      {PTrue: 1.3, N: 10, Gamma: 0.95, Trials: 10},
		"p<0":      {PTrue: -0.1, N: 10, Gamma: 0.95, Trials: 10},
		"gamma=1":  {PTrue: 0.3, N: 10, Gamma: 1, Trials: 10},
		"gamma<=0": {PTrue: 0.3, N: 10, Gamma: 0, Trials: 10},
	} {
		_, err := Simulate(p)
		assert.True(t, errors.Is(err, stats.ErrDomain), name)
	}
	_, err := Simulate(Params{PTrue: 0.3, N: 10, Gamma: 0.95, Trials: 10, Method: "jeffreys"})
	assert.Error(t, err)
}

func TestAccessorsAndSummary(t *testing.T) {
	res, err := Simulate(Params{PTrue: 0.3, N: 50, Gamma: 0.95, Trials: 400, Seed: 11})
	require.NoError(t, err)

	ivs, covers := res.Intervals(), res.Covers()
	require.Len(t, ivs, 400)
	require.Len(t, covers, 400)
	assert.Equal(t, res.Draws[17].Interval, ivs[17])
	assert.Equal(t, res.Draws[17].Covers, covers[17])

	s, err := res.Summary()
	require.NoError(t, err)
	assert.Equal(t, 400, s.Hits+s.MissesBelow+s.MissesAbove)
	assert.Equal(t, res.Coverage, float64(s.Hits)/400)
	assert.Greater(t, s.MeanWidth, 0.0)
	assert.LessOrEqual(t, s.P05Width, s.MedianWidth)
	assert.LessOrEqual(t, s.MedianWidth, s.P95Width)
}
