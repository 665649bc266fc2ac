package power

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasi-python/propstat/pkg/model"
	"github.com/yasi-python/propstat/pkg/region"
	"github.com/yasi-python/propstat/pkg/stats"
)

func TestAt(t *testing.T) {
	k := region.New(8, 9, 10)
	// (45 + 10 + 1) / 1024
	assert.InDelta(t, 56.0/1024, At(model.Binomial{N: 10, P: 0.5}, k), 1e-12)

	assert.Equal(t, 0.0, At(model.Binomial{N: 10, P: 0.5}, region.New()))
	assert.InDelta(t, 1.0, At(model.Binomial{N: 10, P: 0.3}, region.Range(0, 10)), 1e-12)
}

func TestAtIgnoresOutcomesOutsideSupport(t *testing.T) {
	m := model.Binomial{N: 10, P: 0.5}
	withExtra := region.New(-3, 8, 9, 10, 11, 50)
	assert.InDelta(t, At(m, region.New(8, 9, 10)), At(m, withExtra), 1e-15)
}

func TestCurveOverGridEndingAtOne(t *testing.T) {
	k := region.Range(15, 20)
	curve, err := Curve(model.BinomialFactory(20), stats.Grid(0.1, 1, 8), k)
	require.NoError(t, err)
	require.Len(t, curve, 8)
	assert.Equal(t, 1.0, curve[7].P)
	assert.InDelta(t, 1.0, curve[7].Power, 1e-12)
}

func TestAtHypergeometric(t *testing.T) {
	h := model.Hypergeometric{Population: 10, Successes: 4, Draws: 3}
	assert.InDelta(t, 0.3, At(h, region.New(2)), 1e-12)

	bad := model.Hypergeometric{Population: 5, Successes: 6, Draws: 2}
	assert.Equal(t, 0.0, At(bad, region.Range(0, 2)))
}

func TestUpperRegionPowerNonDecreasing(t *testing.T) {
	k := region.Range(15, 20)
	pts, err := Curve(model.BinomialFactory(20), stats.Grid(0, 1, 101), k)
	require.NoError(t, err)
	for i := 1; i < len(pts); i++ {
		assert.GreaterOrEqual(t, pts[i].Power+1e-12, pts[i-1].Power, "p=%v", pts[i].P)
	}
	assert.Equal(t, 0.0, pts[0].Power)
	assert.InDelta(t, 1.0, pts[len(pts)-1].Power, 1e-12)
}

func TestCurvePreservesOrderAndDuplicates(t *testing.T) {
	ps := []float64{0.9, 0.1, 0.5, 0.1}
	calls := 0
	f := func(p float64) (model.Model, error) {
		calls++
		return model.Binomial{N: 10, P: p}, nil
	}
	pts, err := Curve(f, ps, region.New(8, 9, 10))
	require.NoError(t, err)
	require.Len(t, pts, len(ps))
	assert.Equal(t, len(ps), calls)
	for i, p := range ps {
		assert.Equal(t, p, pts[i].P)
	}
	assert.Equal(t, pts[1].Power, pts[3].Power)

	empty, err := Curve(f, nil, region.New(1))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCurveDomainError(t *testing.T) {
	_, err := Curve(model.BinomialFactory(10), []float64{0.2, 1.5}, region.New(10))
	assert.True(t, errors.Is(err, stats.ErrDomain))
}

func TestSize(t *testing.T) {
	null := model.Binomial{N: 10, P: 0.5}
	assert.InDelta(t, 22.0/1024, Size(null, region.New(0, 1, 9, 10)), 1e-12)
}

func TestMirror(t *testing.T) {
	null := model.Binomial{N: 20, P: 0.5}
	alt := model.Binomial{N: 20, P: 0.7}
	k := region.Range(15, 20)
	bars := Mirror(null, alt, k, 3)
	require.Len(t, bars, 14)
	assert.Equal(t, 3, bars[0].K)
	assert.Equal(t, 16, bars[len(bars)-1].K)

	var inRegion int
	for _, b := range bars {
		if b.InRegion {
			inRegion++
		}
		assert.Equal(t, null.PMF(b.K), b.Null)
		assert.Equal(t, alt.PMF(b.K), b.Alt)
	}
	assert.Equal(t, 2, inRegion)
}
