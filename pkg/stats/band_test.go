package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	assert.Nil(t, Grid(0, 1, 0))
	assert.Equal(t, []float64{0.2}, Grid(0.2, 0.8, 1))
	g := Grid(0, 1, 5)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, g, 1e-12)
}

func TestGridEndpointsAreExact(t *testing.T) {
	g := Grid(0.1, 1, 8)
	require.Len(t, g, 8)
	assert.Equal(t, 0.1, g[0])
	assert.Equal(t, 1.0, g[7])

	for points := 2; points < 200; points++ {
		for _, lo := range []float64{0, 0.05, 0.1, 0.35, 0.7} {
			g := Grid(lo, 1, points)
			assert.Equal(t, 1.0, g[points-1], "lo=%v points=%d", lo, points)
			for _, p := range g {
				require.NoError(t, CheckProbability("p", p), "lo=%v points=%d", lo, points)
			}
		}
	}
}

func TestPredictionBandMatchesPredictionInterval(t *testing.T) {
	band, err := PredictionBand(40, 0.9, Grid(0, 1, 11))
	require.NoError(t, err)
	require.Len(t, band, 11)
	for _, bp := range band {
		iv, err := PredictionInterval(bp.P, 40, 0.9)
		require.NoError(t, err)
		assert.InDelta(t, iv.Lower, bp.Lower, 1e-12)
		assert.InDelta(t, iv.Upper, bp.Upper, 1e-12)
	}
	assert.Equal(t, 0.0, band[0].Lower)
	assert.Equal(t, 1.0, band[10].Upper)
}

func TestPredictionBandDomain(t *testing.T) {
	_, err := PredictionBand(0, 0.9, []float64{0.5})
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = PredictionBand(10, 0.9, []float64{0.5, 1.2})
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestPredictionOverlay(t *testing.T) {
	ci, err := Wilson(0.4, 25, 0.95)
	require.NoError(t, err)
	over, err := PredictionOverlay(ci, 25, 0.95, 6)
	require.NoError(t, err)
	require.Len(t, over, 6)
	assert.InDelta(t, ci.Lower, over[0].P, 1e-12)
	assert.InDelta(t, ci.Upper, over[5].P, 1e-12)

	// Wald overshoot gets clipped before the grid is built
	wide := Interval{Lower: -0.1, Upper: 0.2}
	over, err = PredictionOverlay(wide, 25, 0.95, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, over[0].P)
}
