package simulation

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinanceAnalyzer/internal/model"
)

func seeded(seed uint64) rand.Source { return rand.NewPCG(seed, seed+1) }

func TestRun_ZeroYears(t *testing.T) {
	sum, err := Run(seeded(1), DefaultParams(1000, 0, 5))
	require.NoError(t, err)
	require.Len(t, sum.Trials, 5)
	for _, v := range sum.Trials {
		assert.Equal(t, 1000.0, v)
	}
	assert.InDelta(t, 1000.0, sum.Mean, 1e-9)
	assert.InDelta(t, 0.0, sum.StdDev, 1e-9)
}

func TestRun_ZeroYearsExactMean(t *testing.T) {
	for _, initial := range []float64{0.1, 7.77, 1234.56} {
		for _, trials := range []int{3, 5, 7, 1000} {
			sum, err := Run(seeded(9), DefaultParams(initial, 0, trials))
			require.NoError(t, err)
			assert.Equal(t, initial, sum.Mean, "initial=%v trials=%d", initial, trials)
			assert.Equal(t, 0.0, sum.StdDev)
			assert.Equal(t, initial, sum.P50)
		}
	}
}

func TestRun_Reproducible(t *testing.T) {
	p := DefaultParams(5000, 10, 200)
	a, err := Run(seeded(42), p)
	require.NoError(t, err)
	b, err := Run(seeded(42), p)
	require.NoError(t, err)
	assert.Equal(t, a.Trials, b.Trials)
	assert.Equal(t, a.Mean, b.Mean)

	c, err := Run(seeded(43), p)
	require.NoError(t, err)
	assert.NotEqual(t, a.Trials, c.Trials)
}

func TestRun_PopulationStdDev(t *testing.T) {
	sum, err := Run(seeded(7), DefaultParams(1000, 5, 50))
	require.NoError(t, err)

	var mean float64
	for _, v := range sum.Trials {
		mean += v
	}
	mean /= float64(len(sum.Trials))
	var ss float64
	for _, v := range sum.Trials {
		ss += (v - mean) * (v - mean)
	}
	assert.InDelta(t, mean, sum.Mean, 1e-6)
	assert.InDelta(t, ss/float64(len(sum.Trials)), sum.StdDev*sum.StdDev, 1e-6)
	assert.LessOrEqual(t, sum.P10, sum.P50)
	assert.LessOrEqual(t, sum.P50, sum.P90)
}

func TestRun_ZeroVolatilityCompoundsExactly(t *testing.T) {
	p := Params{Initial: 100, Years: 2, Trials: 3, MeanReturn: 0.10, StdDevReturn: 0}
	sum, err := Run(seeded(3), p)
	require.NoError(t, err)
	for _, v := range sum.Trials {
		assert.InDelta(t, 121.0, v, 1e-9)
	}
}

func TestRun_Validation(t *testing.T) {
	tests := []struct {
		name string
		src  rand.Source
		p    Params
	}{
		{"nil source", nil, DefaultParams(1, 1, 1)},
		{"negative initial", seeded(1), DefaultParams(-1, 1, 1)},
		{"negative years", seeded(1), DefaultParams(1, -1, 1)},
		{"no trials", seeded(1), DefaultParams(1, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.src, tt.p)
			assert.True(t, errors.Is(err, model.ErrValidation))
		})
	}
}
