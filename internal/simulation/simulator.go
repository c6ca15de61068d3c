// Package simulation runs Monte Carlo compounding of an initial balance.
package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"FinanceAnalyzer/internal/calculator"
	"FinanceAnalyzer/internal/model"
)

// Params configures a growth simulation. Returns are drawn per year from
// Normal(MeanReturn, StdDevReturn).
type Params struct {
	Initial      float64
	Years        int
	Trials       int
	MeanReturn   float64
	StdDevReturn float64
}

// DefaultParams returns params with the standard 7% mean and 5% stddev annual return.
func DefaultParams(initial float64, years, trials int) Params {
	return Params{
		Initial:      initial,
		Years:        years,
		Trials:       trials,
		MeanReturn:   0.07,
		StdDevReturn: 0.05,
	}
}

// Run executes p.Trials independent trials drawing from src. src is consumed
// by this call only; callers running simulations concurrently must pass
// distinct sources.
func Run(src rand.Source, p Params) (*model.SimulationSummary, error) {
	if err := validate(src, p); err != nil {
		return nil, err
	}

	dist := distuv.Normal{Mu: p.MeanReturn, Sigma: p.StdDevReturn, Src: src}
	trials := make([]float64, p.Trials)
	for i := range trials {
		trials[i] = compound(p.Initial, p.Years, dist)
	}

	mean, std, err := calculator.PopMeanStdDev(trials)
	if err != nil {
		return nil, fmt.Errorf("aggregate trials: %w", err)
	}
	if p.Years == 0 {
		// every trial is exactly Initial; summing would drift by an ulp
		mean, std = p.Initial, 0
	}
	q, err := calculator.Quantiles(trials, 0.10, 0.50, 0.90)
	if err != nil {
		return nil, fmt.Errorf("trial quantiles: %w", err)
	}

	return &model.SimulationSummary{
		Initial: p.Initial,
		Years:   p.Years,
		Mean:    mean,
		StdDev:  std,
		P10:     q[0],
		P50:     q[1],
		P90:     q[2],
		Trials:  trials,
	}, nil
}

// compound applies years of randomly drawn returns. No draws happen when years is 0.
func compound(initial float64, years int, dist distuv.Normal) float64 {
	balance := initial
	for y := 0; y < years; y++ {
		balance *= 1 + dist.Rand()
	}
	return balance
}

func validate(src rand.Source, p Params) error {
	if src == nil {
		return model.Invalid("source", "random source is required")
	}
	if p.Initial < 0 || math.IsNaN(p.Initial) || math.IsInf(p.Initial, 0) {
		return model.Invalid("initial", "must be a finite non-negative amount, got %v", p.Initial)
	}
	if p.Years < 0 {
		return model.Invalid("years", "must not be negative, got %d", p.Years)
	}
	if p.Trials < 1 {
		return model.Invalid("trials", "at least one trial is required, got %d", p.Trials)
	}
	if p.StdDevReturn < 0 || math.IsNaN(p.StdDevReturn) || math.IsNaN(p.MeanReturn) {
		return model.Invalid("return", "mean %v / stddev %v not usable", p.MeanReturn, p.StdDevReturn)
	}
	return nil
}
