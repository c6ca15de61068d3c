package model

// SimulationSummary aggregates the final balances of a Monte Carlo run.
// StdDev is the population standard deviation (divides by N).
type SimulationSummary struct {
	Initial float64
	Years   int
	Mean    float64
	StdDev  float64
	P10     float64
	P50     float64
	P90     float64
	Trials  []float64
}
