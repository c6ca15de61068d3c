package model

// PriceSeries holds chronologically ordered closing prices.
type PriceSeries []float64

// CrossoverResult is the output of the moving-average crossover engine.
// ShortMA and LongMA are already aligned to the same length.
type CrossoverResult struct {
	ShortPeriod int
	LongPeriod  int
	ShortMA     []float64
	LongMA      []float64
	Signals     []Signal
}
