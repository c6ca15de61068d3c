package calculator

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PopMeanStdDev returns the mean and population standard deviation (N denominator).
func PopMeanStdDev(values []float64) (mean, std float64, err error) {
	if len(values) == 0 {
		return 0, 0, errors.New("no values provided")
	}
	mean, std = stat.PopMeanStdDev(values, nil)
	return mean, std, nil
}

// Quantiles returns the empirical quantiles of values at each p in ps.
func Quantiles(values []float64, ps ...float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, errors.New("no values provided")
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	out := make([]float64, len(ps))
	for i, p := range ps {
		if !(p >= 0 && p <= 1) {
			return nil, errors.New("quantile must be within [0,1]")
		}
		out[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	return out, nil
}

// Distance is the Euclidean distance between two points of equal dimension.
func Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
