// Package cluster partitions expenses with Lloyd's k-means over (amount, date).
package cluster

import (
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat"

	"FinanceAnalyzer/internal/calculator"
	"FinanceAnalyzer/internal/model"
)

const (
	DefaultMaxIterations = 300
	DefaultEpsilon       = 0.001
)

// Options bounds the refinement loop.
type Options struct {
	MaxIterations int
	Epsilon       float64
}

// DefaultOptions returns the standard iteration cap and convergence threshold.
func DefaultOptions() Options {
	return Options{MaxIterations: DefaultMaxIterations, Epsilon: DefaultEpsilon}
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	return o
}

// Run partitions expenses into exactly k clusters. Initial centroids are k
// expenses drawn uniformly with replacement from src.
//
// Refinement stops once no centroid moves more than opts.Epsilon and the
// partition derived from the final centroids matches the last assignment.
// A *model.ConvergenceError is returned if that does not happen within
// opts.MaxIterations.
func Run(src rand.Source, expenses []model.Expense, k int, opts Options) (*model.ClusterResult, error) {
	if err := validate(src, expenses, k); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	centroids := initCentroids(rand.New(src), expenses, k)
	labels := assign(expenses, centroids)

	var shift float64
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		next := recompute(expenses, labels, centroids)
		shift = maxShift(centroids, next)
		centroids = next

		nextLabels := assign(expenses, centroids)
		if shift <= opts.Epsilon && slices.Equal(labels, nextLabels) {
			return &model.ClusterResult{
				Clusters:   collect(expenses, labels, centroids),
				Iterations: iter,
			}, nil
		}
		labels = nextLabels
	}
	return nil, &model.ConvergenceError{Iterations: opts.MaxIterations, MaxShift: shift}
}

func initCentroids(rng *rand.Rand, expenses []model.Expense, k int) []model.Centroid {
	centroids := make([]model.Centroid, k)
	for i := range centroids {
		e := expenses[rng.IntN(len(expenses))]
		centroids[i] = model.Centroid{Amount: e.Amount, Date: e.Date}
	}
	return centroids
}

// assign labels every expense with its nearest centroid. Ties go to the
// lowest cluster index.
func assign(expenses []model.Expense, centroids []model.Centroid) []int {
	labels := make([]int, len(expenses))
	for i, e := range expenses {
		p := e.Point()
		best, bestDist := 0, math.Inf(1)
		for j, c := range centroids {
			if d := calculator.Distance(p, c.Point()); d < bestDist {
				best, bestDist = j, d
			}
		}
		labels[i] = best
	}
	return labels
}

// recompute returns new centroids as member means. Empty clusters keep the
// previous centroid. prev is not modified.
func recompute(expenses []model.Expense, labels []int, prev []model.Centroid) []model.Centroid {
	amounts := make([][]float64, len(prev))
	dates := make([][]float64, len(prev))
	for i, e := range expenses {
		l := labels[i]
		amounts[l] = append(amounts[l], e.Amount)
		dates[l] = append(dates[l], e.Date)
	}

	next := slices.Clone(prev)
	for j := range next {
		if len(amounts[j]) == 0 {
			continue
		}
		next[j] = model.Centroid{Amount: stat.Mean(amounts[j], nil), Date: stat.Mean(dates[j], nil)}
	}
	return next
}

func maxShift(prev, next []model.Centroid) float64 {
	var shift float64
	for j := range prev {
		shift = max(shift, calculator.Distance(prev[j].Point(), next[j].Point()))
	}
	return shift
}

func collect(expenses []model.Expense, labels []int, centroids []model.Centroid) []model.Cluster {
	clusters := make([]model.Cluster, len(centroids))
	for j, c := range centroids {
		clusters[j].Centroid = c
	}
	for i, e := range expenses {
		clusters[labels[i]].Members = append(clusters[labels[i]].Members, e)
	}
	return clusters
}

func validate(src rand.Source, expenses []model.Expense, k int) error {
	if src == nil {
		return model.Invalid("source", "random source is required")
	}
	if len(expenses) == 0 {
		return model.Invalid("expenses", "at least one expense is required")
	}
	if k < 1 {
		return model.Invalid("k", "must be at least 1, got %d", k)
	}
	if k > len(expenses) {
		return model.Invalid("k", "%d exceeds number of expenses (%d)", k, len(expenses))
	}
	for i, e := range expenses {
		if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || math.IsNaN(e.Date) || math.IsInf(e.Date, 0) {
			return model.Invalid("expenses", "expense %d has a non-finite coordinate", i)
		}
	}
	return nil
}
