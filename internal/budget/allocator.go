package budget

import (
	"math"

	"FinanceAnalyzer/internal/model"
)

// Allocate splits totalBudget across categories in proportion to their
// priorities. Output order matches input order and the amounts sum to
// totalBudget.
func Allocate(categories []model.Category, totalBudget float64) ([]model.Allocation, error) {
	if len(categories) == 0 {
		return nil, model.Invalid("categories", "at least one category is required")
	}
	if totalBudget < 0 || math.IsNaN(totalBudget) || math.IsInf(totalBudget, 0) {
		return nil, model.Invalid("budget", "must be a finite non-negative amount, got %v", totalBudget)
	}

	clamped := make([]model.Category, len(categories))
	totalPriority := 0
	for i, c := range categories {
		clamped[i] = model.NewCategory(c.Name, c.Priority)
		totalPriority += clamped[i].Priority
	}

	allocs := make([]model.Allocation, len(clamped))
	allocated := 0.0
	for i, c := range clamped {
		amount := float64(c.Priority) / float64(totalPriority) * totalBudget
		if i == len(clamped)-1 {
			// last share takes the rounding remainder
			amount = totalBudget - allocated
		}
		allocs[i] = model.Allocation{Category: c, Amount: amount}
		allocated += amount
	}
	return allocs, nil
}
