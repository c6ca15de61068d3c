package debt

import (
	"math"
	"slices"

	"FinanceAnalyzer/internal/model"
)

// DefaultMaxMonths caps a schedule at 100 years.
const DefaultMaxMonths = 1200

// Options bounds the schedule length.
type Options struct {
	MaxMonths int
}

// Plan simulates avalanche repayment: every month interest accrues on each
// outstanding balance, then the whole payment (or the remaining balance, if
// smaller) goes to the outstanding debt with the highest annual rate. Ties go
// to the debt listed first.
//
// The input debts are not modified. A *model.StallError is returned when
// balances remain after opts.MaxMonths.
func Plan(debts []model.Debt, monthlyPayment float64, opts Options) (*model.PayoffPlan, error) {
	if err := validate(debts, monthlyPayment); err != nil {
		return nil, err
	}
	if opts.MaxMonths <= 0 {
		opts.MaxMonths = DefaultMaxMonths
	}

	balances := make([]float64, len(debts))
	for i, d := range debts {
		balances[i] = d.Balance
	}

	plan := &model.PayoffPlan{}
	for month := 1; outstanding(balances) > 0; month++ {
		if month > opts.MaxMonths {
			return nil, &model.StallError{Months: opts.MaxMonths, Outstanding: outstanding(balances)}
		}

		accrued, interest := accrue(debts, balances)
		target := highestRate(debts, accrued)
		payment := math.Min(monthlyPayment, accrued[target])
		accrued[target] -= payment

		plan.Steps = append(plan.Steps, model.RepaymentStep{
			Month:      month,
			DebtIndex:  target,
			DebtName:   debts[target].Name,
			Payment:    payment,
			Remaining:  accrued[target],
			AnnualRate: debts[target].AnnualRate,
		})
		plan.Balances = append(plan.Balances, accrued)
		plan.TotalPaid += payment
		plan.TotalInterest += interest
		plan.Months = month
		balances = accrued
	}
	return plan, nil
}

// accrue returns a new balance snapshot with one month of interest applied
// to every positive balance, and the interest added.
func accrue(debts []model.Debt, balances []float64) ([]float64, float64) {
	next := slices.Clone(balances)
	var interest float64
	for i, b := range next {
		if b <= 0 {
			continue
		}
		grown := b * (1 + debts[i].MonthlyRate())
		interest += grown - b
		next[i] = grown
	}
	return next, interest
}

// highestRate picks the outstanding debt with the largest annual rate.
// Strict comparison keeps the lowest index on ties.
func highestRate(debts []model.Debt, balances []float64) int {
	target := -1
	for i, b := range balances {
		if b <= 0 {
			continue
		}
		if target < 0 || debts[i].AnnualRate > debts[target].AnnualRate {
			target = i
		}
	}
	return target
}

func outstanding(balances []float64) float64 {
	var total float64
	for _, b := range balances {
		if b > 0 {
			total += b
		}
	}
	return total
}

func validate(debts []model.Debt, monthlyPayment float64) error {
	if len(debts) == 0 {
		return model.Invalid("debts", "at least one debt is required")
	}
	if !(monthlyPayment > 0) || math.IsInf(monthlyPayment, 0) {
		return model.Invalid("payment", "monthly payment must be positive, got %v", monthlyPayment)
	}
	for i, d := range debts {
		if d.Balance < 0 || math.IsNaN(d.Balance) || math.IsInf(d.Balance, 0) {
			return model.Invalid("balance", "debt %d balance must be a finite non-negative amount, got %v", i, d.Balance)
		}
		if d.AnnualRate < 0 || math.IsNaN(d.AnnualRate) || math.IsInf(d.AnnualRate, 0) {
			return model.Invalid("rate", "debt %d annual rate must be non-negative, got %v", i, d.AnnualRate)
		}
	}
	return nil
}
