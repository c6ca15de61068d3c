package model

// Debt is an outstanding balance with an annual interest rate (0.2 = 20%).
type Debt struct {
	Name       string
	Balance    float64
	AnnualRate float64
}

// MonthlyRate returns the rate applied each month.
func (d Debt) MonthlyRate() float64 { return d.AnnualRate / 12 }

// RepaymentStep records one monthly payment. Steps are never modified once produced.
type RepaymentStep struct {
	Month      int // 1-based
	DebtIndex  int // index into the input debts
	DebtName   string
	Payment    float64
	Remaining  float64
	AnnualRate float64
}

// PayoffPlan is the full avalanche schedule.
type PayoffPlan struct {
	Steps         []RepaymentStep
	Months        int
	TotalPaid     float64
	TotalInterest float64
	// Balances[m] holds every debt's balance at the end of month m+1.
	Balances [][]float64
}
