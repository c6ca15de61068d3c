package debt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinanceAnalyzer/internal/model"
)

func TestPlan_FirstMonthGoesToHighestRate(t *testing.T) {
	debts := []model.Debt{
		{Balance: 1000, AnnualRate: 0.20},
		{Balance: 500, AnnualRate: 0.10},
	}
	plan, err := Plan(debts, 200, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, plan.Steps)

	first := plan.Steps[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 0, first.DebtIndex)
	assert.InDelta(t, 200.0, first.Payment, 1e-9)
	assert.InDelta(t, 1000*(1+0.20/12)-200, first.Remaining, 1e-9)
	assert.InDelta(t, 0.20, first.AnnualRate, 1e-12)

	// the untouched debt still accrued interest
	assert.InDelta(t, 500*(1+0.10/12), plan.Balances[0][1], 1e-9)

	// inputs are not mutated
	assert.Equal(t, 1000.0, debts[0].Balance)
	assert.Equal(t, 500.0, debts[1].Balance)
}

func TestPlan_PaidMinusInterestEqualsPrincipal(t *testing.T) {
	debts := []model.Debt{
		{Name: "card", Balance: 3200, AnnualRate: 0.24},
		{Name: "car", Balance: 8000, AnnualRate: 0.06},
		{Name: "loan", Balance: 1500, AnnualRate: 0.11},
	}
	plan, err := Plan(debts, 450, Options{})
	require.NoError(t, err)

	assert.InDelta(t, 3200+8000+1500, plan.TotalPaid-plan.TotalInterest, 1e-6)

	var paid float64
	for _, s := range plan.Steps {
		paid += s.Payment
		assert.LessOrEqual(t, s.Payment, 450.0+1e-9)
	}
	assert.InDelta(t, plan.TotalPaid, paid, 1e-9)
	assert.Equal(t, len(plan.Steps), plan.Months)

	last := plan.Balances[len(plan.Balances)-1]
	for _, b := range last {
		assert.LessOrEqual(t, b, 0.0)
	}
}

func TestPlan_AvalancheOrder(t *testing.T) {
	debts := []model.Debt{
		{Name: "low", Balance: 300, AnnualRate: 0.05},
		{Name: "high", Balance: 300, AnnualRate: 0.30},
	}
	plan, err := Plan(debts, 1000, Options{})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "high", plan.Steps[0].DebtName)
	assert.InDelta(t, 300*(1+0.30/12), plan.Steps[0].Payment, 1e-9)
	assert.Equal(t, 0.0, plan.Steps[0].Remaining)
	assert.Equal(t, "low", plan.Steps[1].DebtName)
	// low accrued two months before being paid
	assert.InDelta(t, 300*(1+0.05/12)*(1+0.05/12), plan.Steps[1].Payment, 1e-9)
}

func TestPlan_TieGoesToFirstListed(t *testing.T) {
	debts := []model.Debt{
		{Name: "a", Balance: 100, AnnualRate: 0.12},
		{Name: "b", Balance: 100, AnnualRate: 0.12},
	}
	plan, err := Plan(debts, 50, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Steps[0].DebtIndex)
	assert.Equal(t, 0, plan.Steps[1].DebtIndex)
}

func TestPlan_NothingOwed(t *testing.T) {
	plan, err := Plan([]model.Debt{{Balance: 0, AnnualRate: 0.2}}, 100, Options{})
	require.NoError(t, err)
	assert.Empty(t, plan.Steps)
	assert.Equal(t, 0, plan.Months)
}

func TestPlan_Stall(t *testing.T) {
	// 24% on 10000 accrues 200/month, more than the payment
	_, err := Plan([]model.Debt{{Balance: 10000, AnnualRate: 0.24}}, 100, Options{MaxMonths: 60})
	var se *model.StallError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 60, se.Months)
	assert.Greater(t, se.Outstanding, 10000.0)
}

func TestPlan_Validation(t *testing.T) {
	tests := []struct {
		name    string
		debts   []model.Debt
		payment float64
	}{
		{"no debts", nil, 100},
		{"zero payment", []model.Debt{{Balance: 1}}, 0},
		{"negative payment", []model.Debt{{Balance: 1}}, -5},
		{"negative balance", []model.Debt{{Balance: -1}}, 10},
		{"negative rate", []model.Debt{{Balance: 1, AnnualRate: -0.1}}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.debts, tt.payment, Options{})
			assert.True(t, errors.Is(err, model.ErrValidation))
		})
	}
}
