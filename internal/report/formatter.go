package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"FinanceAnalyzer/internal/model"
)

// money renders an amount as "$1,234.56".
func money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatCrossoverSummary summarises a crossover run for display.
func FormatCrossoverSummary(res *model.CrossoverResult) string {
	counts := map[model.Action]int{}
	for _, s := range res.Signals {
		counts[s.Action]++
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Moving average crossover | short=%d long=%d\n", res.ShortPeriod, res.LongPeriod))
	b.WriteString(fmt.Sprintf("Aligned points: %d | signals: %d\n", len(res.ShortMA), len(res.Signals)))
	b.WriteString(fmt.Sprintf("BUY: %d | SELL: %d | HOLD: %d\n",
		counts[model.ActionBuy], counts[model.ActionSell], counts[model.ActionHold]))
	for _, s := range res.Signals {
		if s.Action != model.ActionHold {
			b.WriteString(fmt.Sprintf("  Day %d: %s\n", s.Day, s.Action))
		}
	}
	return b.String()
}

// FormatSimulationSummary formats the aggregate of a Monte Carlo run.
func FormatSimulationSummary(sum *model.SimulationSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Monte Carlo savings | initial %s over %d years, %d trials\n",
		money(sum.Initial), sum.Years, len(sum.Trials)))
	b.WriteString(fmt.Sprintf("Average final balance: %s\n", money(sum.Mean)))
	b.WriteString(fmt.Sprintf("Standard deviation: %s\n", money(sum.StdDev)))
	b.WriteString(fmt.Sprintf("P10 / P50 / P90: %s / %s / %s\n", money(sum.P10), money(sum.P50), money(sum.P90)))
	return b.String()
}

// FormatAllocations lists each category's share of the budget.
func FormatAllocations(allocs []model.Allocation) string {
	var b strings.Builder
	b.WriteString("Budget Allocation:\n")
	total := 0.0
	for _, a := range allocs {
		b.WriteString(fmt.Sprintf("%s: $%.2f\n", a.Category.Name, a.Amount))
		total += a.Amount
	}
	b.WriteString(fmt.Sprintf("Total: %s\n", money(total)))
	return b.String()
}

// FormatClusterSummary shows each cluster's centroid and size.
func FormatClusterSummary(res *model.ClusterResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Expense clusters | k=%d, converged after %d iterations\n", len(res.Clusters), res.Iterations))
	for i, c := range res.Clusters {
		b.WriteString(fmt.Sprintf("  Cluster %d: %d expenses, centroid amount %s, date %.2f\n",
			i+1, len(c.Members), money(c.Centroid.Amount), c.Centroid.Date))
	}
	return b.String()
}

// FormatPlanSummary formats the totals of a repayment schedule.
func FormatPlanSummary(plan *model.PayoffPlan) string {
	var b strings.Builder
	b.WriteString("Debt Repayment Plan:\n")
	b.WriteString(fmt.Sprintf("Months to debt-free: %d\n", plan.Months))
	b.WriteString(fmt.Sprintf("Total paid: %s\n", money(plan.TotalPaid)))
	b.WriteString(fmt.Sprintf("Interest paid: %s\n", money(plan.TotalInterest)))
	return b.String()
}
