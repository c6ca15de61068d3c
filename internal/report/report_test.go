package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinanceAnalyzer/internal/collector"
	"FinanceAnalyzer/internal/model"
)

func TestWriteSignals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSignals(&buf, []model.Signal{
		{Day: 2, Action: model.ActionHold},
		{Day: 3, Action: model.ActionBuy},
		{Day: 4, Action: model.ActionSell},
	}))
	assert.Equal(t, "Day 2: HOLD\nDay 3: BUY\nDay 4: SELL\n", buf.String())
}

func TestWriteTrials(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrials(&buf, []float64{1000, 1234.567}))
	assert.Equal(t, "1000.00\n1234.57\n", buf.String())
}

func TestWriteClusters_ReadableAsExpenses(t *testing.T) {
	clusters := []model.Cluster{
		{Members: []model.Expense{{Amount: 12.5, Date: 1}, {Amount: 10, Date: 2}}},
		{},
		{Members: []model.Expense{{Amount: 400, Date: 20}}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteClusters(&buf, clusters))
	assert.Equal(t, "Cluster 1:\n12.50,1.00\n10.00,2.00\nCluster 2:\nCluster 3:\n400.00,20.00\n", buf.String())

	// member lines use the same encoding as the expense input file
	var members []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.HasPrefix(line, "Cluster") {
			members = append(members, line)
		}
	}
	exp, err := collector.ReadExpenses(strings.NewReader(strings.Join(members, "\n")), "clusters")
	require.NoError(t, err)
	assert.Len(t, exp, 3)
}

func TestWritePlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, []model.RepaymentStep{
		{Month: 1, Payment: 200, AnnualRate: 0.2, Remaining: 816.666},
	}))
	assert.Equal(t, "Pay $200.00 to debt with 20.00% interest, remaining: $816.67\n", buf.String())
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, SaveFile(path, func(w io.Writer) error {
		return WriteTrials(w, []float64{1.005})
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.00\n", string(data))
}

func TestFormatters(t *testing.T) {
	s := FormatSimulationSummary(&model.SimulationSummary{
		Initial: 1000, Years: 10, Mean: 1967.15, StdDev: 312.4, Trials: make([]float64, 3),
	})
	assert.Contains(t, s, "$1,967.15")
	assert.Contains(t, s, "3 trials")

	a := FormatAllocations([]model.Allocation{
		{Category: model.NewCategory("Food", 5), Amount: 500},
		{Category: model.NewCategory("Rent", 10), Amount: 1000},
	})
	assert.Contains(t, a, "Food: $500.00")
	assert.Contains(t, a, "Total: $1,500")

	c := FormatCrossoverSummary(&model.CrossoverResult{
		ShortPeriod: 2, LongPeriod: 3, ShortMA: make([]float64, 3),
		Signals: []model.Signal{{Day: 2, Action: model.ActionBuy}, {Day: 3, Action: model.ActionHold}},
	})
	assert.Contains(t, c, "BUY: 1 | SELL: 0 | HOLD: 1")
	assert.Contains(t, c, "Day 2: BUY")

	p := FormatPlanSummary(&model.PayoffPlan{Months: 8, TotalPaid: 1545.2, TotalInterest: 45.2})
	assert.Contains(t, p, "Months to debt-free: 8")
	assert.Contains(t, p, "$45.20")
}
