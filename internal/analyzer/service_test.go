package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"FinanceAnalyzer/internal/collector"
	"FinanceAnalyzer/internal/model"
	"FinanceAnalyzer/internal/recorder"
	"FinanceAnalyzer/internal/simulation"
)

// mockRecorder counts calls and can be told to fail.
type mockRecorder struct {
	recorder.NoopRecorder
	calls int
	err   error
}

func (m *mockRecorder) RecordSignals(_ *recorder.SignalRun) (string, error) {
	m.calls++
	return "run-1", m.err
}

func (m *mockRecorder) RecordSimulation(_ *recorder.SimulationRun) (string, error) {
	m.calls++
	return "run-2", m.err
}

func newTestService(src collector.Source, rec recorder.Recorder) *Service {
	return NewService(src, rec, zap.NewNop(), 42)
}

func TestService_Crossover(t *testing.T) {
	rec := &mockRecorder{}
	svc := newTestService(&collector.MockSource{Prices: model.PriceSeries{1, 2, 3, 4, 5, 6}}, rec)

	res, err := svc.Crossover(2, 3)
	require.NoError(t, err)
	assert.Len(t, res.Signals, 3)
	assert.Equal(t, 1, rec.calls)
}

func TestService_CrossoverSourceError(t *testing.T) {
	svc := newTestService(&collector.MockSource{Err: errors.New("disk gone")}, recorder.NewNoopRecorder())
	_, err := svc.Crossover(2, 3)
	assert.ErrorContains(t, err, "disk gone")
}

func TestService_CrossoverValidation(t *testing.T) {
	svc := newTestService(&collector.MockSource{Prices: model.PriceSeries{1, 2}}, recorder.NewNoopRecorder())
	_, err := svc.Crossover(2, 3)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestService_RecordFailureDoesNotFailRun(t *testing.T) {
	rec := &mockRecorder{err: errors.New("db locked")}
	svc := newTestService(&collector.MockSource{}, rec)

	sum, err := svc.Simulate(simulation.DefaultParams(1000, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, sum.Mean)
	assert.Equal(t, 1, rec.calls)
}

func TestService_SimulateSeeded(t *testing.T) {
	svc := newTestService(&collector.MockSource{}, recorder.NewNoopRecorder())
	a, err := svc.Simulate(simulation.DefaultParams(1000, 10, 20))
	require.NoError(t, err)
	b, err := svc.Simulate(simulation.DefaultParams(1000, 10, 20))
	require.NoError(t, err)
	assert.Equal(t, a.Trials, b.Trials)
}

func TestService_Allocate(t *testing.T) {
	svc := newTestService(&collector.MockSource{}, recorder.NewNoopRecorder())
	allocs, err := svc.Allocate([]model.Category{model.NewCategory("Food", 5), model.NewCategory("Rent", 10)}, 1500)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, allocs[0].Amount, 1e-9)
}

func TestService_Cluster(t *testing.T) {
	expenses := []model.Expense{{Amount: 1, Date: 1}, {Amount: 2, Date: 2}, {Amount: 90, Date: 30}}
	svc := newTestService(&collector.MockSource{Expenses: expenses}, recorder.NewNoopRecorder())
	res, err := svc.Cluster(2)
	require.NoError(t, err)
	total := 0
	for _, c := range res.Clusters {
		total += len(c.Members)
	}
	assert.Equal(t, len(expenses), total)
}

func TestService_Payoff(t *testing.T) {
	svc := newTestService(&collector.MockSource{}, recorder.NewNoopRecorder())
	plan, err := svc.Payoff([]model.Debt{{Balance: 1000, AnnualRate: 0.2}, {Balance: 500, AnnualRate: 0.1}}, 200)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Steps[0].DebtIndex)

	svc.PayoffOptions.MaxMonths = 2
	_, err = svc.Payoff([]model.Debt{{Balance: 1000, AnnualRate: 0.2}}, 10)
	var se *model.StallError
	assert.True(t, errors.As(err, &se))
}
