package scheduler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"FinanceAnalyzer/internal/analyzer"
	"FinanceAnalyzer/internal/collector"
	"FinanceAnalyzer/internal/model"
	"FinanceAnalyzer/internal/recorder"
	"FinanceAnalyzer/internal/simulation"
)

func newTestScheduler(t *testing.T) (*Scheduler, string) {
	t.Helper()
	dir := t.TempDir()
	src := &collector.MockSource{
		Prices:   model.PriceSeries{1, 2, 3, 4, 5, 6},
		Expenses: []model.Expense{{Amount: 1, Date: 1}, {Amount: 50, Date: 9}},
	}
	svc := analyzer.NewService(src, recorder.NewNoopRecorder(), zap.NewNop(), 7)
	jobs := Jobs{
		ShortPeriod:    2,
		LongPeriod:     3,
		Simulation:     simulation.DefaultParams(1000, 0, 4),
		K:              1,
		SignalFile:     filepath.Join(dir, "signals.csv"),
		SimulationFile: filepath.Join(dir, "trials.csv"),
		ClusterFile:    filepath.Join(dir, "clusters.csv"),
	}
	return NewScheduler(svc, jobs, zap.NewNop()), dir
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t)
	require.NoError(t, s.RegisterAll("0 0 22 * * 1-5", "", "0 0 9 1 * *"))
	assert.Len(t, s.Cron.Entries(), 2)
}

func TestRegisterAll_InvalidExpression(t *testing.T) {
	s, _ := newTestScheduler(t)
	err := s.RegisterAll("every day", "", "")
	assert.ErrorContains(t, err, "register signals task")
}

func TestRunAllNow_WritesOutputs(t *testing.T) {
	s, dir := newTestScheduler(t)
	s.RunAllNow()

	signals, err := os.ReadFile(filepath.Join(dir, "signals.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Day 2: HOLD\nDay 3: HOLD\nDay 4: HOLD\n", string(signals))

	trials, err := os.ReadFile(filepath.Join(dir, "trials.csv"))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("1000.00\n", 4), string(trials))

	clusters, err := os.ReadFile(filepath.Join(dir, "clusters.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Cluster 1:\n1.00,1.00\n50.00,9.00\n", string(clusters))
}

func TestStartStop(t *testing.T) {
	s, _ := newTestScheduler(t)
	require.NoError(t, s.RegisterAll("0 0 0 * * *", "", ""))
	s.Start()
	s.Stop()
}

func TestStop_WaitsForBackgroundRun(t *testing.T) {
	s, dir := newTestScheduler(t)
	s.Start()
	s.RunAllInBackground()
	s.Stop()

	for _, name := range []string{"signals.csv", "trials.csv", "clusters.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size(), name)
	}
}
