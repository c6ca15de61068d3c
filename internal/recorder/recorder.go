package recorder

import (
	"time"

	"FinanceAnalyzer/internal/model"
)

// Run kinds stored in the runs table.
const (
	KindCrossover  = "CROSSOVER"
	KindSimulation = "SIMULATION"
	KindAllocation = "ALLOCATION"
	KindCluster    = "CLUSTER"
	KindPayoff     = "PAYOFF"
)

// SignalRun holds a crossover evaluation.
type SignalRun struct {
	Source string
	Result *model.CrossoverResult
}

// SimulationRun holds a Monte Carlo run and the parameters that produced it.
type SimulationRun struct {
	Summary      *model.SimulationSummary
	MeanReturn   float64
	StdDevReturn float64
	Seed         uint64
}

// AllocationRun holds a budget split.
type AllocationRun struct {
	TotalBudget float64
	Allocations []model.Allocation
}

// ClusterRun holds an expense clustering.
type ClusterRun struct {
	Source string
	Result *model.ClusterResult
	Seed   uint64
}

// PayoffRun holds a repayment schedule and its inputs.
type PayoffRun struct {
	Debts          []model.Debt
	MonthlyPayment float64
	Plan           *model.PayoffPlan
}

// RunInfo describes one stored run.
type RunInfo struct {
	ID        string
	Kind      string
	Timestamp time.Time
	Note      string
}

// Recorder persists analysis history. Each Record method returns the new run ID.
type Recorder interface {
	RecordSignals(run *SignalRun) (string, error)
	RecordSimulation(run *SimulationRun) (string, error)
	RecordAllocation(run *AllocationRun) (string, error)
	RecordClusters(run *ClusterRun) (string, error)
	RecordPayoff(run *PayoffRun) (string, error)
	RecentRuns(limit int) ([]RunInfo, error)
	Close() error
}
