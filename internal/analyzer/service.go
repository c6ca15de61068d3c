package analyzer

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"FinanceAnalyzer/internal/budget"
	"FinanceAnalyzer/internal/cluster"
	"FinanceAnalyzer/internal/collector"
	"FinanceAnalyzer/internal/debt"
	"FinanceAnalyzer/internal/model"
	"FinanceAnalyzer/internal/recorder"
	"FinanceAnalyzer/internal/simulation"
	"FinanceAnalyzer/internal/strategy"
)

// Service loads inputs, runs exactly one engine per call and records the result.
type Service struct {
	Source         collector.Source
	Recorder       recorder.Recorder
	Log            *zap.Logger
	Seed           uint64 // 0 seeds every call from the clock
	ClusterOptions cluster.Options
	PayoffOptions  debt.Options
}

// NewService creates a Service with default engine options.
func NewService(src collector.Source, rec recorder.Recorder, log *zap.Logger, seed uint64) *Service {
	return &Service{
		Source:         src,
		Recorder:       rec,
		Log:            log,
		Seed:           seed,
		ClusterOptions: cluster.DefaultOptions(),
		PayoffOptions:  debt.Options{MaxMonths: debt.DefaultMaxMonths},
	}
}

// newRand returns a fresh source for one call and the seed it was built from.
func (s *Service) newRand() (rand.Source, uint64) {
	seed := s.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), seed
}

// Crossover runs the moving-average crossover over the source's prices.
func (s *Service) Crossover(shortPeriod, longPeriod int) (*model.CrossoverResult, error) {
	prices, err := s.Source.LoadPrices()
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	res, err := strategy.Crossover(prices, shortPeriod, longPeriod)
	if err != nil {
		return nil, err
	}
	s.Log.Info("crossover evaluated",
		zap.Int("prices", len(prices)),
		zap.Int("short", shortPeriod),
		zap.Int("long", longPeriod),
		zap.Int("signals", len(res.Signals)))

	id, err := s.Recorder.RecordSignals(&recorder.SignalRun{Source: s.Source.Name(), Result: res})
	s.recorded(recorder.KindCrossover, id, err)
	return res, nil
}

// Simulate runs a Monte Carlo growth simulation.
func (s *Service) Simulate(p simulation.Params) (*model.SimulationSummary, error) {
	src, seed := s.newRand()
	sum, err := simulation.Run(src, p)
	if err != nil {
		return nil, err
	}
	s.Log.Info("simulation finished",
		zap.Int("trials", p.Trials),
		zap.Int("years", p.Years),
		zap.Float64("mean", sum.Mean),
		zap.Float64("stddev", sum.StdDev),
		zap.Uint64("seed", seed))

	id, err := s.Recorder.RecordSimulation(&recorder.SimulationRun{
		Summary:      sum,
		MeanReturn:   p.MeanReturn,
		StdDevReturn: p.StdDevReturn,
		Seed:         seed,
	})
	s.recorded(recorder.KindSimulation, id, err)
	return sum, nil
}

// Allocate splits a budget across categories.
func (s *Service) Allocate(categories []model.Category, totalBudget float64) ([]model.Allocation, error) {
	allocs, err := budget.Allocate(categories, totalBudget)
	if err != nil {
		return nil, err
	}
	s.Log.Info("budget allocated", zap.Int("categories", len(allocs)), zap.Float64("budget", totalBudget))

	id, err := s.Recorder.RecordAllocation(&recorder.AllocationRun{TotalBudget: totalBudget, Allocations: allocs})
	s.recorded(recorder.KindAllocation, id, err)
	return allocs, nil
}

// Cluster groups the source's expenses into k clusters.
func (s *Service) Cluster(k int) (*model.ClusterResult, error) {
	expenses, err := s.Source.LoadExpenses()
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	src, seed := s.newRand()
	res, err := cluster.Run(src, expenses, k, s.ClusterOptions)
	if err != nil {
		return nil, err
	}
	s.Log.Info("expenses clustered",
		zap.Int("expenses", len(expenses)),
		zap.Int("k", k),
		zap.Int("iterations", res.Iterations),
		zap.Uint64("seed", seed))

	id, err := s.Recorder.RecordClusters(&recorder.ClusterRun{Source: s.Source.Name(), Result: res, Seed: seed})
	s.recorded(recorder.KindCluster, id, err)
	return res, nil
}

// Payoff builds an avalanche repayment schedule.
func (s *Service) Payoff(debts []model.Debt, monthlyPayment float64) (*model.PayoffPlan, error) {
	plan, err := debt.Plan(debts, monthlyPayment, s.PayoffOptions)
	if err != nil {
		return nil, err
	}
	s.Log.Info("repayment planned",
		zap.Int("debts", len(debts)),
		zap.Int("months", plan.Months),
		zap.Float64("interest", plan.TotalInterest))

	id, err := s.Recorder.RecordPayoff(&recorder.PayoffRun{Debts: debts, MonthlyPayment: monthlyPayment, Plan: plan})
	s.recorded(recorder.KindPayoff, id, err)
	return plan, nil
}

// recorded logs the outcome of persisting a run. Recording failures never fail the analysis.
func (s *Service) recorded(kind, id string, err error) {
	if err != nil {
		s.Log.Error("record run", zap.String("kind", kind), zap.Error(err))
		return
	}
	if id != "" {
		s.Log.Debug("run stored", zap.String("kind", kind), zap.String("run_id", id))
	}
}
