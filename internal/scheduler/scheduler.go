package scheduler

import (
	"fmt"
	"io"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"FinanceAnalyzer/internal/analyzer"
	"FinanceAnalyzer/internal/report"
	"FinanceAnalyzer/internal/simulation"
)

// Jobs carries the inputs and output paths of the periodic analyses.
type Jobs struct {
	ShortPeriod    int
	LongPeriod     int
	Simulation     simulation.Params
	K              int
	SignalFile     string
	SimulationFile string
	ClusterFile    string
}

// Scheduler re-runs analyses on cron schedules.
type Scheduler struct {
	Cron    *cron.Cron
	Service *analyzer.Service
	Jobs    Jobs
	Log     *zap.Logger

	background sync.WaitGroup
}

// NewScheduler creates a new Scheduler. Panicking jobs are recovered and logged.
func NewScheduler(svc *analyzer.Service, jobs Jobs, log *zap.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl))),
		Service: svc,
		Jobs:    jobs,
		Log:     log,
	}
}

// RegisterAll registers the signal, simulation and clustering tasks.
// An empty expression leaves that task unscheduled.
func (s *Scheduler) RegisterAll(signalsCron, simulationCron, clusterCron string) error {
	tasks := []struct {
		name string
		expr string
		fn   func()
	}{
		{"signals", signalsCron, s.signalsTask},
		{"simulation", simulationCron, s.simulationTask},
		{"cluster", clusterCron, s.clusterTask},
	}
	for _, t := range tasks {
		if t.expr == "" {
			continue
		}
		if _, err := s.Cron.AddFunc(t.expr, t.fn); err != nil {
			return fmt.Errorf("register %s task: %w", t.name, err)
		}
		s.Log.Info("task registered", zap.String("task", t.name), zap.String("cron", t.expr))
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started", zap.Int("tasks", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running tasks, including
// those started by RunAllInBackground.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.background.Wait()
	s.Log.Info("scheduler stopped")
}

// RunAllNow executes every task once (RUN_ON_START).
func (s *Scheduler) RunAllNow() {
	s.signalsTask()
	s.simulationTask()
	s.clusterTask()
}

// RunAllInBackground executes every task once on a separate goroutine.
// Stop waits for it.
func (s *Scheduler) RunAllInBackground() {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.RunAllNow()
	}()
}

func (s *Scheduler) signalsTask() {
	s.Log.Info("running signals task")
	res, err := s.Service.Crossover(s.Jobs.ShortPeriod, s.Jobs.LongPeriod)
	if err != nil {
		s.Log.Error("signals task", zap.Error(err))
		return
	}
	s.save(s.Jobs.SignalFile, func(w io.Writer) error { return report.WriteSignals(w, res.Signals) })
}

func (s *Scheduler) simulationTask() {
	s.Log.Info("running simulation task")
	sum, err := s.Service.Simulate(s.Jobs.Simulation)
	if err != nil {
		s.Log.Error("simulation task", zap.Error(err))
		return
	}
	s.save(s.Jobs.SimulationFile, func(w io.Writer) error { return report.WriteTrials(w, sum.Trials) })
}

func (s *Scheduler) clusterTask() {
	s.Log.Info("running cluster task")
	res, err := s.Service.Cluster(s.Jobs.K)
	if err != nil {
		s.Log.Error("cluster task", zap.Error(err))
		return
	}
	s.save(s.Jobs.ClusterFile, func(w io.Writer) error { return report.WriteClusters(w, res.Clusters) })
}

func (s *Scheduler) save(path string, write func(io.Writer) error) {
	if path == "" {
		return
	}
	if err := report.SaveFile(path, write); err != nil {
		s.Log.Error("save task output", zap.String("path", path), zap.Error(err))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Sugar().Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
