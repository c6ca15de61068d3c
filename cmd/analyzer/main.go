// Package main implements the finance-analyzer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"FinanceAnalyzer/internal/analyzer"
	"FinanceAnalyzer/internal/collector"
	"FinanceAnalyzer/internal/config"
	"FinanceAnalyzer/internal/logging"
	"FinanceAnalyzer/internal/recorder"
)

var (
	// configPath is the YAML config file; CONFIG_PATH is used when the flag is unset
	configPath string
	version    = "dev"

	cfg *config.Config
	log *zap.Logger
	rec recorder.Recorder
	svc *analyzer.Service
)

func main() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "finance-analyzer",
	Short: "Personal-finance analytics toolkit",
	Long: `finance-analyzer runs moving-average crossover signals, Monte Carlo
savings growth, priority budget allocation, expense clustering and
avalanche debt repayment over local data files.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or configs/config.yaml)")
	rootCmd.AddCommand(crossoverCmd, simulateCmd, allocateCmd, clusterCmd, payoffCmd, historyCmd, serveCmd)
}

// setup loads config and builds the logger, recorder and analysis service.
func setup(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	rec = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		} else {
			rec = sr
		}
	}

	src := collector.NewFileSource(cfg.Data.PriceFile, cfg.Data.ExpenseFile)
	svc = analyzer.NewService(src, rec, log, cfg.Seed)
	svc.ClusterOptions.MaxIterations = cfg.Clustering.MaxIterations
	svc.ClusterOptions.Epsilon = cfg.Clustering.Epsilon
	svc.PayoffOptions.MaxMonths = cfg.Payoff.MaxMonths

	log.Debug("configured",
		zap.String("command", cmd.Name()),
		zap.String("config", path),
		zap.String("prices", cfg.Data.PriceFile),
		zap.String("expenses", cfg.Data.ExpenseFile))
	return nil
}

func teardown() {
	if rec != nil {
		if err := rec.Close(); err != nil {
			log.Warn("close recorder", zap.Error(err))
		}
	}
	if log != nil {
		_ = log.Sync()
	}
}
