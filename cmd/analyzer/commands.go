package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"FinanceAnalyzer/internal/model"
	"FinanceAnalyzer/internal/report"
	"FinanceAnalyzer/internal/scheduler"
	"FinanceAnalyzer/internal/simulation"
)

var (
	shortPeriod int
	longPeriod  int
	signalOut   string

	simInitial float64
	simYears   int
	simTrials  int
	simMean    float64
	simStdDev  float64
	trialOut   string

	categories []string
	budgetAmt  float64

	clusterK   int
	clusterOut string

	debtArgs []string
	payment   float64
	planOut   string

	historyLimit int
)

func init() {
	crossoverCmd.Flags().IntVar(&shortPeriod, "short", 0, "short moving-average period (default from config)")
	crossoverCmd.Flags().IntVar(&longPeriod, "long", 0, "long moving-average period (default from config)")
	crossoverCmd.Flags().StringVar(&signalOut, "out", "", "signal output file (default from config)")

	simulateCmd.Flags().Float64Var(&simInitial, "initial", 0, "initial investment")
	simulateCmd.Flags().IntVar(&simYears, "years", 0, "years to compound")
	simulateCmd.Flags().IntVar(&simTrials, "trials", 0, "number of trials")
	simulateCmd.Flags().Float64Var(&simMean, "mean", 0, "mean annual return")
	simulateCmd.Flags().Float64Var(&simStdDev, "stddev", 0, "standard deviation of the annual return")
	simulateCmd.Flags().StringVar(&trialOut, "out", "", "trial output file (default from config)")

	allocateCmd.Flags().StringArrayVar(&categories, "category", nil, "category as Name=priority (repeatable)")
	allocateCmd.Flags().Float64Var(&budgetAmt, "budget", 0, "total budget")
	_ = allocateCmd.MarkFlagRequired("category")
	_ = allocateCmd.MarkFlagRequired("budget")

	clusterCmd.Flags().IntVar(&clusterK, "k", 0, "number of clusters (default from config)")
	clusterCmd.Flags().StringVar(&clusterOut, "out", "", "cluster output file (default from config)")

	payoffCmd.Flags().StringArrayVar(&debtArgs, "debt", nil, "debt as [name:]balance:rate, rate in percent (repeatable)")
	payoffCmd.Flags().Float64Var(&payment, "payment", 0, "fixed monthly payment")
	payoffCmd.Flags().StringVar(&planOut, "out", "", "write the repayment steps to this file instead of stdout")
	_ = payoffCmd.MarkFlagRequired("debt")
	_ = payoffCmd.MarkFlagRequired("payment")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to list")
}

var crossoverCmd = &cobra.Command{
	Use:   "crossover",
	Short: "Generate moving-average crossover signals from the price file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		short := pick(cmd, "short", shortPeriod, cfg.Crossover.ShortPeriod)
		long := pick(cmd, "long", longPeriod, cfg.Crossover.LongPeriod)
		res, err := svc.Crossover(short, long)
		if err != nil {
			return err
		}
		out := pick(cmd, "out", signalOut, cfg.Data.SignalFile)
		if err := report.SaveFile(out, func(w io.Writer) error { return report.WriteSignals(w, res.Signals) }); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.FormatCrossoverSummary(res))
		fmt.Fprintf(cmd.OutOrStdout(), "Trading signals saved to %s\n", out)
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte Carlo savings growth simulation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := simulation.Params{
			Initial:      pick(cmd, "initial", simInitial, cfg.Simulation.Initial),
			Years:        pick(cmd, "years", simYears, cfg.Simulation.Years),
			Trials:       pick(cmd, "trials", simTrials, cfg.Simulation.Trials),
			MeanReturn:   pick(cmd, "mean", simMean, cfg.Simulation.MeanReturn),
			StdDevReturn: pick(cmd, "stddev", simStdDev, cfg.Simulation.StdDevReturn),
		}
		sum, err := svc.Simulate(p)
		if err != nil {
			return err
		}
		out := pick(cmd, "out", trialOut, cfg.Data.SimulationFile)
		if err := report.SaveFile(out, func(w io.Writer) error { return report.WriteTrials(w, sum.Trials) }); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.FormatSimulationSummary(sum))
		fmt.Fprintf(cmd.OutOrStdout(), "Simulation results saved to %s\n", out)
		return nil
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Split a budget across categories by priority",
	Example: `  finance-analyzer allocate --budget 3000 \
    --category Rent=9 --category Food=6 --category Fun=2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cats := make([]model.Category, 0, len(categories))
		for _, s := range categories {
			c, err := parseCategory(s)
			if err != nil {
				return err
			}
			cats = append(cats, c)
		}
		allocs, err := svc.Allocate(cats, budgetAmt)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.FormatAllocations(allocs))
		return nil
	},
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster expenses by amount and date with k-means",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := svc.Cluster(pick(cmd, "k", clusterK, cfg.Clustering.K))
		if err != nil {
			return err
		}
		out := pick(cmd, "out", clusterOut, cfg.Data.ClusterFile)
		if err := report.SaveFile(out, func(w io.Writer) error { return report.WriteClusters(w, res.Clusters) }); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.FormatClusterSummary(res))
		fmt.Fprintf(cmd.OutOrStdout(), "Expense clusters saved to %s\n", out)
		return nil
	},
}

var payoffCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Plan debt repayment, highest interest rate first",
	Example: `  finance-analyzer payoff --payment 500 \
    --debt card:5000:19.9 --debt car:12000:4.5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		debts := make([]model.Debt, 0, len(debtArgs))
		for _, s := range debtArgs {
			d, err := parseDebt(s)
			if err != nil {
				return err
			}
			debts = append(debts, d)
		}
		plan, err := svc.Payoff(debts, payment)
		if err != nil {
			return err
		}
		if planOut != "" {
			if err := report.SaveFile(planOut, func(w io.Writer) error { return report.WritePlan(w, plan.Steps) }); err != nil {
				return err
			}
		} else if err := report.WritePlan(cmd.OutOrStdout(), plan.Steps); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.FormatPlanSummary(plan))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		runs, err := rec.RecentRuns(historyLimit)
		if err != nil {
			return fmt.Errorf("recent runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s  %s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.Kind, r.ID, r.Note)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Re-run signal, simulation and clustering analyses on cron schedules",
	Long: `Re-run analyses on the cron expressions under "schedule" in the config.
Set RUN_ON_START=true to run every analysis once at startup.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		jobs := scheduler.Jobs{
			ShortPeriod: cfg.Crossover.ShortPeriod,
			LongPeriod:  cfg.Crossover.LongPeriod,
			Simulation: simulation.Params{
				Initial:      cfg.Simulation.Initial,
				Years:        cfg.Simulation.Years,
				Trials:       cfg.Simulation.Trials,
				MeanReturn:   cfg.Simulation.MeanReturn,
				StdDevReturn: cfg.Simulation.StdDevReturn,
			},
			K:              cfg.Clustering.K,
			SignalFile:     cfg.Data.SignalFile,
			SimulationFile: cfg.Data.SimulationFile,
			ClusterFile:    cfg.Data.ClusterFile,
		}
		sched := scheduler.NewScheduler(svc, jobs, log)
		if err := sched.RegisterAll(cfg.Schedule.SignalsCron, cfg.Schedule.SimulationCron, cfg.Schedule.ClusterCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Info("RUN_ON_START enabled, executing all tasks now")
			sched.RunAllInBackground()
		}

		log.Info("finance-analyzer is running, press Ctrl+C to stop")
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info("shutdown signal received, stopping", zap.String("signal", sig.String()))
		return nil
	},
}
