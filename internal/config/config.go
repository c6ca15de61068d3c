package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Data struct {
		PriceFile      string `yaml:"price_file"`
		ExpenseFile    string `yaml:"expense_file"`
		SignalFile     string `yaml:"signal_file"`
		SimulationFile string `yaml:"simulation_file"`
		ClusterFile    string `yaml:"cluster_file"`
	} `yaml:"data"`
	Crossover struct {
		ShortPeriod int `yaml:"short_period"`
		LongPeriod  int `yaml:"long_period"`
	} `yaml:"crossover"`
	Simulation struct {
		Initial      float64 `yaml:"initial"`
		Years        int     `yaml:"years"`
		Trials       int     `yaml:"trials"`
		MeanReturn   float64 `yaml:"mean_return"`
		StdDevReturn float64 `yaml:"stddev_return"`
	} `yaml:"simulation"`
	Clustering struct {
		K             int     `yaml:"k"`
		MaxIterations int     `yaml:"max_iterations"`
		Epsilon       float64 `yaml:"epsilon"`
	} `yaml:"clustering"`
	Payoff struct {
		MaxMonths int `yaml:"max_months"`
	} `yaml:"payoff"`
	Schedule struct {
		SignalsCron    string `yaml:"signals_cron"`
		SimulationCron string `yaml:"simulation_cron"`
		ClusterCron    string `yaml:"cluster_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	// Seed drives every random draw; 0 means seed from the clock.
	Seed uint64 `yaml:"seed"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("PRICE_FILE"); v != "" {
		cfg.Data.PriceFile = v
	}
	if v := os.Getenv("EXPENSE_FILE"); v != "" {
		cfg.Data.ExpenseFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SIGNALS"); v != "" {
		cfg.Schedule.SignalsCron = v
	}
	if v := os.Getenv("CRON_SIMULATION"); v != "" {
		cfg.Schedule.SimulationCron = v
	}
	if v := os.Getenv("CRON_CLUSTER"); v != "" {
		cfg.Schedule.ClusterCron = v
	}
	if v := os.Getenv("RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse RANDOM_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Data.PriceFile == "" {
		c.Data.PriceFile = "stock_prices.csv"
	}
	if c.Data.ExpenseFile == "" {
		c.Data.ExpenseFile = "expenses.csv"
	}
	if c.Data.SignalFile == "" {
		c.Data.SignalFile = "trading_signals.csv"
	}
	if c.Data.SimulationFile == "" {
		c.Data.SimulationFile = "monte_carlo_results.csv"
	}
	if c.Data.ClusterFile == "" {
		c.Data.ClusterFile = "expense_clusters.csv"
	}
	if c.Crossover.ShortPeriod == 0 {
		c.Crossover.ShortPeriod = 10
	}
	if c.Crossover.LongPeriod == 0 {
		c.Crossover.LongPeriod = 50
	}
	if c.Simulation.Years == 0 {
		c.Simulation.Years = 10
	}
	if c.Simulation.Trials == 0 {
		c.Simulation.Trials = 1000
	}
	if c.Simulation.MeanReturn == 0 {
		c.Simulation.MeanReturn = 0.07
	}
	if c.Simulation.StdDevReturn == 0 {
		c.Simulation.StdDevReturn = 0.05
	}
	if c.Clustering.K == 0 {
		c.Clustering.K = 3
	}
	if c.Clustering.MaxIterations == 0 {
		c.Clustering.MaxIterations = 300
	}
	if c.Clustering.Epsilon == 0 {
		c.Clustering.Epsilon = 0.001
	}
	if c.Payoff.MaxMonths == 0 {
		c.Payoff.MaxMonths = 1200
	}
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Crossover.ShortPeriod <= 0 || c.Crossover.LongPeriod <= 0 {
		return fmt.Errorf("crossover periods must be positive")
	}
	if c.Crossover.ShortPeriod >= c.Crossover.LongPeriod {
		return fmt.Errorf("crossover.short_period must be less than crossover.long_period")
	}
	if c.Simulation.Initial < 0 {
		return fmt.Errorf("simulation.initial must not be negative")
	}
	if c.Simulation.Years < 0 {
		return fmt.Errorf("simulation.years must not be negative")
	}
	if c.Simulation.Trials < 1 {
		return fmt.Errorf("simulation.trials must be at least 1")
	}
	if c.Simulation.StdDevReturn < 0 {
		return fmt.Errorf("simulation.stddev_return must not be negative")
	}
	if c.Clustering.K < 1 {
		return fmt.Errorf("clustering.k must be at least 1")
	}
	if c.Clustering.MaxIterations < 1 {
		return fmt.Errorf("clustering.max_iterations must be at least 1")
	}
	if c.Clustering.Epsilon <= 0 {
		return fmt.Errorf("clustering.epsilon must be positive")
	}
	if c.Payoff.MaxMonths < 1 {
		return fmt.Errorf("payoff.max_months must be at least 1")
	}
	return nil
}
