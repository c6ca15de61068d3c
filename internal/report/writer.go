package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"FinanceAnalyzer/internal/model"
)

// WriteSignals writes one "Day <n>: ACTION" line per signal.
func WriteSignals(w io.Writer, signals []model.Signal) error {
	for _, s := range signals {
		if _, err := fmt.Fprintf(w, "Day %d: %s\n", s.Day, s.Action); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrials writes one balance per line with two decimals.
func WriteTrials(w io.Writer, trials []float64) error {
	for _, v := range trials {
		if _, err := fmt.Fprintf(w, "%.2f\n", v); err != nil {
			return err
		}
	}
	return nil
}

// WriteClusters writes a "Cluster <i>:" header followed by "amount,date"
// member lines for every cluster, empty ones included.
func WriteClusters(w io.Writer, clusters []model.Cluster) error {
	for i, c := range clusters {
		if _, err := fmt.Fprintf(w, "Cluster %d:\n", i+1); err != nil {
			return err
		}
		for _, e := range c.Members {
			if _, err := fmt.Fprintf(w, "%.2f,%.2f\n", e.Amount, e.Date); err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePlan writes one line per repayment step.
func WritePlan(w io.Writer, steps []model.RepaymentStep) error {
	for _, s := range steps {
		if _, err := fmt.Fprintf(w, "Pay $%.2f to debt with %.2f%% interest, remaining: $%.2f\n",
			s.Payment, s.AnnualRate*100, s.Remaining); err != nil {
			return err
		}
	}
	return nil
}

// SaveFile creates path and streams content into it through write.
func SaveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
