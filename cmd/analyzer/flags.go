package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"FinanceAnalyzer/internal/model"
)

// pick returns the flag value when the user set it, otherwise fallback.
func pick[T any](cmd *cobra.Command, name string, flagValue, fallback T) T {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return fallback
}

// parseCategory parses "Name=priority". The priority is clamped to [1,10].
func parseCategory(s string) (model.Category, error) {
	name, prio, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return model.Category{}, fmt.Errorf("category %q: want Name=priority", s)
	}
	p, err := strconv.Atoi(strings.TrimSpace(prio))
	if err != nil {
		return model.Category{}, fmt.Errorf("category %q: priority: %w", s, err)
	}
	return model.NewCategory(name, p), nil
}

// parseDebt parses "[name:]balance:rate" where rate is an annual percentage.
func parseDebt(s string) (model.Debt, error) {
	parts := strings.Split(s, ":")
	var d model.Debt
	switch len(parts) {
	case 2:
	case 3:
		d.Name = strings.TrimSpace(parts[0])
		parts = parts[1:]
	default:
		return model.Debt{}, fmt.Errorf("debt %q: want [name:]balance:rate", s)
	}
	balance, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return model.Debt{}, fmt.Errorf("debt %q: balance: %w", s, err)
	}
	rate, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(parts[1]), "%"), 64)
	if err != nil {
		return model.Debt{}, fmt.Errorf("debt %q: rate: %w", s, err)
	}
	d.Balance = balance
	d.AnnualRate = rate / 100
	return d, nil
}
