package collector

import "FinanceAnalyzer/internal/model"

// Source supplies already-parsed inputs to the analytics engines.
type Source interface {
	LoadPrices() (model.PriceSeries, error)
	LoadExpenses() ([]model.Expense, error)
	Name() string
}

// MockSource returns fixed data for development and testing.
type MockSource struct {
	Prices   model.PriceSeries
	Expenses []model.Expense
	Err      error
}

// Name identifies the source in run history.
func (m *MockSource) Name() string { return "mock" }

// LoadPrices returns Prices, or Err when set.
func (m *MockSource) LoadPrices() (model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Prices, nil
}

// LoadExpenses returns Expenses, or Err when set.
func (m *MockSource) LoadExpenses() ([]model.Expense, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Expenses, nil
}
