package strategy

import (
	"fmt"
	"math"

	"FinanceAnalyzer/internal/calculator"
	"FinanceAnalyzer/internal/model"
)

// Crossover computes short and long simple moving averages over prices,
// aligns them on their most recent points and emits one signal per aligned
// day after the first.
func Crossover(prices model.PriceSeries, shortPeriod, longPeriod int) (*model.CrossoverResult, error) {
	if err := validateCrossover(prices, shortPeriod, longPeriod); err != nil {
		return nil, err
	}

	shortMA, err := calculator.SMASeries(prices, shortPeriod)
	if err != nil {
		return nil, fmt.Errorf("short MA: %w", err)
	}
	longMA, err := calculator.SMASeries(prices, longPeriod)
	if err != nil {
		return nil, fmt.Errorf("long MA: %w", err)
	}
	shortMA, longMA = calculator.AlignTail(shortMA, longMA)

	// aligned index 0 ends on price index len(prices)-len(aligned)
	offset := len(prices) - len(shortMA)
	signals := make([]model.Signal, 0, max(len(shortMA)-1, 0))
	for i := 1; i < len(shortMA); i++ {
		signals = append(signals, model.Signal{
			Day:        i + 1,
			PriceIndex: offset + i,
			Action:     classify(shortMA[i-1], longMA[i-1], shortMA[i], longMA[i]),
		})
	}

	return &model.CrossoverResult{
		ShortPeriod: shortPeriod,
		LongPeriod:  longPeriod,
		ShortMA:     shortMA,
		LongMA:      longMA,
		Signals:     signals,
	}, nil
}

// classify compares two consecutive aligned points. Equal values never count
// as a crossing.
func classify(prevShort, prevLong, curShort, curLong float64) model.Action {
	switch {
	case prevShort < prevLong && curShort > curLong:
		return model.ActionBuy
	case prevShort > prevLong && curShort < curLong:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}

func validateCrossover(prices model.PriceSeries, shortPeriod, longPeriod int) error {
	if shortPeriod <= 0 || longPeriod <= 0 {
		return model.Invalid("period", "periods must be positive integers (short=%d, long=%d)", shortPeriod, longPeriod)
	}
	if shortPeriod >= longPeriod {
		return model.Invalid("period", "short period %d must be less than long period %d", shortPeriod, longPeriod)
	}
	if longPeriod > len(prices) {
		return model.Invalid("period", "long period %d exceeds number of data points (%d)", longPeriod, len(prices))
	}
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return model.Invalid("prices", "price %d is not finite", i)
		}
	}
	return nil
}
