package calculator

import (
	"errors"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SMASeries returns the sliding-window simple moving average of prices.
// The result has len(prices)-period+1 entries; entry i averages prices[i:i+period].
func SMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, errors.New("not enough data for SMA calculation")
	}
	out := make([]float64, 0, len(prices)-period+1)
	for end := period; end <= len(prices); end++ {
		// each window is summed independently, no running sum
		ma, err := CalculateSMA(prices[:end], period)
		if err != nil {
			return nil, err
		}
		out = append(out, ma)
	}
	return out, nil
}

// AlignTail trims the front of the longer series so both end on the same
// point and have equal length.
func AlignTail(a, b []float64) ([]float64, []float64) {
	n := min(len(a), len(b))
	return a[len(a)-n:], b[len(b)-n:]
}
