package calculator

import (
	"errors"
	"math"
)

// CalculateSMA computes the simple moving average of the last period values.
// NaN values inside the window are skipped.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum, n := 0.0, 0
	for i := len(values) - period; i < len(values); i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		sum += values[i]
		n++
	}
	if n == 0 {
		return 0, errors.New("no finite values in SMA window")
	}
	return sum / float64(n), nil
}

// CalculateMean averages the whole series.
func CalculateMean(values []float64) (float64, error) {
	return CalculateSMA(values, len(values))
}
