package calculator

import (
	"errors"
	"math"
)

// CalculateRange returns the high and low of the series, ignoring NaN.
func CalculateRange(values []float64) (high, low float64, err error) {
	if len(values) == 0 {
		return 0, 0, errors.New("no values provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	if math.IsInf(high, -1) {
		return 0, 0, errors.New("no finite values provided")
	}
	return high, low, nil
}

// CalculateRangePosition returns where the current value sits within the range (0.0~1.0).
func CalculateRangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
