package calculator

import (
	"fmt"
	"time"

	"SoyCrush/internal/model"
)

// AlignCloses returns the meal and oil closes reordered to follow the beans
// timestamps. Repeated timestamps are matched in order of appearance.
func AlignCloses(meal, oil, beans *model.PriceSeries) (mealCloses, oilCloses []float64, err error) {
	if meal.Len() != beans.Len() || oil.Len() != beans.Len() {
		return nil, nil, fmt.Errorf("%w: meal=%d oil=%d beans=%d", ErrLengthMismatch, meal.Len(), oil.Len(), beans.Len())
	}
	mealIdx := indexByTime(meal)
	oilIdx := indexByTime(oil)

	mealCloses = make([]float64, beans.Len())
	oilCloses = make([]float64, beans.Len())
	for i, b := range beans.Bars {
		mi, ok := take(mealIdx, b.Time)
		if !ok {
			return nil, nil, fmt.Errorf("%w: meal at %s (row %d)", ErrMissingTimestamp, b.Time.Format(time.RFC3339), i+1)
		}
		oi, ok := take(oilIdx, b.Time)
		if !ok {
			return nil, nil, fmt.Errorf("%w: oil at %s (row %d)", ErrMissingTimestamp, b.Time.Format(time.RFC3339), i+1)
		}
		mealCloses[i] = meal.Bars[mi].Close
		oilCloses[i] = oil.Bars[oi].Close
	}
	return mealCloses, oilCloses, nil
}

func indexByTime(s *model.PriceSeries) map[int64][]int {
	idx := make(map[int64][]int, s.Len())
	for i, b := range s.Bars {
		k := b.Time.UnixNano()
		idx[k] = append(idx[k], i)
	}
	return idx
}

// take pops the next row index recorded for t.
func take(idx map[int64][]int, t time.Time) (int, bool) {
	k := t.UnixNano()
	rows := idx[k]
	if len(rows) == 0 {
		return 0, false
	}
	idx[k] = rows[1:]
	return rows[0], true
}
