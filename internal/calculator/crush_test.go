package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SoyCrush/internal/model"
)

func series(c model.Commodity, r model.Resolution, times []int64, closes []float64) *model.PriceSeries {
	s := &model.PriceSeries{Commodity: c, Resolution: r, Columns: []string{"time", "close"}}
	for i, ts := range times {
		s.Bars = append(s.Bars, model.OHLCV{Time: time.Unix(ts, 0).UTC(), Close: closes[i]})
	}
	return s
}

func TestCrushSpreadValue_HandComputed(t *testing.T) {
	// 10*0.022 + 20*0.11 - 50*0.01
	assert.InDelta(t, 1.92, CrushSpreadValue(10, 20, 50), 1e-9)
	// 320 $/ton meal, 45 c/lb oil, 1150 c/bu beans
	assert.InDelta(t, 7.04+4.95-11.5, CrushSpreadValue(320, 45, 1150), 1e-9)
	assert.True(t, math.IsNaN(CrushSpreadValue(math.NaN(), 1, 1)))
	assert.True(t, math.IsNaN(CrushSpreadValue(1, math.Inf(1), 1)))
}

func TestCrushSpread_Deterministic(t *testing.T) {
	meal := []float64{310.5, 315.2, 298.7}
	oil := []float64{44.1, 45.6, 47.0}
	beans := []float64{1120.25, 1135.5, 1101.0}

	a, err := CrushSpread(meal, oil, beans)
	require.NoError(t, err)
	b, err := CrushSpread(meal, oil, beans)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	require.Len(t, a, 3)
	for i := range a {
		assert.InDelta(t, meal[i]*0.022+oil[i]*0.11-beans[i]*0.01, a[i], 1e-9)
	}
}

func TestCrushSpread_LengthMismatch(t *testing.T) {
	_, err := CrushSpread([]float64{1, 2, 3}, []float64{1, 2, 3, 4, 5}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	_, err = CrushSpread([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestCrushSpread_Empty(t *testing.T) {
	out, err := CrushSpread(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBuildSpreadSeries_IndexedByBeansTime(t *testing.T) {
	beans := series(model.Beans, model.Day, []int64{100, 200, 300}, []float64{50, 60, 70})
	// meal and oil rows out of order; the join must follow beans
	meal := series(model.Meal, model.Day, []int64{300, 100, 200}, []float64{12, 10, 11})
	oil := series(model.Oil, model.Day, []int64{100, 300, 200}, []float64{20, 22, 21})

	s, err := BuildSpreadSeries(meal, oil, beans)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, model.Day, s.Resolution)
	assert.True(t, s.Points[0].Time.Equal(time.Unix(100, 0)))
	assert.InDelta(t, CrushSpreadValue(10, 20, 50), s.Points[0].Value, 1e-9)
	assert.InDelta(t, CrushSpreadValue(11, 21, 60), s.Points[1].Value, 1e-9)
	assert.InDelta(t, CrushSpreadValue(12, 22, 70), s.Points[2].Value, 1e-9)
}

func TestBuildSpreadSeries_MismatchedLength(t *testing.T) {
	beans := series(model.Beans, model.Day, []int64{1, 2, 3}, []float64{1, 1, 1})
	meal := series(model.Meal, model.Day, []int64{1, 2, 3, 4, 5}, []float64{1, 1, 1, 1, 1})
	oil := series(model.Oil, model.Day, []int64{1, 2, 3}, []float64{1, 1, 1})

	_, err := BuildSpreadSeries(meal, oil, beans)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestBuildSpreadSeries_MissingTimestamp(t *testing.T) {
	beans := series(model.Beans, model.Minute, []int64{60, 120}, []float64{1, 1})
	meal := series(model.Meal, model.Minute, []int64{60, 120}, []float64{1, 1})
	oil := series(model.Oil, model.Minute, []int64{60, 180}, []float64{1, 1})

	_, err := BuildSpreadSeries(meal, oil, beans)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingTimestamp))
	assert.Contains(t, err.Error(), "oil")
}

func TestAlignCloses_DuplicateTimestamps(t *testing.T) {
	beans := series(model.Beans, model.Second, []int64{5, 5, 6}, []float64{1, 2, 3})
	meal := series(model.Meal, model.Second, []int64{5, 6, 5}, []float64{10, 30, 20})
	oil := series(model.Oil, model.Second, []int64{5, 5, 6}, []float64{100, 200, 300})

	m, o, err := AlignCloses(meal, oil, beans)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, m)
	assert.Equal(t, []float64{100, 200, 300}, o)
}

func TestBuildSpreadBundle(t *testing.T) {
	ds := model.NewDataSet()
	for i, r := range model.Resolutions {
		ts := []int64{int64(1000 * (i + 1))}
		ds.Put(series(model.Meal, r, ts, []float64{10}))
		ds.Put(series(model.Oil, r, ts, []float64{20}))
		ds.Put(series(model.Beans, r, ts, []float64{50}))
	}
	b, err := BuildSpreadBundle(ds)
	require.NoError(t, err)
	for i, r := range model.Resolutions {
		require.Equal(t, 1, b[r].Len())
		assert.InDelta(t, 1.92, b[r].Points[0].Value, 1e-9)
		assert.Equal(t, int64(1000*(i+1)), b[r].Points[0].Time.Unix())
	}

	delete(ds.Series[model.Oil], model.Minute)
	_, err = BuildSpreadBundle(ds)
	assert.True(t, errors.Is(err, model.ErrMissingResolution))
}
