package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"SoyCrush/internal/model"
)

var (
	// ErrLengthMismatch is returned when the three legs do not have the same number of rows.
	ErrLengthMismatch = errors.New("length mismatch between aligned price series")
	// ErrMissingTimestamp is returned when a beans timestamp has no meal or oil counterpart.
	ErrMissingTimestamp = errors.New("timestamp missing from aligned price series")
)

// Board crush weights per bushel of soybeans:
// 44 lb of meal = 0.022 short ton ($/short ton quote),
// 11 lb of oil quoted in cents/lb, beans quoted in cents/bushel.
var (
	MealWeight  = decimal.RequireFromString("0.022")
	OilWeight   = decimal.RequireFromString("0.11")
	BeansWeight = decimal.RequireFromString("0.01")
)

// CrushSpreadValue returns the gross processing margin in $/bushel for one row.
// A NaN or infinite leg yields NaN.
func CrushSpreadValue(meal, oil, beans float64) float64 {
	if !finite(meal) || !finite(oil) || !finite(beans) {
		return math.NaN()
	}
	v := decimal.NewFromFloat(meal).Mul(MealWeight).
		Add(decimal.NewFromFloat(oil).Mul(OilWeight)).
		Sub(decimal.NewFromFloat(beans).Mul(BeansWeight))
	return v.InexactFloat64()
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// CrushSpread applies the crush formula elementwise to three close columns.
func CrushSpread(meal, oil, beans []float64) ([]float64, error) {
	if len(meal) != len(beans) || len(oil) != len(beans) {
		return nil, fmt.Errorf("%w: meal=%d oil=%d beans=%d", ErrLengthMismatch, len(meal), len(oil), len(beans))
	}
	out := make([]float64, len(beans))
	for i := range beans {
		out[i] = CrushSpreadValue(meal[i], oil[i], beans[i])
	}
	return out, nil
}

// BuildSpreadSeries joins the three legs on timestamp and computes the spread,
// indexed by the beans timestamps.
func BuildSpreadSeries(meal, oil, beans *model.PriceSeries) (*model.CrushSpreadSeries, error) {
	mealCloses, oilCloses, err := AlignCloses(meal, oil, beans)
	if err != nil {
		return nil, err
	}
	values, err := CrushSpread(mealCloses, oilCloses, beans.Closes())
	if err != nil {
		return nil, err
	}
	out := &model.CrushSpreadSeries{
		Resolution: beans.Resolution,
		Points:     make([]model.SpreadPoint, len(values)),
	}
	for i, v := range values {
		out.Points[i] = model.SpreadPoint{Time: beans.Bars[i].Time, Value: v}
	}
	return out, nil
}

// BuildSpreadBundle computes the spread at every resolution.
func BuildSpreadBundle(ds *model.DataSet) (model.Bundle[*model.CrushSpreadSeries], error) {
	bundle := make(model.Bundle[*model.CrushSpreadSeries], len(model.Resolutions))
	for _, r := range model.Resolutions {
		meal, oil, beans := ds.Get(model.Meal, r), ds.Get(model.Oil, r), ds.Get(model.Beans, r)
		if meal == nil || oil == nil || beans == nil {
			return nil, fmt.Errorf("spread %s: %w", r, model.ErrMissingResolution)
		}
		s, err := BuildSpreadSeries(meal, oil, beans)
		if err != nil {
			return nil, fmt.Errorf("spread %s: %w", r, err)
		}
		bundle[r] = s
	}
	return bundle, nil
}
