package calculator

import (
	"log/slog"

	"SoyCrush/internal/model"
)

// Summarize computes the report statistics of one spread series.
// Statistics that cannot be computed are left at zero and logged.
func Summarize(s *model.CrushSpreadSeries) model.SpreadSummary {
	sum := model.SpreadSummary{Resolution: s.Resolution, Rows: s.Len()}
	if s.Len() == 0 {
		return sum
	}
	values := s.Values()
	sum.First = s.Points[0].Time
	sum.Last = s.Points[len(s.Points)-1].Time
	sum.LastValue = values[len(values)-1]

	if mean, err := CalculateMean(values); err != nil {
		slog.Warn("spread mean failed", "resolution", s.Resolution, "error", err)
	} else {
		sum.Mean = mean
	}

	high, low, err := CalculateRange(values)
	if err != nil {
		slog.Warn("spread range failed", "resolution", s.Resolution, "error", err)
		return sum
	}
	sum.High, sum.Low = high, low

	if pos, err := CalculateRangePosition(sum.LastValue, high, low); err != nil {
		slog.Warn("spread position failed", "resolution", s.Resolution, "error", err)
		sum.Position = 0.5
	} else {
		sum.Position = pos
	}
	return sum
}

// SummarizeBundle summarizes every resolution in sec, min, day order.
func SummarizeBundle(b model.Bundle[*model.CrushSpreadSeries]) ([]model.SpreadSummary, error) {
	entries, err := b.Ordered()
	if err != nil {
		return nil, err
	}
	out := make([]model.SpreadSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, Summarize(e.Series))
	}
	return out, nil
}
