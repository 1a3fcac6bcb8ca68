package model

import (
	"fmt"
	"time"
)

// SpreadPoint is one crush spread value keyed by the beans timestamp.
type SpreadPoint struct {
	Time  time.Time
	Value float64
}

// CrushSpreadSeries is the derived spread of one resolution, ordered by time.
type CrushSpreadSeries struct {
	Resolution Resolution
	Points     []SpreadPoint
}

func (s *CrushSpreadSeries) Len() int { return len(s.Points) }

// Values returns the spread values in order.
func (s *CrushSpreadSeries) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	return vals
}

// Series returns the spread as plottable points.
func (s *CrushSpreadSeries) Series() []Point {
	pts := make([]Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = Point{Time: p.Time, Value: p.Value}
	}
	return pts
}

// SpreadSummary describes one spread series for the text report.
type SpreadSummary struct {
	Resolution Resolution
	Rows       int
	First      time.Time
	Last       time.Time
	LastValue  float64
	Mean       float64
	High       float64
	Low        float64
	Position   float64 // 0.0 ~ 1.0 of the last value within [Low, High]
}

// Bundle maps each resolution to a series of the same kind.
type Bundle[S any] map[Resolution]S

// BundleEntry is one resolution/series pair of a bundle.
type BundleEntry[S any] struct {
	Resolution Resolution
	Series     S
}

// Ordered returns the entries in sec, min, day order.
func (b Bundle[S]) Ordered() ([]BundleEntry[S], error) {
	out := make([]BundleEntry[S], 0, len(Resolutions))
	for _, r := range Resolutions {
		s, ok := b[r]
		if !ok {
			return nil, fmt.Errorf("bundle: %w: %s", ErrMissingResolution, r)
		}
		out = append(out, BundleEntry[S]{Resolution: r, Series: s})
	}
	return out, nil
}
