package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrMissingResolution is returned when a bundle lacks one of the three resolutions.
var ErrMissingResolution = errors.New("missing resolution")

// Commodity identifies one leg of the soybean complex.
type Commodity string

const (
	Oil   Commodity = "oil"
	Meal  Commodity = "meal"
	Beans Commodity = "beans"
)

// Commodities lists the three legs in load order.
var Commodities = []Commodity{Oil, Meal, Beans}

// DisplayName returns the human readable name used in chart titles.
func (c Commodity) DisplayName() string {
	switch c {
	case Oil:
		return "Soybean Oil"
	case Meal:
		return "Soybean Meal"
	case Beans:
		return "Soybeans"
	default:
		return string(c)
	}
}

// Resolution is the sampling interval of a series.
type Resolution string

const (
	Second Resolution = "sec"
	Minute Resolution = "min"
	Day    Resolution = "day"
)

// Resolutions lists the resolutions in plotting order.
var Resolutions = []Resolution{Second, Minute, Day}

// Title returns the subplot title for the resolution.
func (r Resolution) Title() string {
	switch r {
	case Second:
		return "Second Data"
	case Minute:
		return "Minute Data"
	case Day:
		return "Daily Data"
	default:
		return string(r)
	}
}

// OHLCV represents a single candlestick bar.
// Raw keeps the source row verbatim, in the order of PriceSeries.Columns.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Raw    []string
}

// Point is one (time, value) sample ready for plotting.
type Point struct {
	Time  time.Time
	Value float64
}

// PriceSeries holds the bars of one commodity at one resolution.
// Bars keep file order; duplicate timestamps are not removed.
type PriceSeries struct {
	Commodity  Commodity
	Resolution Resolution
	Columns    []string
	Bars       []OHLCV
}

func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the close column.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Times returns the timestamp column.
func (s *PriceSeries) Times() []time.Time {
	ts := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		ts[i] = b.Time
	}
	return ts
}

// columnIndex finds a header case-insensitively.
func (s *PriceSeries) columnIndex(name string) int {
	for i, c := range s.Columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return i
		}
	}
	return -1
}

// Column returns the verbatim cells of a column.
func (s *PriceSeries) Column(name string) ([]string, bool) {
	idx := s.columnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(s.Bars))
	for i, b := range s.Bars {
		if idx < len(b.Raw) {
			out[i] = b.Raw[idx]
		}
	}
	return out, true
}

// Points returns time/value pairs for a numeric column. The OHLCV columns
// come from the parsed bar; any other column is parsed from the raw cells,
// with empty cells mapped to NaN.
func (s *PriceSeries) Points(column string) ([]Point, error) {
	pick := ohlcvField(column)
	if pick == nil {
		cells, ok := s.Column(column)
		if !ok {
			return nil, fmt.Errorf("column %q not found in %s/%s", column, s.Commodity, s.Resolution)
		}
		pts := make([]Point, len(cells))
		for i, c := range cells {
			v := math.NaN()
			if c = strings.TrimSpace(c); c != "" {
				f, err := strconv.ParseFloat(c, 64)
				if err != nil {
					return nil, fmt.Errorf("column %q row %d: %w", column, i+1, err)
				}
				v = f
			}
			pts[i] = Point{Time: s.Bars[i].Time, Value: v}
		}
		return pts, nil
	}
	pts := make([]Point, len(s.Bars))
	for i := range s.Bars {
		pts[i] = Point{Time: s.Bars[i].Time, Value: pick(&s.Bars[i])}
	}
	return pts, nil
}

func ohlcvField(column string) func(*OHLCV) float64 {
	switch strings.ToLower(strings.TrimSpace(column)) {
	case "open":
		return func(b *OHLCV) float64 { return b.Open }
	case "high":
		return func(b *OHLCV) float64 { return b.High }
	case "low":
		return func(b *OHLCV) float64 { return b.Low }
	case "close":
		return func(b *OHLCV) float64 { return b.Close }
	case "volume":
		return func(b *OHLCV) float64 { return b.Volume }
	default:
		return nil
	}
}

// DataSet holds the nine price series of one run.
type DataSet struct {
	Series map[Commodity]map[Resolution]*PriceSeries
}

// NewDataSet creates an empty DataSet.
func NewDataSet() *DataSet {
	return &DataSet{Series: make(map[Commodity]map[Resolution]*PriceSeries)}
}

// Put stores a series under its commodity and resolution.
func (d *DataSet) Put(s *PriceSeries) {
	byRes, ok := d.Series[s.Commodity]
	if !ok {
		byRes = make(map[Resolution]*PriceSeries)
		d.Series[s.Commodity] = byRes
	}
	byRes[s.Resolution] = s
}

// Get returns the series for a commodity and resolution, or nil.
func (d *DataSet) Get(c Commodity, r Resolution) *PriceSeries {
	return d.Series[c][r]
}

// Bundle returns the three resolutions of one commodity.
func (d *DataSet) Bundle(c Commodity) Bundle[*PriceSeries] {
	b := make(Bundle[*PriceSeries], len(Resolutions))
	for r, s := range d.Series[c] {
		b[r] = s
	}
	return b
}
