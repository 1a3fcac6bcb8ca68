package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SoyCrush/internal/model"
)

// MockLoader returns controllable fixed data for development and testing.
type MockLoader struct {
	BasePrice map[model.Commodity]float64
	Count     int
	Start     time.Time
	Data      map[model.Commodity]map[model.Resolution][]model.OHLCV
}

func (m *MockLoader) Name() string { return "mock" }

func (m *MockLoader) Load(_ context.Context, commodity model.Commodity, resolution model.Resolution) (*model.PriceSeries, error) {
	s := &model.PriceSeries{
		Commodity:  commodity,
		Resolution: resolution,
		Columns:    []string{"time", "open", "high", "low", "close", "volume"},
	}
	if bars, ok := m.Data[commodity][resolution]; ok {
		s.Bars = bars
		return s, nil
	}
	s.Bars = generateMockBars(m.BasePrice[commodity], m.Count, m.Start, step(resolution))
	return s, nil
}

func step(r model.Resolution) time.Duration {
	switch r {
	case model.Second:
		return time.Second
	case model.Minute:
		return time.Minute
	default:
		return 24 * time.Hour
	}
}

func generateMockBars(basePrice float64, count int, start time.Time, interval time.Duration) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * interval).UTC(),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}

// Collector loads every commodity at every resolution.
type Collector struct {
	Loader Loader
}

// NewCollector creates a new Collector.
func NewCollector(loader Loader) *Collector {
	return &Collector{Loader: loader}
}

// Collect reads the nine series one after another and stops at the first failure.
func (c *Collector) Collect(ctx context.Context) (*model.DataSet, error) {
	ds := model.NewDataSet()
	for _, commodity := range model.Commodities {
		for _, res := range []model.Resolution{model.Day, model.Minute, model.Second} {
			s, err := c.Loader.Load(ctx, commodity, res)
			if err != nil {
				return nil, fmt.Errorf("load %s/%s: %w", commodity, res, err)
			}
			slog.Info("loaded series", "commodity", commodity, "resolution", res, "rows", s.Len())
			ds.Put(s)
		}
	}
	return ds, nil
}
