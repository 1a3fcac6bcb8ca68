package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries() *PriceSeries {
	t0 := time.Unix(1700000000, 0).UTC()
	return &PriceSeries{
		Commodity:  Beans,
		Resolution: Day,
		Columns:    []string{"time", "open", "high", "low", "close", "Volume", "VWAP"},
		Bars: []OHLCV{
			{Time: t0, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10, Raw: []string{"1700000000", "1", "2", "0.5", "1.5", "10", "1.4"}},
			{Time: t0.Add(24 * time.Hour), Open: 1.5, High: 3, Low: 1, Close: 2.5, Volume: 20, Raw: []string{"1700086400", "1.5", "3", "1", "2.5", "20", ""}},
		},
	}
}

func TestPriceSeries_Accessors(t *testing.T) {
	s := sampleSeries()
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{1.5, 2.5}, s.Closes())
	assert.Equal(t, s.Bars[1].Time, s.Times()[1])

	vwap, ok := s.Column("vwap")
	require.True(t, ok)
	assert.Equal(t, []string{"1.4", ""}, vwap)

	_, ok = s.Column("missing")
	assert.False(t, ok)
}

func TestPriceSeries_Points(t *testing.T) {
	s := sampleSeries()

	closes, err := s.Points("close")
	require.NoError(t, err)
	assert.Equal(t, 2.5, closes[1].Value)

	vol, err := s.Points("Volume")
	require.NoError(t, err)
	assert.Equal(t, 20.0, vol[1].Value)

	vwap, err := s.Points("VWAP")
	require.NoError(t, err)
	assert.Equal(t, 1.4, vwap[0].Value)
	assert.True(t, math.IsNaN(vwap[1].Value))

	_, err = s.Points("nope")
	assert.Error(t, err)
}

func TestDataSet_Bundle(t *testing.T) {
	ds := NewDataSet()
	for _, r := range Resolutions {
		ds.Put(&PriceSeries{Commodity: Oil, Resolution: r})
	}
	ds.Put(&PriceSeries{Commodity: Meal, Resolution: Day})

	entries, err := ds.Bundle(Oil).Ordered()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, Second, entries[0].Resolution)
	assert.Equal(t, Minute, entries[1].Resolution)
	assert.Equal(t, Day, entries[2].Resolution)

	_, err = ds.Bundle(Meal).Ordered()
	assert.True(t, errors.Is(err, ErrMissingResolution))
	assert.Nil(t, ds.Get(Beans, Day))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Soybean Oil", Oil.DisplayName())
	assert.Equal(t, "Soybeans", Beans.DisplayName())
	assert.Equal(t, "Second Data", Second.Title())
	assert.Equal(t, "Daily Data", Day.Title())
}
