package collector

import (
	"fmt"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"

	"SoyCrush/internal/model"
)

// parquetBar is the on-disk row layout of a parquet bar export.
type parquetBar struct {
	Time   int64   `parquet:"time"` // Unix timestamp in seconds
	Open   float64 `parquet:"open,optional"`
	High   float64 `parquet:"high,optional"`
	Low    float64 `parquet:"low,optional"`
	Close  float64 `parquet:"close"`
	Volume float64 `parquet:"volume,optional"`
}

var parquetColumns = []string{"time", "open", "high", "low", "close", "volume"}

// ReadParquet decodes a parquet bar export into a PriceSeries.
func ReadParquet(path string, commodity model.Commodity, resolution model.Resolution) (*model.PriceSeries, error) {
	rows, err := parquet.ReadFile[parquetBar](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	series := &model.PriceSeries{
		Commodity:  commodity,
		Resolution: resolution,
		Columns:    append([]string(nil), parquetColumns...),
		Bars:       make([]model.OHLCV, len(rows)),
	}
	for i, r := range rows {
		series.Bars[i] = model.OHLCV{
			Time:   time.Unix(r.Time, 0).UTC(),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
			Raw: []string{
				strconv.FormatInt(r.Time, 10),
				floatStr(r.Open),
				floatStr(r.High),
				floatStr(r.Low),
				floatStr(r.Close),
				floatStr(r.Volume),
			},
		}
	}
	return series, nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
