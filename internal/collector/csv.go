package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"SoyCrush/internal/model"
)

// ReadCSV decodes a bar export. The header must contain "time" (epoch
// seconds) and "close"; open/high/low/volume are picked up when present and
// every cell is kept verbatim on the bar.
func ReadCSV(r io.Reader, commodity model.Commodity, resolution model.Resolution) (*model.PriceSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: %w: empty file", ErrParse)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx := indexColumns(header)
	if idx["time"] < 0 {
		return nil, fmt.Errorf("%w: time", ErrMissingColumn)
	}
	if idx["close"] < 0 {
		return nil, fmt.Errorf("%w: close", ErrMissingColumn)
	}

	series := &model.PriceSeries{
		Commodity:  commodity,
		Resolution: resolution,
		Columns:    header,
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		ts, err := parseEpoch(cell(rec, idx["time"]))
		if err != nil {
			return nil, fmt.Errorf("line %d time: %w", line, err)
		}
		closePrice, err := strconv.ParseFloat(strings.TrimSpace(cell(rec, idx["close"])), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d close: %w: %v", line, ErrParse, err)
		}

		bar := model.OHLCV{Time: ts, Close: closePrice, Raw: rec}
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"open", &bar.Open},
			{"high", &bar.High},
			{"low", &bar.Low},
			{"volume", &bar.Volume},
		} {
			v, err := optionalFloat(rec, idx[f.name])
			if err != nil {
				return nil, fmt.Errorf("line %d %s: %w", line, f.name, err)
			}
			*f.dst = v
		}
		series.Bars = append(series.Bars, bar)
	}
	return series, nil
}

func indexColumns(header []string) map[string]int {
	idx := map[string]int{"time": -1, "open": -1, "high": -1, "low": -1, "close": -1, "volume": -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if j, ok := idx[key]; ok && j < 0 {
			idx[key] = i
		}
	}
	return idx
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// optionalFloat maps a missing column or empty cell to NaN.
func optionalFloat(rec []string, i int) (float64, error) {
	s := strings.TrimSpace(cell(rec, i))
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return v, nil
}

// parseEpoch reads integer or fractional seconds since the epoch as UTC.
func parseEpoch(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, fmt.Errorf("%w: epoch seconds %q", ErrParse, s)
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), nil
}
