package collector

import (
	"context"
	"errors"

	"SoyCrush/internal/model"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrParse is returned when a time or price cell cannot be parsed.
	ErrParse = errors.New("parse error")
	// ErrUnsupportedFormat is returned for an unknown input format.
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// Loader reads one price series for a commodity at a resolution.
type Loader interface {
	Load(ctx context.Context, commodity model.Commodity, resolution model.Resolution) (*model.PriceSeries, error)
	Name() string
}
