package sink

import "SoyCrush/internal/chart"

// Sink receives rendered figures.
type Sink interface {
	Write(name string, fig *chart.Figure) error
	Close() error
}
