package chart

import (
	"fmt"

	"SoyCrush/internal/model"
)

// SpreadTitle is the figure title of the crush spread chart.
const SpreadTitle = "Soybean Crush Spread Time Series"

// NamedFigure pairs a figure with a file-friendly name.
type NamedFigure struct {
	Name   string
	Figure *Figure
}

// CommodityFigure plots one column of a commodity at every resolution.
func CommodityFigure(c model.Commodity, bundle model.Bundle[*model.PriceSeries], column string) (*Figure, error) {
	entries, err := bundle.Ordered()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	panels := make([]Panel, 0, len(entries))
	for _, e := range entries {
		pts, err := e.Series.Points(column)
		if err != nil {
			return nil, err
		}
		panels = append(panels, Panel{Title: e.Resolution.Title(), YLabel: "Price", Points: pts})
	}
	return NewFigure(c.DisplayName()+" Price Time Series", panels)
}

// PriceFigures builds one close-price figure per commodity (oil, meal, beans).
func PriceFigures(ds *model.DataSet) ([]NamedFigure, error) {
	out := make([]NamedFigure, 0, len(model.Commodities))
	for _, c := range model.Commodities {
		fig, err := CommodityFigure(c, ds.Bundle(c), "close")
		if err != nil {
			return nil, err
		}
		out = append(out, NamedFigure{Name: string(c) + "_prices", Figure: fig})
	}
	return out, nil
}

// SpreadFigure builds the three-panel crush spread figure.
func SpreadFigure(bundle model.Bundle[*model.CrushSpreadSeries]) (*Figure, error) {
	entries, err := bundle.Ordered()
	if err != nil {
		return nil, fmt.Errorf("crush spread: %w", err)
	}
	panels := make([]Panel, 0, len(entries))
	for _, e := range entries {
		panels = append(panels, Panel{Title: e.Resolution.Title(), YLabel: "Crush Spread", Points: e.Series.Series()})
	}
	return NewFigure(SpreadTitle, panels)
}
