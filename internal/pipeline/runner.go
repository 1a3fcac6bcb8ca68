package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"SoyCrush/internal/calculator"
	"SoyCrush/internal/chart"
	"SoyCrush/internal/collector"
	"SoyCrush/internal/model"
	"SoyCrush/internal/sink"
)

// Result is everything one run produced.
type Result struct {
	RunID     string
	DataSet   *model.DataSet
	Spreads   model.Bundle[*model.CrushSpreadSeries]
	Summaries []model.SpreadSummary
	Figures   []chart.NamedFigure
}

// Runner wires ingestion, spread computation and chart output.
type Runner struct {
	Collector *collector.Collector
	Sink      sink.Sink
}

// NewRunner creates a new Runner.
func NewRunner(col *collector.Collector, s sink.Sink) *Runner {
	return &Runner{Collector: col, Sink: s}
}

// Run executes load → spread → summary → figures → sink once.
// Any failure aborts the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := slog.With("run_id", res.RunID)
	log.Info("run started", "loader", r.Collector.Loader.Name())

	ds, err := r.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	res.DataSet = ds

	spreads, err := calculator.BuildSpreadBundle(ds)
	if err != nil {
		return nil, fmt.Errorf("crush spread: %w", err)
	}
	res.Spreads = spreads
	for _, rez := range model.Resolutions {
		log.Info("crush spread computed", "resolution", rez, "rows", spreads[rez].Len())
	}

	res.Summaries, err = calculator.SummarizeBundle(spreads)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	figs, err := chart.PriceFigures(ds)
	if err != nil {
		return nil, fmt.Errorf("price charts: %w", err)
	}
	spreadFig, err := chart.SpreadFigure(spreads)
	if err != nil {
		return nil, fmt.Errorf("spread chart: %w", err)
	}
	res.Figures = append(figs, chart.NamedFigure{Name: "crush_spread", Figure: spreadFig})

	for _, f := range res.Figures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.Sink.Write(f.Name, f.Figure); err != nil {
			return nil, fmt.Errorf("write chart %s: %w", f.Name, err)
		}
	}

	log.Info("run finished", "figures", len(res.Figures))
	return res, nil
}
