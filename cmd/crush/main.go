package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"SoyCrush/internal/collector"
	"SoyCrush/internal/config"
	"SoyCrush/internal/logx"
	"SoyCrush/internal/pipeline"
	"SoyCrush/internal/report"
	"SoyCrush/internal/sink"
)

func init() {
	slog.SetDefault(logx.NewDefault("info"))
}

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (default configs/config.yaml or $CONFIG_PATH)")
	noCharts := flag.Bool("no-charts", false, "skip writing chart files")
	flag.Parse()

	// .env never overrides variables already set in the environment
	_ = godotenv.Load()

	path := *cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config validation", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logx.NewDefault(cfg.LogLevel))

	loader, err := collector.NewFileLoader(
		cfg.Data.BasePath,
		cfg.Data.FileNamingConvention,
		cfg.Data.Format,
		cfg.Data.Exchange,
		cfg.Data.Source,
		cfg.CommodityTickers(),
		cfg.ResolutionCodes(),
	)
	if err != nil {
		slog.Error("init loader", "error", err)
		os.Exit(1)
	}
	slog.Info("data source", "loader", loader.Name(), "base_path", cfg.Data.BasePath)

	var out sink.Sink
	if *noCharts || cfg.Chart.OutputDir == "" {
		out = sink.NewNoopSink()
	} else {
		fs, err := sink.NewFileSink(cfg.Chart.OutputDir, cfg.Chart.Format, cfg.Chart.WidthPt, cfg.Chart.HeightPt)
		if err != nil {
			slog.Error("init chart output", "error", err)
			os.Exit(1)
		}
		out = fs
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.NewRunner(collector.NewCollector(loader), out).Run(ctx)
	if err != nil {
		slog.Error("run failed", "error", err)
		out.Close()
		stop()
		os.Exit(1)
	}

	fmt.Print(report.FormatSpreadSummary(res.Summaries))
}
