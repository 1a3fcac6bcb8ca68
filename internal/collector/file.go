package collector

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"SoyCrush/internal/model"
)

// FileName holds the fields available to the naming template.
type FileName struct {
	Exchange string
	Source   string
	Ticker   string
	Code     string
	Ext      string
}

// FileLoader reads bar exports from a base directory.
type FileLoader struct {
	BasePath string
	Format   string
	Exchange string
	Source   string
	Tickers  map[model.Commodity]string
	Codes    map[model.Resolution]string
	naming   *template.Template
}

// NewFileLoader parses the naming template and returns a loader.
func NewFileLoader(basePath, naming, format, exchange, source string, tickers map[model.Commodity]string, codes map[model.Resolution]string) (*FileLoader, error) {
	switch format {
	case "csv", "parquet":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	tmpl, err := template.New("file").Option("missingkey=error").Parse(naming)
	if err != nil {
		return nil, fmt.Errorf("parse naming template: %w", err)
	}
	return &FileLoader{
		BasePath: basePath,
		Format:   format,
		Exchange: exchange,
		Source:   source,
		Tickers:  tickers,
		Codes:    codes,
		naming:   tmpl,
	}, nil
}

func (f *FileLoader) Name() string { return "file:" + f.Format }

// Path resolves the file of one commodity at one resolution.
func (f *FileLoader) Path(commodity model.Commodity, resolution model.Resolution) (string, error) {
	ticker, ok := f.Tickers[commodity]
	if !ok {
		return "", fmt.Errorf("no ticker configured for %s", commodity)
	}
	code, ok := f.Codes[resolution]
	if !ok {
		return "", fmt.Errorf("no file code configured for %s", resolution)
	}
	var buf bytes.Buffer
	if err := f.naming.Execute(&buf, FileName{
		Exchange: f.Exchange,
		Source:   f.Source,
		Ticker:   ticker,
		Code:     code,
		Ext:      f.Format,
	}); err != nil {
		return "", fmt.Errorf("render file name: %w", err)
	}
	return filepath.Join(f.BasePath, buf.String()), nil
}

func (f *FileLoader) Load(ctx context.Context, commodity model.Commodity, resolution model.Resolution) (*model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.Path(commodity, resolution)
	if err != nil {
		return nil, err
	}
	slog.Debug("loading series", "commodity", commodity, "resolution", resolution, "path", path)

	if f.Format == "parquet" {
		s, err := ReadParquet(path, commodity, resolution)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return s, nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	s, err := ReadCSV(fh, commodity, resolution)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
