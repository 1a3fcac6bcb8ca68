package sink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"

	"SoyCrush/internal/chart"
)

// FileSink renders figures into an output directory.
type FileSink struct {
	Dir    string
	Format string
	Width  vg.Length
	Height vg.Length

	written []string
}

// NewFileSink creates the output directory if needed.
func NewFileSink(dir, format string, widthPt, heightPt float64) (*FileSink, error) {
	switch format {
	case "png", "svg":
	default:
		return nil, fmt.Errorf("%w: %q", chart.ErrUnsupportedFormat, format)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileSink{
		Dir:    dir,
		Format: format,
		Width:  vg.Length(widthPt),
		Height: vg.Length(heightPt),
	}, nil
}

// Write renders fig to <Dir>/<name>.<Format>.
func (s *FileSink) Write(name string, fig *chart.Figure) error {
	path := filepath.Join(s.Dir, name+"."+s.Format)
	if err := fig.Size(s.Width, s.Height).Save(path, s.Format); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	s.written = append(s.written, path)
	slog.Info("chart written", "path", path)
	return nil
}

// Written lists the files produced so far.
func (s *FileSink) Written() []string { return append([]string(nil), s.written...) }

func (s *FileSink) Close() error {
	slog.Debug("closing file sink", "dir", s.Dir, "files", len(s.written))
	return nil
}
