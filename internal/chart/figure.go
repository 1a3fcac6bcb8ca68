package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"SoyCrush/internal/model"
)

// ErrUnsupportedFormat is returned when a figure is rendered to an unknown format.
var ErrUnsupportedFormat = errors.New("unsupported chart format")

const (
	timeFormat  = "2006-01-02\n15:04:05"
	titleHeight = 28 // points reserved above the panels for the figure title
)

// Panel is one subplot: a titled line of values against time.
type Panel struct {
	Title  string
	YLabel string
	Points []model.Point
}

// Figure is a row of subplots under one shared title. It is built without
// touching any display and rendered on demand with WriteTo.
type Figure struct {
	Title  string
	Panels []*plot.Plot
	Width  vg.Length
	Height vg.Length
}

// Size sets the rendered size of the figure.
func (f *Figure) Size(width, height vg.Length) *Figure {
	f.Width, f.Height = width, height
	return f
}

// NewFigure builds one subplot per panel, left to right.
func NewFigure(title string, panels []Panel) (*Figure, error) {
	fig := &Figure{
		Title:  title,
		Width:  20 * vg.Inch,
		Height: 5 * vg.Inch,
	}
	for _, p := range panels {
		pl, err := newPanel(p)
		if err != nil {
			return nil, fmt.Errorf("%s / %s: %w", title, p.Title, err)
		}
		fig.Panels = append(fig.Panels, pl)
	}
	return fig, nil
}

func newPanel(p Panel) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = "Time"
	pl.Y.Label.Text = p.YLabel
	pl.X.Tick.Marker = plot.TimeTicks{Format: timeFormat}
	pl.X.Tick.Label.Rotation = math.Pi / 4
	pl.X.Tick.Label.XAlign = draw.XRight
	pl.X.Tick.Label.YAlign = draw.YCenter
	pl.Add(plotter.NewGrid())

	line, err := plotter.NewLine(toXYs(p.Points))
	if err != nil {
		return nil, err
	}
	pl.Add(line)
	return pl, nil
}

// toXYs maps points to unix-second X values, dropping NaN and infinite values.
func toXYs(points []model.Point) plotter.XYs {
	xys := make(plotter.XYs, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(p.Time.Unix()), Y: p.Value})
	}
	return xys
}

// Draw lays the panels out on dc beneath the figure title.
func (f *Figure) Draw(dc draw.Canvas) {
	if len(f.Panels) == 0 {
		return
	}
	sty := f.Panels[0].Title.TextStyle
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - 4}, f.Title)

	body := draw.Crop(dc, 0, 0, 0, -titleHeight)
	grid := [][]*plot.Plot{f.Panels}
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(f.Panels),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(grid, tiles, body)
	for j, p := range f.Panels {
		p.Draw(canvases[0][j])
	}
}

// WriteTo renders the figure as png or svg.
func (f *Figure) WriteTo(w io.Writer, format string) error {
	switch format {
	case "png":
		c := vgimg.New(f.Width, f.Height)
		f.Draw(draw.New(c))
		if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	case "svg":
		c := vgsvg.New(f.Width, f.Height)
		f.Draw(draw.New(c))
		if _, err := c.WriteTo(w); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// Save renders the figure into a file.
func (f *Figure) Save(path, format string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.WriteTo(fh, format); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
