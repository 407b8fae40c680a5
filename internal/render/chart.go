// Package render draws a series table as a PNG line chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"hashtrend/internal/config"
	"hashtrend/internal/logging"
	"hashtrend/internal/series"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrEmptyAxis is returned when asked to draw a table with no dates.
var ErrEmptyAxis = errors.New("cannot render a chart with an empty date axis")

// Options controls chart text and geometry.
type Options struct {
	Title     string
	XLabel    string
	YLabel    string
	Width     vg.Length
	Height    vg.Length
	DPI       int
	MaxLabels int
}

// OptionsFromConfig converts the plot section of the config file.
func OptionsFromConfig(c config.PlotConfig) Options {
	return Options{
		Title:     c.Title,
		XLabel:    c.XLabel,
		YLabel:    c.YLabel,
		Width:     vg.Length(c.WidthInches) * vg.Inch,
		Height:    vg.Length(c.HeightInches) * vg.Inch,
		DPI:       c.DPI,
		MaxLabels: c.MaxLabels,
	}
}

// Chart builds the plot: x is the axis position, labeled with the date text,
// y is the count, one marked line per hashtag in request order.
func Chart(t *series.Table, opts Options) (*plot.Plot, error) {
	if t.Empty() {
		return nil, ErrEmptyAxis
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Y.Min = 0

	labels := t.Axis.Labels()
	p.X.Tick.Marker = labelTicks{labels: labels, stride: TickStride(len(labels), opts.MaxLabels)}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	lines := make([]interface{}, 0, 2*len(t.Hashtags))
	for _, tag := range t.Hashtags {
		counts := t.Series(tag)
		pts := make(plotter.XYs, len(counts))
		for i, n := range counts {
			pts[i].X = float64(i)
			pts[i].Y = float64(n)
		}
		lines = append(lines, tag, pts)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, fmt.Errorf("add series lines: %w", err)
	}
	return p, nil
}

// WritePNG renders t as a PNG to w.
func WritePNG(w io.Writer, t *series.Table, opts Options) error {
	p, err := Chart(t, opts)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	p.Draw(draw.New(c))
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG renders t into the file at path, creating parent directories.
func SavePNG(path string, t *series.Table, opts Options) error {
	if t.Empty() {
		return ErrEmptyAxis
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePNG(f, t, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	logging.Get(logging.CategoryRender).Info("Chart written",
		zap.String("path", path),
		zap.Int("dates", len(t.Axis)),
		zap.Int("lines", len(t.Hashtags)))
	return nil
}
