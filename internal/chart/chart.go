// Package chart renders the monthly consumption series as a multi-line chart:
// one line per category and year, months along the X axis.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"energy_consumption/internal/model"
	"energy_consumption/internal/store"
)

// Options control figure size and labelling.
type Options struct {
	Title       string
	XLabel      string
	YLabel      string
	Width       vg.Length
	Height      vg.Length
	LegendWidth vg.Length
}

// DefaultOptions returns the 14x6 inch layout with the legend in a column on the right.
func DefaultOptions(scope model.Scope) Options {
	return Options{
		Title:       scope.Title(),
		XLabel:      "Month",
		YLabel:      "Consumption (GWh)",
		Width:       14 * vg.Inch,
		Height:      6 * vg.Inch,
		LegendWidth: 2 * vg.Inch,
	}
}

// Line is one plotted series.
type Line struct {
	Label    string
	Category model.Category
	Year     int
	Points   []model.MonthlyPoint
}

// Lines lists every (category, year) series in plotting order: categories in
// store order, years ascending.
func Lines(s *store.Store) []Line {
	var lines []Line
	for _, c := range s.Categories() {
		for _, y := range s.Years(c) {
			lines = append(lines, Line{
				Label:    fmt.Sprintf("%s - %d", c, y),
				Category: c,
				Year:     y,
				Points:   s.PointsInYear(c, y),
			})
		}
	}
	return lines
}

// monthAxis returns the month names present in lines, ordered by month
// number, and each name's X position.
func monthAxis(lines []Line) ([]string, map[string]float64) {
	months := make(map[string]int)
	for _, l := range lines {
		for _, p := range l.Points {
			if _, ok := months[p.MonthName]; !ok {
				months[p.MonthName] = p.Month
			}
		}
	}

	names := make([]string, 0, len(months))
	for n := range months {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if months[names[i]] != months[names[j]] {
			return months[names[i]] < months[names[j]]
		}
		return names[i] < names[j]
	})

	pos := make(map[string]float64, len(names))
	for i, n := range names {
		pos[n] = float64(i)
	}
	return names, pos
}

// Build assembles the plot without drawing it.
func Build(s *store.Store, opts Options) (*plot.Plot, error) {
	lines := Lines(s)
	if len(lines) == 0 {
		return nil, fmt.Errorf("no data to plot for: %s", opts.Title)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	names, pos := monthAxis(lines)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	styleIdx := make(map[model.Category]int)
	for i, c := range s.Categories() {
		styleIdx[c] = i
	}

	for i, l := range lines {
		pts := make(plotter.XYs, len(l.Points))
		for j, mp := range l.Points {
			pts[j] = plotter.XY{X: pos[mp.MonthName], Y: mp.Value}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("creating line %s: %w", l.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		line.Dashes = plotutil.Dashes(styleIdx[l.Category])

		p.Add(line)
		p.Legend.Add(l.Label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Font.Size = vg.Points(8)
	return p, nil
}

// Render draws the chart in the given format ("png", "svg", "pdf", ...) to w.
// The plot fills the canvas left of the legend column.
func Render(w io.Writer, s *store.Store, opts Options, format string) error {
	p, err := Build(s, opts)
	if err != nil {
		return err
	}

	c, err := draw.NewFormattedCanvas(opts.Width, opts.Height, format)
	if err != nil {
		return fmt.Errorf("creating %s canvas: %w", format, err)
	}
	dc := draw.New(c)

	legendWidth := opts.LegendWidth
	if legendWidth <= 0 || legendWidth >= opts.Width {
		legendWidth = 0
	}
	if legendWidth == 0 {
		p.Draw(dc)
	} else {
		// Draw the legend on its own so it never covers the lines.
		legend := p.Legend
		p.Legend = plot.NewLegend()
		p.Draw(draw.Crop(dc, 0, -legendWidth, 0, 0))
		legend.XOffs = vg.Points(4)
		legend.Draw(draw.Crop(dc, opts.Width-legendWidth, 0, 0, 0))
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s chart: %w", format, err)
	}
	return nil
}

// Save renders the chart to path. An empty format is taken from the file extension.
func Save(path string, s *store.Store, opts Options, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Render(f, s, opts, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatFromPath returns the lower-case extension of path, or "png" if there is none.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "png"
	}
	return strings.ToLower(ext)
}
