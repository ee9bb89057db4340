// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart renders the cumulative citation series as a line chart.
package chart

import (
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/pdiddy/citegrowth/pkg/types"
)

// Defaults match an 8x5 inch figure at 150 DPI.
const (
	DefaultWidth  = 8.0
	DefaultHeight = 5.0
	DefaultDPI    = 150

	titleWords = 4
)

// Options controls one rendering.
type Options struct {
	types.ChartConfig

	// PaperTitle is shortened to its first few words in the chart title.
	PaperTitle string

	// Resolution is shown in the chart title.
	Resolution types.Resolution
}

var (
	sketchInk  = color.RGBA{R: 0x1f, G: 0x1f, B: 0x1f, A: 0xff}
	plainBlue  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	paperWhite = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// CheckFormat reports whether path has an extension Render can write.
func CheckFormat(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".svg", ".pdf", ".eps":
		return nil
	default:
		return fmt.Errorf("unsupported image format %q (use .png, .jpg, .tif, .svg, .pdf, or .eps)", filepath.Ext(path))
	}
}

// Title builds the two-line chart title from the paper title and resolution.
func Title(paperTitle string, res types.Resolution) string {
	words := strings.Fields(paperTitle)
	short := strings.Join(words, " ")
	if len(words) > titleWords {
		short = strings.Join(words[:titleWords], " ") + " …"
	}
	return fmt.Sprintf("Cumulative citations over time\n%s  (%s)", short, res)
}

// Render draws series and writes the image to path, choosing the format from
// the extension. An empty series yields a placeholder chart.
func Render(series []types.TimeSeriesPoint, opts Options, path string) error {
	if err := CheckFormat(path); err != nil {
		return &types.IOError{Op: "render", Path: path, Err: err}
	}
	opts = withDefaults(opts)

	p, err := build(series, opts)
	if err != nil {
		return &types.IOError{Op: "render", Path: path, Err: err}
	}

	w := vg.Length(opts.Width) * vg.Inch
	h := vg.Length(opts.Height) * vg.Inch
	c := newCanvas(path, w, h, opts.DPI)
	p.Draw(draw.New(c))

	return writeCanvas(c, path)
}

func withDefaults(opts Options) Options {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	if opts.Theme == "" {
		opts.Theme = types.ThemeSketch
	}
	return opts
}

func build(series []types.TimeSeriesPoint, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.BackgroundColor = paperWhite
	p.Title.Text = Title(opts.PaperTitle, opts.Resolution)
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Cumulative Citations"
	p.Y.Min = 0

	if len(series) == 0 {
		return p, addPlaceholder(p)
	}

	pts := make(plotter.XYs, len(series))
	for i, s := range series {
		pts[i].X = float64(s.Date.Unix())
		pts[i].Y = float64(s.Cumulative)
	}
	p.X.Tick.Marker = plot.TimeTicks{Format: tickFormat(opts.Resolution)}
	padX(p, pts)

	ink := plainBlue
	trace := pts
	width := vg.Points(1.5)
	if opts.Theme == types.ThemeSketch {
		ink = sketchInk
		trace = sketchLine(pts, seedFor(series))
		width = vg.Points(2.5)
		p.X.LineStyle.Width = vg.Points(1.5)
		p.Y.LineStyle.Width = vg.Points(1.5)
	} else {
		p.Add(plotter.NewGrid())
	}

	line, err := plotter.NewLine(trace)
	if err != nil {
		return nil, fmt.Errorf("building line: %w", err)
	}
	line.Color = ink
	line.Width = width

	points, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("building markers: %w", err)
	}
	points.Shape = draw.CircleGlyph{}
	points.Color = ink
	points.Radius = vg.Points(2.5)

	p.Add(line, points)
	return p, nil
}

// addPlaceholder gives an empty chart fixed axes and a note.
func addPlaceholder(p *plot.Plot) error {
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	p.Y.Tick.Marker = plot.ConstantTicks(nil)

	note, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.4, Y: 0.5}},
		Labels: []string{"no dated citations"},
	})
	if err != nil {
		return fmt.Errorf("building placeholder: %w", err)
	}
	p.Add(note)
	return nil
}

// padX widens the x range so single points and end markers stay visible.
func padX(p *plot.Plot, pts plotter.XYs) {
	lo, hi := pts[0].X, pts[len(pts)-1].X
	pad := (hi - lo) * 0.03
	if day := (24 * time.Hour).Seconds(); pad < day {
		pad = day
	}
	p.X.Min, p.X.Max = lo-pad, hi+pad
}

func tickFormat(res types.Resolution) string {
	switch res {
	case types.ResolutionDay, types.ResolutionWeek:
		return "2006-01-02"
	case types.ResolutionYear:
		return "2006"
	default:
		return "2006-01"
	}
}

// sketchSteps is the number of wobbly sub-segments per series segment.
const sketchSteps = 6

// sketchLine densifies pts and nudges the interior vertices up or down by a
// small amount relative to the y range, giving a hand-drawn stroke. Data
// points themselves are kept exact. The result depends only on pts and seed.
func sketchLine(pts plotter.XYs, seed int64) plotter.XYs {
	if len(pts) < 2 {
		return pts
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, pt := range pts {
		minY = min(minY, pt.Y)
		maxY = max(maxY, pt.Y)
	}
	amp := (maxY - minY) * 0.012
	if amp == 0 {
		amp = 0.02
	}

	rng := rand.New(rand.NewSource(seed))
	out := make(plotter.XYs, 0, (len(pts)-1)*sketchSteps+1)
	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		out = append(out, a)
		for s := 1; s < sketchSteps; s++ {
			f := float64(s) / sketchSteps
			out = append(out, plotter.XY{
				X: a.X + (b.X-a.X)*f,
				Y: a.Y + (b.Y-a.Y)*f + (rng.Float64()-0.5)*2*amp,
			})
		}
	}
	return append(out, pts[len(pts)-1])
}

func seedFor(series []types.TimeSeriesPoint) int64 {
	last := series[len(series)-1]
	return int64(len(series))*7919 + int64(last.Cumulative) + last.Date.Unix()
}

// newCanvas picks the vg backend for the file extension.
func newCanvas(path string, w, h vg.Length, dpi int) vg.CanvasWriterTo {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return vgsvg.New(w, h)
	case ".pdf":
		return vgpdf.New(w, h)
	case ".eps":
		return vgeps.New(w, h)
	}

	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return vgimg.JpegCanvas{Canvas: img}
	case ".tif", ".tiff":
		return vgimg.TiffCanvas{Canvas: img}
	default:
		return vgimg.PngCanvas{Canvas: img}
	}
}

func writeCanvas(c vg.CanvasWriterTo, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &types.IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &types.IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, err := c.WriteTo(f); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
