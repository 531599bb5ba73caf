// Package plots renders the figures of the study with gonum/plot.
package plots

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Colors used in the figures.
var (
	Black     = color.Black
	Gray      = color.RGBA{R: 158, G: 157, B: 157, A: 255}
	LightGray = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	Green     = color.RGBA{G: 128, A: 255}
	Red       = color.RGBA{R: 255, A: 255}
)

var formats = map[string]bool{
	".eps":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
	".png":  true,
	".svg":  true,
	".tif":  true,
	".tiff": true,
}

// Save saves the plot with the given width and height.  The image
// format is chosen by the file extension of path.  Missing parent
// directories are created.
func Save(p *plot.Plot, w, h vg.Length, path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); !formats[ext] {
		return fmt.Errorf("save %s: unsupported format %q", path, ext)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("save %s: %v", path, err)
		}
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %v", path, err)
	}
	return nil
}

// Inches converts a size in inches to a vg.Length.
func Inches(x float64) vg.Length {
	return vg.Length(x) * vg.Inch
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

func vline(x, ymin, ymax float64, c color.Color, w vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}})
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = w
	return l, nil
}

func rect(x0, x1, y0, y1 float64, c color.Color) (*plotter.Polygon, error) {
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	})
	if err != nil {
		return nil, err
	}
	poly.Color = c
	poly.LineStyle.Width = 0
	return poly, nil
}

// yrange returns the configured range or the padded range of the
// given values.
func yrange(min, max float64, vals ...float64) (float64, float64) {
	if min < max {
		return min, max
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if math.IsInf(lo, 0) {
		return 0, 1
	}
	pad := (hi - lo) * .1
	if pad == 0 {
		pad = .5
	}
	return lo - pad, hi + pad
}

func circle(c color.Color, r vg.Length) draw.GlyphStyle {
	return draw.GlyphStyle{Color: c, Radius: r, Shape: draw.CircleGlyph{}}
}
