package plots

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// Residual cell values of binary labels.
var residualLegend = []struct {
	val   float64
	label string
}{
	{-1, "false positive"},
	{0, "true negative"},
	{1, "true positive"},
	{2, "false negative"},
}

// ResidualOptions configure the residual heat map.
type ResidualOptions struct {
	Title, XLabel, YLabel string
}

// residualGrid adapts a samples x objects matrix to a plotter.GridXYZ
// with objects on the x-axis and samples on the y-axis.
type residualGrid struct {
	m mat.Matrix
}

func (g residualGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g residualGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g residualGrid) X(c int) float64    { return float64(c) }
func (g residualGrid) Y(r int) float64    { return float64(r) }
func (g residualGrid) Min() float64       { return -1 }
func (g residualGrid) Max() float64       { return 2 }

// Residual plots the residual matrix of a scoring run as a heat map.
// Each column is labeled with the according object name.
func Residual(res mat.Matrix, labels []string, opts ResidualOptions) (*plot.Plot, error) {
	fail := func(err error) (*plot.Plot, error) {
		return nil, fmt.Errorf("residual: %v", err)
	}
	if res == nil {
		return fail(errors.New("no data"))
	}
	r, c := res.Dims()
	if c != len(labels) {
		return fail(fmt.Errorf("%d columns but %d labels", c, len(labels)))
	}
	pal := palette.Heat(len(residualLegend), 1)
	hm := plotter.NewHeatMap(residualGrid{m: res}, pal)
	p := newPlot(opts.Title, opts.XLabel, opts.YLabel)
	p.Add(hm)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	// Label every sample if there are only a few, otherwise every
	// tenth.
	step := 1
	if r > 20 {
		step = 10
	}
	var ticks plot.ConstantTicks
	for i := 0; i < r; i += step {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: strconv.Itoa(i + 1)})
	}
	p.Y.Tick.Marker = ticks

	colors := pal.Colors()
	for i, l := range residualLegend {
		sw, err := rect(0, 1, 0, 1, colors[i])
		if err != nil {
			return fail(err)
		}
		p.Legend.Add(fmt.Sprintf("%s (%g)", l.label, l.val), sw)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	return p, nil
}
