package plots

import (
	"errors"
	"fmt"
	"image/color"

	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/ratings"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// IntervalOptions configure the model rating plot.
type IntervalOptions struct {
	Title, XLabel, YLabel string
	// Min and Max fix the range of the y-axis if Min < Max.
	Min, Max float64
	// Group is the number of models per group.  Groups are separated
	// by vertical lines and alternately shaded.
	Group int
	// F1 maps model names to the F1 score that is annotated above
	// the model's group.
	F1 map[string]float64
	// Gray renders shadow variants in gray instead of red and the
	// others in black instead of green.
	Gray bool
}

// Intervals plots the mean rating and its interval of each model.
// Summaries without data leave an empty slot.
func Intervals(sums []ratings.Summary, opts IntervalOptions) (*plot.Plot, error) {
	fail := func(err error) (*plot.Plot, error) {
		return nil, fmt.Errorf("intervals: %v", err)
	}
	if len(sums) == 0 {
		return fail(errors.New("no data"))
	}
	var vals []float64
	for _, s := range sums {
		vals = append(vals, s.Lower, s.Upper, s.Mean)
	}
	ymin, ymax := yrange(opts.Min, opts.Max, vals...)
	p := newPlot(opts.Title, opts.XLabel, opts.YLabel)
	p.Y.Min, p.Y.Max = ymin, ymax

	if opts.Group > 0 {
		if err := addGroups(p, len(sums), opts.Group, ymin, ymax); err != nil {
			return fail(err)
		}
	}
	names := make([]string, len(sums))
	for i, s := range sums {
		names[i] = s.Model
		if s.N == 0 {
			continue
		}
		var c color.Color = Green
		if ratings.Shadow(s.Model) {
			c = Red
		}
		if opts.Gray {
			c = Black
			if ratings.Shadow(s.Model) {
				c = Gray
			}
		}
		ci, err := vline(float64(i), s.Lower, s.Upper, c, vg.Points(2))
		if err != nil {
			return fail(err)
		}
		mean, err := plotter.NewScatter(plotter.XYs{{X: float64(i), Y: s.Mean}})
		if err != nil {
			return fail(err)
		}
		mean.GlyphStyle = circle(c, vg.Points(5))
		p.Add(ci, mean)
	}
	if len(opts.F1) > 0 {
		labels, err := f1Labels(sums, opts, ymin, ymax)
		if err != nil {
			return fail(err)
		}
		if labels != nil {
			p.Add(labels)
		}
	}
	p.NominalX(names...)
	return p, nil
}

// addGroups adds the group separators and shading.
func addGroups(p *plot.Plot, n, size int, ymin, ymax float64) error {
	for start, k := 0, 0; start < n; start, k = start+size, k+1 {
		end := start + size
		if end > n {
			end = n
		}
		if k%2 == 0 {
			bg, err := rect(float64(start)-.5, float64(end)-.5, ymin, ymax, LightGray)
			if err != nil {
				return err
			}
			p.Add(bg)
		}
		if end < n {
			sep, err := vline(float64(end)-.5, ymin, ymax, Black, vg.Points(3))
			if err != nil {
				return err
			}
			p.Add(sep)
		}
	}
	return nil
}

// f1Labels places the F1 annotations at the center of the models'
// groups (or above the model itself if there are no groups).
func f1Labels(sums []ratings.Summary, opts IntervalOptions, ymin, ymax float64) (*plotter.Labels, error) {
	var data plotter.XYLabels
	y := ymax - (ymax-ymin)*.08
	for i, s := range sums {
		f1, ok := opts.F1[s.Model]
		if !ok {
			continue
		}
		x := float64(i)
		if opts.Group > 0 {
			start := (i / opts.Group) * opts.Group
			end := start + opts.Group
			if end > len(sums) {
				end = len(sums)
			}
			x = float64(start+end-1) / 2
		}
		data.XYs = append(data.XYs, plotter.XY{X: x, Y: y})
		data.Labels = append(data.Labels, fmt.Sprintf("F1 : %.3f", f1))
	}
	if len(data.Labels) == 0 {
		return nil, nil
	}
	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	return labels, nil
}
