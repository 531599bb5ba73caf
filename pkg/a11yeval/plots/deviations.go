package plots

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/ratings"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DeviationOptions configure the rating quality plot.
type DeviationOptions struct {
	Title, XLabel, YLabel string
	// Min and Max fix the range of the y-axis if Min < Max.
	Min, Max float64
	// Participants lists the participants in plot order.  If empty,
	// all participants are plotted in sorted order.
	Participants []string
	// Expertise lists the expertise levels in legend order.  If
	// empty, the levels are sorted.
	Expertise []string
	// Separator draws a vertical line at the given x position if it
	// is positive.
	Separator float64
}

// Deviations plots a box of the rating deviations of each
// participant.  The boxes are filled according to the participant's
// expertise.
func Deviations(devs []ratings.Deviation, opts DeviationOptions) (*plot.Plot, error) {
	fail := func(err error) (*plot.Plot, error) {
		return nil, fmt.Errorf("deviations: %v", err)
	}
	if len(devs) == 0 {
		return fail(errors.New("no data"))
	}
	values := make(map[string]plotter.Values)
	expertise := make(map[string]string)
	var all []float64
	for _, d := range devs {
		values[d.Participant] = append(values[d.Participant], d.Value)
		expertise[d.Participant] = d.Expertise
		all = append(all, d.Value)
	}
	participants := opts.Participants
	if len(participants) == 0 {
		participants = sortedKeys(values)
	}
	levels := opts.Expertise
	if len(levels) == 0 {
		set := make(map[string]plotter.Values)
		for _, e := range expertise {
			set[e] = nil
		}
		levels = sortedKeys(set)
	}
	fills := make(map[string]color.Color, len(levels))
	for i, e := range levels {
		fills[e] = grayLevel(i, len(levels))
	}

	ymin, ymax := yrange(opts.Min, opts.Max, all...)
	p := newPlot(opts.Title, opts.XLabel, opts.YLabel)
	p.Y.Min, p.Y.Max = ymin, ymax
	legend := make(map[string]bool)
	for i, name := range participants {
		vals := values[name]
		if len(vals) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), vals)
		if err != nil {
			return fail(err)
		}
		e := expertise[name]
		box.FillColor = fills[e]
		p.Add(box)
		legend[e] = true
	}
	for _, e := range levels {
		if !legend[e] {
			continue
		}
		sw, err := rect(0, 1, 0, 1, fills[e])
		if err != nil {
			return fail(err)
		}
		p.Legend.Add(e, sw)
	}
	if opts.Separator > 0 {
		sep, err := vline(opts.Separator, ymin, ymax, Black, vg.Points(3))
		if err != nil {
			return fail(err)
		}
		p.Add(sep)
	}
	p.Legend.Top = true
	p.NominalX(participants...)
	return p, nil
}

// grayLevel returns the i-th of n gray levels between light gray and
// dark gray.
func grayLevel(i, n int) color.Color {
	if n <= 1 {
		return LightGray
	}
	const light, dark = 220, 90
	y := light - (light-dark)*i/(n-1)
	return color.Gray{Y: uint8(y)}
}

func sortedKeys(m map[string]plotter.Values) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
