// Package ratings reads and summarizes the participant rating logs of
// the user study.
package ratings

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Record is one rating of a participant.
type Record struct {
	Participant string
	Expertise   string
	Model       string
	Score       float64 // raw user rating
	Normalized  float64 // normalized user rating
	F1Base      float64 // F1 of the rated model output
}

// Columns names the csv columns of the rating fields.
type Columns struct {
	Participant string `json:"participant" toml:"participant"`
	Expertise   string `json:"expertise" toml:"expertise"`
	Model       string `json:"model" toml:"model"`
	Score       string `json:"score" toml:"score"`
	Normalized  string `json:"normalized" toml:"normalized"`
	F1Base      string `json:"f1Base" toml:"f1Base"`
}

// DefaultColumns are the column names of the study logs.
var DefaultColumns = Columns{
	Participant: "participant",
	Expertise:   "expertise",
	Model:       "model left",
	Score:       "score",
	Normalized:  "normalized_score",
	F1Base:      "F1-Base",
}

// withDefaults returns the columns with all empty names set to their
// default.
func (c Columns) withDefaults() Columns {
	set := func(dest *string, def string) {
		if *dest == "" {
			*dest = def
		}
	}
	set(&c.Participant, DefaultColumns.Participant)
	set(&c.Expertise, DefaultColumns.Expertise)
	set(&c.Model, DefaultColumns.Model)
	set(&c.Score, DefaultColumns.Score)
	set(&c.Normalized, DefaultColumns.Normalized)
	set(&c.F1Base, DefaultColumns.F1Base)
	return c
}

// Read reads rating records from a csv file with a header row.  The
// model column is required; all other columns are optional.  Missing
// or empty numeric values are NaN.
func Read(r io.Reader, cols Columns) ([]Record, error) {
	fail := func(err error) ([]Record, error) {
		return nil, fmt.Errorf("read ratings: %v", err)
	}
	cols = cols.withDefaults()
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return fail(err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	if _, ok := idx[cols.Model]; !ok {
		return fail(fmt.Errorf("missing column %q", cols.Model))
	}
	var recs []Record
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return fail(err)
		}
		str := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		num := func(col string) (float64, error) {
			s := str(col)
			if s == "" {
				return math.NaN(), nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: column %q: invalid number %q", line, col, s)
			}
			return f, nil
		}
		rec := Record{
			Participant: str(cols.Participant),
			Expertise:   str(cols.Expertise),
			Model:       str(cols.Model),
		}
		if rec.Score, err = num(cols.Score); err != nil {
			return fail(err)
		}
		if rec.Normalized, err = num(cols.Normalized); err != nil {
			return fail(err)
		}
		if rec.F1Base, err = num(cols.F1Base); err != nil {
			return fail(err)
		}
		recs = append(recs, rec)
	}
}

// Shadow returns true if the model name denotes a shadow variant.
func Shadow(model string) bool {
	return strings.Contains(model, "@Shadow")
}

// SummaryOptions configure Summarize.
type SummaryOptions struct {
	// Exclude lists models that are dropped.
	Exclude []string
	// Order lists the models in the order of the summaries.  If
	// empty, all remaining models are summarized in sorted order.
	// Models that are not listed are dropped.
	Order []string
	// Center subtracts the grand mean of all kept values before the
	// summaries are calculated.
	Center bool
	// Lower and Upper are the quantiles of the confidence interval
	// (defaults .025 and .975).
	Lower, Upper float64
}

// Summary summarizes the ratings of one model.
type Summary struct {
	Model string
	N     int
	Mean  float64
	Lower float64
	Upper float64
}

// Summarize calculates mean and percentile interval of the values of
// the records grouped by model.  NaN values are ignored.  A model in
// the order without any values yields a summary with N == 0 and NaN
// statistics.
func Summarize(recs []Record, value func(Record) float64, opts SummaryOptions) ([]Summary, error) {
	if opts.Lower == 0 && opts.Upper == 0 {
		opts.Lower, opts.Upper = .025, .975
	}
	if !(0 <= opts.Lower && opts.Lower <= opts.Upper && opts.Upper <= 1) {
		return nil, fmt.Errorf("summarize: invalid interval [%g,%g]", opts.Lower, opts.Upper)
	}
	exclude := make(map[string]bool, len(opts.Exclude))
	for _, m := range opts.Exclude {
		exclude[m] = true
	}
	order := make(map[string]bool, len(opts.Order))
	for _, m := range opts.Order {
		order[m] = true
	}
	groups := make(map[string][]float64)
	var all []float64
	for _, rec := range recs {
		if exclude[rec.Model] || (len(order) > 0 && !order[rec.Model]) {
			continue
		}
		v := value(rec)
		if math.IsNaN(v) {
			continue
		}
		groups[rec.Model] = append(groups[rec.Model], v)
		all = append(all, v)
	}
	if opts.Center && len(all) > 0 {
		m := stat.Mean(all, nil)
		for _, vals := range groups {
			for i := range vals {
				vals[i] -= m
			}
		}
	}
	models := opts.Order
	if len(models) == 0 {
		for m := range groups {
			models = append(models, m)
		}
		sort.Strings(models)
	}
	ret := make([]Summary, 0, len(models))
	for _, m := range models {
		if exclude[m] {
			continue
		}
		ret = append(ret, summarize(m, groups[m], opts.Lower, opts.Upper))
	}
	return ret, nil
}

func summarize(model string, vals []float64, lower, upper float64) Summary {
	if len(vals) == 0 {
		nan := math.NaN()
		return Summary{Model: model, Mean: nan, Lower: nan, Upper: nan}
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return Summary{
		Model: model,
		N:     len(sorted),
		Mean:  stat.Mean(sorted, nil),
		Lower: percentile(lower, sorted),
		Upper: percentile(upper, sorted),
	}
}

// percentile returns the p-quantile of the sorted values.  It
// interpolates linearly between the closest ranks at position
// (n-1)*p, which matches numpy's default percentile method.
func percentile(p float64, sorted []float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Deviation is the quality of a single rating: the difference
// between the F1 of the rated output and the user's rating.
type Deviation struct {
	Participant string
	Expertise   string
	Model       string
	Value       float64
}

// Deviations calculates the rating quality F1Base - Score of each
// record.  Records with undefined values are skipped.
func Deviations(recs []Record) []Deviation {
	var ret []Deviation
	for _, rec := range recs {
		v := rec.F1Base - rec.Score
		if math.IsNaN(v) {
			continue
		}
		ret = append(ret, Deviation{
			Participant: rec.Participant,
			Expertise:   rec.Expertise,
			Model:       rec.Model,
			Value:       v,
		})
	}
	return ret
}

// ByExpertise returns the deviation values of the given expertise.
func ByExpertise(devs []Deviation, expertise string) []float64 {
	var ret []float64
	for _, d := range devs {
		if d.Expertise == expertise {
			ret = append(ret, d.Value)
		}
	}
	return ret
}
