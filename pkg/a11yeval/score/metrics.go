package score

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrInsufficientData is returned if there is no aligned data to
// score (no shared objects or no samples).
var ErrInsufficientData = errors.New("insufficient data")

// Average defines how the per label counts are averaged.
type Average int

// Averaging strategies.
const (
	// Micro pools the counts over all labels and samples.
	Micro Average = iota
	// Macro is the unweighted mean of the per label scores.
	Macro
	// Weighted is the mean of the per label scores weighted by the
	// labels' support.
	Weighted
	// Samples is the mean of the per sample scores.
	Samples
)

// ParseAverage parses the name of an averaging strategy.  An empty
// name defaults to Micro.
func ParseAverage(name string) (Average, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "micro":
		return Micro, nil
	case "macro":
		return Macro, nil
	case "weighted":
		return Weighted, nil
	case "samples":
		return Samples, nil
	default:
		return 0, fmt.Errorf("parseAverage: invalid averaging strategy: %q", name)
	}
}

func (a Average) String() string {
	switch a {
	case Micro:
		return "micro"
	case Macro:
		return "macro"
	case Weighted:
		return "weighted"
	case Samples:
		return "samples"
	default:
		return fmt.Sprintf("Average(%d)", int(a))
	}
}

// Scores holds aggregated classification scores.
type Scores struct {
	Precision, Recall, F1 float64
}

// LabelScore holds the counts and scores of one label (object).
type LabelScore struct {
	Name           string
	TP, FP, TN, FN int
	Scores
}

// Support returns the number of positive truth values of the label.
func (l LabelScore) Support() int {
	return l.TP + l.FN
}

type stats struct {
	tp, tn, fp, fn int
}

// positive returns true if the given value is a positive label.
// Undefined (NaN) values are negative.
func positive(x float64) bool {
	return x > 0
}

func (s *stats) add(y, p float64) {
	switch yes, pos := positive(y), positive(p); {
	case yes && pos:
		s.tp++
	case yes:
		s.fn++
	case pos:
		s.fp++
	default:
		s.tn++
	}
}

func (s *stats) recall() float64 {
	if s.tp == 0 && s.fn == 0 {
		return 0
	}
	return float64(s.tp) / float64(s.tp+s.fn)
}

func (s *stats) precision() float64 {
	if s.tp == 0 && s.fp == 0 {
		return 0
	}
	return float64(s.tp) / float64(s.tp+s.fp)
}

func (s *stats) f1() float64 {
	if s.tp == 0 {
		return 0
	}
	return float64(2*s.tp) / float64(2*s.tp+s.fp+s.fn)
}

func (s *stats) scores() Scores {
	return Scores{Precision: s.precision(), Recall: s.recall(), F1: s.f1()}
}

// Evaluate calculates precision, recall and F1 of the prediction
// matrix against the truth matrix.  Rows are samples, columns are
// labels.  Values > 0 are positive; everything else (including NaN)
// is negative.  Undefined ratios (zero denominators) are scored as 0.
// The per label scores are returned in column order.
func Evaluate(truth, pred mat.Matrix, avg Average) (Scores, []LabelScore, error) {
	if truth == nil || pred == nil {
		return Scores{}, nil, fmt.Errorf("evaluate: %w", ErrInsufficientData)
	}
	r, c := truth.Dims()
	if pr, pc := pred.Dims(); pr != r || pc != c {
		return Scores{}, nil, fmt.Errorf("evaluate: dimension mismatch: %dx%d vs %dx%d", r, c, pr, pc)
	}
	if r == 0 || c == 0 {
		return Scores{}, nil, fmt.Errorf("evaluate: %w", ErrInsufficientData)
	}

	labels := make([]stats, c)
	samples := make([]stats, r)
	var total stats
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			y, p := truth.At(i, j), pred.At(i, j)
			labels[j].add(y, p)
			samples[i].add(y, p)
			total.add(y, p)
		}
	}

	per := make([]LabelScore, c)
	for j := range labels {
		per[j] = LabelScore{
			TP:     labels[j].tp,
			FP:     labels[j].fp,
			TN:     labels[j].tn,
			FN:     labels[j].fn,
			Scores: labels[j].scores(),
		}
	}

	switch avg {
	case Micro:
		return total.scores(), per, nil
	case Macro:
		return mean(len(labels), func(i int) (Scores, float64) {
			return labels[i].scores(), 1
		}), per, nil
	case Weighted:
		return mean(len(labels), func(i int) (Scores, float64) {
			return labels[i].scores(), float64(labels[i].tp + labels[i].fn)
		}), per, nil
	case Samples:
		return mean(len(samples), func(i int) (Scores, float64) {
			return samples[i].scores(), 1
		}), per, nil
	default:
		return Scores{}, nil, fmt.Errorf("evaluate: invalid averaging strategy: %s", avg)
	}
}

// mean calculates the weighted mean of n scores.  If the weights sum
// up to 0, all scores are 0.
func mean(n int, f func(int) (Scores, float64)) Scores {
	var sum Scores
	var weights float64
	for i := 0; i < n; i++ {
		s, w := f(i)
		sum.Precision += w * s.Precision
		sum.Recall += w * s.Recall
		sum.F1 += w * s.F1
		weights += w
	}
	if weights == 0 {
		return Scores{}
	}
	return Scores{
		Precision: sum.Precision / weights,
		Recall:    sum.Recall / weights,
		F1:        sum.F1 / weights,
	}
}

// Residual calculates the residual matrix 2*truth - pred.  For binary
// values the cells encode the four outcomes: 1 (true positive), 2
// (false negative), -1 (false positive) and 0 (true negative).
// Undefined values are treated as 0.
func Residual(truth, pred mat.Matrix) *mat.Dense {
	var t, p mat.Dense
	t.Apply(defined, truth)
	p.Apply(defined, pred)
	var res mat.Dense
	res.Scale(2, &t)
	res.Sub(&res, &p)
	return &res
}

func defined(_, _ int, x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}
