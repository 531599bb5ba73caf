package score

import (
	"math"

	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"git.sr.ht/~flobar/lev"
	"gonum.org/v1/gonum/mat"
)

// maxSuggestionDistance is the maximal edit distance for name
// suggestions of unmatched objects.
const maxSuggestionDistance = 3

// Aligned holds the aligned truth and prediction matrices.  Rows are
// samples and columns are objects (labels).  If no object could be
// aligned, Truth and Pred are nil.
type Aligned struct {
	Labels []string
	Truth  *mat.Dense
	Pred   *mat.Dense
}

// Samples returns the number of aligned samples.
func (a Aligned) Samples() int {
	if a.Truth == nil {
		return 0
	}
	r, _ := a.Truth.Dims()
	return r
}

// Align builds the aligned label matrices from the accumulated truth
// and prediction vectors.  Objects are considered in the truth's
// insertion order.  An object is included if it exists on both sides,
// is part of the object list (if the list is not empty) and its truth
// and prediction vectors have the same length.  Excluded objects are
// reported in the returned diagnostics.
func Align(truth, pred *Vectors, objects *a11yeval.ObjectList) (Aligned, []Diagnostic) {
	var diags []Diagnostic
	allowed := func(name string) bool {
		return objects.Len() == 0 || objects.Contains(name)
	}

	type candidate struct {
		name string
		t, p []float64
	}
	cands := make([]candidate, 0, truth.Len())
	for _, name := range truth.Names() {
		if !allowed(name) {
			continue
		}
		t, _ := truth.Get(name)
		p, ok := pred.Get(name)
		if !ok {
			diags = append(diags, unmatched(name, "truth", pred, allowed))
			continue
		}
		if len(t) != len(p) {
			diags = append(diags, Diagnostic{
				Kind:   ObjectLengthMismatch,
				Object: name,
				Truth:  len(t),
				Pred:   len(p),
			})
			continue
		}
		cands = append(cands, candidate{name: name, t: t, p: p})
	}
	for _, name := range pred.Names() {
		if !allowed(name) {
			continue
		}
		if _, ok := truth.Get(name); !ok {
			diags = append(diags, unmatched(name, "prediction", truth, allowed))
		}
	}

	// All columns of the matrices must cover the same samples.  Use
	// the most common vector length (the one that gets there first on ties).
	n := dominantLength(len(cands), func(i int) int { return len(cands[i].t) })
	var labels []string
	var tdata, pdata []float64
	for _, c := range cands {
		if len(c.t) != n {
			diags = append(diags, Diagnostic{
				Kind:   SampleCountMismatch,
				Object: c.name,
				Truth:  len(c.t),
				Pred:   n,
			})
			continue
		}
		if tu, pu := countUndefined(c.t), countUndefined(c.p); tu+pu > 0 {
			diags = append(diags, Diagnostic{
				Kind:   UndefinedCells,
				Object: c.name,
				Truth:  tu,
				Pred:   pu,
			})
		}
		labels = append(labels, c.name)
		tdata = append(tdata, c.t...)
		pdata = append(pdata, c.p...)
	}
	if len(labels) == 0 || n == 0 {
		return Aligned{}, diags
	}
	// Stack the vectors as objects x samples and transpose to
	// samples x objects.
	return Aligned{
		Labels: labels,
		Truth:  mat.DenseCopyOf(mat.NewDense(len(labels), n, tdata).T()),
		Pred:   mat.DenseCopyOf(mat.NewDense(len(labels), n, pdata).T()),
	}, diags
}

func unmatched(name, side string, other *Vectors, allowed func(string) bool) Diagnostic {
	d := Diagnostic{Kind: UnmatchedObject, Object: name, Side: side}
	best := maxSuggestionDistance + 1
	var m lev.Mat
	for _, cand := range other.Names() {
		if !allowed(cand) {
			continue
		}
		if dist := m.Distance(name, cand); dist < best {
			best = dist
			d.Suggestion = cand
		}
	}
	return d
}

func dominantLength(n int, length func(int) int) int {
	counts := make(map[int]int)
	var best, max int
	for i := 0; i < n; i++ {
		l := length(i)
		counts[l]++
		if counts[l] > max {
			best, max = l, counts[l]
		}
	}
	return best
}

func countUndefined(xs []float64) int {
	var n int
	for _, x := range xs {
		if math.IsNaN(x) {
			n++
		}
	}
	return n
}
