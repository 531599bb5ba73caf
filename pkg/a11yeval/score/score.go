// Package score aggregates multi-label annotation tables of ground
// truth and model predictions and scores the predictions with
// precision, recall and F1.
//
// Each label table holds the binary labels of a set of objects (like
// curbs or benches) for a set of samples.  Tables with the same file
// name in the truth and prediction sources describe the same samples.
// The values of an object are concatenated over all files in the
// given file order.  The resulting vectors are aligned into a samples
// x objects matrix pair that is scored as a multi-label
// classification.
package score

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval"
	"gonum.org/v1/gonum/mat"
)

// Options configure a scoring run.
type Options struct {
	// Files lists the table files to process.  The order of the
	// files defines the order of the samples.
	Files []string
	// Objects optionally restricts the scoring to the given objects.
	Objects *a11yeval.ObjectList
	// Layout selects the table parsing strategy.
	Layout Layout
	// Average selects the averaging strategy.
	Average Average
}

// Result holds the result of a scoring run.
type Result struct {
	Scores
	// Labels lists the scored objects in column order.
	Labels []string
	// Truth, Pred and Residual are samples x objects matrices.
	Truth, Pred, Residual *mat.Dense
	// PerLabel holds the counts and scores of each scored object.
	PerLabel []LabelScore
	// Diagnostics lists all data irregularities encountered.
	Diagnostics []Diagnostic
}

// Score scores the prediction tables in pred against the truth
// tables in truth.  Files missing on either side and tables without
// any listed object are skipped, length mismatches exclude the
// affected objects; all are reported in the result's diagnostics.  If no data remains to be scored, Score
// returns an error wrapping ErrInsufficientData together with a
// result that holds the diagnostics.  Score does not log; the caller
// decides what to do with the diagnostics.
func Score(truth, pred fs.FS, opts Options) (*Result, error) {
	fail := func(err error) error {
		return fmt.Errorf("score: %w", err)
	}
	layout := opts.Layout.resolve(opts.Objects)
	if (layout == LayoutColumns || layout == LayoutListed) && opts.Objects.Len() == 0 {
		return nil, fail(fmt.Errorf("%s layout requires an object list", layout))
	}

	var res Result
	tvecs, pvecs := NewVectors(), NewVectors()
	for _, file := range opts.Files {
		if !exists(truth, file) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: MissingTruth, File: file})
			continue
		}
		if !exists(pred, file) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: MissingPrediction, File: file})
			continue
		}
		t, err := readTable(truth, file, layout, opts.Objects)
		if errors.Is(err, ErrNoListedObjects) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: NoListedObjects, File: file, Side: "truth"})
			continue
		}
		if err != nil {
			return nil, fail(err)
		}
		p, err := readTable(pred, file, layout, opts.Objects)
		if errors.Is(err, ErrNoListedObjects) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: NoListedObjects, File: file, Side: "prediction"})
			continue
		}
		if err != nil {
			return nil, fail(err)
		}
		if tn, pn := tvecs.Add(t), pvecs.Add(p); tn != pn {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Kind:  FileLengthMismatch,
				File:  file,
				Truth: tn,
				Pred:  pn,
			})
		}
	}

	aligned, diags := Align(tvecs, pvecs, opts.Objects)
	res.Diagnostics = append(res.Diagnostics, diags...)
	if aligned.Samples() == 0 {
		return &res, fail(ErrInsufficientData)
	}
	scores, per, err := Evaluate(aligned.Truth, aligned.Pred, opts.Average)
	if err != nil {
		return &res, fail(err)
	}
	for i := range per {
		per[i].Name = aligned.Labels[i]
	}
	res.Scores = scores
	res.Labels = aligned.Labels
	res.Truth = aligned.Truth
	res.Pred = aligned.Pred
	res.Residual = Residual(aligned.Truth, aligned.Pred)
	res.PerLabel = per
	return &res, nil
}

func exists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}

func readTable(fsys fs.FS, name string, layout Layout, objects *a11yeval.ObjectList) (Table, error) {
	is, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("readTable %s: %w", name, err)
	}
	defer is.Close()
	var t Table
	switch layout {
	case LayoutColumns:
		t, err = ParseColumns(is, objects)
	case LayoutListed:
		t, err = ParseListed(is, objects)
	default:
		t, err = ParseRows(is)
	}
	if err != nil {
		return nil, fmt.Errorf("readTable %s: %w", name, err)
	}
	return t, nil
}

// ListFiles returns the names of the regular files in the root
// directory of fsys with the given extension (all files if ext is
// empty), sorted by name.
func ListFiles(fsys fs.FS, ext string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listFiles: %v", err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ext != "" && path.Ext(e.Name()) != ext {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
