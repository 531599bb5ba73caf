package ratings

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestMannWhitneyU(t *testing.T) {
	for _, tc := range []struct {
		name string
		x, y []float64
		u    float64
		pmin float64
		pmax float64
	}{
		{"separated", []float64{1, 2, 3}, []float64{4, 5, 6}, 0, .1, .1},
		{"swapped", []float64{4, 5, 6}, []float64{1, 2, 3}, 9, .1, .1},
		{"unequal sizes", []float64{1, 2}, []float64{3, 4, 5}, 0, .2, .2},
		{"ties", []float64{1, 1, 2}, []float64{1, 3, 3}, 2, .2, 1},
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 4.5, 1, 1},
		{"all tied", []float64{1, 1}, []float64{1}, 1, 1, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MannWhitneyU(tc.x, tc.y)
			if err != nil {
				t.Fatalf("got error: %v", err)
			}
			if !scalar.EqualWithinAbs(got.U, tc.u, tol) {
				t.Fatalf("expected U=%g; got %g", tc.u, got.U)
			}
			if got.P < tc.pmin || got.P > tc.pmax {
				t.Fatalf("expected p in [%g,%g]; got %g", tc.pmin, tc.pmax, got.P)
			}
		})
	}
}

func TestMannWhitneyUMethod(t *testing.T) {
	large := make([]float64, 10)
	larger := make([]float64, 12)
	for i := range large {
		large[i] = float64(2 * i)
	}
	for i := range larger {
		larger[i] = float64(2*i + 1)
	}
	for _, tc := range []struct {
		name  string
		x, y  []float64
		exact bool
	}{
		{"small without ties", []float64{1, 3, 5}, []float64{2, 4}, true},
		{"small with ties", []float64{1, 3, 5}, []float64{3, 4}, false},
		{"one small sample", []float64{.5, 2.5, 4.5}, larger, true},
		{"large samples", large, larger, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MannWhitneyU(tc.x, tc.y)
			if err != nil {
				t.Fatalf("got error: %v", err)
			}
			if got.Exact != tc.exact {
				t.Fatalf("expected exact=%t; got %t", tc.exact, got.Exact)
			}
			if got.P <= 0 || got.P > 1 {
				t.Fatalf("expected p in (0,1]; got %g", got.P)
			}
		})
	}
}

func TestExactSurvival(t *testing.T) {
	for _, tc := range []struct {
		u, n1, n2 int
		want      float64
	}{
		{9, 3, 3, 1.0 / 20},
		{0, 3, 3, 1},
		{8, 3, 3, 2.0 / 20},
		{6, 2, 3, 1.0 / 10},
		{5, 3, 2, 2.0 / 10},
		{2, 1, 2, 1.0 / 3},
	} {
		if got := exactSurvival(tc.u, tc.n1, tc.n2); !scalar.EqualWithinAbs(got, tc.want, tol) {
			t.Fatalf("expected P(U>=%d|%d,%d)=%g; got %g", tc.u, tc.n1, tc.n2, tc.want, got)
		}
	}
}

func TestMannWhitneyUEmpty(t *testing.T) {
	if _, err := MannWhitneyU(nil, []float64{1}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSignificant(t *testing.T) {
	if !(Test{P: .01}).Significant(.05) {
		t.Fatalf("expected significant")
	}
	if (Test{P: .05}).Significant(.05) {
		t.Fatalf("expected not significant")
	}
}
