package ratings

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Test is the result of a two-sided significance test.
type Test struct {
	U     float64 // statistic of the first sample
	Z     float64 // standardized statistic (normal approximation only)
	P     float64 // two-sided p-value
	Exact bool    // P was calculated from the exact distribution of U
}

// Significant returns true if P < alpha.
func (t Test) Significant(alpha float64) bool {
	return t.P < alpha
}

// maxExact is the sample size up to which the exact distribution of U
// is used if there are no ties.
const maxExact = 8

// MannWhitneyU performs a two-sided Mann-Whitney U test of the two
// samples.  If one of the samples has at most 8 values and there are
// no ties, the p-value is calculated from the exact distribution of
// U.  Otherwise it uses the normal approximation with tie and
// continuity correction.  If all values are tied, P is 1.
func MannWhitneyU(x, y []float64) (Test, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return Test{}, errors.New("mannWhitneyU: empty sample")
	}
	type obs struct {
		val   float64
		first bool
	}
	all := make([]obs, 0, n1+n2)
	for _, v := range x {
		all = append(all, obs{v, true})
	}
	for _, v := range y {
		all = append(all, obs{v, false})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].val < all[j].val })

	// Assign average ranks to ties.
	var r1, ties float64
	for i := 0; i < len(all); {
		j := i
		for j < len(all) && all[j].val == all[i].val {
			j++
		}
		rank := float64(i+j+1) / 2 // mean of the ranks i+1..j
		for k := i; k < j; k++ {
			if all[k].first {
				r1 += rank
			}
		}
		t := float64(j - i)
		ties += t*t*t - t
		i = j
	}

	fn1, fn2, n := float64(n1), float64(n2), float64(n1+n2)
	u1 := r1 - fn1*(fn1+1)/2
	u := math.Max(u1, fn1*fn2-u1)
	if ties == 0 && (n1 <= maxExact || n2 <= maxExact) {
		p := math.Min(1, 2*exactSurvival(int(math.Round(u)), n1, n2))
		return Test{U: u1, P: p, Exact: true}, nil
	}
	mu := fn1 * fn2 / 2
	sigma := math.Sqrt(fn1 * fn2 / 12 * ((n + 1) - ties/(n*(n-1))))
	if sigma == 0 || math.IsNaN(sigma) {
		return Test{U: u1, P: 1}, nil
	}
	z := (u - mu - .5) / sigma
	p := math.Min(1, 2*distuv.UnitNormal.Survival(z))
	return Test{U: u1, Z: z, P: p}, nil
}

// exactSurvival returns P(U >= u) for samples of size n1 and n2
// without ties.  The number of arrangements with U = k is the k-th
// coefficient of the Gaussian binomial coefficient
// prod_{i=1}^{m} (1-q^(n+i))/(1-q^i) with m = min(n1, n2) and n =
// max(n1, n2).
func exactSurvival(u, n1, n2 int) float64 {
	m, n := n1, n2
	if m > n {
		m, n = n, m
	}
	c := make([]float64, m*n+1)
	c[0] = 1
	for i := 1; i <= m; i++ {
		// multiply by 1-q^(n+i)
		for k := len(c) - 1; k >= n+i; k-- {
			c[k] -= c[k-n-i]
		}
		// divide by 1-q^i
		for k := i; k < len(c); k++ {
			c[k] += c[k-i]
		}
	}
	var total, tail float64
	for k, x := range c {
		total += x
		if k >= u {
			tail += x
		}
	}
	return tail / total
}
