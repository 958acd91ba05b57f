// Package fdr implements the Benjamini-Hochberg false discovery rate
// correction used by the clinical associations pipeline.
//
// The procedure compares sorted p-values against rank-scaled thresholds
// (k/m)*q and admits every test whose raw p-value is at or below the largest
// passing p-value (the critical p-value). Missing entries (NaN) are excluded
// from the ranking math but keep their positions in every output.
package fdr

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Result holds the outcome of one Benjamini-Hochberg correction.
//
// INVARIANTS:
// - Significant and Adjusted have the same length and order as the input
// - CriticalP is 0 when no test survives
// - Adjusted is NaN exactly at the input's NaN positions
// - Adjusted, read in ascending raw p-value order, is non-decreasing
type Result struct {
	Significant    []bool    `json:"significant"`     // true iff the test survives correction
	CriticalP      float64   `json:"critical_p"`      // largest p-value admitted into the rejection set
	Adjusted       []float64 `json:"adjusted_p"`      // step-down adjusted p-values, clamped to 1.0
	Level          float64   `json:"level"`           // the q this result was computed at
	NumValid       int       `json:"num_valid"`       // non-missing entries that entered the ranking
	NumSignificant int       `json:"num_significant"` // tests surviving correction
}

// Correct applies the Benjamini-Hochberg procedure at level q.
//
// NaN entries are treated as missing: they never reach the ranking, their
// significance flag is false, and their adjusted p-value is NaN. The function
// is pure and never fails; q outside (0,1] simply follows the formula (q=0
// rejects nothing unless a p-value is exactly 0).
func Correct(pvals []float64, q float64) Result {
	n := len(pvals)
	res := Result{
		Significant: make([]bool, n),
		Adjusted:    make([]float64, n),
		Level:       q,
	}

	// Partition valid and missing entries by position.
	valid := make([]float64, 0, n)
	validPos := make([]int, 0, n)
	for i, p := range pvals {
		if math.IsNaN(p) {
			res.Adjusted[i] = math.NaN()
			continue
		}
		valid = append(valid, p)
		validPos = append(validPos, i)
	}

	m := len(valid)
	res.NumValid = m
	if m == 0 {
		return res
	}

	// Sort ascending, recording the permutation back to input order.
	sorted := make([]float64, m)
	copy(sorted, valid)
	perm := make([]int, m)
	floats.Argsort(sorted, perm)

	// Largest rank k (1-indexed) with p(k) <= (k/m)*q.
	kmax := -1
	for k := m - 1; k >= 0; k-- {
		if sorted[k] <= float64(k+1)/float64(m)*q {
			kmax = k
			break
		}
	}

	// Significance by comparison against the critical p-value, not against
	// rank. Ties at the critical value are all admitted.
	sigSorted := make([]bool, m)
	if kmax >= 0 {
		res.CriticalP = sorted[kmax]
		for k := range sorted {
			sigSorted[k] = sorted[k] <= res.CriticalP
		}
	}

	// Step-down adjusted p-values: one backward pass, each rank capped by the
	// next larger rank's value and clamped to 1.0.
	adjSorted := make([]float64, m)
	adjSorted[m-1] = math.Min(1.0, sorted[m-1])
	for k := m - 2; k >= 0; k-- {
		adj := float64(m) / float64(k+1) * sorted[k]
		adjSorted[k] = math.Min(1.0, math.Min(adj, adjSorted[k+1]))
	}

	// Un-sort back to input order and re-insert around missing positions.
	for k := range sorted {
		pos := validPos[perm[k]]
		res.Significant[pos] = sigSorted[k]
		res.Adjusted[pos] = adjSorted[k]
		if sigSorted[k] {
			res.NumSignificant++
		}
	}

	return res
}

// Thresholds returns the rank-scaled threshold ladder (k/m)*q for k=1..m.
// Report rendering uses it to show the per-rank comparison the procedure made.
func Thresholds(m int, q float64) []float64 {
	if m <= 0 {
		return nil
	}
	thresh := make([]float64, m)
	for k := 0; k < m; k++ {
		thresh[k] = float64(k+1) / float64(m) * q
	}
	return thresh
}
