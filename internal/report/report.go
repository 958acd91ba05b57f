// Package report renders the human-readable console reports: the static
// validation quality report and the FDR correction tables. Output is for
// operators, not machines; nothing here is meant to be parsed.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"matguard/domain/fdr"
	"matguard/domain/matlab"
	"matguard/internal/rules"
)

const bannerWidth = 80

// Validation is everything the static quality report needs
type Validation struct {
	RunID      string
	ScriptPath string
	ScriptHash string
	Lines      matlab.LineMetrics
	Delimiters matlab.DelimiterBalance
	Structures matlab.StructureCensus
	Checks     []rules.CheckResult
}

// RenderValidation writes the sectioned quality report
func RenderValidation(w io.Writer, v Validation) {
	banner(w)
	fmt.Fprintln(w, "COMPREHENSIVE STATIC VALIDATION - CLINICAL ASSOCIATIONS SCRIPT")
	banner(w)
	fmt.Fprintf(w, "\nScript:      %s\n", v.ScriptPath)
	fmt.Fprintf(w, "Fingerprint: %s\n", v.ScriptHash)
	fmt.Fprintf(w, "Run:         %s\n", v.RunID)
	fmt.Fprintf(w, "Total lines: %d\n\n", v.Lines.Total)

	fmt.Fprintf(w, "Delimiters:  parens %d/%d, brackets %d/%d, braces %d/%d\n",
		v.Delimiters.OpenParens, v.Delimiters.CloseParens,
		v.Delimiters.OpenBrackets, v.Delimiters.CloseBrackets,
		v.Delimiters.OpenBraces, v.Delimiters.CloseBraces)
	fmt.Fprintf(w, "Structures:  %d requiring 'end', %d end statements (balance %+d)\n",
		v.Structures.Total(), v.Structures.Ends, v.Structures.Balance())
	fmt.Fprintf(w, "Lines:       %d comment (%.1f%%), %d blank, %d code, %d section headers\n",
		v.Lines.Comment, 100*v.Lines.CommentRatio, v.Lines.Blank, v.Lines.Code, v.Lines.SectionHeaders)
	fmt.Fprintf(w, "Feedback:    %d fprintf messages, %d inconsistent indents\n",
		v.Lines.FprintfCalls, v.Lines.InconsistentIndents)

	// Sections in first-seen order.
	var order []string
	bySection := make(map[string][]rules.CheckResult)
	for _, c := range v.Checks {
		if _, seen := bySection[c.Section]; !seen {
			order = append(order, c.Section)
		}
		bySection[c.Section] = append(bySection[c.Section], c)
	}

	for _, section := range order {
		fmt.Fprintln(w)
		banner(w)
		fmt.Fprintln(w, section)
		banner(w)
		for _, c := range bySection[section] {
			fmt.Fprintf(w, "  %s: %s", marker(c), c.Rule)
			if c.Observed != "" {
				fmt.Fprintf(w, " = %s", c.Observed)
			}
			if c.Detail != "" {
				fmt.Fprintf(w, " (%s)", c.Detail)
			}
			fmt.Fprintln(w)
		}
	}

	passed, total := rules.Tally(v.Checks)
	fmt.Fprintln(w)
	banner(w)
	rate := 0.0
	if total > 0 {
		rate = 100 * float64(passed) / float64(total)
	}
	fmt.Fprintf(w, "OVERALL: %d/%d checks passed (%.1f%%)\n", passed, total, rate)
	banner(w)
}

func marker(c rules.CheckResult) string {
	switch {
	case c.Passed && c.Gate:
		return "PASS"
	case !c.Passed && c.Gate:
		return "FAIL"
	case !c.Passed:
		return "WARN"
	default:
		return "  - "
	}
}

// FDRReport describes one correction run, optionally with the expected
// outcome a harness scenario asserts against
type FDRReport struct {
	Title               string
	PValues             []float64
	Q                   float64
	Result              fdr.Result
	ExpectedSignificant int
	ExpectedCriticalP   float64
	HasExpectation      bool
}

// RenderFDR writes the per-rank threshold table and the correction summary.
// It returns whether the observed outcome matched the expectation (always
// true when the report carries none).
func RenderFDR(w io.Writer, r FDRReport) bool {
	banner(w)
	fmt.Fprintln(w, r.Title)
	banner(w)

	valid := make([]float64, 0, len(r.PValues))
	for _, p := range r.PValues {
		if !math.IsNaN(p) {
			valid = append(valid, p)
		}
	}
	sort.Float64s(valid)

	fmt.Fprintf(w, "Number of tests: %d (%d valid, %d missing)\n",
		len(r.PValues), len(valid), len(r.PValues)-len(valid))
	fmt.Fprintf(w, "FDR level (q):   %g\n\n", r.Q)

	thresholds := fdr.Thresholds(len(valid), r.Q)
	for k, p := range valid {
		status := "FAIL"
		if p <= thresholds[k] {
			status = "PASS"
		}
		fmt.Fprintf(w, "  Rank %2d: p=%.4f vs (k/m)*q=%.4f  %s\n", k+1, p, thresholds[k], status)
	}

	if len(valid) > 0 {
		min, _ := stats.Min(valid)
		max, _ := stats.Max(valid)
		mean, _ := stats.Mean(valid)
		median, _ := stats.Median(valid)
		fmt.Fprintf(w, "\nP-value summary: min=%.4f median=%.4f mean=%.4f max=%.4f\n",
			min, median, mean, max)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Significant tests:  %d\n", r.Result.NumSignificant)
	fmt.Fprintf(w, "Critical p-value:   %.4f\n", r.Result.CriticalP)
	if r.Result.NumSignificant == 0 {
		fmt.Fprintln(w, "Interpretation: no tests survive FDR correction")
	} else {
		fmt.Fprint(w, "Significant (1-based positions):")
		for i, sig := range r.Result.Significant {
			if sig {
				fmt.Fprintf(w, " %d", i+1)
			}
		}
		fmt.Fprintln(w)
	}

	if !r.HasExpectation {
		banner(w)
		return true
	}

	ok := r.Result.NumSignificant == r.ExpectedSignificant &&
		math.Abs(r.Result.CriticalP-r.ExpectedCriticalP) < 1e-4
	fmt.Fprintf(w, "\nExpected: %d significant, critical p %.4f\n",
		r.ExpectedSignificant, r.ExpectedCriticalP)
	if ok {
		fmt.Fprintln(w, "VERDICT: PASSED")
	} else {
		fmt.Fprintln(w, "VERDICT: FAILED")
	}
	banner(w)
	return ok
}

func banner(w io.Writer) {
	for i := 0; i < bannerWidth; i++ {
		fmt.Fprint(w, "=")
	}
	fmt.Fprintln(w)
}
