// Package testkit provides deterministic fixtures for tests: seeded p-value
// vectors and synthetic MATLAB sources with known census counts.
package testkit

import (
	"fmt"
	"math/rand"
	"strings"
)

// NullPValues generates n p-values drawn uniformly from (q, 1], i.e. a
// cohort where no test should survive correction at level q=0.05
func NullPValues(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	pvals := make([]float64, n)
	for i := range pvals {
		pvals[i] = 0.05 + 0.95*rng.Float64()
	}
	return pvals
}

// MixedPValues generates nSignal strong effects (p <= 0.001) followed by
// nNull weak ones (p in [0.1, 1)), shuffled deterministically so callers can
// exercise order handling
func MixedPValues(nSignal, nNull int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	pvals := make([]float64, 0, nSignal+nNull)
	for i := 0; i < nSignal; i++ {
		pvals = append(pvals, 0.001*rng.Float64())
	}
	for i := 0; i < nNull; i++ {
		pvals = append(pvals, 0.1+0.9*rng.Float64())
	}
	rng.Shuffle(len(pvals), func(i, j int) {
		pvals[i], pvals[j] = pvals[j], pvals[i]
	})
	return pvals
}

// ScriptSpec controls the synthetic MATLAB source generator
type ScriptSpec struct {
	Helpers      bool // emit all six helper function definitions
	Constants    bool // emit all seven named constants
	TryCatch     int  // balanced try/catch blocks
	CorrCalls    int  // corr() invocations
	FdrCalls     int  // fdr_bh() invocations
	IsnanChecks  int  // isnan() guards
	SampleChecks int  // if ... >= sample-size guards
	CommentEvery int  // one comment line per this many code lines (0 = none)
}

// WellFormedSpec describes a script that passes every gate in the clinical
// rule set
func WellFormedSpec() ScriptSpec {
	return ScriptSpec{
		Helpers:      true,
		Constants:    true,
		TryCatch:     2,
		CorrCalls:    3,
		FdrCalls:     2,
		IsnanChecks:  12,
		SampleChecks: 7,
		CommentEvery: 2,
	}
}

// SyntheticScript renders MATLAB source matching the spec. All emitted
// constructs are balanced, so delimiter and structure gates pass.
func SyntheticScript(spec ScriptSpec) string {
	var b strings.Builder

	b.WriteString("%% ===================== SECTION 1: SETUP =====================\n")
	b.WriteString("% Synthetic clinical associations fixture\n")
	b.WriteString("rng(42);\n\n")

	if spec.Constants {
		b.WriteString("MIN_SAMPLE_SIZE = 30;\n")
		b.WriteString("ALPHA_LEVEL = 0.05;\n")
		b.WriteString("FDR_LEVEL = 0.05;\n")
		b.WriteString("OUTLIER_THRESHOLD_DS = 10;\n")
		b.WriteString("OUTLIER_CODE = 99;\n")
		b.WriteString("MIN_PCA_SAMPLES = 50;\n")
		b.WriteString("CI_Z_SCORE = 1.96;\n\n")
	}

	emit := func(lines ...string) {
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	for i := 0; i < spec.TryCatch; i++ {
		emit("try", fmt.Sprintf("    data%d = readtable('cohort%d.csv');", i, i),
			"catch err", "    warning('load failed');", "end", "")
	}

	code := 0
	comment := func() {
		if spec.CommentEvery > 0 && code%spec.CommentEvery == 0 {
			b.WriteString("% step explanation\n")
			b.WriteString("% continued explanation\n")
		}
	}
	for i := 0; i < spec.CorrCalls; i++ {
		comment()
		emit(fmt.Sprintf("r%d = corr(x(:,%d), y);", i, i+1))
		code++
	}
	for i := 0; i < spec.FdrCalls; i++ {
		comment()
		emit(fmt.Sprintf("[h%d, crit_p%d, adj_p%d] = fdr_bh(pvals%d, FDR_LEVEL);", i, i, i, i))
		code++
	}
	for i := 0; i < spec.IsnanChecks; i++ {
		comment()
		emit(fmt.Sprintf("mask%d = ~isnan(v%d);", i, i))
		code++
	}
	for i := 0; i < spec.SampleChecks; i++ {
		comment()
		emit(fmt.Sprintf("if sum(mask%d) >= MIN_SAMPLE_SIZE", i), "    ok = true;", "end")
		code++
	}

	if spec.Helpers {
		emit("",
			"function [r, ci_low, ci_high] = calculate_correlation_with_CI(x, y)",
			"    r = corr(x, y);",
			"    ci_low = atanh(r) - CI_Z_SCORE;",
			"    ci_high = atanh(r) + CI_Z_SCORE;",
			"end",
			"",
			"function fig = create_forest_plot(effects)",
			"    fig = figure();",
			"end",
			"",
			"function label = get_label_safe(labels, idx)",
			"    label = labels{idx};",
			"end",
			"",
			"function [h, crit_p, adj_p] = fdr_bh(pvals, q)",
			"    h = pvals <= q;",
			"    crit_p = 0;",
			"    adj_p = pvals;",
			"end",
			"",
			"function out = ternary(cond, a, b)",
			"    if cond",
			"        out = a;",
			"    else",
			"        out = b;",
			"    end",
			"end",
			"",
			"function map = redblue(n)",
			"    map = zeros(n, 3);",
			"end")
	}

	return b.String()
}
