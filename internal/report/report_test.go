package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"matguard/domain/fdr"
	"matguard/domain/matlab"
	"matguard/internal/rules"
)

func TestRenderValidation(t *testing.T) {
	s := matlab.NewScript("analysis.m", "% doc\nx = fdr_bh(p, 0.05);\n")
	checks := []rules.CheckResult{
		{Rule: "Delimiter Balance", Section: "1. SYNTAX VALIDATION", Passed: true, Gate: true, Detail: "all balanced"},
		{Rule: "Helper Functions", Section: "2. HELPER FUNCTIONS", Passed: false, Gate: true, Observed: "5/6"},
		{Rule: "fdr_bh() calls", Section: "2. HELPER FUNCTIONS", Passed: true, Observed: "1"},
		{Rule: "Hardcoded outlier code 99", Section: "3. PARAMETER CONSTANTS", Passed: false, Observed: "2"},
	}

	var buf bytes.Buffer
	RenderValidation(&buf, Validation{
		RunID:      "run-1",
		ScriptPath: "analysis.m",
		ScriptHash: "abcdef123456",
		Lines:      s.LineStats(),
		Delimiters: s.Delimiters(),
		Structures: s.Structures(),
		Checks:     checks,
	})
	out := buf.String()

	for _, want := range []string{
		"COMPREHENSIVE STATIC VALIDATION",
		"Script:      analysis.m",
		"Fingerprint: abcdef123456",
		"1. SYNTAX VALIDATION",
		"PASS: Delimiter Balance",
		"FAIL: Helper Functions = 5/6",
		"WARN: Hardcoded outlier code 99",
		"OVERALL: 1/2 checks passed (50.0%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q\n---\n%s", want, out)
		}
	}

	// Sections render once each, in first-seen order.
	if strings.Count(out, "2. HELPER FUNCTIONS") != 1 {
		t.Error("Section header should render exactly once")
	}
	if strings.Index(out, "1. SYNTAX") > strings.Index(out, "2. HELPER") {
		t.Error("Sections out of order")
	}
}

func TestRenderFDR_WithExpectation(t *testing.T) {
	pvals := []float64{0.001, 0.008, 0.039, 0.041, 0.042, 0.060, 0.074, 0.205, 0.212, 0.216}
	res := fdr.Correct(pvals, 0.05)

	var buf bytes.Buffer
	ok := RenderFDR(&buf, FDRReport{
		Title:               "Classic worked example",
		PValues:             pvals,
		Q:                   0.05,
		Result:              res,
		ExpectedSignificant: 2,
		ExpectedCriticalP:   0.008,
		HasExpectation:      true,
	})
	out := buf.String()

	if !ok {
		t.Error("Expected the worked example to match its expectation")
	}
	for _, want := range []string{
		"Classic worked example",
		"Number of tests: 10 (10 valid, 0 missing)",
		"Rank  1: p=0.0010",
		"Significant tests:  2",
		"Critical p-value:   0.0080",
		"Significant (1-based positions): 1 2",
		"P-value summary:",
		"VERDICT: PASSED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FDR report missing %q\n---\n%s", want, out)
		}
	}
}

func TestRenderFDR_FailedExpectation(t *testing.T) {
	pvals := []float64{0.5, 0.6}
	res := fdr.Correct(pvals, 0.05)

	var buf bytes.Buffer
	ok := RenderFDR(&buf, FDRReport{
		Title:               "Wrong expectation",
		PValues:             pvals,
		Q:                   0.05,
		Result:              res,
		ExpectedSignificant: 2,
		ExpectedCriticalP:   0.6,
		HasExpectation:      true,
	})

	if ok {
		t.Error("Expected a verdict mismatch")
	}
	if !strings.Contains(buf.String(), "VERDICT: FAILED") {
		t.Error("Expected FAILED verdict in output")
	}
}

func TestRenderFDR_MissingValues(t *testing.T) {
	pvals := []float64{0.01, math.NaN(), 0.02}
	res := fdr.Correct(pvals, 0.05)

	var buf bytes.Buffer
	ok := RenderFDR(&buf, FDRReport{Title: "With missing", PValues: pvals, Q: 0.05, Result: res})
	out := buf.String()

	if !ok {
		t.Error("Report without expectation should return true")
	}
	if !strings.Contains(out, "(2 valid, 1 missing)") {
		t.Errorf("Expected missing-value accounting in header\n---\n%s", out)
	}
	if !strings.Contains(out, "Interpretation: no tests survive FDR correction") &&
		res.NumSignificant == 0 {
		t.Errorf("Expected interpretation line for empty rejection set\n---\n%s", out)
	}
}
