package app

import (
	"fmt"
	"io"

	"matguard/domain/fdr"
	"matguard/internal/report"
)

// Scenario is one named correction run with a known expected outcome
type Scenario struct {
	Name                string
	PValues             []float64
	Q                   float64
	ExpectedSignificant int
	ExpectedCriticalP   float64
}

// FDRHarness replays correction scenarios with known outcomes and reports
// whether the implementation reproduces them. It is the operator-facing
// self-check for the correction math.
type FDRHarness struct {
	scenarios []Scenario
}

// DefaultScenarios returns the standard self-check suite: the classic
// Benjamini-Hochberg worked example, a cohort where nothing survives, a
// cohort where everything survives, and a realistic symptom panel whose
// uncorrected hits are too weak to survive correction.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{
			Name:                "Classic Benjamini-Hochberg example",
			PValues:             []float64{0.001, 0.008, 0.039, 0.041, 0.042, 0.060, 0.074, 0.205, 0.212, 0.216},
			Q:                   0.05,
			ExpectedSignificant: 2,
			ExpectedCriticalP:   0.008,
		},
		{
			Name:                "No tests significant",
			PValues:             []float64{0.06, 0.08, 0.10, 0.15, 0.20, 0.30, 0.40, 0.50, 0.60, 0.70, 0.80},
			Q:                   0.05,
			ExpectedSignificant: 0,
			ExpectedCriticalP:   0,
		},
		{
			Name:                "All tests highly significant",
			PValues:             []float64{0.0001, 0.0002, 0.0003, 0.0004, 0.0005, 0.0006, 0.0007, 0.0008, 0.0009, 0.0010},
			Q:                   0.05,
			ExpectedSignificant: 10,
			ExpectedCriticalP:   0.0010,
		},
		{
			Name:                "Realistic symptom panel (11 variables)",
			PValues:             []float64{0.01, 0.02, 0.03, 0.10, 0.15, 0.25, 0.35, 0.50, 0.65, 0.80, 0.90},
			Q:                   0.05,
			ExpectedSignificant: 0,
			ExpectedCriticalP:   0,
		},
	}
}

// NewFDRHarness creates a harness; with no scenarios it runs the default suite
func NewFDRHarness(scenarios ...Scenario) *FDRHarness {
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios()
	}
	return &FDRHarness{scenarios: scenarios}
}

// Run replays every scenario, rendering each report to w, and returns
// whether all of them matched their expected outcomes
func (h *FDRHarness) Run(w io.Writer) bool {
	allPassed := true
	for _, sc := range h.scenarios {
		res := fdr.Correct(sc.PValues, sc.Q)
		ok := report.RenderFDR(w, report.FDRReport{
			Title:               sc.Name,
			PValues:             sc.PValues,
			Q:                   sc.Q,
			Result:              res,
			ExpectedSignificant: sc.ExpectedSignificant,
			ExpectedCriticalP:   sc.ExpectedCriticalP,
			HasExpectation:      true,
		})
		if !ok {
			allPassed = false
		}
		fmt.Fprintln(w)
	}

	if allPassed {
		fmt.Fprintln(w, "All correction scenarios reproduced their expected outcomes.")
	} else {
		fmt.Fprintln(w, "One or more correction scenarios FAILED; do not trust downstream results.")
	}
	return allPassed
}
