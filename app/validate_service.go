package app

import (
	"context"
	"io"
	"log"
	"time"

	"matguard/domain/core"
	"matguard/domain/matlab"
	"matguard/internal/report"
	"matguard/internal/rules"
)

// ValidationService runs the static quality checks over a MATLAB script
type ValidationService struct {
	engine  *rules.Engine
	ruleSet []rules.Rule
}

// ValidationResult contains the complete output of one validation run
type ValidationResult struct {
	RunID     core.RunID          `json:"run_id"`
	Script    *matlab.Script      `json:"-"`
	Checks    []rules.CheckResult `json:"checks"`
	Passed    int                 `json:"passed"`
	Total     int                 `json:"total"`
	RuntimeMs int64               `json:"runtime_ms"`
}

// Clean reports whether every gating check passed
func (r *ValidationResult) Clean() bool { return r.Passed == r.Total }

// PassRate returns the fraction of gating checks that passed
func (r *ValidationResult) PassRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Total)
}

// NewValidationService creates a validation service over the given rule set
func NewValidationService(engine *rules.Engine, ruleSet []rules.Rule) *ValidationService {
	return &ValidationService{engine: engine, ruleSet: ruleSet}
}

// Run loads the script and evaluates every rule against it
func (s *ValidationService) Run(ctx context.Context, scriptPath string) (*ValidationResult, error) {
	startTime := time.Now()
	runID := core.RunID(core.NewID())

	script, err := matlab.Load(scriptPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[Validation] Run %s: %s (%d lines, fingerprint %s)",
		runID, script.Path, len(script.Lines), script.Hash.Short())

	checks, err := s.engine.EvaluateAll(ctx, script, s.ruleSet)
	if err != nil {
		return nil, err
	}
	passed, total := rules.Tally(checks)
	log.Printf("[Validation] Run %s: %d/%d checks passed", runID, passed, total)

	return &ValidationResult{
		RunID:     runID,
		Script:    script,
		Checks:    checks,
		Passed:    passed,
		Total:     total,
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// Report renders the sectioned console report for a completed run
func (s *ValidationService) Report(w io.Writer, res *ValidationResult) {
	report.RenderValidation(w, report.Validation{
		RunID:      res.RunID.String(),
		ScriptPath: res.Script.Path,
		ScriptHash: res.Script.Hash.Short(),
		Lines:      res.Script.LineStats(),
		Delimiters: res.Script.Delimiters(),
		Structures: res.Script.Structures(),
		Checks:     res.Checks,
	})
}
