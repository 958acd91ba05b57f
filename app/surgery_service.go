package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"matguard/domain/core"
	"matguard/domain/matlab"
	"matguard/internal/surgery"
)

// SurgeryService applies a regex edit plan to a MATLAB script. Dry-run is
// the default; the file on disk changes only when the caller opts in.
type SurgeryService struct {
	plan *surgery.Plan
}

// SurgeryResult contains the complete output of one surgery run
type SurgeryResult struct {
	RunID      core.RunID       `json:"run_id"`
	ScriptPath string           `json:"script_path"`
	Outcome    *surgery.Outcome `json:"outcome"`
	Written    bool             `json:"written"`
	RuntimeMs  int64            `json:"runtime_ms"`
}

// NewSurgeryService creates a surgery service for the given plan
func NewSurgeryService(plan *surgery.Plan) *SurgeryService {
	return &SurgeryService{plan: plan}
}

// Run applies the plan to the script at scriptPath. When write is true and
// any edit matched, the transformed content replaces the file in place.
func (s *SurgeryService) Run(ctx context.Context, scriptPath string, write bool) (*SurgeryResult, error) {
	startTime := time.Now()
	runID := core.RunID(core.NewID())

	script, err := matlab.Load(scriptPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[Surgery] Run %s: applying plan %q to %s (%d lines)",
		runID, s.plan.Name, script.Path, len(script.Lines))

	outcome, err := s.plan.Apply(script.Content)
	if err != nil {
		return nil, err
	}

	res := &SurgeryResult{
		RunID:      runID,
		ScriptPath: script.Path,
		Outcome:    outcome,
	}

	if write && len(outcome.Changes) > 0 {
		if err := os.WriteFile(script.Path, []byte(outcome.Content), 0o644); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrWriteDenied, err)
		}
		res.Written = true
		log.Printf("[Surgery] Run %s: wrote %s (%d lines removed)",
			runID, script.Path, outcome.LinesRemoved())
	}

	res.RuntimeMs = time.Since(startTime).Milliseconds()
	return res, nil
}

// Report renders the change summary for a completed run
func (s *SurgeryService) Report(w io.Writer, res *SurgeryResult) {
	fmt.Fprintf(w, "Plan:   %s\n", s.plan.Name)
	fmt.Fprintf(w, "Script: %s\n\n", res.ScriptPath)

	if len(res.Outcome.Changes) == 0 {
		fmt.Fprintln(w, "No edits matched; script is already clean.")
	}
	for _, c := range res.Outcome.Changes {
		fmt.Fprintf(w, "  %-40s %d match(es)\n", c.Edit, c.Matches)
	}

	fmt.Fprintf(w, "\nReferences: %d before, %d after (%d removed)\n",
		res.Outcome.RefsBefore, res.Outcome.RefsAfter, res.Outcome.RefsRemoved())
	fmt.Fprintf(w, "Lines:      %d before, %d after (%d removed)\n",
		res.Outcome.LinesBefore, res.Outcome.LinesAfter, res.Outcome.LinesRemoved())

	if res.Outcome.RefsAfter > 0 {
		fmt.Fprintf(w, "\n%d reference(s) remain; review them manually.\n", res.Outcome.RefsAfter)
	}
	if res.Written {
		fmt.Fprintln(w, "\nScript updated in place.")
	} else {
		fmt.Fprintln(w, "\nDry run: no files modified. Re-run with --write to apply.")
	}
}
