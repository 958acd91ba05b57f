package surgery

import (
	"regexp"
	"strings"
	"testing"

	"matguard/domain/core"
)

const fixture = `% Load transition scores
scores = readtable('scores.csv');

% Merge Transition-27 decision scores
[transition_match_27, idx] = intersect(ids, oocv_ids);

analysis_data.Transition_27 = transition_scores_27(transition_match_27);
fprintf('Note: OOCV-27 scores merged\n');

symptom_corr_27 = [];
age_corr_27 = [];

% CORRELATIONS WITH TRANSITION-27 DECISION SCORES
for i = 1:n_vars
    symptom_corr_27(i) = corr(x(:,i), t27);
end

fprintf('CORRELATION analysis complete\n');

% Final summary
fprintf('Done\n');
`

func TestTransition27Plan_RemovesAllBranches(t *testing.T) {
	plan := Transition27Plan()

	out, err := plan.Apply(fixture)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out.RefsBefore == 0 {
		t.Fatal("Fixture broken: expected Transition-27 references before surgery")
	}
	if out.RefsAfter != 0 {
		t.Errorf("Expected 0 references after surgery, got %d\ncontent:\n%s", out.RefsAfter, out.Content)
	}
	if out.RefsRemoved() != out.RefsBefore {
		t.Errorf("RefsRemoved mismatch: %d removed of %d", out.RefsRemoved(), out.RefsBefore)
	}
	if out.LinesRemoved() <= 0 {
		t.Errorf("Expected a positive line delta, got %d", out.LinesRemoved())
	}

	for _, gone := range []string{
		"% Merge Transition-27",
		"transition_match_27",
		"analysis_data.Transition_27",
		"OOCV-27",
		"symptom_corr_27 = [];",
		"age_corr_27 = [];",
		"% CORRELATIONS WITH TRANSITION-27",
	} {
		if strings.Contains(out.Content, gone) {
			t.Errorf("Expected %q to be removed", gone)
		}
	}

	for _, kept := range []string{
		"% Load transition scores",
		"scores = readtable('scores.csv');",
		"fprintf('CORRELATION analysis complete\\n');",
		"% Final summary",
		"fprintf('Done\\n');",
	} {
		if !strings.Contains(out.Content, kept) {
			t.Errorf("Expected %q to survive surgery", kept)
		}
	}
}

func TestTransition27Plan_ChangeLog(t *testing.T) {
	plan := Transition27Plan()

	out, err := plan.Apply(fixture)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	byEdit := make(map[string]int)
	for _, c := range out.Changes {
		byEdit[c.Edit] = c.Matches
	}

	if byEdit["Transition-27 merge section"] != 1 {
		t.Errorf("Expected 1 merge section removal, got %d", byEdit["Transition-27 merge section"])
	}
	if byEdit["Transition_27 data assignment"] != 1 {
		t.Errorf("Expected 1 assignment removal, got %d", byEdit["Transition_27 data assignment"])
	}
	if byEdit["fprintf statements about Transition-27"] != 1 {
		t.Errorf("Expected 1 fprintf removal, got %d", byEdit["fprintf statements about Transition-27"])
	}
	if byEdit["_27 variable initializations"] != 2 {
		t.Errorf("Expected 2 initialization removals, got %d", byEdit["_27 variable initializations"])
	}
	if byEdit["Transition-27 correlation blocks"] != 1 {
		t.Errorf("Expected 1 correlation block removal, got %d", byEdit["Transition-27 correlation blocks"])
	}
}

func TestApply_NoMatches(t *testing.T) {
	plan := Transition27Plan()
	clean := "% Nothing deprecated here\nx = 1;\n"

	out, err := plan.Apply(clean)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out.Content != clean {
		t.Error("Content without matches must pass through unchanged")
	}
	if len(out.Changes) != 0 {
		t.Errorf("Expected no changes, got %d", len(out.Changes))
	}
	if out.LinesRemoved() != 0 {
		t.Errorf("Expected zero line delta, got %d", out.LinesRemoved())
	}
}

func TestApply_EmptyPlan(t *testing.T) {
	plan := &Plan{Name: "empty"}
	if _, err := plan.Apply("x = 1;\n"); err != core.ErrNoEdits {
		t.Errorf("Expected ErrNoEdits, got %v", err)
	}
}

func TestApply_EditOrder(t *testing.T) {
	// A later edit must see the text produced by earlier edits.
	plan := &Plan{
		Name: "ordered",
		Edits: []Edit{
			{Name: "first", Pattern: regexp.MustCompile(`AA`), Replacement: "B"},
			{Name: "second", Pattern: regexp.MustCompile(`BB`), Replacement: ""},
		},
	}

	out, err := plan.Apply("AAAA")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out.Content != "" {
		t.Errorf("Expected edits to compose in order, got %q", out.Content)
	}
}
