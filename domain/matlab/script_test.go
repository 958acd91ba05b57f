package matlab

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"matguard/domain/core"
)

const fixture = `%% ===================== SECTION 1: SETUP =====================
% Clinical associations analysis
MIN_SAMPLE_SIZE = 30;
FDR_LEVEL = 0.05;

function [h, crit_p, adj_p] = fdr_bh(pvals, q)
    if isempty(pvals)
        h = [];
    end
    for i = 1:numel(pvals)
        adj_p(i) = min(1, pvals(i));
    end
end

try
    data = readtable('cohort.csv');
catch err
    warning('load failed');
end

fprintf('Loaded %d rows\n', height(data));
fprintf('Done\n');
`

func TestNewScript(t *testing.T) {
	s := NewScript("analysis.m", fixture)

	if s.Path != "analysis.m" {
		t.Errorf("Expected path 'analysis.m', got %q", s.Path)
	}
	if len(s.Lines) != strings.Count(fixture, "\n")+1 {
		t.Errorf("Line split mismatch: %d lines", len(s.Lines))
	}
	if core.Hash(s.Hash).IsEmpty() {
		t.Error("Script hash should be set")
	}
	if s.Hash != NewScript("other.m", fixture).Hash {
		t.Error("Hash should depend on content only")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.m"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !core.IsNotFoundError(err) {
		t.Errorf("Expected a not-found error, got %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.m")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != core.ErrEmptyScript {
		t.Errorf("Expected ErrEmptyScript, got %v", err)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.m")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Content != fixture {
		t.Error("Loaded content differs from written content")
	}
}

func TestDelimiters(t *testing.T) {
	s := NewScript("t.m", "a = f([1 2], {x});\nb = g(3);")

	d := s.Delimiters()
	if !d.Balanced() {
		t.Errorf("Expected balanced delimiters, got parens=%d brackets=%d braces=%d",
			d.Parens(), d.Brackets(), d.Braces())
	}

	s = NewScript("t.m", "a = f([1 2;")
	d = s.Delimiters()
	if d.Balanced() {
		t.Error("Expected imbalance to be detected")
	}
	if d.Parens() != 1 || d.Brackets() != 1 {
		t.Errorf("Expected one unclosed paren and bracket, got %d and %d", d.Parens(), d.Brackets())
	}
}

func TestStructures(t *testing.T) {
	s := NewScript("t.m", fixture)

	c := s.Structures()
	if c.Functions != 1 {
		t.Errorf("Expected 1 function, got %d", c.Functions)
	}
	if c.Ifs != 1 {
		t.Errorf("Expected 1 if, got %d", c.Ifs)
	}
	if c.Fors != 1 {
		t.Errorf("Expected 1 for, got %d", c.Fors)
	}
	if c.Tries != 1 {
		t.Errorf("Expected 1 try, got %d", c.Tries)
	}
	// if/for/function/try each close with a line-anchored 'end'
	if c.Ends != 4 {
		t.Errorf("Expected 4 end statements, got %d", c.Ends)
	}
	if c.Total() != 4 {
		t.Errorf("Expected 4 structures, got %d", c.Total())
	}
	if c.Balance() != 0 {
		t.Errorf("Expected balance 0, got %d", c.Balance())
	}
}

func TestStructures_NoMidLineKeywords(t *testing.T) {
	s := NewScript("t.m", "x = for_count + my_end;\nresult = iff(a, b);\n")

	c := s.Structures()
	if c.Total() != 0 || c.Ends != 0 {
		t.Errorf("Identifiers containing keywords must not count: total=%d ends=%d", c.Total(), c.Ends)
	}
}

func TestLineStats(t *testing.T) {
	content := "% header comment\n\nx = 1;\n    y = 2;\n   z = 3;\n"
	s := NewScript("t.m", content)

	m := s.LineStats()
	if m.Comment != 1 {
		t.Errorf("Expected 1 comment line, got %d", m.Comment)
	}
	// Trailing newline yields a final empty element.
	if m.Blank != 2 {
		t.Errorf("Expected 2 blank lines, got %d", m.Blank)
	}
	if m.Code != 3 {
		t.Errorf("Expected 3 code lines, got %d", m.Code)
	}
	// "   z = 3;" has a 3-space indent
	if m.InconsistentIndents != 1 {
		t.Errorf("Expected 1 inconsistent indent, got %d", m.InconsistentIndents)
	}
}

func TestLineStats_SectionsAndFprintf(t *testing.T) {
	s := NewScript("t.m", fixture)

	m := s.LineStats()
	if m.SectionHeaders != 1 {
		t.Errorf("Expected 1 section header, got %d", m.SectionHeaders)
	}
	if m.FprintfCalls != 2 {
		t.Errorf("Expected 2 fprintf calls, got %d", m.FprintfCalls)
	}
	if m.CommentRatio <= 0 {
		t.Errorf("Expected positive comment ratio, got %f", m.CommentRatio)
	}
}

func TestCountAndFindPattern(t *testing.T) {
	s := NewScript("t.m", fixture)

	if n := s.CountPattern(regexp.MustCompile(`fdr_bh\s*\(`)); n != 1 {
		t.Errorf("Expected 1 fdr_bh reference, got %d", n)
	}

	val, ok := s.FindPattern(regexp.MustCompile(`MIN_SAMPLE_SIZE\s*=\s*(\d+)`))
	if !ok {
		t.Fatal("Expected MIN_SAMPLE_SIZE to be found")
	}
	if val != "30" {
		t.Errorf("Expected captured value '30', got %q", val)
	}

	if _, ok := s.FindPattern(regexp.MustCompile(`NOT_THERE`)); ok {
		t.Error("Expected no match for absent pattern")
	}
}
