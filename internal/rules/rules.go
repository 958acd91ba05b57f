// Package rules implements the configuration-driven validation rule list for
// MATLAB analysis scripts. Each rule is an independent pattern check
// (presence, count bounds, balance, ratio); a rule set is plain data handed
// to the engine, so check inventories can grow without new scanning code.
package rules

import (
	"fmt"
	"regexp"

	"matguard/domain/matlab"
)

// CheckResult is the outcome of evaluating a single rule
type CheckResult struct {
	Rule     string `json:"rule"`
	Section  string `json:"section"`
	Passed   bool   `json:"passed"`
	Gate     bool   `json:"gate"` // gate results count toward the final tally
	Observed string `json:"observed,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Rule is a single static check against a script
type Rule interface {
	Name() string
	Section() string
	// Gate reports whether this rule counts toward the pass/fail tally.
	// Non-gate rules are informational: they surface counts and warnings
	// without failing the run.
	Gate() bool
	Evaluate(s *matlab.Script) CheckResult
}

// PresenceRule passes when its pattern matches at least once
type PresenceRule struct {
	RuleName    string
	RuleSection string
	Pattern     *regexp.Regexp
	Gating      bool
}

func (r PresenceRule) Name() string    { return r.RuleName }
func (r PresenceRule) Section() string { return r.RuleSection }
func (r PresenceRule) Gate() bool      { return r.Gating }

func (r PresenceRule) Evaluate(s *matlab.Script) CheckResult {
	_, found := s.FindPattern(r.Pattern)
	detail := "found"
	if !found {
		detail = "missing"
	}
	return CheckResult{
		Rule:    r.RuleName,
		Section: r.RuleSection,
		Passed:  found,
		Gate:    r.Gating,
		Detail:  detail,
	}
}

// CaptureRule passes when its pattern matches, reporting the first captured
// submatch as the observed value (e.g. a constant's defined value)
type CaptureRule struct {
	RuleName    string
	RuleSection string
	Pattern     *regexp.Regexp
	Gating      bool
}

func (r CaptureRule) Name() string    { return r.RuleName }
func (r CaptureRule) Section() string { return r.RuleSection }
func (r CaptureRule) Gate() bool      { return r.Gating }

func (r CaptureRule) Evaluate(s *matlab.Script) CheckResult {
	val, found := s.FindPattern(r.Pattern)
	res := CheckResult{
		Rule:    r.RuleName,
		Section: r.RuleSection,
		Passed:  found,
		Gate:    r.Gating,
	}
	if found {
		res.Observed = val
		res.Detail = "defined"
	} else {
		res.Detail = "not defined"
	}
	return res
}

// CountRule passes when the pattern's occurrence count lies within
// [Min, Max]. Max < 0 means unbounded. A rule with Min 0 and unbounded Max
// never fails and exists to surface the count.
type CountRule struct {
	RuleName    string
	RuleSection string
	Pattern     *regexp.Regexp
	Min         int
	Max         int
	Gating      bool
}

func (r CountRule) Name() string    { return r.RuleName }
func (r CountRule) Section() string { return r.RuleSection }
func (r CountRule) Gate() bool      { return r.Gating }

func (r CountRule) Evaluate(s *matlab.Script) CheckResult {
	n := s.CountPattern(r.Pattern)
	passed := n >= r.Min && (r.Max < 0 || n <= r.Max)
	return CheckResult{
		Rule:     r.RuleName,
		Section:  r.RuleSection,
		Passed:   passed,
		Gate:     r.Gating,
		Observed: fmt.Sprintf("%d", n),
		Detail:   fmt.Sprintf("%d occurrence(s)", n),
	}
}

// CountRequirement is one leg of an AllCountsRule
type CountRequirement struct {
	Label   string
	Pattern *regexp.Regexp
	Min     int
}

// AllCountsRule passes when every requirement meets its minimum count
type AllCountsRule struct {
	RuleName     string
	RuleSection  string
	Requirements []CountRequirement
}

func (r AllCountsRule) Name() string    { return r.RuleName }
func (r AllCountsRule) Section() string { return r.RuleSection }
func (r AllCountsRule) Gate() bool      { return true }

func (r AllCountsRule) Evaluate(s *matlab.Script) CheckResult {
	passed := true
	detail := ""
	for i, req := range r.Requirements {
		n := s.CountPattern(req.Pattern)
		if n < req.Min {
			passed = false
		}
		if i > 0 {
			detail += ", "
		}
		detail += fmt.Sprintf("%s=%d (need >=%d)", req.Label, n, req.Min)
	}
	return CheckResult{
		Rule:    r.RuleName,
		Section: r.RuleSection,
		Passed:  passed,
		Gate:    true,
		Detail:  detail,
	}
}

// GroupPresenceRule passes when at least MinFraction of its named patterns
// are present (1.0 demands all of them)
type GroupPresenceRule struct {
	RuleName    string
	RuleSection string
	Patterns    map[string]*regexp.Regexp
	MinFraction float64
}

func (r GroupPresenceRule) Name() string    { return r.RuleName }
func (r GroupPresenceRule) Section() string { return r.RuleSection }
func (r GroupPresenceRule) Gate() bool      { return true }

func (r GroupPresenceRule) Evaluate(s *matlab.Script) CheckResult {
	found := 0
	missing := ""
	for name, re := range r.Patterns {
		if _, ok := s.FindPattern(re); ok {
			found++
			continue
		}
		if missing != "" {
			missing += ", "
		}
		missing += name
	}
	total := len(r.Patterns)
	passed := total == 0 || float64(found) >= r.MinFraction*float64(total)
	detail := fmt.Sprintf("%d/%d present", found, total)
	if missing != "" {
		detail += " (missing: " + missing + ")"
	}
	return CheckResult{
		Rule:     r.RuleName,
		Section:  r.RuleSection,
		Passed:   passed,
		Gate:     true,
		Observed: fmt.Sprintf("%d/%d", found, total),
		Detail:   detail,
	}
}

// CountsEqualRule passes when two patterns occur equally often
// (e.g. try blocks vs catch blocks)
type CountsEqualRule struct {
	RuleName    string
	RuleSection string
	LabelA      string
	PatternA    *regexp.Regexp
	LabelB      string
	PatternB    *regexp.Regexp
}

func (r CountsEqualRule) Name() string    { return r.RuleName }
func (r CountsEqualRule) Section() string { return r.RuleSection }
func (r CountsEqualRule) Gate() bool      { return true }

func (r CountsEqualRule) Evaluate(s *matlab.Script) CheckResult {
	a := s.CountPattern(r.PatternA)
	b := s.CountPattern(r.PatternB)
	return CheckResult{
		Rule:     r.RuleName,
		Section:  r.RuleSection,
		Passed:   a == b,
		Gate:     true,
		Observed: fmt.Sprintf("%d/%d", a, b),
		Detail:   fmt.Sprintf("%s=%d, %s=%d", r.LabelA, a, r.LabelB, b),
	}
}

// DelimiterRule passes when all three delimiter pairs are balanced
type DelimiterRule struct {
	RuleName    string
	RuleSection string
}

func (r DelimiterRule) Name() string    { return r.RuleName }
func (r DelimiterRule) Section() string { return r.RuleSection }
func (r DelimiterRule) Gate() bool      { return true }

func (r DelimiterRule) Evaluate(s *matlab.Script) CheckResult {
	d := s.Delimiters()
	return CheckResult{
		Rule:    r.RuleName,
		Section: r.RuleSection,
		Passed:  d.Balanced(),
		Gate:    true,
		Detail: fmt.Sprintf("parens %+d, brackets %+d, braces %+d",
			d.Parens(), d.Brackets(), d.Braces()),
	}
}

// StructureRule passes when the structure/end imbalance is within Tolerance.
// The tolerance absorbs one-line constructs the line-anchored census misses.
type StructureRule struct {
	RuleName    string
	RuleSection string
	Tolerance   int
}

func (r StructureRule) Name() string    { return r.RuleName }
func (r StructureRule) Section() string { return r.RuleSection }
func (r StructureRule) Gate() bool      { return true }

func (r StructureRule) Evaluate(s *matlab.Script) CheckResult {
	c := s.Structures()
	bal := c.Balance()
	abs := bal
	if abs < 0 {
		abs = -abs
	}
	return CheckResult{
		Rule:     r.RuleName,
		Section:  r.RuleSection,
		Passed:   abs <= r.Tolerance,
		Gate:     true,
		Observed: fmt.Sprintf("%+d", bal),
		Detail:   fmt.Sprintf("%d structures vs %d end statements", c.Total(), c.Ends),
	}
}

// CommentRatioRule passes when the comment-line ratio meets MinRatio
type CommentRatioRule struct {
	RuleName    string
	RuleSection string
	MinRatio    float64
}

func (r CommentRatioRule) Name() string    { return r.RuleName }
func (r CommentRatioRule) Section() string { return r.RuleSection }
func (r CommentRatioRule) Gate() bool      { return true }

func (r CommentRatioRule) Evaluate(s *matlab.Script) CheckResult {
	m := s.LineStats()
	return CheckResult{
		Rule:     r.RuleName,
		Section:  r.RuleSection,
		Passed:   m.CommentRatio >= r.MinRatio,
		Gate:     true,
		Observed: fmt.Sprintf("%.1f%%", 100*m.CommentRatio),
		Detail:   fmt.Sprintf("%d comment lines of %d total", m.Comment, m.Total),
	}
}
