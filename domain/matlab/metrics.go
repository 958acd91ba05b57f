package matlab

import (
	"regexp"
	"strings"
)

// Control structures that consume an 'end' in MATLAB. Anchored to line starts
// so identifiers like 'endfor_count' or mid-line keywords don't count.
var (
	reFunction = regexp.MustCompile(`(?m)^\s*function\s+`)
	reIf       = regexp.MustCompile(`(?m)^\s*if\s+`)
	reFor      = regexp.MustCompile(`(?m)^\s*for\s+`)
	reWhile    = regexp.MustCompile(`(?m)^\s*while\s+`)
	reTry      = regexp.MustCompile(`(?m)^\s*try\s*($|%)`)
	reSwitch   = regexp.MustCompile(`(?m)^\s*switch\s+`)
	reParfor   = regexp.MustCompile(`(?m)^\s*parfor\s+`)
	reEnd      = regexp.MustCompile(`(?m)^\s*end\s*($|;|%)`)

	reSectionHeader = regexp.MustCompile(`(?m)^%{2,}\s*={5,}`)
	reFprintf       = regexp.MustCompile(`\bfprintf\s*\(`)
)

// DelimiterBalance holds open/close counts for the three delimiter pairs
type DelimiterBalance struct {
	OpenParens    int `json:"open_parens"`
	CloseParens   int `json:"close_parens"`
	OpenBrackets  int `json:"open_brackets"`
	CloseBrackets int `json:"close_brackets"`
	OpenBraces    int `json:"open_braces"`
	CloseBraces   int `json:"close_braces"`
}

// Parens returns the parenthesis imbalance (0 means balanced)
func (b DelimiterBalance) Parens() int { return b.OpenParens - b.CloseParens }

// Brackets returns the square-bracket imbalance
func (b DelimiterBalance) Brackets() int { return b.OpenBrackets - b.CloseBrackets }

// Braces returns the curly-brace imbalance
func (b DelimiterBalance) Braces() int { return b.OpenBraces - b.CloseBraces }

// Balanced reports whether all three pairs are balanced
func (b DelimiterBalance) Balanced() bool {
	return b.Parens() == 0 && b.Brackets() == 0 && b.Braces() == 0
}

// Delimiters counts delimiter pairs over the whole content
func (s *Script) Delimiters() DelimiterBalance {
	return DelimiterBalance{
		OpenParens:    strings.Count(s.Content, "("),
		CloseParens:   strings.Count(s.Content, ")"),
		OpenBrackets:  strings.Count(s.Content, "["),
		CloseBrackets: strings.Count(s.Content, "]"),
		OpenBraces:    strings.Count(s.Content, "{"),
		CloseBraces:   strings.Count(s.Content, "}"),
	}
}

// StructureCensus counts control structures that require an 'end' statement
type StructureCensus struct {
	Functions int `json:"functions"`
	Ifs       int `json:"ifs"`
	Fors      int `json:"fors"`
	Whiles    int `json:"whiles"`
	Tries     int `json:"tries"`
	Switches  int `json:"switches"`
	Parfors   int `json:"parfors"`
	Ends      int `json:"ends"`
}

// Total returns the number of structures that should consume an 'end'
func (c StructureCensus) Total() int {
	return c.Functions + c.Ifs + c.Fors + c.Whiles + c.Tries + c.Switches + c.Parfors
}

// Balance returns structures minus ends. One-line constructs (e.g.
// "if x, y=1; end") escape the line-anchored patterns, so callers compare
// against a tolerance instead of demanding zero.
func (c StructureCensus) Balance() int {
	return c.Total() - c.Ends
}

// Structures runs the control-structure census
func (s *Script) Structures() StructureCensus {
	return StructureCensus{
		Functions: s.CountPattern(reFunction),
		Ifs:       s.CountPattern(reIf),
		Fors:      s.CountPattern(reFor),
		Whiles:    s.CountPattern(reWhile),
		Tries:     s.CountPattern(reTry),
		Switches:  s.CountPattern(reSwitch),
		Parfors:   s.CountPattern(reParfor),
		Ends:      s.CountPattern(reEnd),
	}
}

// LineMetrics summarizes documentation and layout quality
type LineMetrics struct {
	Total               int     `json:"total"`
	Comment             int     `json:"comment"`
	Blank               int     `json:"blank"`
	Code                int     `json:"code"`
	CommentRatio        float64 `json:"comment_ratio"`
	SectionHeaders      int     `json:"section_headers"`
	FprintfCalls        int     `json:"fprintf_calls"`
	InconsistentIndents int     `json:"inconsistent_indents"`
}

// LineStats computes line-level metrics over the script
func (s *Script) LineStats() LineMetrics {
	m := LineMetrics{Total: len(s.Lines)}

	for i, line := range s.Lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			m.Blank++
		case strings.HasPrefix(trimmed, "%"):
			m.Comment++
		default:
			m.Code++
			// First line is exempt: script headers often start flush left.
			if i > 0 {
				leading := len(line) - len(strings.TrimLeft(line, " "))
				if leading > 0 && leading%4 != 0 {
					m.InconsistentIndents++
				}
			}
		}
	}

	if m.Total > 0 {
		m.CommentRatio = float64(m.Comment) / float64(m.Total)
	}
	m.SectionHeaders = s.CountPattern(reSectionHeader)
	m.FprintfCalls = s.CountPattern(reFprintf)
	return m
}
