// Package surgery removes deprecated analysis branches from MATLAB source by
// applying an ordered list of regex edits. Apply is pure: it transforms
// content in memory and reports what changed; writing the result back to disk
// is the caller's explicit decision (dry-run is the default everywhere).
package surgery

import (
	"regexp"
	"strings"

	"matguard/domain/core"
)

// Edit is one named removal pattern. Replacement is usually empty; edits
// whose pattern must consume a boundary to terminate a non-greedy match
// restore it with a capture reference (e.g. "$1").
type Edit struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Change records one edit that matched
type Change struct {
	Edit    string `json:"edit"`
	Matches int    `json:"matches"`
}

// Plan is an ordered edit list plus the reference pattern used to report
// how many mentions of the deprecated branch remain for manual review
type Plan struct {
	Name       string
	RefPattern *regexp.Regexp
	Edits      []Edit
}

// Outcome reports the result of applying a plan to one script's content
type Outcome struct {
	Content     string   `json:"-"`
	Changes     []Change `json:"changes"`
	RefsBefore  int      `json:"refs_before"`
	RefsAfter   int      `json:"refs_after"`
	LinesBefore int      `json:"lines_before"`
	LinesAfter  int      `json:"lines_after"`
}

// RefsRemoved returns how many references the plan eliminated
func (o *Outcome) RefsRemoved() int { return o.RefsBefore - o.RefsAfter }

// LinesRemoved returns the line-count delta
func (o *Outcome) LinesRemoved() int { return o.LinesBefore - o.LinesAfter }

// Apply runs every edit in order against content and returns the transformed
// text with a change log. The input is never mutated and no file is touched.
func (p *Plan) Apply(content string) (*Outcome, error) {
	if len(p.Edits) == 0 {
		return nil, core.ErrNoEdits
	}

	out := &Outcome{
		LinesBefore: countLines(content),
	}
	if p.RefPattern != nil {
		out.RefsBefore = len(p.RefPattern.FindAllStringIndex(content, -1))
	}

	for _, e := range p.Edits {
		matches := len(e.Pattern.FindAllStringIndex(content, -1))
		if matches == 0 {
			continue
		}
		content = e.Pattern.ReplaceAllString(content, e.Replacement)
		out.Changes = append(out.Changes, Change{Edit: e.Name, Matches: matches})
	}

	out.Content = content
	out.LinesAfter = countLines(content)
	if p.RefPattern != nil {
		out.RefsAfter = len(p.RefPattern.FindAllStringIndex(content, -1))
	}
	return out, nil
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
