// Package matlab models a MATLAB source file for static analysis: delimiter
// balance, control-structure census, line metrics, and regex scanning. The
// model is read-only; edits happen in the surgery package.
package matlab

import (
	"os"
	"regexp"
	"strings"

	"matguard/domain/core"
)

// Script is an in-memory MATLAB source file
type Script struct {
	Path    string
	Content string
	Lines   []string
	Hash    core.ScriptHash
}

// NewScript builds a script model from raw content
func NewScript(path, content string) *Script {
	return &Script{
		Path:    path,
		Content: content,
		Lines:   strings.Split(content, "\n"),
		Hash:    core.NewScriptHash([]byte(content)),
	}
}

// Load reads a script from disk
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewScriptNotFoundError(path)
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, core.ErrEmptyScript
	}
	return NewScript(path, string(data)), nil
}

// CountPattern returns the number of matches of re in the script content
func (s *Script) CountPattern(re *regexp.Regexp) int {
	return len(re.FindAllStringIndex(s.Content, -1))
}

// FindPattern returns the first submatch of re (or the whole match when the
// pattern has no capture group) and whether the pattern matched at all
func (s *Script) FindPattern(re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(s.Content)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}
