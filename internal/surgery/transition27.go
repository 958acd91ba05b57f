package surgery

import "regexp"

// Transition27Plan removes the redundant Transition-27 (OOCV-27) decision
// score model from the clinical associations script. The model was superseded
// and its merge, assignment, logging, and correlation blocks are dead weight.
//
// Go's RE2 has no lookahead, so where the section patterns must stop at a
// boundary (next comment, fprintf, or blank line) the boundary is captured
// and restored through the replacement.
func Transition27Plan() *Plan {
	return &Plan{
		Name: "transition-27 removal",
		RefPattern: regexp.MustCompile(
			`(?i)(transition.27|transition_27|oocv.27|trans.27)`),
		Edits: []Edit{
			{
				Name: "Transition-27 merge section",
				Pattern: regexp.MustCompile(
					`(?is)% Merge.*?transition.*?27.*?\n.*?transition_match_27.*?(\n%|\nfprintf|\n\n)`),
				Replacement: "$1",
			},
			{
				Name: "Transition_27 data assignment",
				Pattern: regexp.MustCompile(
					`analysis_data\.Transition_27 = transition_scores_27\(transition_match_27\);\n`),
			},
			{
				Name: "fprintf statements about Transition-27",
				Pattern: regexp.MustCompile(
					`(?i)fprintf\([^)]*(?:OOCV-27|Transition-27|Trans-27)[^)]*\);\n`),
			},
			{
				Name: "_27 variable initializations",
				Pattern: regexp.MustCompile(
					`(?m)^[ \t]*\w+_corr_27 = \[\];?\n`),
			},
			{
				Name: "Transition-27 correlation blocks",
				Pattern: regexp.MustCompile(
					`(?is)% CORRELATIONS? WITH TRANSITION-27.*?(\n%|\n\n[ \t]*%|\nfprintf\('CORR)`),
				Replacement: "$1",
			},
		},
	}
}
