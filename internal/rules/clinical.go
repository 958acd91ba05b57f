package rules

import "regexp"

// Report sections, in render order
const (
	SectionSyntax      = "1. SYNTAX VALIDATION"
	SectionHelpers     = "2. HELPER FUNCTIONS"
	SectionConstants   = "3. PARAMETER CONSTANTS"
	SectionErrors      = "4. ERROR HANDLING"
	SectionQuality     = "5. CODE QUALITY"
	SectionMethodology = "6. SCIENTIFIC METHODOLOGY"
	SectionIntegration = "7. INTEGRATION"
)

// Helper functions the clinical associations script must define
var helperFunctionPatterns = map[string]*regexp.Regexp{
	"calculate_correlation_with_CI": regexp.MustCompile(`function\s+\[.*?\]\s*=\s*calculate_correlation_with_CI`),
	"create_forest_plot":            regexp.MustCompile(`function\s+.*?\s*=\s*create_forest_plot`),
	"get_label_safe":                regexp.MustCompile(`function\s+.*?\s*=\s*get_label_safe`),
	"fdr_bh":                        regexp.MustCompile(`function\s+\[.*?\]\s*=\s*fdr_bh`),
	"ternary":                       regexp.MustCompile(`function\s+.*?\s*=\s*ternary`),
	"redblue":                       regexp.MustCompile(`function\s+.*?\s*=\s*redblue`),
}

// Named analysis constants that replaced magic numbers
var constantPatterns = map[string]*regexp.Regexp{
	"MIN_SAMPLE_SIZE":      regexp.MustCompile(`MIN_SAMPLE_SIZE\s*=\s*(\d+)`),
	"ALPHA_LEVEL":          regexp.MustCompile(`ALPHA_LEVEL\s*=\s*([\d.]+)`),
	"FDR_LEVEL":            regexp.MustCompile(`FDR_LEVEL\s*=\s*([\d.]+)`),
	"OUTLIER_THRESHOLD_DS": regexp.MustCompile(`OUTLIER_THRESHOLD_DS\s*=\s*(\d+)`),
	"OUTLIER_CODE":         regexp.MustCompile(`OUTLIER_CODE\s*=\s*(\d+)`),
	"MIN_PCA_SAMPLES":      regexp.MustCompile(`MIN_PCA_SAMPLES\s*=\s*(\d+)`),
	"CI_Z_SCORE":           regexp.MustCompile(`CI_Z_SCORE\s*=\s*([\d.]+)`),
}

var (
	reTryBlock   = regexp.MustCompile(`(?m)^\s*try\s*($|%)`)
	reCatchBlock = regexp.MustCompile(`(?m)^\s*catch\s+`)
)

// ClinicalRuleSet is the validation inventory for the clinical associations
// script: nine gate checks plus the informational counts the quality report
// prints alongside them.
func ClinicalRuleSet() []Rule {
	rules := []Rule{
		// --- 1. Syntax ---
		DelimiterRule{RuleName: "Delimiter Balance", RuleSection: SectionSyntax},
		StructureRule{RuleName: "Function/End Balance", RuleSection: SectionSyntax, Tolerance: 5},

		// --- 2. Helper functions ---
		GroupPresenceRule{
			RuleName:    "Helper Functions",
			RuleSection: SectionHelpers,
			Patterns:    helperFunctionPatterns,
			MinFraction: 1.0,
		},
		countInfo("calculate_correlation_with_CI() calls", SectionHelpers, `calculate_correlation_with_CI\s*\(`),
		countInfo("create_forest_plot() calls", SectionHelpers, `create_forest_plot\s*\(`),
		countInfo("get_label/get_label_safe() calls", SectionHelpers, `get_label(_safe)?\s*\(`),
		countInfo("fdr_bh() calls", SectionHelpers, `fdr_bh\s*\(`),

		// --- 3. Constants ---
		GroupPresenceRule{
			RuleName:    "Constants Defined",
			RuleSection: SectionConstants,
			Patterns:    constantPatterns,
			MinFraction: 0.8,
		},
	}

	// Per-constant capture rows (informational; the group rule gates)
	for _, name := range []string{
		"MIN_SAMPLE_SIZE", "ALPHA_LEVEL", "FDR_LEVEL", "OUTLIER_THRESHOLD_DS",
		"OUTLIER_CODE", "MIN_PCA_SAMPLES", "CI_Z_SCORE",
	} {
		rules = append(rules, CaptureRule{
			RuleName:    name,
			RuleSection: SectionConstants,
			Pattern:     constantPatterns[name],
		})
	}

	rules = append(rules,
		// Magic-number elimination: warnings, not gates
		CountRule{
			RuleName:    "Hardcoded outlier code 99",
			RuleSection: SectionConstants,
			Pattern:     regexp.MustCompile(`==\s*99\b`),
			Max:         0,
		},
		CountRule{
			RuleName:    "Hardcoded outlier threshold 10",
			RuleSection: SectionConstants,
			Pattern:     regexp.MustCompile(`(?i)>\s*10\b.*outlier|outlier.*>\s*10\b`),
			Max:         0,
		},

		// --- 4. Error handling ---
		CountsEqualRule{
			RuleName:    "Try-Catch Balance",
			RuleSection: SectionErrors,
			LabelA:      "try",
			PatternA:    reTryBlock,
			LabelB:      "catch",
			PatternB:    reCatchBlock,
		},
		countInfo("error() calls", SectionErrors, `\berror\s*\(`),
		countInfo("warning() calls", SectionErrors, `\bwarning\s*\(`),
		countInfo("readtable() calls (file loading)", SectionErrors, `readtable\s*\(`),
		countInfo("intersect() calls (ID matching)", SectionErrors, `intersect\s*\(`),
		countInfo("saveas() calls (plot saving)", SectionErrors, `saveas\s*\(`),

		// --- 5. Code quality ---
		CommentRatioRule{RuleName: "Documentation", RuleSection: SectionQuality, MinRatio: 0.15},

		// --- 6. Scientific methodology ---
		AllCountsRule{
			RuleName:    "Statistical Methods",
			RuleSection: SectionMethodology,
			Requirements: []CountRequirement{
				{Label: "correlations", Pattern: regexp.MustCompile(`\bcorr\s*\(`), Min: 1},
				{Label: "fdr_corrections", Pattern: regexp.MustCompile(`fdr_bh\s*\(`), Min: 1},
			},
		},
		AllCountsRule{
			RuleName:    "Data Quality Controls",
			RuleSection: SectionMethodology,
			Requirements: []CountRequirement{
				{Label: "isnan_checks", Pattern: regexp.MustCompile(`\bisnan\s*\(`), Min: 11},
				{Label: "sample_size_checks", Pattern: regexp.MustCompile(`(?i)if.*?n.*?>=|if.*?sum.*?>=|if.*?length.*?>=`), Min: 6},
			},
		},
		countInfo("Fisher's Z transformations", SectionMethodology, `\batanh\s*\(`),
		countInfo("PCA analyses", SectionMethodology, `\bpca\s*\(`),
		countInfo("ANOVA tests", SectionMethodology, `\banova1\s*\(`),
		countInfo("T-tests", SectionMethodology, `\bttest`),
		countInfo("Multiple comparisons (Tukey HSD)", SectionMethodology, `multcompare\s*\(`),
		countInfo("Linear models (regression)", SectionMethodology, `\bfitlm\s*\(`),
		countInfo("NaN handling (omitnan)", SectionMethodology, `'omitnan'`),
		countInfo("Outlier handling references", SectionMethodology, `(?i)outlier`),
		countInfo("Data exports (writetable)", SectionMethodology, `\bwritetable\s*\(`),
		countInfo("Workspace saves", SectionMethodology, `\bsave\s*\(`),
		countInfo("Figure creation", SectionMethodology, `\bfigure\s*\(`),
		countInfo("Subplots", SectionMethodology, `\bsubplot\s*\(`),
		PresenceRule{
			RuleName:    "Random seed (reproducibility)",
			RuleSection: SectionMethodology,
			Pattern:     regexp.MustCompile(`\brng\s*\(\d+\)`),
		},

		// --- 7. Integration ---
		PresenceRule{
			RuleName:    "FDR Implementation",
			RuleSection: SectionIntegration,
			Pattern:     helperFunctionPatterns["fdr_bh"],
			Gating:      true,
		},
		countInfo("Synthetic data references", SectionIntegration, `(?i)SYNTHETIC|synthetic.*data.*generat`),
		countInfo("aarea variable removal references", SectionIntegration, `(?i)aarea.*REMOVED|REMOVE.*aarea`),
		countInfo("Univariate correlation exports", SectionIntegration, `Univariate_Correlations.*\.csv`),
		countInfo("Cohort-stratified analysis references", SectionIntegration, `(?i)Cohort.*Stratified|boxplot.*diagnosis`),
		countInfo("Age interaction references", SectionIntegration, `(?i)Age.*interaction|interaction.*Age`),
	)

	return rules
}

// countInfo builds an informational occurrence counter
func countInfo(name, section, pattern string) CountRule {
	return CountRule{
		RuleName:    name,
		RuleSection: section,
		Pattern:     regexp.MustCompile(pattern),
		Min:         0,
		Max:         -1,
	}
}
