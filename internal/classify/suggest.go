package classify

import "strings"

// SnapStudyType coerces a free-text methodology label onto the closed set of
// study types the engine emits, in the caller's locale. Keyword matching is
// deliberately loose; generated labels arrive with extra words, punctuation,
// or mixed language. Unrecognized text comes back unchanged.
func SnapStudyType(raw string, loc Locale) string {
	t := tr(loc)
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "ensayo"), strings.Contains(lower, "rct"),
		strings.Contains(lower, "randomized"), strings.Contains(lower, "trial"):
		return t.clinicalTrial
	case strings.Contains(lower, "cohort"), strings.Contains(lower, "cohorte"):
		return t.cohortType
	case strings.Contains(lower, "casos"), strings.Contains(lower, "case-control"),
		strings.Contains(lower, "case control"):
		return t.caseControlType
	case strings.Contains(lower, "transversal"), strings.Contains(lower, "cross-sectional"),
		strings.Contains(lower, "cross sectional"):
		return t.crossSectionalType
	case strings.Contains(lower, "descriptivo"), strings.Contains(lower, "descriptive"):
		return t.descriptiveType
	}
	return strings.TrimSpace(raw)
}
