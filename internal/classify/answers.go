// Package classify maps the wizard's PICO inputs and methodology answers to
// a complete protocol draft: study type, design narrative, statistical plan
// seed, hypothesis, and the templated title and objective sentences.
package classify

import "strings"

// Locale selects the sentence templates. It never affects branching.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

// PICO holds the four framework inputs. Population, intervention, and
// outcome must be non-empty before Classify runs; the HTTP boundary enforces
// that precondition.
type PICO struct {
	Population   string `json:"population"`
	Intervention string `json:"intervention"`
	Comparison   string `json:"comparison"`
	Outcome      string `json:"outcome"`
}

// Answer vocabularies.
const (
	TimeRetrospective  = "retrospective"
	TimeProspective    = "prospective"
	TimeCrossSectional = "cross-sectional"

	CaseControlStandard = "standard"
	CaseControlNested   = "nested"
)

// Answers are the methodology questions from the wizard. Sub-answers are
// only meaningful on their branch; Normalize clears the rest.
type Answers struct {
	HasIntervention  bool   `json:"hasIntervention"`
	Randomized       bool   `json:"randomized"`
	DesignModel      string `json:"designModel"`      // parallel | crossover
	ControlType      string `json:"controlType"`      // placebo | active
	HasControl       bool   `json:"hasControl"`       // observational branch
	TimeDirection    string `json:"timeDirection"`    // retrospective | prospective | cross-sectional
	CaseControlModel string `json:"caseControlModel"` // standard | nested
}

// Normalize applies the branch-invalidation rules and resolves unset
// sub-answers to their least-specific default, so the decision table below
// never sees a half-answered branch. An RCT with no design model reads as
// parallel; no control type reads as placebo; a retrospective design with no
// case-control model reads as standard.
func (a Answers) Normalize() Answers {
	out := a
	out.DesignModel = strings.TrimSpace(out.DesignModel)
	out.ControlType = strings.TrimSpace(out.ControlType)
	out.TimeDirection = strings.TrimSpace(out.TimeDirection)
	out.CaseControlModel = strings.TrimSpace(out.CaseControlModel)

	if out.HasIntervention {
		out.HasControl = false
		out.TimeDirection = ""
		out.CaseControlModel = ""
		if out.Randomized {
			if out.DesignModel == "" {
				out.DesignModel = "parallel"
			}
			if out.ControlType == "" {
				out.ControlType = "placebo"
			}
		} else {
			out.DesignModel = ""
			out.ControlType = ""
		}
		return out
	}

	// Observational: a non-interventional study cannot carry an RCT subtype.
	out.Randomized = false
	out.DesignModel = ""
	out.ControlType = ""
	if !out.HasControl {
		out.TimeDirection = TimeCrossSectional
		out.CaseControlModel = ""
		return out
	}
	if out.TimeDirection == "" {
		out.TimeDirection = TimeProspective
	}
	if out.TimeDirection != TimeRetrospective {
		out.CaseControlModel = ""
	} else if out.CaseControlModel == "" {
		out.CaseControlModel = CaseControlStandard
	}
	return out
}
