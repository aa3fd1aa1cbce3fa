package classify

import (
	"fmt"
	"strings"

	"github.com/joelkehle/protocol-studio/internal/protocol"
)

// Classify builds a fresh draft from the wizard inputs. It is a pure,
// recompute-from-scratch operation: the returned draft starts from the empty
// default and every design, statistics, hypothesis, and title field it owns
// is overwritten from the resolved decision branch. Repeated calls with
// identical inputs yield identical output.
func Classify(pico PICO, ans Answers, loc Locale) protocol.Draft {
	t := tr(loc)
	a := ans.Normalize()
	d := protocol.NewDraft()

	exposure := strings.TrimSpace(pico.Intervention)
	if exposure == "" {
		exposure = t.exposure
	}

	effect := t.assocBetween
	if a.HasIntervention {
		effect = t.effectOf
	}
	d.Title = fmt.Sprintf("%s %s %s %s %s %s", effect, exposure, t.prepOn, pico.Outcome, t.prepIn, pico.Population)

	d.PopulationDescription = fmt.Sprintf(t.populationDesc, pico.Population)
	d.InclusionCriteria = []string{
		fmt.Sprintf(t.inclusionMeeting, pico.Population),
		t.inclusionConsent,
	}

	switch {
	case a.HasIntervention && a.Randomized:
		classifyRCT(&d, pico, a, t)
	case a.HasIntervention:
		d.StudyDesign = t.quasiDesign
		d.StudyType = t.quasiType
		d.StatisticalAnalysis = append([]string(nil), t.quasiStats...)
		d.AnalysisHypothesis = protocol.HypExploratory
		d.DetailedHypothesis = fmt.Sprintf(t.quasiHyp, pico.Intervention, pico.Outcome)
		d.Interventions = fmt.Sprintf("%s: %s.", t.interventionLabel, pico.Intervention)
	case !a.HasControl:
		d.StudyDesign = t.descriptiveDesign
		d.StudyType = t.descriptiveType
		d.StatisticalAnalysis = append([]string(nil), t.descriptiveStats...)
		d.AnalysisHypothesis = protocol.HypExploratory
		d.DetailedHypothesis = t.descriptiveHyp
	default:
		classifyAnalytic(&d, pico, a, t)
	}

	verb := t.associatedWith
	if a.HasIntervention {
		verb = t.improves
	}
	d.PrimaryObjective = fmt.Sprintf("%s %s %s %s %s %s.", t.determine, pico.Intervention, verb, pico.Outcome, t.prepIn, pico.Population)
	d.RationalePrimary = fmt.Sprintf(t.uncertainty, pico.Intervention, pico.Outcome)

	return d
}

func classifyRCT(d *protocol.Draft, pico PICO, a Answers, t templates) {
	crossover := a.DesignModel == protocol.ModelCrossover
	active := a.ControlType == protocol.ControlActive

	d.DesignModel = protocol.ModelParallel
	if crossover {
		d.DesignModel = protocol.ModelCrossover
	}
	d.ControlType = protocol.ControlPlacebo
	if active {
		d.ControlType = protocol.ControlActive
	}

	designAdj := t.parallelAdj
	if crossover {
		designAdj = t.crossoverAdj
	}
	controlAdj := t.placeboCtrlAdj
	if active {
		controlAdj = t.activeCtrlAdj
	}
	d.StudyDesign = fmt.Sprintf(t.rctDesign, designAdj, controlAdj)
	d.StudyType = t.clinicalTrial

	if crossover {
		d.StatisticalAnalysis = append([]string(nil), t.rctStatsCross...)
	} else {
		d.StatisticalAnalysis = append([]string(nil), t.rctStatsParallel...)
	}

	controlName := t.placebo
	if active {
		controlName = strings.TrimSpace(pico.Comparison)
		if controlName == "" {
			controlName = t.standardCare
		}
	}
	d.Interventions = fmt.Sprintf("%s: %s.\n%s: %s.", t.groupInt, pico.Intervention, t.groupCtrl, controlName)

	d.AnalysisHypothesis = protocol.HypSuperiority
	if active {
		d.DetailedHypothesis = fmt.Sprintf(t.hypSupNonInfVs, pico.Intervention, controlName, pico.Outcome)
	} else {
		d.DetailedHypothesis = fmt.Sprintf(t.hypSuperiorVs, pico.Intervention, controlName, pico.Outcome)
	}
}

func classifyAnalytic(d *protocol.Draft, pico PICO, a Answers, t templates) {
	switch a.TimeDirection {
	case TimeCrossSectional:
		d.StudyDesign = t.crossSectionalDesign
		d.StudyType = t.crossSectionalType
		d.StatisticalAnalysis = append([]string(nil), t.crossSectionalStats...)
	case TimeRetrospective:
		nested := a.CaseControlModel == CaseControlNested
		d.IsNested = nested
		if nested {
			d.StudyDesign = t.caseControlNestedDesign
			d.StudyType = t.caseControlNestedType
		} else {
			d.StudyDesign = t.caseControlDesign
			d.StudyType = t.caseControlType
		}
		d.StatisticalAnalysis = append([]string(nil), t.caseControlStats...)
		d.SelectionMethod = fmt.Sprintf("%s: %s %s %s.\n%s: %s %s %s.",
			t.cases, pico.Population, t.withWord, pico.Outcome,
			t.controls, pico.Population, t.withoutWord, pico.Outcome)
	default:
		d.StudyDesign = t.cohortDesign
		d.StudyType = t.cohortType
		d.StatisticalAnalysis = append([]string(nil), t.cohortStats...)
		d.SelectionMethod = fmt.Sprintf("%s: %s.\n%s: %s %s.",
			t.exposedCohort, pico.Intervention,
			t.unexposedCohrt, t.noWord, pico.Intervention)
	}
	d.AnalysisHypothesis = protocol.HypExploratory
	d.DetailedHypothesis = fmt.Sprintf(t.observationalHyp, pico.Intervention, pico.Outcome)
}
