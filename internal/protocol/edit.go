package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joelkehle/protocol-studio/internal/samplesize"
)

// EditKind discriminates the closed set of edit operations. Runtime string
// paths like "statsParams.alpha" or "inclusionCriteria[2]" from the old form
// layer are replaced by this explicit dispatch.
type EditKind string

const (
	EditScalar       EditKind = "scalar"
	EditListItem     EditKind = "list_item"
	EditListAdd      EditKind = "list_add"
	EditListRemove   EditKind = "list_remove"
	EditStatsParam   EditKind = "stats_param"
	EditScheduleDate EditKind = "schedule_date"
)

// Edit is a single field write. Field names the scalar, list, stats
// parameter, or schedule milestone being edited; Index applies to list item
// and removal edits only.
type Edit struct {
	Kind  EditKind `json:"kind"`
	Field string   `json:"field"`
	Index int      `json:"index,omitempty"`
	Value string   `json:"value"`
}

// Apply performs one edit on the draft and runs a single cascade pass over
// the derived fields. Unknown kinds, fields, or out-of-range indexes are
// rejected before anything is written.
func Apply(d *Draft, e Edit) error {
	switch e.Kind {
	case EditScalar:
		if err := setScalar(d, e.Field, e.Value); err != nil {
			return err
		}
	case EditListItem:
		list, err := listField(d, e.Field)
		if err != nil {
			return err
		}
		if e.Index < 0 || e.Index >= len(*list) {
			return fmt.Errorf("index %d out of range for %s", e.Index, e.Field)
		}
		(*list)[e.Index] = e.Value
	case EditListAdd:
		list, err := listField(d, e.Field)
		if err != nil {
			return err
		}
		*list = append(*list, e.Value)
	case EditListRemove:
		list, err := listField(d, e.Field)
		if err != nil {
			return err
		}
		if e.Index < 0 || e.Index >= len(*list) {
			return fmt.Errorf("index %d out of range for %s", e.Index, e.Field)
		}
		*list = append((*list)[:e.Index], (*list)[e.Index+1:]...)
		if len(*list) == 0 {
			// Keep one editable row visible.
			*list = []string{""}
		}
	case EditStatsParam:
		if err := setStatsParam(&d.StatsParams, e.Field, e.Value); err != nil {
			return err
		}
	case EditScheduleDate:
		if err := setScheduleDate(&d.Schedule, e.Field, e.Value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown edit kind %q", e.Kind)
	}

	cascade(d, e)
	return nil
}

// cascade recomputes derived fields affected by the edit. It runs exactly
// once per edit; recomputed writes do not re-trigger it.
func cascade(d *Draft, e Edit) {
	switch e.Kind {
	case EditScalar:
		switch e.Field {
		case "totalSubjects", "numPhysicians":
			syncSubjectsPerPhysician(d)
		case "sampleSizeMethod":
			if e.Value == MethodPower {
				recomputeTotalSubjects(d)
			}
		}
	case EditStatsParam:
		switch e.Field {
		case "alpha", "power", "deltaOrEffectSize", "dropoutRate":
			if d.SampleSizeMethod == MethodPower {
				recomputeTotalSubjects(d)
			}
		}
	}
}

// recomputeTotalSubjects runs the power-based estimator and, on success,
// overwrites the total and cascades the per-physician split. A failed
// estimate leaves both untouched.
func recomputeTotalSubjects(d *Draft) {
	p := d.StatsParams
	total, ok := samplesize.EstimateTotal(p.Alpha, p.Power, p.DeltaOrEffectSize, p.DropoutRate)
	if !ok {
		return
	}
	d.TotalSubjects = strconv.Itoa(total)
	syncSubjectsPerPhysician(d)
}

// syncSubjectsPerPhysician keeps subjectsPerPhysician equal to
// ceil(totalSubjects / numPhysicians) whenever both parse as positive
// integers, and leaves it unchanged otherwise.
func syncSubjectsPerPhysician(d *Draft) {
	total, err1 := strconv.Atoi(strings.TrimSpace(d.TotalSubjects))
	phys, err2 := strconv.Atoi(strings.TrimSpace(d.NumPhysicians))
	if err1 != nil || err2 != nil || total <= 0 || phys <= 0 {
		return
	}
	per := int(math.Ceil(float64(total) / float64(phys)))
	d.SubjectsPerPhysician = strconv.Itoa(per)
}

func setScalar(d *Draft, field, value string) error {
	switch field {
	case "title":
		d.Title = value
	case "sponsor":
		d.Sponsor = value
	case "contextSummary":
		d.ContextSummary = value
	case "tradeName":
		d.TradeName = value
	case "activeIngredient":
		d.ActiveIngredient = value
	case "phase":
		d.Phase = value
	case "rationalePrimary":
		d.RationalePrimary = value
	case "rationaleSecondary":
		d.RationaleSecondary = value
	case "primaryObjective":
		d.PrimaryObjective = value
	case "selectionMethod":
		d.SelectionMethod = value
	case "populationDescription":
		d.PopulationDescription = value
	case "studyType":
		d.StudyType = value
	case "studyDesign":
		d.StudyDesign = value
	case "designModel":
		d.DesignModel = value
	case "controlType":
		d.ControlType = value
	case "isNested":
		d.IsNested = value == "true"
	case "followUpDuration":
		d.FollowUpDuration = value
	case "interventions":
		d.Interventions = value
	case "evaluationsGeneral":
		d.EvaluationsGeneral = value
	case "evaluationsPrimary":
		d.EvaluationsPrimary = value
	case "sampleSizeJustification":
		d.SampleSizeJustification = value
	case "sampleSizeMethod":
		d.SampleSizeMethod = value
	case "numPhysicians":
		d.NumPhysicians = value
	case "subjectsPerPhysician":
		d.SubjectsPerPhysician = value
	case "totalSubjects":
		d.TotalSubjects = value
	case "analysisHypothesis":
		d.AnalysisHypothesis = value
	case "detailedHypothesis":
		d.DetailedHypothesis = value
	case "primaryVariableType":
		d.PrimaryVariableType = value
	case "confounders":
		d.Confounders = value
	case "recruitmentProcess":
		d.RecruitmentProcess = value
	case "dataProcessing":
		d.DataProcessing = value
	case "investigatorsLocation":
		d.InvestigatorsLocation = value
	case "proposedBy":
		d.ProposedBy = value
	case "proposalDate":
		d.ProposalDate = value
	case "bibliography":
		d.Bibliography = value
	case "appendices":
		d.Appendices = value
	default:
		return fmt.Errorf("unknown scalar field %q", field)
	}
	return nil
}

func listField(d *Draft, field string) (*[]string, error) {
	switch field {
	case "measurementScales":
		return &d.MeasurementScales, nil
	case "secondaryObjectives":
		return &d.SecondaryObjectives, nil
	case "inclusionCriteria":
		return &d.InclusionCriteria, nil
	case "exclusionCriteria":
		return &d.ExclusionCriteria, nil
	case "evaluationsSecondary":
		return &d.EvaluationsSecondary, nil
	case "variableDefinitions":
		return &d.VariableDefinitions, nil
	case "otherVariables":
		return &d.OtherVariables, nil
	case "statisticalAnalysis":
		return &d.StatisticalAnalysis, nil
	default:
		return nil, fmt.Errorf("unknown list field %q", field)
	}
}

// AppendListItems appends generated suggestions to a list field. Blank rows
// are dropped first so the placeholder never survives a successful append;
// with nothing to add the field is left exactly as it was.
func AppendListItems(d *Draft, field string, items []string) error {
	list, err := listField(d, field)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	var kept []string
	for _, v := range *list {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	*list = append(kept, items...)
	return nil
}

func setStatsParam(p *StatsParams, field, value string) error {
	switch field {
	case "alpha":
		p.Alpha = value
	case "power":
		p.Power = value
	case "precision":
		p.Precision = value
	case "dropoutRate":
		p.DropoutRate = value
	case "deltaOrEffectSize":
		p.DeltaOrEffectSize = value
	default:
		return fmt.Errorf("unknown stats parameter %q", field)
	}
	return nil
}

func setScheduleDate(s *Schedule, field, value string) error {
	switch field {
	case "ethicsSubmission":
		s.EthicsSubmission = value
	case "siteInitiation":
		s.SiteInitiation = value
	case "firstPatientIn":
		s.FirstPatientIn = value
	case "interimAnalysis":
		s.InterimAnalysis = value
	case "lastPatientOut":
		s.LastPatientOut = value
	case "dbLock":
		s.DBLock = value
	case "finalReport":
		s.FinalReport = value
	default:
		return fmt.Errorf("unknown schedule field %q", field)
	}
	return nil
}
