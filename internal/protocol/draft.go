// Package protocol holds the protocol synopsis draft model and the pure
// operations that mutate it: typed field edits, derived-field cascades,
// import reconciliation, and bibliography bookkeeping.
package protocol

// SchemaVersion tags the serialized draft format. Loads without a version
// are treated as version 1 after reconciliation.
const SchemaVersion = 1

// Design classification vocabularies. Empty string means "not set".
const (
	ModelParallel    = "parallel"
	ModelCrossover   = "crossover"
	ModelFactorial   = "factorial"
	ModelPrePost     = "pre_post"
	ModelSingleGroup = "single_group"

	ControlPlacebo    = "placebo"
	ControlActive     = "active"
	ControlHistorical = "historical"
	ControlNone       = "none"

	MethodPower       = "power"
	MethodPrecision   = "precision"
	MethodConvenience = "convenience"

	HypSuperiority    = "superiority"
	HypNonInferiority = "non_inferiority"
	HypEquivalence    = "equivalence"
	HypExploratory    = "exploratory"

	VarContinuous  = "continuous"
	VarBinary      = "binary"
	VarTimeToEvent = "time_to_event"
)

// StatsParams are the sample-size calculation inputs. All values are kept as
// entered; parsing happens in the estimator.
type StatsParams struct {
	Alpha             string `json:"alpha"`
	Power             string `json:"power"`
	Precision         string `json:"precision"`
	DropoutRate       string `json:"dropoutRate"`
	DeltaOrEffectSize string `json:"deltaOrEffectSize"`
}

// Schedule holds the named milestone dates, each an ISO date string or empty.
type Schedule struct {
	EthicsSubmission string `json:"ethicsSubmission"`
	SiteInitiation   string `json:"siteInitiation"`
	FirstPatientIn   string `json:"firstPatientIn"`
	InterimAnalysis  string `json:"interimAnalysis"`
	LastPatientOut   string `json:"lastPatientOut"`
	DBLock           string `json:"dbLock"`
	FinalReport      string `json:"finalReport"`
}

// Draft is the protocol synopsis document under construction.
type Draft struct {
	SchemaVersion int `json:"schemaVersion"`

	// General
	Title            string `json:"title"`
	Sponsor          string `json:"sponsor"`
	ContextSummary   string `json:"contextSummary"`
	TradeName        string `json:"tradeName"`
	ActiveIngredient string `json:"activeIngredient"`
	Phase            string `json:"phase"`

	// Rationale
	RationalePrimary   string `json:"rationalePrimary"`
	RationaleSecondary string `json:"rationaleSecondary"`

	// Objectives
	MeasurementScales   []string `json:"measurementScales"`
	PrimaryObjective    string   `json:"primaryObjective"`
	SecondaryObjectives []string `json:"secondaryObjectives"`

	// Population
	SelectionMethod       string   `json:"selectionMethod"`
	PopulationDescription string   `json:"populationDescription"`
	InclusionCriteria     []string `json:"inclusionCriteria"`
	ExclusionCriteria     []string `json:"exclusionCriteria"`

	// Design & interventions
	StudyType        string `json:"studyType"`
	StudyDesign      string `json:"studyDesign"`
	DesignModel      string `json:"designModel"`
	ControlType      string `json:"controlType"`
	IsNested         bool   `json:"isNested"`
	FollowUpDuration string `json:"followUpDuration"`
	Interventions    string `json:"interventions"`

	// Evaluations
	EvaluationsGeneral   string   `json:"evaluationsGeneral"`
	EvaluationsPrimary   string   `json:"evaluationsPrimary"`
	EvaluationsSecondary []string `json:"evaluationsSecondary"`
	VariableDefinitions  []string `json:"variableDefinitions"`
	OtherVariables       []string `json:"otherVariables"`

	// Statistics
	SampleSizeJustification string      `json:"sampleSizeJustification"`
	SampleSizeMethod        string      `json:"sampleSizeMethod"`
	StatsParams             StatsParams `json:"statsParams"`
	NumPhysicians           string      `json:"numPhysicians"`
	SubjectsPerPhysician    string      `json:"subjectsPerPhysician"`
	TotalSubjects           string      `json:"totalSubjects"`
	StatisticalAnalysis     []string    `json:"statisticalAnalysis"`
	AnalysisHypothesis      string      `json:"analysisHypothesis"`
	DetailedHypothesis      string      `json:"detailedHypothesis"`
	PrimaryVariableType     string      `json:"primaryVariableType"`
	Confounders             string      `json:"confounders"`

	// Operations & admin
	RecruitmentProcess    string   `json:"recruitmentProcess"`
	DataProcessing        string   `json:"dataProcessing"`
	InvestigatorsLocation string   `json:"investigatorsLocation"`
	Schedule              Schedule `json:"schedule"`
	ProposedBy            string   `json:"proposedBy"`
	ProposalDate          string   `json:"proposalDate"`

	// Back matter
	Bibliography string `json:"bibliography"`
	Appendices   string `json:"appendices"`
}

// NewDraft returns the all-empty default draft. List fields start with a
// single empty element so there is always one editable row, and the stats
// parameters carry their conventional defaults.
func NewDraft() Draft {
	return Draft{
		SchemaVersion:        SchemaVersion,
		MeasurementScales:    []string{""},
		SecondaryObjectives:  []string{""},
		InclusionCriteria:    []string{""},
		ExclusionCriteria:    []string{""},
		EvaluationsSecondary: []string{""},
		VariableDefinitions:  []string{""},
		OtherVariables:       []string{""},
		StatisticalAnalysis:  []string{""},
		StatsParams: StatsParams{
			Alpha:       "0.05",
			Power:       "0.80",
			Precision:   "95%",
			DropoutRate: "15%",
		},
	}
}

// Clone returns a deep copy of the draft. List fields are copied so edits to
// the clone never alias the original.
func (d Draft) Clone() Draft {
	c := d
	c.MeasurementScales = copyList(d.MeasurementScales)
	c.SecondaryObjectives = copyList(d.SecondaryObjectives)
	c.InclusionCriteria = copyList(d.InclusionCriteria)
	c.ExclusionCriteria = copyList(d.ExclusionCriteria)
	c.EvaluationsSecondary = copyList(d.EvaluationsSecondary)
	c.VariableDefinitions = copyList(d.VariableDefinitions)
	c.OtherVariables = copyList(d.OtherVariables)
	c.StatisticalAnalysis = copyList(d.StatisticalAnalysis)
	return c
}

func copyList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
