package protocol

import (
	"encoding/json"
	"testing"
)

func TestReconcileFillsMissingStructure(t *testing.T) {
	// A truncated export from an older build: no lists, no statsParams, no
	// schema version.
	raw := `{"title":"Imported Study","totalSubjects":"50"}`
	var loaded Draft
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := Reconcile(loaded)

	if got.Title != "Imported Study" || got.TotalSubjects != "50" {
		t.Errorf("loaded values lost: title=%q total=%q", got.Title, got.TotalSubjects)
	}
	if got.SchemaVersion != SchemaVersion {
		t.Errorf("schemaVersion = %d, want %d", got.SchemaVersion, SchemaVersion)
	}
	for name, list := range map[string][]string{
		"measurementScales":    got.MeasurementScales,
		"secondaryObjectives":  got.SecondaryObjectives,
		"inclusionCriteria":    got.InclusionCriteria,
		"exclusionCriteria":    got.ExclusionCriteria,
		"evaluationsSecondary": got.EvaluationsSecondary,
		"variableDefinitions":  got.VariableDefinitions,
		"otherVariables":       got.OtherVariables,
		"statisticalAnalysis":  got.StatisticalAnalysis,
	} {
		if len(list) != 1 || list[0] != "" {
			t.Errorf("%s = %v, want single empty row", name, list)
		}
	}
	if got.StatsParams.Alpha != "0.05" || got.StatsParams.Power != "0.80" ||
		got.StatsParams.Precision != "95%" || got.StatsParams.DropoutRate != "15%" {
		t.Errorf("statsParams = %+v, want defaults filled", got.StatsParams)
	}
}

func TestReconcileKeepsExistingContent(t *testing.T) {
	loaded := NewDraft()
	loaded.InclusionCriteria = []string{"Adults", "Consent given"}
	loaded.StatsParams.Alpha = "0.01"
	loaded.Schedule.FinalReport = "2027-01-31"
	loaded.SchemaVersion = 1

	got := Reconcile(loaded)

	if len(got.InclusionCriteria) != 2 || got.InclusionCriteria[0] != "Adults" {
		t.Errorf("inclusionCriteria = %v", got.InclusionCriteria)
	}
	if got.StatsParams.Alpha != "0.01" {
		t.Errorf("alpha = %q, want entered value kept", got.StatsParams.Alpha)
	}
	if got.Schedule.FinalReport != "2027-01-31" {
		t.Errorf("finalReport = %q", got.Schedule.FinalReport)
	}
}

func TestReconcileDoesNotAliasInput(t *testing.T) {
	loaded := NewDraft()
	loaded.ExclusionCriteria = []string{"Pregnancy"}
	got := Reconcile(loaded)
	got.ExclusionCriteria[0] = "changed"
	if loaded.ExclusionCriteria[0] != "Pregnancy" {
		t.Error("reconciled draft shares list backing array with input")
	}
}
