package protocol

import "strings"

// Reconcile merges a loaded or imported draft over the default shape so the
// result is structurally complete: every nested object has all of its keys
// and every list field has at least one editable row. Malformed input never
// produces an error here; transport-level JSON failures are the caller's
// concern.
func Reconcile(loaded Draft) Draft {
	base := NewDraft()
	out := loaded.Clone()

	if out.SchemaVersion <= 0 {
		out.SchemaVersion = SchemaVersion
	}

	out.StatsParams = mergeStatsParams(loaded.StatsParams, base.StatsParams)
	out.Schedule = mergeSchedule(loaded.Schedule, base.Schedule)

	out.MeasurementScales = mergeListField(loaded.MeasurementScales)
	out.SecondaryObjectives = mergeListField(loaded.SecondaryObjectives)
	out.InclusionCriteria = mergeListField(loaded.InclusionCriteria)
	out.ExclusionCriteria = mergeListField(loaded.ExclusionCriteria)
	out.EvaluationsSecondary = mergeListField(loaded.EvaluationsSecondary)
	out.VariableDefinitions = mergeListField(loaded.VariableDefinitions)
	out.OtherVariables = mergeListField(loaded.OtherVariables)
	out.StatisticalAnalysis = mergeListField(loaded.StatisticalAnalysis)

	return out
}

// mergeStatsParams fills blank keys from the defaults so a partially saved
// older document still yields a complete parameter set.
func mergeStatsParams(loaded, def StatsParams) StatsParams {
	out := loaded
	if strings.TrimSpace(out.Alpha) == "" {
		out.Alpha = def.Alpha
	}
	if strings.TrimSpace(out.Power) == "" {
		out.Power = def.Power
	}
	if strings.TrimSpace(out.Precision) == "" {
		out.Precision = def.Precision
	}
	if strings.TrimSpace(out.DropoutRate) == "" {
		out.DropoutRate = def.DropoutRate
	}
	return out
}

func mergeSchedule(loaded, def Schedule) Schedule {
	// Schedule defaults are all empty, so key-by-key merging reduces to
	// keeping the loaded values; the struct type itself guarantees all seven
	// milestone keys exist in the serialized form.
	_ = def
	return loaded
}

// mergeListField substitutes the single-empty-element placeholder when the
// loaded value is absent or empty. Lists are never left nil.
func mergeListField(loaded []string) []string {
	if len(loaded) == 0 {
		return []string{""}
	}
	out := make([]string, len(loaded))
	copy(out, loaded)
	return out
}
