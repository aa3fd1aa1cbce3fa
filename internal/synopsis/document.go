// Package synopsis renders a protocol draft into the formatted synopsis
// document: markdown for export and goldmark HTML for the live preview.
package synopsis

import (
	"fmt"
	"strings"

	"github.com/joelkehle/protocol-studio/internal/classify"
	"github.com/joelkehle/protocol-studio/internal/protocol"
)

type headings struct {
	general, background, rationale, objectives     string
	primaryObjective, secondaryObjectives          string
	population, selection, inclusion, exclusion    string
	design, interventions, followUp, evaluations   string
	statistics, sampleSize, analysisPlan           string
	hypothesis, operations, schedule, bibliography string
	appendices, sponsor, phase, product            string
	proposedBy, date, nestedNote, sites, perSite   string
	totalSubjects, scales, variables               string
}

var localeHeadings = map[classify.Locale]headings{
	classify.LocaleEN: {
		general: "General Information", background: "Background", rationale: "Rationale",
		objectives: "Objectives", primaryObjective: "Primary Objective", secondaryObjectives: "Secondary Objectives",
		population: "Study Population", selection: "Subject Selection", inclusion: "Inclusion Criteria", exclusion: "Exclusion Criteria",
		design: "Study Design", interventions: "Interventions", followUp: "Follow-up Duration", evaluations: "Evaluations",
		statistics: "Statistical Considerations", sampleSize: "Sample Size", analysisPlan: "Statistical Analysis Plan",
		hypothesis: "Hypothesis", operations: "Study Operations", schedule: "Study Schedule", bibliography: "Bibliography",
		appendices: "Appendices", sponsor: "Sponsor", phase: "Phase", product: "Investigational Product",
		proposedBy: "Proposed by", date: "Date", nestedNote: "Nested within a defined cohort", sites: "Participating sites",
		perSite: "Subjects per site", totalSubjects: "Total subjects", scales: "Measurement Scales", variables: "Study Variables",
	},
	classify.LocaleES: {
		general: "Información General", background: "Antecedentes", rationale: "Justificación",
		objectives: "Objetivos", primaryObjective: "Objetivo Principal", secondaryObjectives: "Objetivos Secundarios",
		population: "Población de Estudio", selection: "Selección de Sujetos", inclusion: "Criterios de Inclusión", exclusion: "Criterios de Exclusión",
		design: "Diseño del Estudio", interventions: "Intervenciones", followUp: "Duración del Seguimiento", evaluations: "Evaluaciones",
		statistics: "Consideraciones Estadísticas", sampleSize: "Tamaño Muestral", analysisPlan: "Plan de Análisis Estadístico",
		hypothesis: "Hipótesis", operations: "Operaciones del Estudio", schedule: "Cronograma", bibliography: "Bibliografía",
		appendices: "Anexos", sponsor: "Promotor", phase: "Fase", product: "Producto en Investigación",
		proposedBy: "Propuesto por", date: "Fecha", nestedNote: "Anidado en una cohorte definida", sites: "Centros participantes",
		perSite: "Sujetos por centro", totalSubjects: "Sujetos totales", scales: "Escalas de Medición", variables: "Variables del Estudio",
	},
}

// BuildMarkdown renders the draft as a synopsis document. Empty fields are
// omitted rather than rendered as blanks.
func BuildMarkdown(d protocol.Draft, loc classify.Locale) string {
	h, ok := localeHeadings[loc]
	if !ok {
		h = localeHeadings[classify.LocaleEN]
	}

	var b strings.Builder
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = "Protocol Synopsis"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	buildGeneral(&b, d, h)
	buildSection(&b, h.background, d.ContextSummary)
	buildRationale(&b, d, h)
	buildObjectives(&b, d, h)
	buildPopulation(&b, d, h)
	buildDesign(&b, d, h)
	buildEvaluations(&b, d, h)
	buildStatistics(&b, d, h)
	buildOperations(&b, d, h)
	buildSection(&b, h.bibliography, d.Bibliography)
	buildSection(&b, h.appendices, d.Appendices)
	return b.String()
}

func buildGeneral(b *strings.Builder, d protocol.Draft, h headings) {
	var rows []string
	if v := strings.TrimSpace(d.Sponsor); v != "" {
		rows = append(rows, fmt.Sprintf("- **%s:** %s", h.sponsor, v))
	}
	product := strings.TrimSpace(d.TradeName)
	if ai := strings.TrimSpace(d.ActiveIngredient); ai != "" {
		if product != "" {
			product += " (" + ai + ")"
		} else {
			product = ai
		}
	}
	if product != "" {
		rows = append(rows, fmt.Sprintf("- **%s:** %s", h.product, product))
	}
	if v := strings.TrimSpace(d.Phase); v != "" {
		rows = append(rows, fmt.Sprintf("- **%s:** %s", h.phase, v))
	}
	if v := strings.TrimSpace(d.ProposedBy); v != "" {
		rows = append(rows, fmt.Sprintf("- **%s:** %s", h.proposedBy, v))
	}
	if v := strings.TrimSpace(d.ProposalDate); v != "" {
		rows = append(rows, fmt.Sprintf("- **%s:** %s", h.date, v))
	}
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n%s\n\n", h.general, strings.Join(rows, "\n"))
}

func buildRationale(b *strings.Builder, d protocol.Draft, h headings) {
	primary := strings.TrimSpace(d.RationalePrimary)
	secondary := strings.TrimSpace(d.RationaleSecondary)
	if primary == "" && secondary == "" {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", h.rationale)
	if primary != "" {
		fmt.Fprintf(b, "%s\n\n", primary)
	}
	if secondary != "" {
		fmt.Fprintf(b, "%s\n\n", secondary)
	}
}

func buildObjectives(b *strings.Builder, d protocol.Draft, h headings) {
	primary := strings.TrimSpace(d.PrimaryObjective)
	secondary := nonBlank(d.SecondaryObjectives)
	scales := nonBlank(d.MeasurementScales)
	if primary == "" && len(secondary) == 0 && len(scales) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", h.objectives)
	if primary != "" {
		fmt.Fprintf(b, "### %s\n\n%s\n\n", h.primaryObjective, primary)
	}
	buildList(b, h.secondaryObjectives, secondary)
	buildList(b, h.scales, scales)
}

func buildPopulation(b *strings.Builder, d protocol.Draft, h headings) {
	desc := strings.TrimSpace(d.PopulationDescription)
	sel := strings.TrimSpace(d.SelectionMethod)
	incl := nonBlank(d.InclusionCriteria)
	excl := nonBlank(d.ExclusionCriteria)
	if desc == "" && sel == "" && len(incl) == 0 && len(excl) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", h.population)
	if desc != "" {
		fmt.Fprintf(b, "%s\n\n", desc)
	}
	if sel != "" {
		fmt.Fprintf(b, "### %s\n\n%s\n\n", h.selection, sel)
	}
	buildList(b, h.inclusion, incl)
	buildList(b, h.exclusion, excl)
}

func buildDesign(b *strings.Builder, d protocol.Draft, h headings) {
	design := strings.TrimSpace(d.StudyDesign)
	studyType := strings.TrimSpace(d.StudyType)
	if design == "" && studyType == "" {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", h.design)
	if studyType != "" {
		fmt.Fprintf(b, "**%s**", studyType)
		if d.IsNested && isCaseControl(studyType) {
			fmt.Fprintf(b, " (%s)", h.nestedNote)
		}
		b.WriteString("\n\n")
	}
	if design != "" {
		fmt.Fprintf(b, "%s\n\n", design)
	}
	if v := strings.TrimSpace(d.Interventions); v != "" {
		fmt.Fprintf(b, "### %s\n\n%s\n\n", h.interventions, v)
	}
	if v := strings.TrimSpace(d.FollowUpDuration); v != "" {
		fmt.Fprintf(b, "**%s:** %s\n\n", h.followUp, v)
	}
}

func buildEvaluations(b *strings.Builder, d protocol.Draft, h headings) {
	general := strings.TrimSpace(d.EvaluationsGeneral)
	primary := strings.TrimSpace(d.EvaluationsPrimary)
	secondary := nonBlank(d.EvaluationsSecondary)
	vars := append(nonBlank(d.VariableDefinitions), nonBlank(d.OtherVariables)...)
	if general == "" && primary == "" && len(secondary) == 0 && len(vars) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", h.evaluations)
	if general != "" {
		fmt.Fprintf(b, "%s\n\n", general)
	}
	if primary != "" {
		fmt.Fprintf(b, "%s\n\n", primary)
	}
	buildList(b, "", secondary)
	buildList(b, h.variables, vars)
}

func buildStatistics(b *strings.Builder, d protocol.Draft, h headings) {
	analysis := nonBlank(d.StatisticalAnalysis)
	just := strings.TrimSpace(d.SampleSizeJustification)
	hyp := strings.TrimSpace(d.DetailedHypothesis)
	total := strings.TrimSpace(d.TotalSubjects)
	if len(analysis) == 0 && just == "" && hyp == "" && total == "" {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", h.statistics)
	if total != "" || just != "" {
		fmt.Fprintf(b, "### %s\n\n", h.sampleSize)
		if total != "" {
			fmt.Fprintf(b, "- **%s:** %s\n", h.totalSubjects, total)
			if v := strings.TrimSpace(d.NumPhysicians); v != "" {
				fmt.Fprintf(b, "- **%s:** %s\n", h.sites, v)
			}
			if v := strings.TrimSpace(d.SubjectsPerPhysician); v != "" {
				fmt.Fprintf(b, "- **%s:** %s\n", h.perSite, v)
			}
			b.WriteString("\n")
		}
		if just != "" {
			fmt.Fprintf(b, "%s\n\n", just)
		}
	}
	if hyp != "" {
		fmt.Fprintf(b, "### %s\n\n%s\n\n", h.hypothesis, hyp)
	}
	buildList(b, h.analysisPlan, analysis)
	if v := strings.TrimSpace(d.Confounders); v != "" {
		fmt.Fprintf(b, "%s\n\n", v)
	}
}

func buildOperations(b *strings.Builder, d protocol.Draft, h headings) {
	recruit := strings.TrimSpace(d.RecruitmentProcess)
	data := strings.TrimSpace(d.DataProcessing)
	loc := strings.TrimSpace(d.InvestigatorsLocation)
	sched := scheduleRows(d.Schedule)
	if recruit == "" && data == "" && loc == "" && len(sched) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", h.operations)
	for _, v := range []string{recruit, data, loc} {
		if v != "" {
			fmt.Fprintf(b, "%s\n\n", v)
		}
	}
	if len(sched) > 0 {
		fmt.Fprintf(b, "### %s\n\n", h.schedule)
		fmt.Fprintf(b, "| Milestone | Date |\n|---|---|\n")
		for _, row := range sched {
			fmt.Fprintf(b, "| %s | %s |\n", row[0], row[1])
		}
		b.WriteString("\n")
	}
}

func scheduleRows(s protocol.Schedule) [][2]string {
	all := [][2]string{
		{"Ethics submission", s.EthicsSubmission},
		{"Site initiation", s.SiteInitiation},
		{"First patient in", s.FirstPatientIn},
		{"Interim analysis", s.InterimAnalysis},
		{"Last patient out", s.LastPatientOut},
		{"Database lock", s.DBLock},
		{"Final report", s.FinalReport},
	}
	var out [][2]string
	for _, row := range all {
		if strings.TrimSpace(row[1]) != "" {
			out = append(out, row)
		}
	}
	return out
}

func buildSection(b *strings.Builder, heading, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	fmt.Fprintf(b, "## %s\n\n%s\n\n", heading, text)
}

func buildList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	if heading != "" {
		fmt.Fprintf(b, "### %s\n\n", heading)
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func nonBlank(items []string) []string {
	var out []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, strings.TrimSpace(item))
		}
	}
	return out
}

// isCaseControl reports whether the study type label denotes a case-control
// design in either supported locale. The nested flag is only surfaced then.
func isCaseControl(studyType string) bool {
	lower := strings.ToLower(studyType)
	return strings.Contains(lower, "case-control") || strings.Contains(lower, "casos y controles")
}
