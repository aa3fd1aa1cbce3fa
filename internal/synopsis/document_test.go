package synopsis

import (
	"strings"
	"testing"

	"github.com/joelkehle/protocol-studio/internal/classify"
	"github.com/joelkehle/protocol-studio/internal/protocol"
)

func sampleDraft() protocol.Draft {
	d := protocol.NewDraft()
	d.Title = "Effect of metformin on HbA1c reduction in adults"
	d.Sponsor = "University Hospital"
	d.Phase = "IV"
	d.TradeName = "Glucophage"
	d.ActiveIngredient = "metformin"
	d.PrimaryObjective = "Determine if metformin improves HbA1c."
	d.PopulationDescription = "Adults with type 2 diabetes."
	d.InclusionCriteria = []string{"Adults over 18", "Signed consent"}
	d.StudyType = "Clinical Trial"
	d.StudyDesign = "Randomized Clinical Trial (RCT), Parallel Group, placebo-controlled, prospective."
	d.TotalSubjects = "126"
	d.NumPhysicians = "10"
	d.SubjectsPerPhysician = "13"
	d.StatisticalAnalysis = []string{"Intention-to-treat analysis."}
	d.Schedule.FirstPatientIn = "2026-09-01"
	d.Bibliography = "1. Smith J. 2020."
	return d
}

func TestBuildMarkdownSections(t *testing.T) {
	md := BuildMarkdown(sampleDraft(), classify.LocaleEN)

	for _, want := range []string{
		"# Effect of metformin on HbA1c reduction in adults",
		"## General Information",
		"**Sponsor:** University Hospital",
		"**Investigational Product:** Glucophage (metformin)",
		"## Objectives",
		"### Primary Objective",
		"## Study Population",
		"- Adults over 18",
		"## Study Design",
		"**Clinical Trial**",
		"## Statistical Considerations",
		"- **Total subjects:** 126",
		"- **Subjects per site:** 13",
		"| First patient in | 2026-09-01 |",
		"## Bibliography",
		"1. Smith J. 2020.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestBuildMarkdownOmitsEmptySections(t *testing.T) {
	d := protocol.NewDraft()
	d.Title = "Bare Draft"
	md := BuildMarkdown(d, classify.LocaleEN)

	for _, absent := range []string{"## Rationale", "## Study Design", "## Bibliography", "## Study Operations"} {
		if strings.Contains(md, absent) {
			t.Errorf("markdown contains %q for an empty draft\n%s", absent, md)
		}
	}
	// Placeholder rows never render as list bullets.
	if strings.Contains(md, "- \n") || strings.Contains(md, "-  ") {
		t.Errorf("markdown renders blank list rows:\n%s", md)
	}
}

func TestBuildMarkdownNestedFlagOnlyForCaseControl(t *testing.T) {
	d := protocol.NewDraft()
	d.StudyType = "Nested Case-Control"
	d.StudyDesign = "Analytic Observational Study: Case-Control (Nested)."
	d.IsNested = true
	md := BuildMarkdown(d, classify.LocaleEN)
	if !strings.Contains(md, "Nested within a defined cohort") {
		t.Errorf("nested note missing:\n%s", md)
	}

	d.StudyType = "Cohort"
	d.StudyDesign = "Analytic Observational Study: Cohort (Prospective)."
	md = BuildMarkdown(d, classify.LocaleEN)
	if strings.Contains(md, "Nested within a defined cohort") {
		t.Errorf("nested note rendered for a non case-control type:\n%s", md)
	}
}

func TestBuildMarkdownSpanishHeadings(t *testing.T) {
	md := BuildMarkdown(sampleDraft(), classify.LocaleES)
	for _, want := range []string{"## Información General", "## Objetivos", "## Consideraciones Estadísticas", "## Bibliografía"} {
		if !strings.Contains(md, want) {
			t.Errorf("spanish markdown missing %q", want)
		}
	}
}

func TestBuildPreviewHTML(t *testing.T) {
	html, err := BuildPreviewHTML(sampleDraft(), classify.LocaleEN)
	if err != nil {
		t.Fatalf("BuildPreviewHTML: %v", err)
	}
	for _, want := range []string{
		"<!doctype html>",
		"<h1>Effect of metformin on HbA1c reduction in adults</h1>",
		"<h2>General Information</h2>",
		"<table>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("preview missing %q", want)
		}
	}
}

func TestBuildPreviewHTMLEscapesTitle(t *testing.T) {
	d := protocol.NewDraft()
	d.Title = `A <b>"bold"</b> & risky title`
	html, err := BuildPreviewHTML(d, classify.LocaleEN)
	if err != nil {
		t.Fatalf("BuildPreviewHTML: %v", err)
	}
	if !strings.Contains(html, "<title>A &lt;b&gt;&quot;bold&quot;&lt;/b&gt; &amp; risky title</title>") {
		t.Errorf("title not escaped:\n%s", html)
	}
}
