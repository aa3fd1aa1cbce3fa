package classify

// templates holds every locale-dependent string the engine emits. Branching
// never consults the locale; only these tables do.
type templates struct {
	effectOf     string
	assocBetween string
	exposure     string
	prepOn       string
	prepIn       string

	populationDesc    string // Sprintf with population
	inclusionMeeting  string // Sprintf with population
	inclusionConsent  string
	determine         string
	improves          string
	associatedWith    string
	uncertainty       string // Sprintf with intervention, outcome
	interventionLabel string

	rctDesign        string // Sprintf with design adjective, control adjective
	crossoverAdj     string
	parallelAdj      string
	activeCtrlAdj    string
	placeboCtrlAdj   string
	clinicalTrial    string
	groupInt         string
	groupCtrl        string
	standardCare     string
	placebo          string
	rctStatsCross    []string
	rctStatsParallel []string
	hypSuperiorVs    string // Sprintf with intervention, control, outcome
	hypSupNonInfVs   string // Sprintf with intervention, control, outcome

	quasiDesign string
	quasiType   string
	quasiStats  []string
	quasiHyp    string // Sprintf with intervention, outcome

	descriptiveDesign string
	descriptiveType   string
	descriptiveStats  []string
	descriptiveHyp    string

	crossSectionalDesign string
	crossSectionalType   string
	crossSectionalStats  []string

	caseControlDesign       string
	caseControlNestedDesign string
	caseControlType         string
	caseControlNestedType   string
	caseControlStats        []string
	cases                   string
	controls                string
	withWord                string
	withoutWord             string

	cohortDesign   string
	cohortType     string
	cohortStats    []string
	exposedCohort  string
	unexposedCohrt string
	noWord         string

	observationalHyp string // Sprintf with intervention, outcome
}

var localeTemplates = map[Locale]templates{
	LocaleEN: {
		effectOf:     "Effect of",
		assocBetween: "Association between",
		exposure:     "exposure",
		prepOn:       "on",
		prepIn:       "in",

		populationDesc:    "The study population will consist of %s.",
		inclusionMeeting:  "Patients meeting the definition of %s",
		inclusionConsent:  "Signed informed consent",
		determine:         "Determine if",
		improves:          "improves",
		associatedWith:    "is associated with",
		uncertainty:       "There is uncertainty regarding the impact of %s on %s.",
		interventionLabel: "Intervention",

		rctDesign:        "Randomized Clinical Trial (RCT), %s, %s, prospective.",
		crossoverAdj:     "Crossover",
		parallelAdj:      "Parallel Group",
		activeCtrlAdj:    "active-controlled",
		placeboCtrlAdj:   "placebo-controlled",
		clinicalTrial:    "Clinical Trial",
		groupInt:         "Intervention Group",
		groupCtrl:        "Control Group",
		standardCare:     "Standard Care",
		placebo:          "Placebo",
		rctStatsCross:    []string{"Mixed models or ANOVA for repeated measures.", "Evaluation of period and carry-over effects."},
		rctStatsParallel: []string{"Intention-to-treat analysis.", "Comparison of proportions or means."},
		hypSuperiorVs:    "Treatment with %s is superior to %s in terms of improving %s.",
		hypSupNonInfVs:   "Treatment with %s is superior (or non-inferior) to %s on %s.",

		quasiDesign: "Quasi-experimental Study (Non-randomized trial).",
		quasiType:   "Quasi-experimental",
		quasiStats:  []string{"Pre-post comparison or non-equivalent groups."},
		quasiHyp:    "Intervention %s is associated with significant changes in %s.",

		descriptiveDesign: "Descriptive Observational Study.",
		descriptiveType:   "Observational",
		descriptiveStats:  []string{"Descriptive statistics."},
		descriptiveHyp:    "No formal analytical hypothesis (Descriptive Study).",

		crossSectionalDesign: "Cross-sectional Observational Study.",
		crossSectionalType:   "Cross-sectional",
		crossSectionalStats:  []string{"Prevalence calculation (Odds Ratio)."},

		caseControlDesign:       "Analytic Observational Study: Case-Control.",
		caseControlNestedDesign: "Analytic Observational Study: Case-Control (Nested).",
		caseControlType:         "Case-Control",
		caseControlNestedType:   "Nested Case-Control",
		caseControlStats:        []string{"Odds Ratio (OR)."},
		cases:                   "Cases",
		controls:                "Controls",
		withWord:                "with",
		withoutWord:             "without",

		cohortDesign:   "Analytic Observational Study: Cohort (Prospective).",
		cohortType:     "Cohort",
		cohortStats:    []string{"Relative Risk (RR).", "Survival analysis."},
		exposedCohort:  "Exposed Cohort",
		unexposedCohrt: "Unexposed Cohort",
		noWord:         "No",

		observationalHyp: "There is a significant association between %s and %s in the studied population.",
	},
	LocaleES: {
		effectOf:     "Efecto de",
		assocBetween: "Asociación entre",
		exposure:     "la exposición",
		prepOn:       "sobre",
		prepIn:       "en",

		populationDesc:    "La población de estudio consistirá en %s.",
		inclusionMeeting:  "Pacientes que cumplan con la definición de %s",
		inclusionConsent:  "Firmar consentimiento informado",
		determine:         "Determinar si",
		improves:          "mejora",
		associatedWith:    "se asocia con",
		uncertainty:       "Existe incertidumbre sobre el impacto de %s sobre %s.",
		interventionLabel: "Intervención",

		rctDesign:        "Ensayo Clínico Aleatorizado (ECA), %s, %s, prospectivo.",
		crossoverAdj:     "Cruzado (Crossover)",
		parallelAdj:      "de Grupos Paralelos",
		activeCtrlAdj:    "controlado con comparador activo",
		placeboCtrlAdj:   "controlado con placebo",
		clinicalTrial:    "Ensayo Clínico",
		groupInt:         "Grupo Intervención",
		groupCtrl:        "Grupo Control",
		standardCare:     "Tratamiento Estándar",
		placebo:          "Placebo",
		rctStatsCross:    []string{"Análisis de modelos mixtos o ANOVA para medidas repetidas.", "Evaluación de efecto período y arrastre (carry-over)."},
		rctStatsParallel: []string{"Análisis por intención de tratar.", "Comparación de proporciones o medias."},
		hypSuperiorVs:    "El tratamiento con %s es superior a %s en términos de mejorar %s.",
		hypSupNonInfVs:   "El tratamiento con %s es superior (o no-inferior) a %s en %s.",

		quasiDesign: "Estudio Cuasi-experimental (Ensayo no aleatorizado).",
		quasiType:   "Cuasi-experimental",
		quasiStats:  []string{"Comparación pre-post o entre grupos no equivalentes."},
		quasiHyp:    "La intervención %s se asocia con cambios significativos en %s.",

		descriptiveDesign: "Estudio Observacional Descriptivo.",
		descriptiveType:   "Observacional",
		descriptiveStats:  []string{"Estadística descriptiva."},
		descriptiveHyp:    "No se plantea hipótesis analítica formal (Estudio Descriptivo).",

		crossSectionalDesign: "Estudio Observacional Transversal (Cross-sectional).",
		crossSectionalType:   "Observacional Transversal",
		crossSectionalStats:  []string{"Cálculo de Prevalencia (Odds Ratio)."},

		caseControlDesign:       "Estudio Observacional Analítico: Casos y Controles.",
		caseControlNestedDesign: "Estudio Observacional Analítico: Casos y Controles Anidado (Nested).",
		caseControlType:         "Casos y Controles",
		caseControlNestedType:   "Casos y Controles Anidado",
		caseControlStats:        []string{"Odds Ratio (OR)."},
		cases:                   "Casos",
		controls:                "Controles",
		withWord:                "con",
		withoutWord:             "sin",

		cohortDesign:   "Estudio Observacional Analítico: Cohortes (Prospectivo).",
		cohortType:     "Cohortes",
		cohortStats:    []string{"Riesgo Relativo (RR).", "Análisis de supervivencia."},
		exposedCohort:  "Cohorte Expuesta",
		unexposedCohrt: "Cohorte No Expuesta",
		noWord:         "Sin",

		observationalHyp: "Existe una asociación significativa entre %s y %s en la población estudiada.",
	},
}

// tr resolves the template table for a locale, defaulting to English.
func tr(loc Locale) templates {
	if t, ok := localeTemplates[loc]; ok {
		return t
	}
	return localeTemplates[LocaleEN]
}
