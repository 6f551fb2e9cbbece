package main

import (
	"regexp"
	"strings"
)

// vitalReading is one vital sign with its parsed value(s) and the matched text.
type vitalReading struct {
	Type      string `json:"type"`
	Value     string `json:"value,omitempty"`
	Systolic  string `json:"systolic,omitempty"`
	Diastolic string `json:"diastolic,omitempty"`
	Text      string `json:"text"`
}

// entitySpan records where a recognized term occurred in the note.
type entitySpan struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// structuredNote is the structured view of a clinical note returned by
// extractEntities alongside the summary.
type structuredNote struct {
	PastMedicalHistory []string            `json:"past_medical_history"`
	Medications        []string            `json:"medications"`
	Vitals             []string            `json:"vitals"`
	Symptoms           []string            `json:"symptoms"`
	Plan               []string            `json:"plan"`
	VitalsWithValues   []vitalReading      `json:"vitals_with_values"`
	AllEntities        []entitySpan        `json:"all_entities"`
	Sections           map[string][]string `json:"sections,omitempty"`
}

var medicationPatterns = []*regexp.Regexp{
	// Medication with a mg dose (most reliable).
	regexp.MustCompile(`(?i)\b([A-Z][a-z]+(?:in|ol|pril|statin|mycin|cillin))\s+\d+\s*mg\b`),
	// Medications after common prefixes.
	regexp.MustCompile(`(?i)(?:take|taking|prescribed|on)\s+([A-Z][a-z]+)\b`),
	// Medications followed by a dosage unit.
	regexp.MustCompile(`(?i)\b([A-Z][a-z]{3,})\s+\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml|units?)\b`),
}

var medNoiseWords = map[string]struct{}{
	"take": {}, "taking": {}, "with": {}, "current": {}, "continue": {},
}

var conditionPatterns = []*regexp.Regexp{
	// Conditions ending with medical suffixes.
	regexp.MustCompile(`(?i)\b([A-Z][a-z]+(?:itis|osis|emia|pathy|trophy|plasia|galy|oma|cardia|pnea))\b`),
	// Disease/syndrome patterns.
	regexp.MustCompile(`(?i)\b([A-Z][a-z]+\s+(?:disease|syndrome|disorder|condition))\b`),
	regexp.MustCompile(`(?i)\b(Type\s+\d+\s+diabetes(?:\s+mellitus)?)\b`),
}

var vitalsPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"blood_pressure", regexp.MustCompile(`(?i)(?:bp|blood pressure|b\.p\.?)\s*:?\s*(\d{2,3})/(\d{2,3})`)},
	{"heart_rate", regexp.MustCompile(`(?i)(?:hr|heart rate|pulse)\s*:?\s*(\d{2,3})\s*(?:bpm|beats)`)},
	{"temperature", regexp.MustCompile(`(?i)(?:temp|temperature)\s*:?\s*(\d{2,3}(?:\.\d)?)\s*(?:°f|f|fahrenheit|°c|c|celsius)`)},
	{"respiratory_rate", regexp.MustCompile(`(?i)(?:rr|respiratory rate|resp)\s*:?\s*(\d{1,2})\b`)},
	{"oxygen_saturation", regexp.MustCompile(`(?i)(?:o2 sat|oxygen saturation|spo2|sat)\s*:?\s*(\d{2,3})%?`)},
	{"weight", regexp.MustCompile(`(?i)(?:weight|wt)\s*:?\s*(\d{1,3}(?:\.\d)?)\s*(?:lbs|kg|pounds)`)},
	{"height", regexp.MustCompile(`(?i)(?:height|ht)\s*:?\s*(?:(\d{1,2})'\s*(\d{1,2})?"?|(\d{1,3})\s*(?:cm|inches))`)},
}

// targetTerms are high-confidence phrases recognized anywhere in the note.
var targetTerms = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)\bblood pressure\b`), "VITALS"},
	{regexp.MustCompile(`(?i)\bheart rate\b`), "VITALS"},
	{regexp.MustCompile(`(?i)\btemperature\b`), "VITALS"},
	{regexp.MustCompile(`(?i)\brespiratory rate\b`), "VITALS"},
	{regexp.MustCompile(`(?i)\boxygen saturation\b`), "VITALS"},
	{regexp.MustCompile(`(?i)\bchest pain\b`), "SYMPTOM"},
	{regexp.MustCompile(`(?i)\bshortness of breath\b`), "SYMPTOM"},
	{regexp.MustCompile(`(?i)\bdifficulty breathing\b`), "SYMPTOM"},
}

var negationCues = []string{"no ", "not ", "denies", "denied", "without", "negative for"}

// noiseWords filtered from every entity list during cleanup.
var noiseWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "mg": {}, "ml": {},
	"daily": {}, "twice": {}, "current": {}, "pain": {}, "obtain": {},
}

var listMarkerPrefix = regexp.MustCompile(`^[\d.\-*+]+\s*`)

// sectionHeaders maps recognized note headings to canonical section keys.
var sectionHeaders = map[string]string{
	"chief complaint":            "chief_complaint",
	"cc":                         "chief_complaint",
	"history of present illness": "history_of_present_illness",
	"hpi":                        "history_of_present_illness",
	"review of systems":          "review_of_systems",
	"ros":                        "review_of_systems",
	"physical exam":              "physical_exam",
	"pe":                         "physical_exam",
	"examination":                "physical_exam",
	"assessment and plan":        "assessment_and_plan",
	"a&p":                        "assessment_and_plan",
	"plan":                       "assessment_and_plan",
	"medication":                 "medications",
	"medications":                "medications",
	"current medications":        "medications",
	"meds":                       "medications",
	"past medical history":       "past_medical_history",
	"pmh":                        "past_medical_history",
	"medical history":            "past_medical_history",
	"vitals":                     "vitals",
	"vital signs":                "vitals",
}

var noteSectionKeys = map[string]struct{}{
	"chief_complaint":            {},
	"history_of_present_illness": {},
	"review_of_systems":          {},
	"physical_exam":              {},
	"assessment_and_plan":        {},
}

var headerLine = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z &/]*?)\s*:\s*(.*)$`)

type noteSection struct {
	key  string
	body string
}

// scanSections walks the note line by line. A "Heading:" line opens a section
// when the heading is recognized and closes the previous one either way,
// matching how clinicians delimit note sections.
func scanSections(text string) []noteSection {
	var sections []noteSection
	var current *noteSection
	var lines []string

	flush := func() {
		if current == nil {
			return
		}
		current.body = strings.TrimSpace(strings.Join(lines, "\n"))
		sections = append(sections, *current)
		current = nil
		lines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if m := headerLine.FindStringSubmatch(line); m != nil {
			flush()
			if key, ok := sectionHeaders[strings.ToLower(strings.TrimSpace(m[1]))]; ok {
				current = &noteSection{key: key}
				if rest := strings.TrimSpace(m[2]); rest != "" {
					lines = append(lines, rest)
				}
			}
			continue
		}
		if current != nil {
			lines = append(lines, line)
		}
	}
	flush()
	return sections
}

func extractMedicationsByPatterns(text string) []string {
	var medications []string
	for _, re := range medicationPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			med := strings.TrimSpace(m[1])
			if len(med) > 3 {
				if _, noise := medNoiseWords[strings.ToLower(med)]; !noise {
					medications = append(medications, med)
				}
			}
		}
	}
	return medications
}

func extractConditionsByPatterns(text string) []string {
	var conditions []string
	for _, re := range conditionPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			condition := strings.TrimSpace(m[1])
			if len(condition) > 4 {
				conditions = append(conditions, condition)
			}
		}
	}
	return conditions
}

func extractVitalsWithValues(text string) []vitalReading {
	vitals := []vitalReading{}
	for _, vp := range vitalsPatterns {
		for _, m := range vp.re.FindAllStringSubmatch(text, -1) {
			switch vp.name {
			case "blood_pressure":
				vitals = append(vitals, vitalReading{
					Type:     "blood_pressure",
					Systolic: m[1], Diastolic: m[2],
					Text: m[0],
				})
			case "height":
				v := m[3]
				if v == "" {
					v = m[1] + "'" + m[2] + `"`
				}
				vitals = append(vitals, vitalReading{Type: "height", Value: v, Text: m[0]})
			default:
				vitals = append(vitals, vitalReading{Type: vp.name, Value: m[1], Text: m[0]})
			}
		}
	}
	return vitals
}

// isNegated reports whether the sentence prefix before offset carries a
// negation cue ("denies chest pain" must not count as a symptom).
func isNegated(text string, offset int) bool {
	begin := 0
	for i := offset - 1; i >= 0; i-- {
		c := text[i]
		if c == '.' || c == '!' || c == '?' || c == '\n' {
			begin = i + 1
			break
		}
	}
	prefix := strings.ToLower(text[begin:offset])
	for _, cue := range negationCues {
		if strings.Contains(prefix, cue) {
			return true
		}
	}
	return false
}

// mineSectionLines pulls list entries out of a medications or PMH section
// body, stripping list markers.
func mineSectionLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") || len(line) <= 3 {
			continue
		}
		line = listMarkerPrefix.ReplaceAllString(line, "")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func cleanupList(items []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if len(item) <= 2 || strings.HasPrefix(item, "-") || strings.HasPrefix(item, "•") {
			continue
		}
		if _, noise := noiseWords[strings.ToLower(item)]; noise {
			continue
		}
		if isAllDigits(item) {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// extractEntities builds the structured view of a clinical note from three
// passes: high-confidence target terms, pattern extraction over the whole
// text, and section-aware line mining.
func extractEntities(text string) structuredNote {
	out := structuredNote{
		PastMedicalHistory: []string{},
		Medications:        []string{},
		Vitals:             []string{},
		Symptoms:           []string{},
		Plan:               []string{},
		VitalsWithValues:   []vitalReading{},
		AllEntities:        []entitySpan{},
	}

	for _, tt := range targetTerms {
		for _, loc := range tt.re.FindAllStringIndex(text, -1) {
			span := entitySpan{Text: text[loc[0]:loc[1]], Label: tt.label, Start: loc[0], End: loc[1]}
			out.AllEntities = append(out.AllEntities, span)
			switch tt.label {
			case "VITALS":
				out.Vitals = append(out.Vitals, span.Text)
			case "SYMPTOM":
				if !isNegated(text, loc[0]) {
					out.Symptoms = append(out.Symptoms, span.Text)
				}
			}
		}
	}

	out.Medications = append(out.Medications, extractMedicationsByPatterns(text)...)
	out.PastMedicalHistory = append(out.PastMedicalHistory, extractConditionsByPatterns(text)...)
	out.VitalsWithValues = extractVitalsWithValues(text)

	for _, sec := range scanSections(text) {
		switch sec.key {
		case "medications":
			out.Medications = append(out.Medications, extractMedicationsByPatterns(sec.body)...)
			out.Medications = append(out.Medications, mineSectionLines(sec.body)...)
		case "past_medical_history":
			out.PastMedicalHistory = append(out.PastMedicalHistory, extractConditionsByPatterns(sec.body)...)
			out.PastMedicalHistory = append(out.PastMedicalHistory, mineSectionLines(sec.body)...)
		default:
			if _, ok := noteSectionKeys[sec.key]; ok && sec.body != "" {
				if out.Sections == nil {
					out.Sections = make(map[string][]string)
				}
				out.Sections[sec.key] = append(out.Sections[sec.key], sec.body)
			}
		}
	}

	// Sentence bucketing fills the plan list that the pattern passes
	// cannot see.
	out.Plan = append(out.Plan, classifyNote(text)["plan"]...)

	out.PastMedicalHistory = cleanupList(out.PastMedicalHistory)
	out.Medications = cleanupList(out.Medications)
	out.Vitals = cleanupList(out.Vitals)
	out.Symptoms = cleanupList(out.Symptoms)
	out.Plan = cleanupList(out.Plan)

	return out
}
