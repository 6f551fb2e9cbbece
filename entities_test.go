package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNote = `Chief Complaint: chest pain and shortness of breath

HPI: Patient reports chest pain radiating to the left arm. Denies difficulty breathing at rest.

Past Medical History:
1. Hypertension
2. Type 2 diabetes mellitus
Gastritis

Medications:
- Lisinopril 10 mg daily
Metformin 500 mg twice daily
Aspirin 81 mg

Vitals: BP: 140/90, HR: 88 bpm, Temp: 98.6 F, RR: 18, SpO2: 96%

Plan: Order ECG and troponin. Follow up in one week.`

func TestExtractMedicationsByPatterns(t *testing.T) {
	meds := extractMedicationsByPatterns("Patient is taking Metformin and was given Lisinopril 10 mg.")
	assert.Contains(t, meds, "Metformin")
	assert.Contains(t, meds, "Lisinopril")
}

func TestExtractConditionsByPatterns(t *testing.T) {
	conditions := extractConditionsByPatterns("History includes Gastritis, Parkinson disease and Type 2 diabetes mellitus.")
	assert.Contains(t, conditions, "Gastritis")
	assert.Contains(t, conditions, "Parkinson disease")
	assert.Contains(t, conditions, "Type 2 diabetes mellitus")
}

func TestExtractVitalsWithValues(t *testing.T) {
	vitals := extractVitalsWithValues("BP: 140/90, HR: 88 bpm, Temp: 98.6 F, RR: 18, SpO2: 96%, Weight: 180 lbs")

	byType := map[string]vitalReading{}
	for _, v := range vitals {
		byType[v.Type] = v
	}

	require.Contains(t, byType, "blood_pressure")
	assert.Equal(t, "140", byType["blood_pressure"].Systolic)
	assert.Equal(t, "90", byType["blood_pressure"].Diastolic)
	assert.Equal(t, "88", byType["heart_rate"].Value)
	assert.Equal(t, "98.6", byType["temperature"].Value)
	assert.Equal(t, "18", byType["respiratory_rate"].Value)
	assert.Equal(t, "96", byType["oxygen_saturation"].Value)
	assert.Equal(t, "180", byType["weight"].Value)
}

func TestScanSections(t *testing.T) {
	sections := scanSections(sampleNote)

	byKey := map[string]string{}
	for _, s := range sections {
		byKey[s.key] = s.body
	}

	assert.Equal(t, "chest pain and shortness of breath", byKey["chief_complaint"])
	assert.Contains(t, byKey["history_of_present_illness"], "radiating to the left arm")
	assert.Contains(t, byKey["past_medical_history"], "Hypertension")
	assert.Contains(t, byKey["medications"], "Lisinopril 10 mg daily")
	assert.Equal(t, "Order ECG and troponin. Follow up in one week.", byKey["assessment_and_plan"])
}

func TestIsNegated(t *testing.T) {
	text := "Patient denies chest pain. Reports chest pain on exertion."
	first := 15  // "chest pain" after "denies"
	second := 35 // "chest pain" in the second sentence

	assert.True(t, isNegated(text, first))
	assert.False(t, isNegated(text, second))
}

func TestCleanupList(t *testing.T) {
	got := cleanupList([]string{
		"Metformin", "metformin", " Aspirin ", "mg", "42", "- bullet", "ab", "Lisinopril",
	})
	assert.Equal(t, []string{"Metformin", "Aspirin", "Lisinopril"}, got)
}

func TestExtractEntities(t *testing.T) {
	got := extractEntities(sampleNote)

	assert.Contains(t, got.Medications, "Lisinopril")
	assert.Contains(t, got.Medications, "Metformin")
	assert.Contains(t, got.Medications, "Aspirin")

	assert.Contains(t, got.PastMedicalHistory, "Hypertension")
	assert.Contains(t, got.PastMedicalHistory, "Gastritis")
	assert.Contains(t, got.PastMedicalHistory, "Type 2 diabetes mellitus")

	// "difficulty breathing" is negated ("Denies ...") and must not appear.
	assert.Equal(t, []string{"chest pain", "shortness of breath"}, got.Symptoms)

	assert.Equal(t, []string{"Follow up in one week."}, got.Plan)

	types := map[string]bool{}
	for _, v := range got.VitalsWithValues {
		types[v.Type] = true
	}
	for _, want := range []string{"blood_pressure", "heart_rate", "temperature", "respiratory_rate", "oxygen_saturation"} {
		assert.True(t, types[want], "missing vital %s", want)
	}

	require.Len(t, got.AllEntities, 4)
	assert.Equal(t, "SYMPTOM", got.AllEntities[0].Label)
	assert.Equal(t, sampleNote[got.AllEntities[0].Start:got.AllEntities[0].End], got.AllEntities[0].Text)

	require.Contains(t, got.Sections, "chief_complaint")
	require.Contains(t, got.Sections, "assessment_and_plan")
}

func TestExtractEntitiesEmptyNote(t *testing.T) {
	got := extractEntities("")
	assert.Empty(t, got.Medications)
	assert.Empty(t, got.Symptoms)
	assert.Empty(t, got.VitalsWithValues)
	assert.Nil(t, got.Sections)
}
