package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// htmxSummarize is the form-upload twin of handleSummarize: same pipeline,
// rendered as an inline partial.
func htmxSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text, filename, err := readNoteUpload(r)
	if err != nil {
		executeTemplate(w, "error_partial.html", ErrorPartialData{Message: err.Error()})
		return
	}

	rec := processNote(w, r, text, filename)

	name := filename
	if strings.TrimSpace(name) == "" {
		name = "clinical note"
	}
	executeTemplate(w, "summary_partial.html", SummaryPartialData{
		Filename:   name,
		Summary:    rec.Summary,
		Structured: rec.Structured,
	})
}

// htmxDiagnose reads the diagnose form fields and renders the suggestion as
// an inline partial.
func htmxDiagnose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := diagnosisRequest{
		Symptoms:    r.FormValue("symptoms"),
		Conditions:  r.FormValue("conditions"),
		Medications: r.FormValue("medications"),
	}

	diagnosis, err := diagnoser.SuggestDiagnosis(r.Context(), req.Symptoms, req.Conditions, req.Medications)
	if err != nil {
		logger.Error("diagnosis request failed", zap.Error(err))
		executeTemplate(w, "error_partial.html", ErrorPartialData{Message: "diagnosis service error: " + err.Error()})
		return
	}

	parsed := parseDiagnosisResponse(diagnosis)
	rec := diagnosisRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID(w, r),
		Request:   req,
		Diagnosis: diagnosis,
		Parsed:    parsed,
		CreatedAt: time.Now(),
	}
	if err := notes.SaveDiagnosis(r.Context(), rec); err != nil {
		logger.Warn("failed to persist diagnosis", zap.String("diagnosis_id", rec.ID), zap.Error(err))
	}

	executeTemplate(w, "diagnosis_partial.html", DiagnosisPartialData{Diagnosis: diagnosis, Parsed: parsed})
}
