package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func handleDiagnose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req diagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	diagnosis, err := diagnoser.SuggestDiagnosis(r.Context(), req.Symptoms, req.Conditions, req.Medications)
	if err != nil {
		logger.Error("diagnosis request failed", zap.Error(err))
		writeJSONError(w, http.StatusBadGateway, "diagnosis service error: "+err.Error())
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

	writeJSON(w, http.StatusOK, diagnoseResponse{Diagnosis: diagnosis, Parsed: parsed})
}
