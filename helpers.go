package main

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func executeTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	if err := tpl.ExecuteTemplate(w, templateName, data); err != nil {
		logger.Error("template execution error", zap.String("template", templateName), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// sessionID returns the caller's session id, minting one on first contact.
// Note history is keyed by this id.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	session, _ := store.Get(r, sessionName)
	if id, ok := session.Values["sid"].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	session.Values["sid"] = id
	if err := session.Save(r, w); err != nil {
		logger.Warn("failed to save session", zap.Error(err))
	}
	return id
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"joinList":   func(items []string) string { return strings.Join(items, ", ") },
		"hasItems":   func(items []string) bool { return len(items) > 0 },
		"formatTime": func(t time.Time) string { return t.Local().Format("Jan 2, 2006 15:04") },
		"vitalLabel": vitalLabel,
		"truncate": func(s string, n int) string {
			runes := []rune(s)
			if len(runes) <= n {
				return s
			}
			return string(runes[:n]) + "…"
		},
	}
}

func vitalLabel(v vitalReading) string {
	label := strings.ReplaceAll(v.Type, "_", " ")
	if v.Type == "blood_pressure" {
		return label + " " + v.Systolic + "/" + v.Diastolic
	}
	return label + " " + v.Value
}
