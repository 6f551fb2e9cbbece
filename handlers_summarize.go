package main

import (
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// readNoteUpload pulls the uploaded note text out of the multipart "file"
// field. Empty text is allowed; the summarizer answers it with its fixed
// fallback string.
func readNoteUpload(r *http.Request) (text, filename string, err error) {
	if err := r.ParseMultipartForm(maxNoteBytes); err != nil {
		return "", "", errors.New("expected multipart form with a 'file' field")
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return "", "", errors.New("missing 'file' field")
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxNoteBytes))
	if err != nil {
		return "", "", errors.New("failed to read uploaded file")
	}
	if !utf8.Valid(b) {
		return "", "", errors.New("file must be UTF-8 text")
	}
	return string(b), hdr.Filename, nil
}

// processNote runs the full pipeline for one uploaded note and persists the
// result keyed to the caller's session. Persistence failure is logged but
// does not fail the request; the caller still gets their summary.
func processNote(w http.ResponseWriter, r *http.Request, text, filename string) noteRecord {
	rec := noteRecord{
		ID:         uuid.NewString(),
		SessionID:  sessionID(w, r),
		Filename:   filename,
		Summary:    summarizeNote(text, cfg.SummarySentences),
		Structured: extractEntities(text),
		CreatedAt:  time.Now(),
	}
	if err := notes.SaveNote(r.Context(), rec); err != nil {
		logger.Warn("failed to persist note", zap.String("note_id", rec.ID), zap.Error(err))
	}
	return rec
}

func handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text, filename, err := readNoteUpload(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := processNote(w, r, text, filename)
	logger.Info("note summarized",
		zap.String("note_id", rec.ID),
		zap.String("filename", filename),
		zap.Int("chars", len(text)),
		zap.Int("summary_chars", len(rec.Summary)),
	)

	writeJSON(w, http.StatusOK, summarizeResponse{Summary: rec.Summary, Structured: rec.Structured})
}
