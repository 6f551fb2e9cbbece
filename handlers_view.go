package main

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const historyLimit = 50

func handleNotes(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	noteList, err := notes.ListNotes(r.Context(), sid, historyLimit)
	if err != nil {
		logger.Error("failed to list notes", zap.Error(err))
		http.Error(w, "Failed to load notes", http.StatusInternalServerError)
		return
	}
	diagnosisList, err := notes.ListDiagnoses(r.Context(), sid, historyLimit)
	if err != nil {
		logger.Error("failed to list diagnoses", zap.Error(err))
		http.Error(w, "Failed to load notes", http.StatusInternalServerError)
		return
	}

	executeTemplate(w, "notes.html", NotesPageData{
		Title:     "History - Clinical Note Smart Summarizer",
		Notes:     noteList,
		Diagnoses: diagnosisList,
	})
}

func handleNote(w http.ResponseWriter, r *http.Request) {
	noteID := strings.TrimPrefix(r.URL.Path, "/notes/")
	if noteID == "" {
		http.Redirect(w, r, "/notes", http.StatusFound)
		return
	}

	rec, err := notes.GetNote(r.Context(), sessionID(w, r), noteID)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			http.Error(w, "Note not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to load note", zap.String("note_id", noteID), zap.Error(err))
		http.Error(w, "Failed to load note", http.StatusInternalServerError)
		return
	}

	executeTemplate(w, "note.html", NotePageData{
		Title: "Note - Clinical Note Smart Summarizer",
		Note:  rec,
	})
}
