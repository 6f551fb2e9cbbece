package main

// API request/response shapes

type diagnosisRequest struct {
	Symptoms    string `json:"symptoms"`
	Conditions  string `json:"conditions"`
	Medications string `json:"medications"`
}

type summarizeResponse struct {
	Summary    string         `json:"summary"`
	Structured structuredNote `json:"structured"`
}

type diagnoseResponse struct {
	Diagnosis string          `json:"diagnosis"`
	Parsed    diagnosisFields `json:"parsed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Page data structs

type IndexPageData struct {
	Title string
}

type AboutPageData struct {
	Title string
}

type NotesPageData struct {
	Title     string
	Notes     []noteRecord
	Diagnoses []diagnosisRecord
}

type NotePageData struct {
	Title string
	Note  *noteRecord
}

type SummaryPartialData struct {
	Filename   string
	Summary    string
	Structured structuredNote
}

type DiagnosisPartialData struct {
	Diagnosis string
	Parsed    diagnosisFields
}

type ErrorPartialData struct {
	Message string
}
