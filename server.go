package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	sessionName = "clinnote-session"

	// maxNoteBytes bounds uploaded note size (multipart memory and read limit).
	maxNoteBytes = 4 << 20
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

var (
	cfg       config
	logger    *zap.Logger
	store     *sessions.CookieStore
	tpl       *template.Template
	notes     *noteStore
	diagnoser *diagnosisClient
)

// Run initializes global state and starts the HTTP server.
func Run() {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err = zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	derivedKey, err := deriveKeyFromEnv(cfg.NotesDBKey)
	if err != nil {
		logger.Fatal("failed to derive key from NOTES_DB_KEY", zap.Error(err))
	}

	store = sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{HttpOnly: true, Secure: false, Path: "/"}

	notes, err = newNoteStore(cfg.NotesDBPath, derivedKey)
	if err != nil {
		logger.Fatal("failed to initialize note store", zap.Error(err))
	}

	diagnoser = newDiagnosisClient(cfg)

	tpl = template.Must(template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html"))

	subStaticFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		logger.Fatal("failed to prepare static filesystem", zap.Error(err))
	}

	http.HandleFunc("/", handleIndex)
	http.HandleFunc("/about", handleAbout)
	http.HandleFunc("/summarize", handleSummarize)
	http.HandleFunc("/diagnose", handleDiagnose)
	http.HandleFunc("/notes", handleNotes)
	http.HandleFunc("/notes/", handleNote)
	http.HandleFunc("/htmx/summarize", htmxSummarize)
	http.HandleFunc("/htmx/diagnose", htmxDiagnose)
	http.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(subStaticFS))))

	addr := "127.0.0.1:" + cfg.Port
	logger.Info("listening", zap.String("url", "http://"+addr))
	logger.Fatal("server stopped", zap.Error(http.ListenAndServe(addr, loggingMiddleware(http.DefaultServeMux))))
}
