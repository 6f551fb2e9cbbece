package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// config carries all runtime settings. Everything comes from the environment,
// with a .env file loaded first if one exists (real env vars win).
type config struct {
	Port             string
	SessionSecret    string
	NotesDBPath      string
	NotesDBKey       string
	OpenRouterKey    string
	OpenRouterBase   string
	DiagnosisModel   string
	DiagnosisTemp    float64
	SummarySentences int
}

func loadConfig() (config, error) {
	_ = godotenv.Load()

	cfg := config{
		Port:             getenvDefault("PORT", "8000"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		NotesDBPath:      getenvDefault("NOTES_DB_PATH", "notes.db"),
		NotesDBKey:       os.Getenv("NOTES_DB_KEY"),
		OpenRouterKey:    os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:   getenvDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		DiagnosisModel:   getenvDefault("DIAGNOSIS_MODEL", "deepseek/deepseek-r1-distill-llama-70b:free"),
		DiagnosisTemp:    0.7,
		SummarySentences: 3,
	}

	if v := os.Getenv("DIAGNOSIS_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid DIAGNOSIS_TEMPERATURE %q: %w", v, err)
		}
		cfg.DiagnosisTemp = t
	}
	if v := os.Getenv("SUMMARY_SENTENCES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("invalid SUMMARY_SENTENCES %q", v)
		}
		cfg.SummarySentences = n
	}

	if cfg.NotesDBKey == "" {
		return cfg, fmt.Errorf("NOTES_DB_KEY environment variable not set")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
