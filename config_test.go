package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresDBKey(t *testing.T) {
	t.Setenv("NOTES_DB_KEY", "")
	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTES_DB_KEY")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("NOTES_DB_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("OPENROUTER_BASE_URL", "")
	t.Setenv("DIAGNOSIS_MODEL", "")
	t.Setenv("DIAGNOSIS_TEMPERATURE", "")
	t.Setenv("SUMMARY_SENTENCES", "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouterBase)
	assert.Equal(t, "deepseek/deepseek-r1-distill-llama-70b:free", cfg.DiagnosisModel)
	assert.Equal(t, 0.7, cfg.DiagnosisTemp)
	assert.Equal(t, 3, cfg.SummarySentences)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("NOTES_DB_KEY", "test-key")
	t.Setenv("PORT", "9000")
	t.Setenv("DIAGNOSIS_TEMPERATURE", "0.2")
	t.Setenv("SUMMARY_SENTENCES", "5")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 0.2, cfg.DiagnosisTemp)
	assert.Equal(t, 5, cfg.SummarySentences)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("NOTES_DB_KEY", "test-key")

	t.Setenv("DIAGNOSIS_TEMPERATURE", "warm")
	_, err := loadConfig()
	assert.Error(t, err)

	t.Setenv("DIAGNOSIS_TEMPERATURE", "")
	t.Setenv("SUMMARY_SENTENCES", "0")
	_, err = loadConfig()
	assert.Error(t, err)
}
