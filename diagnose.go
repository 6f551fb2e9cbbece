package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const diagnosisPromptTemplate = `
Context:
The following patient data has been extracted:
- Symptoms: %s
- Previous Conditions: %s
- Medications: %s

Based on this, generate a concise diagnostic summary.

Your task:
1. List the most likely diagnosis (or differential diagnoses if unclear)
2. Briefly explain reasoning based on symptoms and history
3. Indicate urgency (e.g., emergency, urgent care, routine)
4. Suggest next clinical steps (e.g., tests, referrals, treatment)

Tone: Keep it professional, brief, and free of generic AI language. Prioritize clarity over verbosity.

Output Format Example:

---
Likely Diagnosis: [Condition Name]
Reasoning: [Short rationale]
Urgency: [Emergency/Urgent/Routine]
Next Steps: [Relevant tests/treatments/referrals]
---
`

type diagnosisClient struct {
	base        string
	apiKey      string
	model       string
	temperature float64
	http        *retryablehttp.Client
}

func newDiagnosisClient(cfg config) *diagnosisClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient.Timeout = 90 * time.Second
	return &diagnosisClient{
		base:        strings.TrimRight(cfg.OpenRouterBase, "/"),
		apiKey:      cfg.OpenRouterKey,
		model:       cfg.DiagnosisModel,
		temperature: cfg.DiagnosisTemp,
		http:        rc,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func buildDiagnosisPrompt(symptoms, conditions, medications string) string {
	return fmt.Sprintf(diagnosisPromptTemplate, symptoms, conditions, medications)
}

// SuggestDiagnosis sends the structured patient prompt to the chat
// completions endpoint and returns the model's reply text.
func (c *diagnosisClient) SuggestDiagnosis(ctx context.Context, symptoms, conditions, medications string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "user", Content: buildDiagnosisPrompt(symptoms, conditions, medications)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling diagnosis service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading diagnosis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("diagnosis service returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding diagnosis response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("diagnosis service error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("diagnosis service returned no choices")
	}

	// Some models emit literal \n escapes in the reply text.
	out := strings.TrimSpace(parsed.Choices[0].Message.Content)
	return strings.ReplaceAll(out, `\n`, "\n"), nil
}

// diagnosisFields is the structured form of a model reply that follows the
// requested output format.
type diagnosisFields struct {
	LikelyDiagnosis string `json:"likely_diagnosis"`
	Reasoning       string `json:"reasoning"`
	Urgency         string `json:"urgency"`
	NextSteps       string `json:"next_steps"`
}

var diagnosisFieldPatterns = []struct {
	set func(*diagnosisFields, string)
	re  *regexp.Regexp
}{
	{func(f *diagnosisFields, v string) { f.LikelyDiagnosis = v }, regexp.MustCompile(`(?is)Likely Diagnosis:\s*(.+?)(?:\s{2,}|$|\n)`)},
	{func(f *diagnosisFields, v string) { f.Reasoning = v }, regexp.MustCompile(`(?is)Reasoning:\s*(.+?)(?:\s{2,}|$|\n)`)},
	{func(f *diagnosisFields, v string) { f.Urgency = v }, regexp.MustCompile(`(?is)Urgency:\s*(.+?)(?:\s{2,}|$|\n)`)},
	{func(f *diagnosisFields, v string) { f.NextSteps = v }, regexp.MustCompile(`(?is)Next Steps:\s*(.+?)(?:\s{2,}|$|\n)`)},
}

// parseDiagnosisResponse pulls the four requested fields out of a model
// reply. Fields the model omitted stay empty.
func parseDiagnosisResponse(response string) diagnosisFields {
	response = strings.ReplaceAll(response, "**", "")
	var out diagnosisFields
	for _, fp := range diagnosisFieldPatterns {
		if m := fp.re.FindStringSubmatch(response); m != nil {
			fp.set(&out, strings.TrimSpace(m[1]))
		}
	}
	return out
}
