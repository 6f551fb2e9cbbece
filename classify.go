package main

import "strings"

// Sentence bucketing: each sentence of a note is assigned to the bucket whose
// lexicon it matches best. Substring stems keep the lexicon small
// ("prescrib" covers prescribed/prescribes/prescribing).
var bucketLexicon = []struct {
	label string
	stems []string
}{
	{"symptoms", []string{
		"complains", "reports", "presents with", "ache", "nausea", "vomit",
		"dizz", "fever", "cough", "fatigue", "swelling", "rash", "headache",
		"breath", "wheez", "chills", "pain",
	}},
	{"medications", []string{
		"mg", "mcg", "tablet", "dose", "prescrib", "medication", "refill",
		"daily", "twice a day", "insulin", "aspirin",
	}},
	{"diagnosis", []string{
		"diagnos", "consistent with", "likely", "suspect", "impression",
		"history of", "chronic", "acute", "exacerbation",
	}},
	{"plan", []string{
		"plan", "follow up", "follow-up", "refer", "order", "schedule",
		"recommend", "continue", "start", "monitor", "advise", "return",
		"obtain", "check",
	}},
}

// classifySentence scores a sentence against each bucket lexicon and returns
// the best label, or "" when nothing matches.
func classifySentence(sentence string) string {
	lower := strings.ToLower(sentence)
	best := ""
	bestScore := 0
	for _, bucket := range bucketLexicon {
		score := 0
		for _, stem := range bucket.stems {
			if strings.Contains(lower, stem) {
				score++
			}
		}
		if score > bestScore {
			best = bucket.label
			bestScore = score
		}
	}
	return best
}

// classifyNote splits the note into sentences and buckets them into
// symptoms, medications, diagnosis and plan. Duplicates are removed
// preserving order; unclassifiable sentences are dropped.
func classifyNote(text string) map[string][]string {
	buckets := map[string][]string{
		"symptoms":    {},
		"medications": {},
		"diagnosis":   {},
		"plan":        {},
	}
	seen := map[string]struct{}{}
	for _, sentence := range splitSentences(text) {
		label := classifySentence(sentence)
		if label == "" {
			continue
		}
		if _, dup := seen[sentence]; dup {
			continue
		}
		seen[sentence] = struct{}{}
		buckets[label] = append(buckets[label], sentence)
	}
	return buckets
}
