package main

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// insufficientContent is returned for notes with no usable text.
const insufficientContent = "Summary not available — insufficient clinical content."

var tokenPattern = regexp.MustCompile(`[a-z0-9']+`)

// stopwords excluded from term vectors so that boilerplate words don't
// dominate the similarity scores.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "had": {}, "has": {},
	"have": {}, "he": {}, "her": {}, "his": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "she": {},
	"that": {}, "the": {}, "their": {}, "this": {}, "to": {}, "was": {},
	"were": {}, "which": {}, "will": {}, "with": {},
}

// splitSentences breaks text into sentences at ./!/? followed by whitespace.
// The terminator stays attached to its sentence.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	var b strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' || runes[i+1] == '\n' || runes[i+1] == '\r' {
				if s := strings.TrimSpace(b.String()); s != "" {
					out = append(out, s)
				}
				b.Reset()
			}
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func termVector(text string) map[string]float64 {
	vec := make(map[string]float64)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, skip := stopwords[tok]; skip {
			continue
		}
		vec[tok]++
	}
	return vec
}

func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, na, nb float64
	for k, av := range a {
		if bv, ok := b[k]; ok {
			dot += av * bv
		}
		na += av * av
	}
	for _, bv := range b {
		nb += bv * bv
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// summarizeNote produces an extractive summary: every sentence is scored by
// cosine similarity between its term vector and the whole document's vector,
// and the top numSentences are emitted in original order. Ties keep the
// earlier sentence.
func summarizeNote(text string, numSentences int) string {
	if strings.TrimSpace(text) == "" {
		return insufficientContent
	}
	sentences := splitSentences(text)
	if len(sentences) <= numSentences {
		return strings.Join(sentences, " ")
	}

	docVec := termVector(text)
	type scoredSentence struct {
		idx   int
		score float64
	}
	ranked := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		ranked[i] = scoredSentence{idx: i, score: cosineSimilarity(termVector(s), docVec)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	top := ranked[:numSentences]
	sort.Slice(top, func(i, j int) bool { return top[i].idx < top[j].idx })

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = sentences[s.idx]
	}
	return strings.Join(parts, " ")
}
