package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySentence(t *testing.T) {
	tests := []struct {
		sentence string
		want     string
	}{
		{"Patient complains of severe headache and nausea.", "symptoms"},
		{"Prescribed Metformin 500 mg twice a day.", "medications"},
		{"Findings consistent with acute gastritis.", "diagnosis"},
		{"Schedule follow-up and monitor blood pressure.", "plan"},
		{"Hello there.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySentence(tt.sentence))
		})
	}
}

func TestClassifyNote(t *testing.T) {
	text := "Patient complains of dizziness. Prescribed aspirin 81 mg. Schedule follow-up in two weeks."
	buckets := classifyNote(text)

	assert.Equal(t, []string{"Patient complains of dizziness."}, buckets["symptoms"])
	assert.Equal(t, []string{"Prescribed aspirin 81 mg."}, buckets["medications"])
	assert.Equal(t, []string{"Schedule follow-up in two weeks."}, buckets["plan"])
	assert.Empty(t, buckets["diagnosis"])
}

func TestClassifyNoteDropsDuplicates(t *testing.T) {
	buckets := classifyNote("Order labs. Order labs.")
	assert.Equal(t, []string{"Order labs."}, buckets["plan"])
}
