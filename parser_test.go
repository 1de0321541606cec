package revizia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revizia"
)

const validPayload = `{
	"questions": [
		{
			"question": "What is photosynthesis?",
			"options": ["A chemical process", "A physical process", "A biological rhythm", "A type of cell"],
			"correct": 0,
			"explanation": "Photosynthesis converts light energy into chemical energy."
		},
		{
			"question": "Where does photosynthesis happen?",
			"options": ["Mitochondria", "Chloroplasts", "Nucleus", "Ribosomes"],
			"correct": 1,
			"explanation": "Chloroplasts contain the chlorophyll that captures light."
		}
	]
}`

func TestParseQuestions_ValidPayload(t *testing.T) {
	questions := revizia.ParseQuestions(validPayload, 5)

	require.Len(t, questions, 2)
	assert.Equal(t, "What is photosynthesis?", questions[0].Text)
	assert.Equal(t, 0, questions[0].CorrectAnswer)
	assert.Equal(t, 1, questions[1].CorrectAnswer)
	for _, q := range questions {
		assert.True(t, q.Valid())
	}
}

func TestParseQuestions_StripsMarkdownFence(t *testing.T) {
	fenced := "```json\n" + validPayload + "\n```"
	questions := revizia.ParseQuestions(fenced, 5)
	require.Len(t, questions, 2)

	bareFence := "```\n" + validPayload + "\n```"
	questions = revizia.ParseQuestions(bareFence, 5)
	require.Len(t, questions, 2)
}

func TestParseQuestions_MalformedJSON(t *testing.T) {
	assert.Empty(t, revizia.ParseQuestions("not json at all", 5))
	assert.Empty(t, revizia.ParseQuestions(`{"questions": "nope"}`, 5))
	assert.Empty(t, revizia.ParseQuestions("", 5))
}

func TestParseQuestions_DropsInvalidQuestionOnly(t *testing.T) {
	payload := `{
		"questions": [
			{
				"question": "Only three options here",
				"options": ["A", "B", "C"],
				"correct": 0,
				"explanation": "invalid"
			},
			{
				"question": "A valid question",
				"options": ["A", "B", "C", "D"],
				"correct": 2,
				"explanation": "valid"
			}
		]
	}`

	questions := revizia.ParseQuestions(payload, 5)
	require.Len(t, questions, 1)
	assert.Equal(t, "A valid question", questions[0].Text)
}

func TestParseQuestions_RejectsBadFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty question text", `{"questions":[{"question":"","options":["A","B","C","D"],"correct":0,"explanation":"x"}]}`},
		{"correct out of range", `{"questions":[{"question":"Q","options":["A","B","C","D"],"correct":4,"explanation":"x"}]}`},
		{"negative correct", `{"questions":[{"question":"Q","options":["A","B","C","D"],"correct":-1,"explanation":"x"}]}`},
		{"missing correct", `{"questions":[{"question":"Q","options":["A","B","C","D"],"explanation":"x"}]}`},
		{"missing explanation", `{"questions":[{"question":"Q","options":["A","B","C","D"],"correct":0}]}`},
		{"non-integer correct", `{"questions":[{"question":"Q","options":["A","B","C","D"],"correct":1.5,"explanation":"x"}]}`},
		{"five options", `{"questions":[{"question":"Q","options":["A","B","C","D","E"],"correct":0,"explanation":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, revizia.ParseQuestions(tt.payload, 5))
		})
	}
}

func TestParseQuestions_EmptyExplanationAccepted(t *testing.T) {
	payload := `{"questions":[{"question":"Q","options":["A","B","C","D"],"correct":3,"explanation":""}]}`
	questions := revizia.ParseQuestions(payload, 5)
	require.Len(t, questions, 1)
	assert.Empty(t, questions[0].Explanation)
}

func TestParseQuestions_TruncatesToMaxCount(t *testing.T) {
	questions := revizia.ParseQuestions(validPayload, 1)
	require.Len(t, questions, 1)
	assert.Equal(t, "What is photosynthesis?", questions[0].Text, "truncation should preserve original order")
}
