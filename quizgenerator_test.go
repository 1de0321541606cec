package revizia_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revizia"
)

// fakeGenerator is a canned TextGenerator for orchestrator tests.
type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestGenerateQuiz_RejectsInvalidCount(t *testing.T) {
	qg := revizia.NewQuizGenerator(nil)

	_, err := qg.GenerateQuiz(context.Background(), revizia.GenerationRequest{NumQuestions: 0})
	assert.ErrorIs(t, err, revizia.ErrInvalidQuestionCount)
}

func TestGenerateQuiz_NotConfiguredUsesFallback(t *testing.T) {
	qg := revizia.NewQuizGenerator(nil)
	qg.SetFallbackBank(revizia.NewSeededFallbackBank(1))

	questions, err := qg.GenerateQuiz(context.Background(), revizia.GenerationRequest{
		CourseText:   "anything at all",
		NumQuestions: 3,
	})
	require.NoError(t, err)
	assert.Len(t, questions, 3)
	for _, q := range questions {
		assert.True(t, q.Valid())
	}
}

func TestGenerateQuiz_AIFailureFallsBack(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("network down")}
	qg := revizia.NewQuizGenerator(fake)
	qg.SetFallbackBank(revizia.NewSeededFallbackBank(1))

	questions, err := qg.GenerateQuiz(context.Background(), revizia.GenerationRequest{
		CourseText:   "cell biology",
		NumQuestions: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls, "a failed attempt must not be retried")
	assert.Len(t, questions, 2)
}

func TestGenerateQuiz_UnparseableResponseFallsBack(t *testing.T) {
	fake := &fakeGenerator{response: "I'm sorry, I can't do that."}
	qg := revizia.NewQuizGenerator(fake)
	qg.SetFallbackBank(revizia.NewSeededFallbackBank(1))

	questions, err := qg.GenerateQuiz(context.Background(), revizia.GenerationRequest{
		CourseText:   "cell biology",
		NumQuestions: 4,
	})
	require.NoError(t, err)
	assert.Len(t, questions, 4)
}

func TestGenerateQuiz_ValidAIResponse(t *testing.T) {
	fake := &fakeGenerator{response: validPayload}
	qg := revizia.NewQuizGenerator(fake)

	questions, err := qg.GenerateQuiz(context.Background(), revizia.GenerationRequest{
		CourseText:   "photosynthesis notes",
		NumQuestions: 5,
		Level:        "Terminale",
	})
	require.NoError(t, err)

	// The AI returned 2 valid questions for a request of 5: the short list is
	// returned as-is, without fallback padding.
	require.Len(t, questions, 2)
	assert.Equal(t, "What is photosynthesis?", questions[0].Text)
}

func TestGenerateQuiz_PromptEmbedsRequestParameters(t *testing.T) {
	fake := &fakeGenerator{response: validPayload}
	qg := revizia.NewQuizGenerator(fake)

	_, err := qg.GenerateQuiz(context.Background(), revizia.GenerationRequest{
		CourseText:   "the mitochondria is the powerhouse of the cell",
		NumQuestions: 3,
		Level:        "Première",
	})
	require.NoError(t, err)

	assert.Contains(t, fake.lastPrompt, "generate exactly 3 multiple choice questions")
	assert.Contains(t, fake.lastPrompt, "Première")
	assert.Contains(t, fake.lastPrompt, "the mitochondria is the powerhouse of the cell")
}

func TestGenerateQuiz_ClipsLongCourseText(t *testing.T) {
	fake := &fakeGenerator{response: validPayload}
	qg := revizia.NewQuizGenerator(fake)

	longText := strings.Repeat("a", 3000)
	_, err := qg.GenerateQuiz(context.Background(), revizia.GenerationRequest{
		CourseText:   longText,
		NumQuestions: 1,
	})
	require.NoError(t, err)

	assert.Contains(t, fake.lastPrompt, strings.Repeat("a", 2500))
	assert.NotContains(t, fake.lastPrompt, strings.Repeat("a", 2501))
}
