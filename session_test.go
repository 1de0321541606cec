package revizia_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revizia"
)

func twoQuestions() []revizia.Question {
	return []revizia.Question{
		{
			Text:          "First question",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: 1,
			Explanation:   "B is right",
		},
		{
			Text:          "Second question",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: 3,
			Explanation:   "D is right",
		},
	}
}

func TestNewQuizSession_RequiresQuestions(t *testing.T) {
	_, err := revizia.NewQuizSession("1", "Biology", nil)
	assert.ErrorIs(t, err, revizia.ErrNoQuestions)
}

func TestQuizSession_FullRun(t *testing.T) {
	session, err := revizia.NewQuizSession("1", "Biology", twoQuestions())
	require.NoError(t, err)
	assert.False(t, session.Complete())

	q, err := session.CurrentQuestion()
	require.NoError(t, err)
	assert.Equal(t, "First question", q.Text)

	correct, err := session.SubmitAnswer(1)
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = session.SubmitAnswer(0)
	require.NoError(t, err)
	assert.False(t, correct)

	assert.True(t, session.Complete())
	assert.Equal(t, 1, session.Score())
	assert.Equal(t, 2, session.Total())
	assert.Equal(t, []int{1, 0}, session.Answers())
}

func TestQuizSession_CurrentQuestionIsIdempotent(t *testing.T) {
	session, err := revizia.NewQuizSession("1", "Biology", twoQuestions())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		q, err := session.CurrentQuestion()
		require.NoError(t, err)
		assert.Equal(t, "First question", q.Text)
	}
	assert.Equal(t, 0, session.AnsweredCount())
	assert.Empty(t, session.Answers())
}

func TestQuizSession_RejectsOutOfRangeChoice(t *testing.T) {
	session, err := revizia.NewQuizSession("1", "Biology", twoQuestions())
	require.NoError(t, err)

	_, err = session.SubmitAnswer(4)
	assert.ErrorIs(t, err, revizia.ErrChoiceOutOfRange)
	_, err = session.SubmitAnswer(-1)
	assert.ErrorIs(t, err, revizia.ErrChoiceOutOfRange)

	// Rejected answers must not advance the session.
	assert.Equal(t, 0, session.AnsweredCount())
	assert.Equal(t, 0, session.Score())
}

func TestQuizSession_RejectsOperationsWhenComplete(t *testing.T) {
	session, err := revizia.NewQuizSession("1", "Biology", twoQuestions()[:1])
	require.NoError(t, err)

	_, err = session.SubmitAnswer(0)
	require.NoError(t, err)
	require.True(t, session.Complete())

	_, err = session.SubmitAnswer(0)
	assert.ErrorIs(t, err, revizia.ErrSessionComplete)
	_, err = session.CurrentQuestion()
	assert.ErrorIs(t, err, revizia.ErrSessionComplete)

	// Final score and total stay readable for reporting.
	assert.Equal(t, 0, session.Score())
	assert.Equal(t, 1, session.Total())
}

func TestQuizSession_Result(t *testing.T) {
	session, err := revizia.NewQuizSession("1", "Biology", twoQuestions())
	require.NoError(t, err)

	_, err = session.Result(time.Now())
	assert.Error(t, err, "result is only available on a complete session")

	_, err = session.SubmitAnswer(1)
	require.NoError(t, err)
	_, err = session.SubmitAnswer(3)
	require.NoError(t, err)

	completedAt := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	result, err := session.Result(completedAt)
	require.NoError(t, err)

	assert.Equal(t, "Biology", result.CourseTitle)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 2, result.Total)
	assert.InDelta(t, 100.0, result.Percentage, 0.001)
	assert.Equal(t, completedAt, result.CompletedAt)
}
