package revizia

import (
	"errors"
	"time"
)

var (
	// ErrNoQuestions reports an attempt to create a session without questions.
	ErrNoQuestions = errors.New("session requires at least one question")

	// ErrSessionComplete reports an operation on a session whose questions
	// have all been answered.
	ErrSessionComplete = errors.New("session is already complete")

	// ErrChoiceOutOfRange reports an answer index outside [0,3].
	ErrChoiceOutOfRange = errors.New("choice index must be between 0 and 3")
)

// QuizSession holds an in-progress quiz and advances it one answer at a time.
// The question list is fixed at creation. Sessions are not safe for concurrent
// use; each belongs to exactly one user context.
type QuizSession struct {
	sourceID    string
	courseTitle string
	questions   []Question
	current     int
	answers     []int
	score       int
}

// NewQuizSession creates a session over the given questions, starting at the
// first one. sourceID identifies the originating course, or ChallengeCourseID
// for ad-hoc challenge quizzes.
func NewQuizSession(sourceID, courseTitle string, questions []Question) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	qs := make([]Question, len(questions))
	copy(qs, questions)

	return &QuizSession{
		sourceID:    sourceID,
		courseTitle: courseTitle,
		questions:   qs,
		answers:     make([]int, 0, len(qs)),
	}, nil
}

// CurrentQuestion returns the question awaiting an answer. Reading it does
// not change session state. Fails with ErrSessionComplete on a finished
// session.
func (s *QuizSession) CurrentQuestion() (Question, error) {
	if s.Complete() {
		return Question{}, ErrSessionComplete
	}
	return s.questions[s.current], nil
}

// SubmitAnswer records the chosen option for the current question, scores it
// and advances to the next question. It reports whether the choice was
// correct. Calling it on a complete session or with an out-of-range choice is
// a contract violation and returns an error without changing state.
func (s *QuizSession) SubmitAnswer(choice int) (bool, error) {
	if s.Complete() {
		return false, ErrSessionComplete
	}
	if choice < 0 || choice > 3 {
		return false, ErrChoiceOutOfRange
	}

	correct := choice == s.questions[s.current].CorrectAnswer
	s.answers = append(s.answers, choice)
	if correct {
		s.score++
	}
	s.current++

	return correct, nil
}

// Complete reports whether every question has been answered.
func (s *QuizSession) Complete() bool {
	return s.current == len(s.questions)
}

// Score returns the count of correct answers so far.
func (s *QuizSession) Score() int {
	return s.score
}

// Total returns the number of questions in the session.
func (s *QuizSession) Total() int {
	return len(s.questions)
}

// AnsweredCount returns how many questions have been answered so far.
func (s *QuizSession) AnsweredCount() int {
	return s.current
}

// Answers returns a copy of the recorded answers, one per answered question.
func (s *QuizSession) Answers() []int {
	out := make([]int, len(s.answers))
	copy(out, s.answers)
	return out
}

// SourceID returns the identifier of the originating course.
func (s *QuizSession) SourceID() string {
	return s.sourceID
}

// CourseTitle returns the display title of the originating course.
func (s *QuizSession) CourseTitle() string {
	return s.courseTitle
}

// Questions returns a copy of the session's questions, for result review.
func (s *QuizSession) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Result produces the historical record for a complete session. It must be
// called exactly once per completed session, by the caller that owns the
// session; the state machine itself stays side-effect free.
func (s *QuizSession) Result(completedAt time.Time) (QuizResult, error) {
	if !s.Complete() {
		return QuizResult{}, errors.New("session is not complete")
	}
	return QuizResult{
		CourseTitle: s.courseTitle,
		Score:       s.score,
		Total:       len(s.questions),
		Percentage:  float64(s.score) / float64(len(s.questions)) * 100,
		CompletedAt: completedAt,
	}, nil
}
