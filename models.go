package revizia

import "time"

// Question represents a single quiz question with multiple choice answers
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`        // always exactly 4 entries
	CorrectAnswer int      `json:"correct_answer"` // 0-based index into Options
	Explanation   string   `json:"explanation"`
}

// Valid reports whether the question satisfies the structural rules every
// question in the system must hold: non-empty text, exactly 4 options and
// a correct answer index inside them.
func (q Question) Valid() bool {
	return q.Text != "" && len(q.Options) == 4 &&
		q.CorrectAnswer >= 0 && q.CorrectAnswer < 4
}

// Course is a unit of imported study material owned by the user.
type Course struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	SourceType string    `json:"source_type"` // "text", "audio", "image"
	CreatedAt  time.Time `json:"created_at"`
}

// ChallengeCourseID is the sentinel source identifier used for ad-hoc
// challenge quizzes that are not tied to an imported course.
const ChallengeCourseID = "challenge"

// GenerationRequest represents a request to generate questions
type GenerationRequest struct {
	CourseText   string `json:"course_text"`
	NumQuestions int    `json:"num_questions"`
	Level        string `json:"level,omitempty"` // education level, e.g. "Terminale"
}

// Rank is a tier label derived purely from cumulative points.
type Rank string

const (
	RankBeginner     Rank = "Beginner"
	RankIntermediate Rank = "Intermediate"
	RankAdvanced     Rank = "Advanced"
	RankExpert       Rank = "Expert"
)

// UserStats holds the cumulative statistics for a single user.
type UserStats struct {
	Name             string     `json:"name"`
	Level            string     `json:"level"`
	Points           int        `json:"points"`
	Rank             Rank       `json:"rank"`
	CoursesUploaded  int        `json:"courses_uploaded"`
	QuizzesCompleted int        `json:"quizzes_completed"`
	CorrectAnswers   int        `json:"correct_answers"`
	StudyStreak      int        `json:"study_streak"` // consecutive study days
	LastStudyDate    *time.Time `json:"last_study_date,omitempty"`
}

// NewUserStats returns zeroed stats at the starting rank.
func NewUserStats(name, level string) UserStats {
	return UserStats{Name: name, Level: level, Rank: RankBeginner}
}

// QuizResult is an append-only record of one completed quiz.
type QuizResult struct {
	ID          int64     `json:"id"`
	CourseTitle string    `json:"course_title"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  float64   `json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}
