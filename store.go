package revizia

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists the course registry and the quiz result history. Core quiz
// operations never touch it; only the caller records courses and completed
// results here.
type Store struct {
	db *sql.DB
}

// OpenStore opens a store at the given sqlite path.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTables creates the necessary tables if they don't exist.
func (s *Store) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS courses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			source_type TEXT NOT NULL DEFAULT 'text',
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_title TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			percentage REAL NOT NULL,
			completed_at DATETIME NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// AddCourse inserts a course and returns it with its assigned ID.
func (s *Store) AddCourse(course Course) (Course, error) {
	res, err := s.db.Exec(
		"INSERT INTO courses (title, content, source_type, created_at) VALUES (?, ?, ?, ?)",
		course.Title, course.Content, course.SourceType, course.CreatedAt,
	)
	if err != nil {
		return Course{}, fmt.Errorf("failed to add course: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Course{}, fmt.Errorf("failed to read course id: %w", err)
	}
	course.ID = id
	return course, nil
}

// GetCourse retrieves a course by ID.
func (s *Store) GetCourse(id int64) (*Course, error) {
	var course Course
	err := s.db.QueryRow(
		"SELECT id, title, content, source_type, created_at FROM courses WHERE id = ?",
		id,
	).Scan(&course.ID, &course.Title, &course.Content, &course.SourceType, &course.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("course not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

// GetCourses retrieves all courses, newest first.
func (s *Store) GetCourses() ([]Course, error) {
	rows, err := s.db.Query("SELECT id, title, content, source_type, created_at FROM courses ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		err := rows.Scan(&course.ID, &course.Title, &course.Content, &course.SourceType, &course.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// DeleteCourse removes a course by ID.
func (s *Store) DeleteCourse(id int64) error {
	_, err := s.db.Exec("DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

// AddResult appends a completed quiz result to the history.
func (s *Store) AddResult(result QuizResult) error {
	_, err := s.db.Exec(
		"INSERT INTO quiz_results (course_title, score, total, percentage, completed_at) VALUES (?, ?, ?, ?, ?)",
		result.CourseTitle, result.Score, result.Total, result.Percentage, result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add quiz result: %w", err)
	}
	return nil
}

// GetResults retrieves the quiz result history, newest first.
func (s *Store) GetResults() ([]QuizResult, error) {
	rows, err := s.db.Query("SELECT id, course_title, score, total, percentage, completed_at FROM quiz_results ORDER BY completed_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz results: %w", err)
	}
	defer rows.Close()

	var results []QuizResult
	for rows.Next() {
		var result QuizResult
		err := rows.Scan(&result.ID, &result.CourseTitle, &result.Score, &result.Total, &result.Percentage, &result.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz result: %w", err)
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz results: %w", err)
	}

	return results, nil
}
