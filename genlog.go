package revizia

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// GenerationLog records one quiz generation run to a file: the prompt sent,
// the raw response and whether the fallback bank had to step in.
type GenerationLog struct {
	file *os.File
	mu   sync.Mutex
}

// NewGenerationLog creates a log file for the given course under dir,
// writing a header with the request parameters.
func NewGenerationLog(dir, courseTitle string, req GenerationRequest) (*GenerationLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("gen-%d.log", time.Now().UnixNano()))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	gl := &GenerationLog{file: file}

	gl.logf("=== Quiz Generation Log ===\n")
	gl.logf("Course: %s\n", courseTitle)
	gl.logf("Questions requested: %d\n", req.NumQuestions)
	gl.logf("Level: %s\n", req.Level)
	gl.logf("Course text length: %d characters\n", len(req.CourseText))
	gl.logf("Started: %s\n\n", time.Now().Format(time.RFC3339))

	return gl, nil
}

func (gl *GenerationLog) logf(format string, args ...interface{}) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(gl.file, "[%s] %s", timestamp, fmt.Sprintf(format, args...))
	gl.file.Sync()
}

// LogRequest records the prompt sent to the AI service.
func (gl *GenerationLog) LogRequest(prompt string) {
	gl.logf("=== REQUEST ===\n%s\n\n", prompt)
}

// LogResponse records the raw text the AI service returned.
func (gl *GenerationLog) LogResponse(response string) {
	gl.logf("=== RESPONSE ===\n%s\n\n", response)
}

// LogFallback records that the fallback bank was used, and why.
func (gl *GenerationLog) LogFallback(reason string) {
	gl.logf("FALLBACK: %s\n", reason)
}

// LogOutcome records how many questions the run produced.
func (gl *GenerationLog) LogOutcome(count int, fromFallback bool) {
	source := "ai"
	if fromFallback {
		source = "fallback"
	}
	gl.logf("OUTCOME: %d questions (%s)\n", count, source)
}

// Close finishes and closes the log file.
func (gl *GenerationLog) Close() error {
	gl.logf("Completed: %s\n", time.Now().Format(time.RFC3339))

	gl.mu.Lock()
	defer gl.mu.Unlock()
	return gl.file.Close()
}
