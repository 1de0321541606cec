package revizia

import (
	"encoding/json"
	"strings"
)

// quizPayload is the JSON object the model is instructed to return. Each
// question is kept raw so that one malformed entry cannot sink the batch.
type quizPayload struct {
	Questions []json.RawMessage `json:"questions"`
}

type rawQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     *int     `json:"correct"`
	Explanation *string  `json:"explanation"`
}

// ParseQuestions parses a raw model response as quiz data and returns the
// questions that pass validation, truncated to maxCount. Malformed input or
// zero surviving questions yields an empty slice; it never returns an error,
// since the caller's recovery is always the same (fall back to the local bank).
func ParseQuestions(raw string, maxCount int) []Question {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var payload quizPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		VerboseLog("Failed to parse quiz payload: %v", err)
		return nil
	}

	questions := make([]Question, 0, len(payload.Questions))
	for _, msg := range payload.Questions {
		if len(questions) == maxCount {
			break
		}

		var rq rawQuestion
		if err := json.Unmarshal(msg, &rq); err != nil {
			VerboseLog("Dropping malformed question: %v", err)
			continue
		}
		if rq.Question == "" || len(rq.Options) != 4 ||
			rq.Correct == nil || *rq.Correct < 0 || *rq.Correct >= 4 ||
			rq.Explanation == nil {
			VerboseLog("Dropping invalid question: %q", rq.Question)
			continue
		}

		questions = append(questions, Question{
			Text:          rq.Question,
			Options:       rq.Options,
			CorrectAnswer: *rq.Correct,
			Explanation:   *rq.Explanation,
		})
	}

	return questions
}

// stripCodeFence removes a single markdown code fence wrapped around the
// payload. Models tend to echo formatting even when told not to.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
