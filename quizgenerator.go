package revizia

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrInvalidQuestionCount reports a GenerateQuiz call with a non-positive
// question count. This is caller misuse, not an environmental failure, so it
// is surfaced instead of being absorbed by the fallback path.
var ErrInvalidQuestionCount = errors.New("question count must be at least 1")

// maxCourseTextChars bounds how much course material is embedded in the
// prompt. Longer text is silently clipped, not rejected.
const maxCourseTextChars = 2500

// QuizGenerator orchestrates prompt construction, the AI call, parsing,
// validation and the local fallback into one operation producing a finite
// ordered list of questions.
type QuizGenerator struct {
	client   TextGenerator
	fallback *FallbackBank
	genlog   *GenerationLog
}

// NewQuizGenerator creates a generator backed by the given text client.
// A nil client means the AI service is not configured; every quiz then comes
// from the fallback bank without any network call.
func NewQuizGenerator(client TextGenerator) *QuizGenerator {
	return &QuizGenerator{
		client:   client,
		fallback: NewFallbackBank(),
	}
}

// SetFallbackBank replaces the fallback bank, mainly to inject a seeded one
// in tests.
func (qg *QuizGenerator) SetFallbackBank(bank *FallbackBank) {
	qg.fallback = bank
}

// SetLogger attaches a generation log that records prompts, responses and
// fallback decisions for this generator.
func (qg *QuizGenerator) SetLogger(genlog *GenerationLog) {
	qg.genlog = genlog
}

// GenerateQuiz produces req.NumQuestions questions from the course text.
// The AI path is tried first when a client is configured; any failure there
// (network error, timeout, malformed or empty output) falls through to the
// fallback bank. The result is never empty when req.NumQuestions >= 1, though
// it may be shorter than requested if the AI returned fewer valid questions.
func (qg *QuizGenerator) GenerateQuiz(ctx context.Context, req GenerationRequest) ([]Question, error) {
	if req.NumQuestions < 1 {
		return nil, ErrInvalidQuestionCount
	}

	if qg.client == nil {
		VerboseLog("AI client not configured, using fallback bank")
		qg.logFallback("not configured")
		return qg.fallback.Questions(req.NumQuestions), nil
	}

	prompt := qg.buildPrompt(req)
	if qg.genlog != nil {
		qg.genlog.LogRequest(prompt)
	}

	raw, err := qg.client.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("AI generation failed, using fallback bank: %v", err)
		qg.logFallback(err.Error())
		return qg.fallback.Questions(req.NumQuestions), nil
	}
	if qg.genlog != nil {
		qg.genlog.LogResponse(raw)
	}

	questions := ParseQuestions(raw, req.NumQuestions)
	if len(questions) == 0 {
		log.Printf("AI response contained no valid questions, using fallback bank")
		qg.logFallback("no valid questions in response")
		return qg.fallback.Questions(req.NumQuestions), nil
	}

	VerboseLog("Generated %d questions from AI response", len(questions))
	if qg.genlog != nil {
		qg.genlog.LogOutcome(len(questions), false)
	}
	return questions, nil
}

func (qg *QuizGenerator) logFallback(reason string) {
	if qg.genlog != nil {
		qg.genlog.LogFallback(reason)
	}
}

func (qg *QuizGenerator) buildPrompt(req GenerationRequest) string {
	text := req.CourseText
	if len(text) > maxCourseTextChars {
		text = text[:maxCourseTextChars]
	}

	level := req.Level
	if level == "" {
		level = "Terminale"
	}

	var sb strings.Builder

	sb.WriteString("You are an educational expert specialized in creating quizzes for high school students.\n\n")
	sb.WriteString(fmt.Sprintf("TASK: From the following course content, generate exactly %d multiple choice questions suited to the %s level.\n\n", req.NumQuestions, level))

	sb.WriteString("COURSE CONTENT:\n")
	sb.WriteString(text)
	sb.WriteString("\n\n")

	sb.WriteString("REQUIRED RESPONSE FORMAT (strict JSON):\n")
	sb.WriteString(`{
    "questions": [
        {
            "question": "Clear and precise question based on the content",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correct": 0,
            "explanation": "Detailed explanation of why this answer is correct"
        }
    ]
}`)
	sb.WriteString("\n\n")

	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Questions suited to the %s school level\n", level))
	sb.WriteString("- Exactly 4 options per question\n")
	sb.WriteString("- A single correct answer per question (index 0-3)\n")
	sb.WriteString("- Clear pedagogical explanations\n")
	sb.WriteString("- Questions based ONLY on the provided content\n")
	sb.WriteString("- Avoid questions that are too obvious or too difficult\n\n")

	sb.WriteString("Respond ONLY with the valid JSON object, without extra text and without markdown fences.\n")

	return sb.String()
}
