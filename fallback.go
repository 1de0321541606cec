package revizia

import (
	"math/rand"
	"time"
)

// fallbackPool is a fixed set of generic, subject-agnostic template questions
// used whenever the AI path is unavailable or returns nothing usable. Every
// entry already satisfies Question.Valid.
var fallbackPool = []Question{
	{
		Text: "What is the main idea developed in this course?",
		Options: []string{
			"Fundamental concept A",
			"Main theory B",
			"Central principle C",
			"Essential notion D",
		},
		CorrectAnswer: 0,
		Explanation:   "This answer corresponds to the central theme developed in the course content.",
	},
	{
		Text: "How can this knowledge be applied in practice?",
		Options: []string{
			"Application in domain X",
			"Use in context Y",
			"Implementation according to Z",
			"Deployment via W",
		},
		CorrectAnswer: 1,
		Explanation:   "This practical application follows directly from the stated theoretical principles.",
	},
	{
		Text: "What are the key elements to remember from this lesson?",
		Options: []string{
			"Secondary points",
			"Main elements",
			"Complementary details",
			"Peripheral aspects",
		},
		CorrectAnswer: 1,
		Explanation:   "The main elements form the core of understanding the subject.",
	},
	{
		Text: "In what context is this notion particularly important?",
		Options: []string{
			"General context",
			"Specific situation",
			"Precise field of application",
			"Particular environment",
		},
		CorrectAnswer: 2,
		Explanation:   "The precise field of application allows better understanding and use.",
	},
	{
		Text: "What conclusion can be drawn from this study?",
		Options: []string{
			"Partial conclusion",
			"Global synthesis",
			"Incomplete summary",
			"Limited overview",
		},
		CorrectAnswer: 1,
		Explanation:   "The global synthesis offers the most complete perspective on the subject.",
	},
}

// FallbackBank supplies deterministic local questions when generation cannot
// go through the AI service. The randomness source is injectable so selection
// is reproducible in tests.
type FallbackBank struct {
	rng  *rand.Rand
	pool []Question
}

// NewFallbackBank creates a bank over the built-in pool, seeded from the clock.
func NewFallbackBank() *FallbackBank {
	return NewSeededFallbackBank(time.Now().UnixNano())
}

// NewSeededFallbackBank creates a bank with a fixed seed for reproducible
// selection.
func NewSeededFallbackBank(seed int64) *FallbackBank {
	return &FallbackBank{
		rng:  rand.New(rand.NewSource(seed)),
		pool: fallbackPool,
	}
}

// Questions returns min(count, pool size) questions drawn from the pool
// without replacement.
func (fb *FallbackBank) Questions(count int) []Question {
	n := min(count, len(fb.pool))
	if n <= 0 {
		return nil
	}

	picked := make([]Question, 0, n)
	for _, i := range fb.rng.Perm(len(fb.pool))[:n] {
		picked = append(picked, fb.pool[i])
	}
	return picked
}

// Size returns the number of questions in the pool.
func (fb *FallbackBank) Size() int {
	return len(fb.pool)
}

// ChallengeQuestions returns the fixed question set for challenge mode.
// Challenge questions carry no explanations.
func ChallengeQuestions() []Question {
	return []Question{
		{
			Text:          "What is the capital of Senegal?",
			Options:       []string{"Dakar", "Thiès", "Saint-Louis", "Kaolack"},
			CorrectAnswer: 0,
		},
		{
			Text:          "How many regions does Senegal have?",
			Options:       []string{"12", "14", "16", "18"},
			CorrectAnswer: 1,
		},
		{
			Text:          "What is the official language of Senegal?",
			Options:       []string{"Wolof", "French", "Pulaar", "Serer"},
			CorrectAnswer: 1,
		},
	}
}
