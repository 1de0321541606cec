package revizia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revizia"
)

func TestFallbackBank_QuestionsAreValid(t *testing.T) {
	bank := revizia.NewSeededFallbackBank(1)

	for _, q := range bank.Questions(bank.Size()) {
		assert.True(t, q.Valid(), "fallback question %q must be structurally valid", q.Text)
		assert.NotEmpty(t, q.Explanation)
	}
}

func TestFallbackBank_CountClampedToPoolSize(t *testing.T) {
	bank := revizia.NewSeededFallbackBank(42)

	assert.Len(t, bank.Questions(bank.Size()+10), bank.Size())
	assert.Len(t, bank.Questions(2), 2)
	assert.Empty(t, bank.Questions(0))
}

func TestFallbackBank_SelectionWithoutReplacement(t *testing.T) {
	bank := revizia.NewSeededFallbackBank(7)

	questions := bank.Questions(bank.Size())
	seen := make(map[string]bool)
	for _, q := range questions {
		require.False(t, seen[q.Text], "question %q selected twice", q.Text)
		seen[q.Text] = true
	}
}

func TestFallbackBank_SeededSelectionIsReproducible(t *testing.T) {
	first := revizia.NewSeededFallbackBank(99).Questions(3)
	second := revizia.NewSeededFallbackBank(99).Questions(3)

	assert.Equal(t, first, second)
}

func TestChallengeQuestions(t *testing.T) {
	questions := revizia.ChallengeQuestions()

	require.NotEmpty(t, questions)
	for _, q := range questions {
		assert.True(t, q.Valid())
	}
}
