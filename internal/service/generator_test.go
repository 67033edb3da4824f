package service

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/srijan-y/Playing-with-Ngrams/internal/model/ngram"
	"github.com/srijan-y/Playing-with-Ngrams/internal/service/tokenizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildTestModel(t *testing.T, text string, n int) *Model {
	t.Helper()
	tok := tokenizer.NewCorpusTokenizer(zap.NewNop())
	tokens, err := tok.Tokenize([]string{text})
	require.NoError(t, err)

	model, err := BuildModel(tokens, n, nil)
	require.NoError(t, err)
	return model
}

const storyCorpus = "The cat sat on the mat. The cat ran over the hill. " +
	"The dog sat on the mat. The dog ran over the field. " +
	"A bird flew over the hill. The cat saw the bird!"

func TestGenerator_Terminates(t *testing.T) {
	model := buildTestModel(t, "The cat sat. The cat ran. The dog sat. The dog ran.", 3)
	g := NewGenerator(model, rand.New(rand.NewSource(42)), zap.NewNop())

	for i := 0; i < 50; i++ {
		sentence, err := g.Sentence()
		if err != nil {
			assert.ErrorIs(t, err, ErrEmptyGeneration)
			continue
		}
		require.NotEmpty(t, sentence)
		last := sentence[len(sentence)-1]
		assert.Contains(t, ".!?", string(last), "sentence %q must end with a terminator", sentence)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	model := buildTestModel(t, storyCorpus, 3)

	first := NewGenerator(model, rand.New(rand.NewSource(7)), zap.NewNop())
	second := NewGenerator(model, rand.New(rand.NewSource(7)), zap.NewNop())

	a, errA := first.Sentences(5, 500)
	b, errB := second.Sentences(5, 500)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestGenerator_NoArtifactsInOutput(t *testing.T) {
	model := buildTestModel(t, storyCorpus, 3)
	g := NewGenerator(model, rand.New(rand.NewSource(11)), zap.NewNop())

	sentences, err := g.Sentences(5, 500)
	require.NoError(t, err)
	require.Len(t, sentences, 5)

	for _, sentence := range sentences {
		assert.Equal(t, strings.ToLower(sentence), sentence)
		assert.NotContains(t, sentence, ngram.StartToken)
		assert.NotContains(t, sentence, ngram.EndToken)

		words := strings.Fields(sentence)
		assert.Greater(t, len(words), model.N)
		for _, word := range words[:len(words)-1] {
			assert.Equal(t, ngram.KindWord, ngram.Classify(word),
				"unexpected punctuation token %q in %q", word, sentence)
		}
	}
}

func TestGenerator_BigramSkipsBootstrap(t *testing.T) {
	model := buildTestModel(t, storyCorpus, 2)
	g := NewGenerator(model, rand.New(rand.NewSource(3)), zap.NewNop())

	sentences, err := g.Sentences(3, 300)
	require.NoError(t, err)
	require.Len(t, sentences, 3)

	for _, sentence := range sentences {
		// Every sentence in the corpus opens with "the" or "a".
		first := strings.Fields(sentence)[0]
		assert.Contains(t, []string{"the", "a"}, first)
	}
}

func TestGenerator_UnknownContext(t *testing.T) {
	model := buildTestModel(t, storyCorpus, 3)
	g := NewGenerator(model, rand.New(rand.NewSource(1)), zap.NewNop())

	_, _, err := g.next(model.NGram, ngram.NGram{"no", "such"})
	assert.ErrorIs(t, err, ErrEmptyGeneration)
}

func TestGenerator_Exhaustion(t *testing.T) {
	// Every possible sentence is a single word, so the acceptance filter
	// (word count > n) rejects all of them.
	model := buildTestModel(t, "Hi. Yo. No.", 3)
	g := NewGenerator(model, rand.New(rand.NewSource(5)), zap.NewNop())

	sentences, err := g.Sentences(1, 10)
	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.Empty(t, sentences)
}

func TestGenerator_MaxWordsBound(t *testing.T) {
	// "on and on and ..." never terminates from the context "and on", so the
	// word cap must abandon the attempt instead of looping forever.
	model := buildTestModel(t, "It goes on and on and on and on and on and on", 3)
	g := NewGeneratorWithLimits(model, rand.New(rand.NewSource(9)), 20, 0, zap.NewNop())

	for i := 0; i < 10; i++ {
		sentence, err := g.Sentence()
		if err != nil {
			assert.ErrorIs(t, err, ErrEmptyGeneration)
			continue
		}
		assert.LessOrEqual(t, len(strings.Fields(sentence)), 20)
	}
}
