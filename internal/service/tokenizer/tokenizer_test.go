package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTokenize_RoundTrip(t *testing.T) {
	tok := NewCorpusTokenizer(zap.NewNop())

	tokens, err := tok.Tokenize([]string{"Hello, world! Stop."})
	require.NoError(t, err)

	expected := []string{
		"START", "hello", ",", "world", "!", "END",
		"START", "stop", ".", "END",
	}
	assert.Equal(t, expected, tokens)
}

func TestTokenize_EmptyCorpus(t *testing.T) {
	tok := NewCorpusTokenizer(zap.NewNop())

	_, err := tok.Tokenize(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = tok.Tokenize([]string{"", "\n\n", "   "})
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestTokenize_MultipleTexts(t *testing.T) {
	tok := NewCorpusTokenizer(zap.NewNop())

	tokens, err := tok.Tokenize([]string{"The cat sat.", "The cat ran."})
	require.NoError(t, err)

	expected := []string{
		"START", "the", "cat", "sat", ".", "END",
		"START", "the", "cat", "ran", ".", "END",
	}
	assert.Equal(t, expected, tokens)
}

func TestTokenize_StripsNewlines(t *testing.T) {
	tok := NewCorpusTokenizer(zap.NewNop())

	tokens, err := tok.Tokenize([]string{"the cat\r\nsat on\nthe mat."})
	require.NoError(t, err)

	expected := []string{
		"START", "the", "cat", "sat", "on", "the", "mat", ".", "END",
	}
	assert.Equal(t, expected, tokens)
}

func TestTokenize_Abbreviations(t *testing.T) {
	tok := NewCorpusTokenizer(zap.NewNop())

	tokens, err := tok.Tokenize([]string{"Mr. Darcy bowed. J. Smith left!"})
	require.NoError(t, err)

	expected := []string{
		"START", "mr", ".", "darcy", "bowed", ".", "END",
		"START", "j", ".", "smith", "left", "!", "END",
	}
	assert.Equal(t, expected, tokens)
}

func TestTokenize_QuotedSentence(t *testing.T) {
	tok := NewCorpusTokenizer(zap.NewNop())

	tokens, err := tok.Tokenize([]string{`"Run!" she said.`})
	require.NoError(t, err)

	expected := []string{
		"START", `"`, "run", "!", `"`, "END",
		"START", "she", "said", ".", "END",
	}
	assert.Equal(t, expected, tokens)
}

func TestTokenize_Contractions(t *testing.T) {
	tok := NewCorpusTokenizer(zap.NewNop())

	tokens, err := tok.Tokenize([]string{"Don't stop."})
	require.NoError(t, err)

	expected := []string{"START", "don't", "stop", ".", "END"}
	assert.Equal(t, expected, tokens)
}

func TestTokenize_TrailingTextWithoutTerminator(t *testing.T) {
	tok := NewCorpusTokenizer(zap.NewNop())

	tokens, err := tok.Tokenize([]string{"the end is near"})
	require.NoError(t, err)

	expected := []string{"START", "the", "end", "is", "near", "END"}
	assert.Equal(t, expected, tokens)
}
