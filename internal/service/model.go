package service

import (
	"fmt"

	"github.com/srijan-y/Playing-with-Ngrams/internal/model/ngram"
)

// Model pairs the bigram bootstrap distribution with the full n-gram
// distribution. A model is immutable once built and safe for unsynchronized
// concurrent reads; generation never writes to it.
type Model struct {
	N      int
	Bigram *ConditionalDist
	NGram  *ConditionalDist

	totalTokens int64
	vocabSize   int
	smoother    Smoother
}

// BuildModel slides a width-2 window and a width-n window over the token
// stream (stride 1) and converts the resulting frequency tables into smoothed
// conditional distributions. The build is deterministic: identical tokens and
// n produce identical tables.
func BuildModel(tokens []string, n int, smoother Smoother) (*Model, error) {
	if n < 2 {
		return nil, fmt.Errorf("n must be at least 2, got %d", n)
	}
	if smoother == nil {
		smoother = NewAddKSmoother(1.0) // Default to Laplace smoothing
	}
	if len(tokens) < n {
		return nil, fmt.Errorf("%w: have %d tokens, need at least %d", ErrInsufficientData, len(tokens), n)
	}

	m := &Model{
		N:           n,
		Bigram:      newConditionalDist(2, smoother),
		NGram:       newConditionalDist(n, smoother),
		totalTokens: int64(len(tokens)),
		smoother:    smoother,
	}

	vocab := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		vocab[token] = struct{}{}
	}
	m.vocabSize = len(vocab)

	for i := 0; i+2 <= len(tokens); i++ {
		window := make(ngram.NGram, 2)
		copy(window, tokens[i:i+2])
		m.Bigram.observe(window)
	}

	for i := 0; i+n <= len(tokens); i++ {
		window := make(ngram.NGram, n)
		copy(window, tokens[i:i+n])
		m.NGram.observe(window)
	}

	return m, nil
}

// Stats returns statistics about the model
func (m *Model) Stats() ModelStats {
	return ModelStats{
		N:              m.N,
		VocabularySize: m.vocabSize,
		BigramContexts: m.Bigram.Contexts(),
		NGramContexts:  m.NGram.Contexts(),
		TotalTokens:    m.totalTokens,
		SmootherName:   m.smoother.Name(),
	}
}

// ModelStats contains statistics about a built model
type ModelStats struct {
	N              int    `json:"n"`
	VocabularySize int    `json:"vocabulary_size"`
	BigramContexts int    `json:"bigram_contexts"`
	NGramContexts  int    `json:"ngram_contexts"`
	TotalTokens    int64  `json:"total_tokens"`
	SmootherName   string `json:"smoother_name"`
}
