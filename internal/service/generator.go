package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/srijan-y/Playing-with-Ngrams/internal/model/ngram"
	"go.uber.org/zap"
)

const (
	// defaultMaxWords bounds the continuation loop; the model alone never
	// guarantees a terminator is sampled.
	defaultMaxWords = 200

	// defaultMaxResamples bounds consecutive punctuation re-samples within
	// a single context.
	defaultMaxResamples = 100
)

// Generator performs weighted random walks over a built model to synthesize
// sentences. A generator owns its randomness source and must not be shared
// across goroutines; the underlying model may be.
type Generator struct {
	model        *Model
	rng          *rand.Rand
	maxWords     int
	maxResamples int
	logger       *zap.Logger
}

// NewGenerator creates a generator with default safety limits. A nil rng gets
// a time-seeded source; pass a seeded rand.Rand for reproducible output.
func NewGenerator(model *Model, rng *rand.Rand, logger *zap.Logger) *Generator {
	return NewGeneratorWithLimits(model, rng, defaultMaxWords, defaultMaxResamples, logger)
}

// NewGeneratorWithLimits creates a generator with explicit safety limits.
func NewGeneratorWithLimits(model *Model, rng *rand.Rand, maxWords, maxResamples int, logger *zap.Logger) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if maxWords < 1 {
		maxWords = defaultMaxWords
	}
	if maxResamples < 1 {
		maxResamples = defaultMaxResamples
	}
	return &Generator{
		model:        model,
		rng:          rng,
		maxWords:     maxWords,
		maxResamples: maxResamples,
		logger:       logger,
	}
}

// Sentence makes a single generation attempt. The walk bootstraps with the
// bigram model until n-1 words of context exist, then continues with the full
// n-gram model until a terminator is sampled. Failed attempts return
// ErrEmptyGeneration and are safe to retry.
func (g *Generator) Sentence() (string, error) {
	word, mark, err := g.next(g.model.Bigram, ngram.NGram{ngram.StartToken})
	if err != nil {
		return "", err
	}
	if mark != "" {
		return sentenceText(nil, mark), nil
	}
	words := []string{word}

	// Bootstrap phase: bigram transitions until the n-gram context window
	// can fill. With n == 2 the first word already seeds the context.
	for len(words) < g.model.N-1 {
		word, mark, err = g.next(g.model.Bigram, ngram.NGram{words[len(words)-1]})
		if err != nil {
			return "", err
		}
		if mark != "" {
			return sentenceText(words, mark), nil
		}
		words = append(words, word)
	}

	// Continuation phase: slide an n-1 word context over the n-gram model.
	context := make(ngram.NGram, g.model.N-1)
	copy(context, words)
	for {
		if len(words) >= g.maxWords {
			return "", fmt.Errorf("%w: no terminator after %d words", ErrEmptyGeneration, g.maxWords)
		}

		word, mark, err = g.next(g.model.NGram, context)
		if err != nil {
			return "", err
		}
		if mark != "" {
			return sentenceText(words, mark), nil
		}
		words = append(words, word)

		copy(context, context[1:])
		context[len(context)-1] = word
	}
}

// Sentences produces count sentences, silently retrying attempts that fail or
// come out with no more than n words. The attempt budget caps total work; when
// it runs out the sentences produced so far are returned alongside
// ErrGenerationExhausted.
func (g *Generator) Sentences(count, maxAttempts int) ([]string, error) {
	sentences := make([]string, 0, count)

	for attempts := 0; len(sentences) < count; attempts++ {
		if attempts >= maxAttempts {
			return sentences, fmt.Errorf("%w: %d accepted after %d attempts",
				ErrGenerationExhausted, len(sentences), attempts)
		}

		sentence, err := g.Sentence()
		if err != nil {
			if errors.Is(err, ErrEmptyGeneration) {
				g.logger.Debug("Generation attempt abandoned", zap.Error(err))
				continue
			}
			return sentences, err
		}

		// Acceptance policy: more words than n, or the sentence is a
		// degenerate early termination.
		if len(strings.Fields(sentence)) <= g.model.N {
			g.logger.Debug("Rejected short sentence", zap.String("sentence", sentence))
			continue
		}

		sentences = append(sentences, sentence)
	}

	return sentences, nil
}

// next samples the following token for a context. Skip punctuation and
// sentinels are discarded and re-sampled with the same context; a terminator
// comes back as mark. A context absent from the distribution, or one that
// yields nothing but discards, fails the attempt.
func (g *Generator) next(dist *ConditionalDist, context ngram.NGram) (word, mark string, err error) {
	for attempt := 0; attempt < g.maxResamples; attempt++ {
		gram, ok := dist.Sample(g.rng, context)
		if !ok {
			return "", "", fmt.Errorf("%w: unknown context %q", ErrEmptyGeneration, context.String())
		}

		token := gram.LastToken()
		switch ngram.Classify(token) {
		case ngram.KindTerminator:
			return "", token, nil
		case ngram.KindSkip, ngram.KindSentinel:
			continue
		default:
			return token, "", nil
		}
	}
	return "", "", fmt.Errorf("%w: context %q yields only punctuation", ErrEmptyGeneration, context.String())
}

// sentenceText joins the accumulated words and appends the terminating mark
// directly, with no space before it.
func sentenceText(words []string, mark string) string {
	return strings.Join(words, " ") + mark
}
