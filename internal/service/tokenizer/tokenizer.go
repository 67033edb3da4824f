package tokenizer

import (
	"errors"
	"regexp"
	"strings"

	"github.com/srijan-y/Playing-with-Ngrams/internal/model/ngram"
	"go.uber.org/zap"
)

// ErrEmptyCorpus means no usable text was supplied to the tokenizer.
var ErrEmptyCorpus = errors.New("empty corpus: no usable text supplied")

// sentenceEnd matches a terminal punctuation mark, optionally followed by a
// closing quote, at the end of a sentence.
var sentenceEnd = regexp.MustCompile(`[.!?]['"]?(\s+|$)`)

// wordPattern splits a sentence into words and individual punctuation marks.
// Apostrophes inside a word (contractions, possessives) stay attached.
var wordPattern = regexp.MustCompile(`[a-z0-9]+(?:'[a-z0-9]+)*|[.,:;!?'"]`)

// abbreviations lists period-bearing words that do not end a sentence.
var abbreviations = map[string]bool{
	"mr":   true,
	"mrs":  true,
	"ms":   true,
	"dr":   true,
	"st":   true,
	"prof": true,
	"rev":  true,
	"jr":   true,
	"sr":   true,
	"vs":   true,
	"etc":  true,
	"e.g":  true,
	"i.e":  true,
}

// CorpusTokenizer converts raw corpus text into a flat stream of lowercase
// word and punctuation tokens, with every sentence wrapped in START/END
// sentinels.
type CorpusTokenizer struct {
	logger *zap.Logger
}

// NewCorpusTokenizer creates a new corpus tokenizer
func NewCorpusTokenizer(logger *zap.Logger) *CorpusTokenizer {
	return &CorpusTokenizer{logger: logger}
}

// Tokenize concatenates the texts (newlines stripped), lowercases the body,
// splits it into sentences, and returns one flat token sequence in which each
// sentence reads START <tokens...> END. Sentence boundaries exist only through
// the sentinels; there are no structural breaks in the sequence.
func (t *CorpusTokenizer) Tokenize(texts []string) ([]string, error) {
	var body strings.Builder
	for _, text := range texts {
		text = strings.ReplaceAll(text, "\r", "")
		body.WriteString(strings.ReplaceAll(text, "\n", " "))
	}

	sentences := t.splitSentences(strings.ToLower(body.String()))
	if len(sentences) == 0 {
		return nil, ErrEmptyCorpus
	}

	var tokens []string
	for _, sentence := range sentences {
		tokens = append(tokens, ngram.StartToken)
		tokens = append(tokens, wordPattern.FindAllString(sentence, -1)...)
		tokens = append(tokens, ngram.EndToken)
	}

	t.logger.Debug("Tokenized corpus",
		zap.Int("texts", len(texts)),
		zap.Int("sentences", len(sentences)),
		zap.Int("tokens", len(tokens)),
	)

	return tokens, nil
}

// splitSentences cuts the body at terminal punctuation, keeping the mark (and
// a trailing quote, if any) with its sentence. Periods after known
// abbreviations or single-letter initials do not end a sentence.
func (t *CorpusTokenizer) splitSentences(body string) []string {
	var sentences []string
	start := 0

	for _, loc := range sentenceEnd.FindAllStringSubmatchIndex(body, -1) {
		if body[loc[0]] == '.' && isAbbreviation(body[start:loc[0]]) {
			continue
		}
		if s := strings.TrimSpace(body[start:loc[2]]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}

	// Trailing text with no terminal punctuation still forms a sentence.
	if s := strings.TrimSpace(body[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// isAbbreviation reports whether the text right before a period is a known
// abbreviation or a single-letter initial.
func isAbbreviation(prefix string) bool {
	if i := strings.LastIndexByte(prefix, ' '); i >= 0 {
		prefix = prefix[i+1:]
	}
	if len(prefix) == 1 && prefix[0] >= 'a' && prefix[0] <= 'z' {
		return true
	}
	return abbreviations[prefix]
}
