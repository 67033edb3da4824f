package ngram

import "strings"

// Sentence boundary sentinels inserted by the corpus tokenizer. They stay
// uppercase on purpose: the corpus body is lowercased before tokenization, so
// the sentinels can never collide with a corpus word.
const (
	StartToken = "START"
	EndToken   = "END"
)

// Kind classifies a token for the generation loop.
type Kind int

const (
	// KindWord is an ordinary vocabulary word.
	KindWord Kind = iota
	// KindTerminator ends the sentence being generated (. ! ?).
	KindTerminator
	// KindSkip is punctuation that never enters the context window (, : ; ' ").
	KindSkip
	// KindSentinel is a START or END boundary marker.
	KindSentinel
)

var terminators = map[string]bool{
	".": true,
	"!": true,
	"?": true,
}

var skipPunctuation = map[string]bool{
	",": true,
	":": true,
	";": true,
	"'": true,
	`"`: true,
}

// Classify returns the kind of a single token. The terminators also belong to
// the non-advancing punctuation set, so terminator classification takes
// precedence over skip classification.
func Classify(token string) Kind {
	switch {
	case terminators[token]:
		return KindTerminator
	case skipPunctuation[token]:
		return KindSkip
	case token == StartToken || token == EndToken:
		return KindSentinel
	default:
		return KindWord
	}
}

// NGram represents an n-gram (sequence of n tokens)
type NGram []string

// String returns the n-gram as a space-separated string
func (ng NGram) String() string {
	return strings.Join(ng, " ")
}

// Context returns the context (all tokens except the last one)
func (ng NGram) Context() NGram {
	if len(ng) <= 1 {
		return NGram{}
	}
	return ng[:len(ng)-1]
}

// LastToken returns the last token in the n-gram
func (ng NGram) LastToken() string {
	if len(ng) == 0 {
		return ""
	}
	return ng[len(ng)-1]
}
