package service

import "errors"

var (
	// ErrInsufficientData means the token stream is too short to fill a
	// single n-gram window. Fatal to model construction.
	ErrInsufficientData = errors.New("insufficient data for n-gram window")

	// ErrEmptyGeneration means a generation attempt reached a context with
	// no recorded transitions (or exceeded a safety bound). The attempt is
	// abandoned; the caller may retry with a fresh bootstrap.
	ErrEmptyGeneration = errors.New("no sentence produced")

	// ErrGenerationExhausted means the retry budget ran out before enough
	// acceptable sentences were produced.
	ErrGenerationExhausted = errors.New("generation attempt budget exhausted")
)
