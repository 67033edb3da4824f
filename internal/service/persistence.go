package service

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const modelFormatVersion = "1.0"

// SerializableModel is the on-disk representation of a built model. The
// per-context outcome slices preserve insertion order, so a loaded model
// samples identically to the one that was saved.
type SerializableModel struct {
	Version        string
	N              int
	CorpusName     string
	CreatedAt      time.Time
	SmootherName   string
	TotalTokens    int64
	VocabularySize int
	BigramContexts map[string][]Outcome
	NGramContexts  map[string][]Outcome
}

// ModelPersistence handles saving and loading built models
type ModelPersistence struct {
	outputDir string
	logger    *zap.Logger
}

// NewModelPersistence creates a new persistence manager
func NewModelPersistence(outputDir string, logger *zap.Logger) (*ModelPersistence, error) {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &ModelPersistence{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// ModelPath returns the file path for a corpus's saved model
func (p *ModelPersistence) ModelPath(corpusName string) string {
	return filepath.Join(p.outputDir, fmt.Sprintf("%s_ngram.gob", corpusName))
}

// ModelExists reports whether a saved model exists for a corpus
func (p *ModelPersistence) ModelExists(corpusName string) bool {
	_, err := os.Stat(p.ModelPath(corpusName))
	return err == nil
}

// Save writes a built model to disk
func (p *ModelPersistence) Save(m *Model, corpusName string) error {
	ser := &SerializableModel{
		Version:        modelFormatVersion,
		N:              m.N,
		CorpusName:     corpusName,
		CreatedAt:      time.Now(),
		SmootherName:   m.smoother.Name(),
		TotalTokens:    m.totalTokens,
		VocabularySize: m.vocabSize,
		BigramContexts: flattenDist(m.Bigram),
		NGramContexts:  flattenDist(m.NGram),
	}

	path := p.ModelPath(corpusName)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(ser); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	p.logger.Info("Saved n-gram model",
		zap.String("corpus", corpusName),
		zap.String("path", path),
		zap.Int("bigram_contexts", len(ser.BigramContexts)),
		zap.Int("ngram_contexts", len(ser.NGramContexts)),
	)
	return nil
}

// Load reads a saved model from disk and rebuilds its distributions with the
// given smoother (nil defaults to Laplace).
func (p *ModelPersistence) Load(corpusName string, smoother Smoother) (*Model, error) {
	if smoother == nil {
		smoother = NewAddKSmoother(1.0)
	}

	path := p.ModelPath(corpusName)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer file.Close()

	var ser SerializableModel
	if err := gob.NewDecoder(file).Decode(&ser); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if ser.Version != modelFormatVersion {
		return nil, fmt.Errorf("unsupported model format version: %s", ser.Version)
	}

	m := &Model{
		N:           ser.N,
		Bigram:      newConditionalDist(2, smoother),
		NGram:       newConditionalDist(ser.N, smoother),
		totalTokens: ser.TotalTokens,
		vocabSize:   ser.VocabularySize,
		smoother:    smoother,
	}
	for key, outcomes := range ser.BigramContexts {
		m.Bigram.restore(key, outcomes)
	}
	for key, outcomes := range ser.NGramContexts {
		m.NGram.restore(key, outcomes)
	}

	p.logger.Info("Loaded n-gram model",
		zap.String("corpus", corpusName),
		zap.String("path", path),
		zap.Int("n", m.N),
		zap.Time("created_at", ser.CreatedAt),
	)
	return m, nil
}

func flattenDist(d *ConditionalDist) map[string][]Outcome {
	flat := make(map[string][]Outcome, len(d.contexts))
	for key, ft := range d.contexts {
		flat[key] = ft.Outcomes
	}
	return flat
}
