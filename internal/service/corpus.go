package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/srijan-y/Playing-with-Ngrams/internal/util"
	"go.uber.org/zap"
)

// CorpusLoader reads corpus texts from configured paths. A path may name a
// single text file or a directory, in which case the directory is walked
// concurrently and every .txt file contributes.
type CorpusLoader struct {
	numThreads int
	logger     *zap.Logger
}

// NewCorpusLoader creates a new corpus loader
func NewCorpusLoader(numThreads int, logger *zap.Logger) *CorpusLoader {
	if numThreads < 1 {
		numThreads = 2
	}
	return &CorpusLoader{numThreads: numThreads, logger: logger}
}

// Load reads every configured path in order and returns the raw texts.
// Unreadable files inside a directory are logged and skipped; an explicitly
// named file that cannot be read is an error.
func (cl *CorpusLoader) Load(paths []string) ([]string, error) {
	var texts []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat corpus path: %w", err)
		}

		if info.IsDir() {
			dirTexts, err := cl.loadDir(path)
			if err != nil {
				return nil, err
			}
			texts = append(texts, dirTexts...)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus file: %w", err)
		}
		cl.logger.Debug("Loaded corpus file",
			zap.String("path", path),
			zap.Int("bytes", len(content)),
		)
		texts = append(texts, string(content))
	}
	return texts, nil
}

// loadDir walks a directory concurrently and collects its .txt files. Results
// are sorted by path so that the assembled corpus, and therefore the built
// model, does not depend on walk scheduling.
func (cl *CorpusLoader) loadDir(dir string) ([]string, error) {
	type entry struct {
		path string
		text string
	}

	var mu sync.Mutex
	var entries []entry

	err := util.WalkDirTree(dir,
		func(path string, err error) error {
			if err != nil {
				return err
			}
			if strings.ToLower(filepath.Ext(path)) != ".txt" {
				return nil
			}

			content, err := os.ReadFile(path)
			if err != nil {
				cl.logger.Warn("Skipping unreadable corpus file",
					zap.String("path", path),
					zap.Error(err),
				)
				return nil
			}

			mu.Lock()
			entries = append(entries, entry{path: path, text: string(content)})
			mu.Unlock()
			return nil
		},
		func(path string, isDir bool) bool {
			return isDir && filepath.Base(path) == ".git"
		},
		cl.logger,
		cl.numThreads,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to walk corpus directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.text)
	}

	cl.logger.Info("Loaded corpus directory",
		zap.String("dir", dir),
		zap.Int("files", len(texts)),
	)
	return texts, nil
}
