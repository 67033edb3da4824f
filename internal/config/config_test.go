package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 9090
  model_dir: /tmp/models
generation:
  n: 4
  sentence_count: 5
corpora:
  - name: austen
    paths:
      - corpora/austen-emma.txt
mcp:
  host: 127.0.0.1
  port: 9091
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.App.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.App.Port)
	}
	if cfg.Generation.N != 4 {
		t.Errorf("Expected n 4, got %d", cfg.Generation.N)
	}
	if cfg.Generation.SentenceCount != 5 {
		t.Errorf("Expected sentence_count 5, got %d", cfg.Generation.SentenceCount)
	}
	if len(cfg.Corpora) != 1 || cfg.Corpora[0].Name != "austen" {
		t.Fatalf("Expected one corpus named 'austen', got %+v", cfg.Corpora)
	}
	if cfg.Mcp.GetAddress() != "127.0.0.1:9091" {
		t.Errorf("Expected MCP address '127.0.0.1:9091', got '%s'", cfg.Mcp.GetAddress())
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
corpora:
  - name: test
    paths: [test.txt]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Generation.N != 3 {
		t.Errorf("Expected default n 3, got %d", cfg.Generation.N)
	}
	if cfg.Generation.MaxAttempts != 100 {
		t.Errorf("Expected default max_attempts 100, got %d", cfg.Generation.MaxAttempts)
	}
	if cfg.Generation.MaxWords != 200 {
		t.Errorf("Expected default max_words 200, got %d", cfg.Generation.MaxWords)
	}
	if cfg.App.ModelDir != "./ngram_models" {
		t.Errorf("Expected default model dir './ngram_models', got '%s'", cfg.App.ModelDir)
	}
}

func TestLoadConfig_RejectsUnigram(t *testing.T) {
	path := writeConfig(t, `
generation:
  n: 1
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected error for n < 2, got nil")
	}
}

func TestGetCorpus(t *testing.T) {
	cfg := Config{
		Corpora: []Corpus{
			{Name: "bible", Paths: []string{"bible-kjv.txt"}},
			{Name: "austen", Paths: []string{"austen-emma.txt"}},
		},
	}

	corpus, err := cfg.GetCorpus("austen")
	if err != nil {
		t.Fatalf("GetCorpus failed: %v", err)
	}
	if corpus.Name != "austen" {
		t.Errorf("Expected corpus 'austen', got '%s'", corpus.Name)
	}

	first, err := cfg.GetCorpus("")
	if err != nil {
		t.Fatalf("GetCorpus with empty name failed: %v", err)
	}
	if first.Name != "bible" {
		t.Errorf("Expected first corpus 'bible', got '%s'", first.Name)
	}

	if _, err := cfg.GetCorpus("missing"); err == nil {
		t.Error("Expected error for unknown corpus, got nil")
	}
}
