package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// AppConfig holds process-level settings.
type AppConfig struct {
	Port           int    `yaml:"port"`
	ModelDir       string `yaml:"model_dir"`
	NumFileThreads int    `yaml:"num_file_threads"`
}

// GenerationConfig holds the model and sampling settings passed into the
// build and generate entry points. Core components never read process-wide
// state; everything arrives through this record.
type GenerationConfig struct {
	N             int   `yaml:"n"`
	SentenceCount int   `yaml:"sentence_count"`
	MaxAttempts   int   `yaml:"max_attempts"` // per requested sentence
	MaxWords      int   `yaml:"max_words"`
	Seed          int64 `yaml:"seed"` // 0 means time-based
}

// Corpus names an ordered set of text sources.
type Corpus struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"`
}

// McpConfig holds the MCP server listen address.
type McpConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GetAddress returns the host:port address for the MCP server
func (m McpConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// Config is the root configuration record.
type Config struct {
	App        AppConfig        `yaml:"app"`
	Generation GenerationConfig `yaml:"generation"`
	Corpora    []Corpus         `yaml:"corpora"`
	Mcp        McpConfig        `yaml:"mcp"`
}

// LoadConfig reads and validates a YAML configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.App.ModelDir == "" {
		c.App.ModelDir = "./ngram_models"
	}
	if c.App.NumFileThreads == 0 {
		c.App.NumFileThreads = 2
	}
	if c.Generation.N == 0 {
		c.Generation.N = 3
	}
	if c.Generation.SentenceCount == 0 {
		c.Generation.SentenceCount = 10
	}
	if c.Generation.MaxAttempts == 0 {
		c.Generation.MaxAttempts = 100
	}
	if c.Generation.MaxWords == 0 {
		c.Generation.MaxWords = 200
	}
	if c.Mcp.Host == "" {
		c.Mcp.Host = "localhost"
	}
	if c.Mcp.Port == 0 {
		c.Mcp.Port = 8081
	}
}

// Validate checks the configuration for values the core components reject.
func (c *Config) Validate() error {
	if c.Generation.N < 2 {
		return fmt.Errorf("generation.n must be at least 2, got %d", c.Generation.N)
	}
	if c.Generation.SentenceCount < 0 {
		return fmt.Errorf("generation.sentence_count must not be negative, got %d", c.Generation.SentenceCount)
	}
	return nil
}

// GetCorpus returns the named corpus, or the first one when name is empty.
func (c *Config) GetCorpus(name string) (*Corpus, error) {
	if name == "" {
		if len(c.Corpora) == 0 {
			return nil, fmt.Errorf("no corpora configured")
		}
		return &c.Corpora[0], nil
	}
	for i := range c.Corpora {
		if c.Corpora[i].Name == name {
			return &c.Corpora[i], nil
		}
	}
	return nil, fmt.Errorf("no corpus found with name: %s", name)
}
