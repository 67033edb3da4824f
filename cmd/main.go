package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"

	"github.com/srijan-y/Playing-with-Ngrams/internal/config"
	"github.com/srijan-y/Playing-with-Ngrams/internal/controller"
	"github.com/srijan-y/Playing-with-Ngrams/internal/handler"
	"github.com/srijan-y/Playing-with-Ngrams/internal/service"
	"github.com/srijan-y/Playing-with-Ngrams/internal/service/tokenizer"
	"github.com/srijan-y/Playing-with-Ngrams/pkg/mcp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var configPath = flag.String("config", "config.yaml", "Path to configuration file")
	var nValue = flag.Int("n", 0, "N-gram size (overrides config)")
	var count = flag.Int("count", 0, "Number of sentences to generate (overrides config)")
	var seed = flag.Int64("seed", 0, "Random seed, 0 means time-based (overrides config)")
	var corpusName = flag.String("corpus", "", "Named corpus from config (default: first)")
	var rebuild = flag.Bool("rebuild", false, "Rebuild the model even if a saved one exists")
	var serve = flag.Bool("serve", false, "Start the HTTP and MCP servers after training")
	flag.Parse()

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(zapcore.DebugLevel)
	cfgZap.OutputPaths = []string{"stderr", "ngrams.log"}
	logger, err := cfgZap.Build()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Command-line overrides
	if *nValue != 0 {
		cfg.Generation.N = *nValue
	}
	if *count != 0 {
		cfg.Generation.SentenceCount = *count
	}
	if *seed != 0 {
		cfg.Generation.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	corpus, err := cfg.GetCorpus(*corpusName)
	if err != nil {
		logger.Fatal("Failed to select corpus", zap.Error(err))
	}

	fmt.Println("This program generates random sentences based on an N-gram model.")
	fmt.Printf("Settings: n=%d count=%d corpus=%s\n\n", cfg.Generation.N, cfg.Generation.SentenceCount, corpus.Name)

	model, err := trainModel(cfg, corpus, *rebuild, logger)
	if err != nil {
		logger.Fatal("Failed to train model", zap.Error(err))
	}

	var rng *rand.Rand
	if cfg.Generation.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Generation.Seed))
	}
	generator := service.NewGeneratorWithLimits(model, rng, cfg.Generation.MaxWords, 0, logger)

	requested := cfg.Generation.SentenceCount
	sentences, err := generator.Sentences(requested, cfg.Generation.MaxAttempts*requested)
	if err != nil {
		logger.Warn("Generation stopped early", zap.Int("produced", len(sentences)), zap.Error(err))
	}
	for _, sentence := range sentences {
		fmt.Println(sentence)
		fmt.Println()
	}

	if !*serve {
		return
	}

	generateController := controller.NewGenerateController(model, cfg.Generation, logger)
	mcpServer := mcp.NewSentenceServer(model, cfg, logger)
	router := handler.SetupRouter(generateController, mcpServer, logger)

	logger.Info("Starting server", zap.Int("port", cfg.App.Port))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), router); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// trainModel loads a saved model for the corpus when one exists and matches
// the configured n; otherwise it reads the corpus, tokenizes it, builds the
// model, and saves the result for the next run.
func trainModel(cfg *config.Config, corpus *config.Corpus, rebuild bool, logger *zap.Logger) (*service.Model, error) {
	persistence, err := service.NewModelPersistence(cfg.App.ModelDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create persistence: %w", err)
	}

	smoother := service.NewAddKSmoother(1.0)

	if !rebuild && persistence.ModelExists(corpus.Name) {
		model, err := persistence.Load(corpus.Name, smoother)
		if err == nil && model.N == cfg.Generation.N {
			return model, nil
		}
		if err != nil {
			logger.Warn("Failed to load saved model, rebuilding", zap.Error(err))
		} else {
			logger.Info("Saved model has different n, rebuilding",
				zap.Int("saved_n", model.N),
				zap.Int("requested_n", cfg.Generation.N))
		}
	}

	loader := service.NewCorpusLoader(cfg.App.NumFileThreads, logger)
	texts, err := loader.Load(corpus.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	tok := tokenizer.NewCorpusTokenizer(logger)
	tokens, err := tok.Tokenize(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize corpus: %w", err)
	}

	model, err := service.BuildModel(tokens, cfg.Generation.N, smoother)
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}

	logger.Info("Model built",
		zap.String("corpus", corpus.Name),
		zap.Int("tokens", len(tokens)),
		zap.Int("n", cfg.Generation.N))

	if err := persistence.Save(model, corpus.Name); err != nil {
		logger.Error("Failed to save model", zap.Error(err))
	}

	return model, nil
}
