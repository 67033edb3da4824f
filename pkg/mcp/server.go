package mcp

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/srijan-y/Playing-with-Ngrams/internal/config"
	"github.com/srijan-y/Playing-with-Ngrams/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// SentenceServer exposes sentence generation as MCP tools. The model is
// shared read-only; every tool call builds its own generator.
type SentenceServer struct {
	server  *mcp.Server
	model   *service.Model
	config  *config.Config
	logger  *zap.Logger
	handler *mcp.StreamableHTTPHandler
}

type GenerateParams struct {
	Count int `json:"count,omitempty" jsonschema:"number of sentences to generate"`
}

type StatsParams struct{}

func NewSentenceServer(model *service.Model, cfg *config.Config, logger *zap.Logger) *SentenceServer {
	server := &SentenceServer{
		model:  model,
		config: cfg,
		logger: logger,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "NgramSentences",
		Version: "1.0.0",
	}, nil)

	// Register the generateSentences tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "generateSentences",
		Description: "Generate random sentences from the trained n-gram language model. Returns one sentence per line.",
	}, server.handleGenerate)

	// Register the getModelStats tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "getModelStats",
		Description: "Report statistics about the trained n-gram model: n, vocabulary size, context counts, total tokens.",
	}, server.handleStats)

	server.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	server.server = mcpServer
	return server
}

func (s *SentenceServer) handleGenerate(ctx context.Context, req *mcp.CallToolRequest, args GenerateParams) (*mcp.CallToolResult, any, error) {
	count := args.Count
	if count <= 0 {
		count = s.config.Generation.SentenceCount
	}
	s.logger.Info("Handling generateSentences request", zap.Int("count", count))

	generator := service.NewGeneratorWithLimits(s.model, nil, s.config.Generation.MaxWords, 0, s.logger)
	sentences, err := generator.Sentences(count, s.config.Generation.MaxAttempts*count)
	if err != nil && len(sentences) == 0 {
		s.logger.Error("Failed to generate sentences", zap.Error(err))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Failed to generate sentences: %v", err)}},
		}, nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: strings.Join(sentences, "\n")}},
	}, nil, nil
}

func (s *SentenceServer) handleStats(ctx context.Context, req *mcp.CallToolRequest, args StatsParams) (*mcp.CallToolResult, any, error) {
	stats := s.model.Stats()
	s.logger.Info("Handling getModelStats request")

	text := fmt.Sprintf(
		"n: %d\nvocabulary size: %d\nbigram contexts: %d\nn-gram contexts: %d\ntotal tokens: %d\nsmoother: %s",
		stats.N, stats.VocabularySize, stats.BigramContexts, stats.NGramContexts, stats.TotalTokens, stats.SmootherName,
	)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// SetupHTTPRoutes starts the MCP listener on the configured address.
func (s *SentenceServer) SetupHTTPRoutes(router *gin.Engine) {
	go func() {
		address := s.config.Mcp.GetAddress()
		log.Printf("MCP Server going to listen on %s", address)
		if err := http.ListenAndServe(address, s.handler); err != nil {
			log.Fatalf("MCP Server failed: %v", err)
		}
	}()
}
