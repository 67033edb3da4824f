package controller

import (
	"errors"
	"net/http"

	"github.com/srijan-y/Playing-with-Ngrams/internal/config"
	"github.com/srijan-y/Playing-with-Ngrams/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateController serves sentence generation over HTTP. The model is
// shared read-only; every request gets its own generator and randomness
// source, so concurrent requests never share mutable state.
type GenerateController struct {
	model  *service.Model
	gencfg config.GenerationConfig
	logger *zap.Logger
}

func NewGenerateController(model *service.Model, gencfg config.GenerationConfig, logger *zap.Logger) *GenerateController {
	return &GenerateController{
		model:  model,
		gencfg: gencfg,
		logger: logger,
	}
}

type GenerateRequest struct {
	Count int `json:"count"`
}

type GenerateResponse struct {
	RequestID string   `json:"request_id"`
	Sentences []string `json:"sentences"`
}

func (gc *GenerateController) Generate(c *gin.Context) {
	var request GenerateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		gc.logger.Error("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	count := request.Count
	if count <= 0 {
		count = gc.gencfg.SentenceCount
	}

	requestID := uuid.NewString()
	gc.logger.Info("Generating sentences",
		zap.String("request_id", requestID),
		zap.Int("count", count),
	)

	generator := service.NewGeneratorWithLimits(gc.model, nil, gc.gencfg.MaxWords, 0, gc.logger)
	sentences, err := generator.Sentences(count, gc.gencfg.MaxAttempts*count)
	if err != nil && !errors.Is(err, service.ErrGenerationExhausted) {
		gc.logger.Error("Failed to generate sentences",
			zap.String("request_id", requestID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate sentences",
			"details": err.Error(),
		})
		return
	}
	if err != nil {
		// Partial results are still worth returning.
		gc.logger.Warn("Generation budget exhausted",
			zap.String("request_id", requestID),
			zap.Int("produced", len(sentences)),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, GenerateResponse{
		RequestID: requestID,
		Sentences: sentences,
	})
}

func (gc *GenerateController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gc.model.Stats())
}
