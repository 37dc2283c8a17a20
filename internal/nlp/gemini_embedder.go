package nlp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"resumescore/internal/config"
	apperrors "resumescore/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiEmbedder implements Embedder using the Gemini embedding API
type GeminiEmbedder struct {
	client   *genai.Client
	config   *config.AIConfig
	breaker  *Breaker[*genai.EmbedContentResponse]
	observer Observer
	logger   *apperrors.Logger
}

// Ensure GeminiEmbedder implements Embedder
var _ Embedder = (*GeminiEmbedder)(nil)

// NewGeminiEmbedder creates a new Gemini embedding provider
func NewGeminiEmbedder(cfg *config.AIConfig, observer Observer, logger *apperrors.Logger) (*GeminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewNLPError(apperrors.ErrCodeMissingAPIKey,
			"Gemini API key is required for semantic validation", nil)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, apperrors.NewNLPError(apperrors.ErrCodeEmbeddingFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiEmbedder{
		client:   client,
		config:   cfg,
		breaker:  NewBreaker[*genai.EmbedContentResponse]("Embedding", cfg.CircuitBreaker, logger),
		observer: observer,
		logger:   logger,
	}, nil
}

// Embed returns the embedding vector for the given text
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	tracer := otel.Tracer("resumescore.nlp.gemini")
	ctx, span := tracer.Start(ctx, "gemini.embed")
	defer span.End()

	span.SetAttributes(
		attribute.String("nlp.provider", "gemini"),
		attribute.String("nlp.model", g.config.Model),
		attribute.Int("nlp.text_length", len(text)),
	)

	callCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	start := time.Now()
	result, err := g.breaker.Execute(func() (*genai.EmbedContentResponse, error) {
		return g.embedWithRetry(callCtx, text)
	})
	g.observer.observe(ctx, "embed", err, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apperrors.NewNLPError(apperrors.ErrCodeEmbeddingFailed,
			"Failed to embed text", err)
	}

	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apperrors.NewNLPError(apperrors.ErrCodeEmbeddingFailed,
			"Embedding response contained no vector", nil)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("nlp.vector_length", len(result.Embeddings[0].Values)),
	)
	return result.Embeddings[0].Values, nil
}

// embedWithRetry executes the embedding call with retry logic and exponential backoff
func (g *GeminiEmbedder) embedWithRetry(ctx context.Context, text string) (*genai.EmbedContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying embedding request",
				"attempt", attempt,
				"max_retries", g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := g.client.Models.EmbedContent(ctx, g.config.Model,
			genai.Text(text), &genai.EmbedContentConfig{})
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			g.logger.Debug("Embedding error is not retryable, stopping retry attempts",
				"error", err.Error())
			break
		}
	}

	return nil, fmt.Errorf("embedding failed after %d retries: %w", g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection issues) are retryable
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Google API errors with transient HTTP status codes
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusRequestTimeout,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// IsHealthy reports whether the embedding circuit breaker is closed
func (g *GeminiEmbedder) IsHealthy() bool {
	return g.breaker.IsHealthy()
}

// Close implements Embedder
func (g *GeminiEmbedder) Close() error {
	// The genai client holds no resources that need explicit release
	return nil
}
