package nlp

import (
	"sync"

	"resumescore/internal/config"
	apperrors "resumescore/internal/errors"
)

// Capabilities owns the process-wide NLP capability handles. Both are
// expensive to initialize, so each is created lazily on first use and
// shared for the life of the process. sync.Once guards concurrent first
// requests against redundant initialization.
type Capabilities struct {
	cfg      *config.Config
	observer Observer
	logger   *apperrors.Logger

	embedderOnce sync.Once
	embedder     Embedder
	embedderErr  error

	grammarOnce sync.Once
	grammar     GrammarBackend
}

// NewCapabilities creates the capability holder without initializing
// anything. The observer may be nil when call tracking is disabled.
func NewCapabilities(cfg *config.Config, observer Observer, logger *apperrors.Logger) *Capabilities {
	return &Capabilities{cfg: cfg, observer: observer, logger: logger}
}

// Embedder returns the shared embedding provider, initializing it on first call.
// A failed initialization is sticky: callers degrade to exact-match-only
// validation rather than retrying a broken provider per request.
func (c *Capabilities) Embedder() (Embedder, error) {
	c.embedderOnce.Do(func() {
		c.embedder, c.embedderErr = NewGeminiEmbedder(&c.cfg.AI, c.observer, c.logger)
		if c.embedderErr != nil {
			c.logger.Warn("Embedding provider unavailable, semantic matching disabled",
				"error", c.embedderErr.Error())
		} else {
			c.logger.Debug("Embedding provider initialized",
				"provider", c.cfg.AI.Provider,
				"model", c.cfg.AI.Model)
		}
	})
	return c.embedder, c.embedderErr
}

// Grammar returns the shared grammar backend, initializing it on first call.
// Returns nil when the backend is disabled in configuration.
func (c *Capabilities) Grammar() GrammarBackend {
	c.grammarOnce.Do(func() {
		if !c.cfg.Grammar.Enabled {
			c.logger.Debug("Grammar backend disabled in configuration")
			return
		}
		c.grammar = NewLanguageToolBackend(&c.cfg.Grammar, c.observer, c.logger)
		c.logger.Debug("Grammar backend initialized",
			"endpoint", c.cfg.Grammar.Endpoint,
			"language", c.cfg.Grammar.Language)
	})
	return c.grammar
}

// Close releases the capability handles at process shutdown
func (c *Capabilities) Close() error {
	if c.embedder != nil {
		return c.embedder.Close()
	}
	return nil
}
