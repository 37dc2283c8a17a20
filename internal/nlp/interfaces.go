package nlp

import "context"

// Embedder produces a fixed-length float vector for a text span.
// Implementations must be deterministic: identical input text yields an
// identical vector, so cosine comparisons are stable across calls.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}

// RawFinding is one uncategorized issue reported by a grammar backend.
// Offset and Length address the flagged span in the original text.
type RawFinding struct {
	Message     string
	RuleID      string
	Offset      int
	Length      int
	Suggestions []string
}

// GrammarBackend checks text and returns raw findings.
type GrammarBackend interface {
	Check(ctx context.Context, text string) ([]RawFinding, error)
}

// Observer is notified after each outbound NLP call with its outcome
// and duration in seconds. A nil Observer disables call tracking.
type Observer func(ctx context.Context, operation string, err error, seconds float64)

func (o Observer) observe(ctx context.Context, operation string, err error, seconds float64) {
	if o != nil {
		o(ctx, operation, err, seconds)
	}
}

// TextExtractor converts file bytes of a declared type into plain text.
// The analysis pipeline only ever receives plain text; anything that
// cannot be decoded is rejected here with a typed error.
type TextExtractor interface {
	Extract(data []byte, declaredType string) (string, error)
}
