package nlp

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	apperrors "resumescore/internal/errors"
)

// PlainTextExtractor implements TextExtractor for text-based formats.
// Binary document formats are rejected before the pipeline boundary.
type PlainTextExtractor struct{}

var _ TextExtractor = (*PlainTextExtractor)(nil)

// NewPlainTextExtractor creates a plain text extractor
func NewPlainTextExtractor() PlainTextExtractor {
	return PlainTextExtractor{}
}

// Extract decodes file bytes into plain text
func (PlainTextExtractor) Extract(data []byte, declaredType string) (string, error) {
	switch declaredType {
	case "txt", "text", "md", "markdown", "":
	default:
		return "", apperrors.NewValidationError(apperrors.ErrCodeTextExtraction,
			fmt.Sprintf("Unsupported document type: %s", declaredType), nil)
	}

	if !utf8.Valid(data) {
		return "", apperrors.NewValidationError(apperrors.ErrCodeTextExtraction,
			"File content is not valid UTF-8 text", nil)
	}
	if bytes.ContainsRune(data, 0) {
		return "", apperrors.NewValidationError(apperrors.ErrCodeTextExtraction,
			"File content appears to be binary", nil)
	}

	return string(data), nil
}
