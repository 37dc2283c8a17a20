package common

import (
	"fmt"
	"os"
	"path/filepath"

	"resumescore/internal/errors"
	"resumescore/internal/nlp"
	"resumescore/internal/utils"
)

// FileProcessor reads input documents and converts them to plain text
// through the configured extractor before any analysis sees them.
type FileProcessor struct {
	extractor nlp.TextExtractor
	logger    *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	return &FileProcessor{
		extractor: nlp.NewPlainTextExtractor(),
		logger:    logger,
	}
}

// ReadText reads a file and extracts its plain text content. The
// declared type comes from the file extension.
func (fp *FileProcessor) ReadText(filename string) (string, error) {
	if err := utils.ValidateInputFile(filename); err != nil {
		return "", errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	if !utils.IsTextFile(filename) {
		if fp.logger != nil {
			fp.logger.Warn("File may not be a text file", "filename", filename)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: %s may not be a text file\n", filename)
		}
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}

	text, err := fp.extractor.Extract(data, utils.DeclaredType(filename))
	if err != nil {
		return "", err
	}

	return text, nil
}

// ReadTexts reads and extracts multiple input files in order
func (fp *FileProcessor) ReadTexts(filenames ...string) ([]string, error) {
	texts := make([]string, len(filenames))
	for i, filename := range filenames {
		text, err := fp.ReadText(filename)
		if err != nil {
			return nil, err
		}
		texts[i] = text
	}
	return texts, nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
