package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "resumescore/internal/errors"
)

func testLogger(t testing.TB) *apperrors.Logger {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "John Doe\njohn@example.com\n\nEXPERIENCE\n- Built things\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	fp := NewFileProcessor(testLogger(t))
	text, err := fp.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != content {
		t.Errorf("text = %q, want %q", text, content)
	}
}

func TestReadTextMissingFile(t *testing.T) {
	fp := NewFileProcessor(testLogger(t))

	_, err := fp.ReadText(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("missing file should error")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
}

func TestReadTextDirectory(t *testing.T) {
	fp := NewFileProcessor(testLogger(t))

	if _, err := fp.ReadText(t.TempDir()); err == nil {
		t.Fatal("directory path should error")
	}
}

func TestReadTexts(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	jd := filepath.Join(dir, "jd.txt")
	if err := os.WriteFile(resume, []byte("resume text"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jd, []byte("jd text"), 0600); err != nil {
		t.Fatal(err)
	}

	fp := NewFileProcessor(testLogger(t))
	texts, err := fp.ReadTexts(resume, jd)
	if err != nil {
		t.Fatalf("ReadTexts failed: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("got %d texts, want 2", len(texts))
	}
	// Order follows the argument order
	if texts[0] != "resume text" || texts[1] != "jd text" {
		t.Errorf("texts = %v", texts)
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "report.json")

	fp := NewFileProcessor(testLogger(t))
	if err := fp.WriteFile(path, "{}"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("written file unreadable: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("content = %q", data)
	}
}

func TestValidateOutputFileStdout(t *testing.T) {
	fp := NewFileProcessor(testLogger(t))
	if err := fp.ValidateOutputFile(""); err != nil {
		t.Errorf("empty output file means stdout and should validate: %v", err)
	}
}

func TestHandleOutputToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	oh := NewOutputHandler(testLogger(t))
	err := oh.HandleOutput(map[string]string{"status": "ok"}, CommandConfig{
		OutputFile:   path,
		OutputFormat: "json",
	})
	if err != nil {
		t.Fatalf("HandleOutput failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output file unreadable: %v", err)
	}
	if len(data) == 0 {
		t.Error("output file is empty")
	}
}

func TestHandleOutputUnknownFormat(t *testing.T) {
	oh := NewOutputHandler(testLogger(t))
	err := oh.HandleOutput(map[string]string{}, CommandConfig{OutputFormat: "xml"})
	if err == nil {
		t.Fatal("unknown format should error")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
}
