package grammar

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAllowlistBuiltins(t *testing.T) {
	allowlist := testAllowlist(t)
	defer func() { _ = allowlist.Close() }()

	tests := []struct {
		span     string
		expected bool
	}{
		{"Kubernetes", true},
		{"kubernetes", true},
		{"  PostgreSQL  ", true},
		{"JavaScript", true},
		{"Terraform", true},
		{"definately", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			if got := allowlist.Contains(tt.span); got != tt.expected {
				t.Errorf("Contains(%q) = %v, want %v", tt.span, got, tt.expected)
			}
		})
	}
}

func TestAllowlistFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allowlist.txt")
	content := "# custom team terms\nOurFramework\n\n  internaltool  \n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write allowlist file: %v", err)
	}

	allowlist, err := NewAllowlist(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewAllowlist returned error: %v", err)
	}
	defer func() { _ = allowlist.Close() }()

	if !allowlist.Contains("ourframework") {
		t.Error("file term should be allowed")
	}
	if !allowlist.Contains("internaltool") {
		t.Error("whitespace-trimmed file term should be allowed")
	}
	if allowlist.Contains("# custom team terms") {
		t.Error("comment lines must not become terms")
	}
	if !allowlist.Contains("Docker") {
		t.Error("built-in terms should survive file loading")
	}
}

func TestAllowlistMissingFile(t *testing.T) {
	allowlist, err := NewAllowlist(filepath.Join(t.TempDir(), "missing.txt"), testLogger(t))
	if err != nil {
		t.Fatalf("a missing allowlist file should not be fatal: %v", err)
	}
	defer func() { _ = allowlist.Close() }()

	if allowlist.Len() == 0 {
		t.Error("built-in terms should still load when the file is missing")
	}
}
