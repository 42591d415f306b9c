package ignore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewMatcherLayersIgnoreFile(t *testing.T) {
	root := t.TempDir()
	content := `# design sources stay private
*.psd
drafts/
!keep.psd
`
	if err := os.WriteFile(filepath.Join(root, ".folioignore"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write .folioignore: %v", err)
	}

	matcher, err := NewMatcher(root, ".folioignore")
	if err != nil {
		t.Fatalf("Failed to create matcher: %v", err)
	}

	tests := []struct {
		path     string
		expected bool
	}{
		{"hci/touch/assets/hero.png", false},
		{"hci/touch/assets/hero.psd", true},
		{"hci/touch/assets/keep.psd", false},
		{"hci/touch/assets/drafts/sketch.png", true},
		{"hci/touch/assets/.DS_Store", true},
		{"hci/touch/assets/sub/Thumbs.db", true},
	}
	for _, tt := range tests {
		if got := matcher.IsIgnored(tt.path); got != tt.expected {
			t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestNewMatcherMissingFile(t *testing.T) {
	matcher, err := NewMatcher(t.TempDir(), ".folioignore")
	if err != nil {
		t.Fatalf("missing ignore file should not fail: %v", err)
	}
	if !reflect.DeepEqual(matcher.Patterns(), DefaultPatterns) {
		t.Errorf("Patterns() = %v, want defaults %v", matcher.Patterns(), DefaultPatterns)
	}
	if matcher.IsIgnored("a/b/assets/hero.png") {
		t.Error("plain asset should not be ignored")
	}
}

func TestNewMatcherAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.ignore")
	if err := os.WriteFile(file, []byte("*.tmp\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	matcher, err := NewMatcher(t.TempDir(), file)
	if err != nil {
		t.Fatalf("Failed to create matcher: %v", err)
	}
	if !matcher.IsIgnored("x/y/assets/upload.tmp") {
		t.Error("expected *.tmp to be ignored")
	}
}

func TestNilMatcherIgnoresNothing(t *testing.T) {
	var m *Matcher
	if m.IsIgnored("a.png") {
		t.Error("nil matcher should not ignore")
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{}},
		{".", []string{}},
		{"/a/b", []string{"a", "b"}},
		{"a//b/./c", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if got := splitPath(tt.input); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("splitPath(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
