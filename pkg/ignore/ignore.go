// Package ignore provides gitignore-style filtering of synced asset files using go-git
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DefaultPatterns are always applied: OS metadata files never belong in public/.
var DefaultPatterns = []string{".DS_Store", "Thumbs.db"}

// Matcher decides whether a path relative to the source root is excluded.
type Matcher struct {
	matcher  gitignore.Matcher
	patterns []string
}

// NewMatcher layers DefaultPatterns with the patterns of ignoreFile, read from
// root. A relative ignoreFile is resolved against root; a missing file only
// leaves the defaults in place.
func NewMatcher(root, ignoreFile string) (*Matcher, error) {
	lines := append([]string(nil), DefaultPatterns...)
	if ignoreFile != "" {
		dir, name := root, ignoreFile
		if filepath.IsAbs(ignoreFile) {
			dir, name = filepath.Split(ignoreFile)
		}
		extra, err := readIgnoreFile(osfs.New(dir), name)
		if err != nil {
			return nil, err
		}
		lines = append(lines, extra...)
	}
	return FromPatterns(lines), nil
}

// FromPatterns builds a matcher from gitignore-syntax lines.
func FromPatterns(lines []string) *Matcher {
	patterns := make([]gitignore.Pattern, 0, len(lines))
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
		kept = append(kept, line)
	}
	return &Matcher{matcher: gitignore.NewMatcher(patterns), patterns: kept}
}

func readIgnoreFile(fs billy.Filesystem, name string) ([]string, error) {
	data, err := util.ReadFile(fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ignore file %s: %w", name, err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

// Patterns returns the active patterns in evaluation order.
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

// IsIgnored checks a slash-separated path relative to the source root.
func (m *Matcher) IsIgnored(rel string) bool {
	if m == nil {
		return false
	}
	parts := splitPath(filepath.ToSlash(rel))
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, false)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
