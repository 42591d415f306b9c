package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fulmenhq/folio/pkg/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MetaFile     = "meta.json"
	DocumentFile = "index.mdx"
	AssetsDir    = "assets"
)

// Layout holds the absolute locations every command works against.
type Layout struct {
	Root              string
	ContentDir        string
	ProjectsDir       string
	PublicDir         string
	PublicProjectsDir string
	IndexFile         string
	Categories        []string
	AssetExtensions   []string
}

// NewLayout resolves cfg against the repository root. Relative config paths
// are anchored at root, absolute ones are kept.
func NewLayout(root string, cfg *config.Config) (Layout, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	contentDir := anchor(absRoot, cfg.ContentDir)
	publicDir := anchor(absRoot, cfg.PublicDir)
	return Layout{
		Root:              absRoot,
		ContentDir:        contentDir,
		ProjectsDir:       anchor(contentDir, cfg.ProjectsDir),
		PublicDir:         publicDir,
		PublicProjectsDir: anchor(publicDir, cfg.ProjectsDir),
		IndexFile:         anchor(contentDir, cfg.IndexFile),
		Categories:        append([]string(nil), cfg.Categories...),
		AssetExtensions:   append([]string(nil), cfg.AssetExtensions...),
	}, nil
}

func anchor(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// AllowsCategory reports whether name is a configured category.
func (l Layout) AllowsCategory(name string) bool {
	for _, c := range l.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Rel returns target relative to base with forward slashes, or target itself
// when no relative form exists.
func Rel(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// Project identifies one project folder.
type Project struct {
	Category string
	Slug     string
	Dir      string
}

func (p Project) MetaPath() string     { return filepath.Join(p.Dir, MetaFile) }
func (p Project) DocumentPath() string { return filepath.Join(p.Dir, DocumentFile) }
func (p Project) AssetsPath() string   { return filepath.Join(p.Dir, AssetsDir) }

// ID is the "<category>/<slug>" label used in reports.
func (p Project) ID() string { return p.Category + "/" + p.Slug }

// SubDirs lists the names of the directories directly under dir.
func SubDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if isDirEntry(dir, e) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// isDirEntry follows symlinks so linked project folders are still visited.
func isDirEntry(parent string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink != 0 {
		st, err := os.Stat(filepath.Join(parent, e.Name()))
		return err == nil && st.IsDir()
	}
	return false
}

// SortFold orders names case-insensitively, breaking ties on the raw name so
// the result never depends on directory read order.
func SortFold(names []string) {
	lower := cases.Lower(language.Und)
	keys := make(map[string]string, len(names))
	for _, n := range names {
		keys[n] = lower.String(n)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ki, kj := keys[names[i]], keys[names[j]]
		if ki != kj {
			return ki < kj
		}
		return names[i] < names[j]
	})
}

// FoldEqualPrefix reports whether name starts with prefix ignoring case.
func FoldEqualPrefix(name, prefix string) bool {
	lower := cases.Lower(language.Und)
	return strings.HasPrefix(lower.String(name), lower.String(prefix))
}

// ProjectsIn returns the project folders of one category directory.
// When fold is true the order is case-insensitive, otherwise byte order.
func ProjectsIn(categoryDir, category string, fold bool) ([]Project, error) {
	names, err := SubDirs(categoryDir)
	if err != nil {
		return nil, err
	}
	if fold {
		SortFold(names)
	} else {
		sort.Strings(names)
	}
	projects := make([]Project, 0, len(names))
	for _, n := range names {
		projects = append(projects, Project{
			Category: category,
			Slug:     n,
			Dir:      filepath.Join(categoryDir, n),
		})
	}
	return projects, nil
}
