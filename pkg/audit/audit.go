// Package audit checks every project folder's metadata, document and assets
// and collects human-readable issues. Issues are values, not errors: one broken
// project never stops the scan.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fulmenhq/folio/pkg/content"
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/fulmenhq/folio/pkg/safeio"
	"github.com/fulmenhq/folio/pkg/schema"
)

// ProjectReport lists the issues of one project folder.
type ProjectReport struct {
	Category string   `json:"category"`
	Slug     string   `json:"slug"`
	Issues   []string `json:"issues"`
}

// ID is the "<category>/<slug>" label.
func (p ProjectReport) ID() string { return p.Category + "/" + p.Slug }

// CategoryStat counts projects per category folder.
type CategoryStat struct {
	Name       string `json:"name"`
	Projects   int    `json:"projects"`
	WithIssues int    `json:"with_issues"`
}

// Report is the outcome of a full scan.
type Report struct {
	ProjectsDir string          `json:"projects_dir"`
	Total       int             `json:"total"`
	WithIssues  int             `json:"with_issues"`
	Categories  []CategoryStat  `json:"categories"`
	Projects    []ProjectReport `json:"projects"`
}

// Clean reports whether no project has issues.
func (r *Report) Clean() bool { return r.WithIssues == 0 }

// Run scans every directory under layout.ProjectsDir (sorted) as a category
// and every directory below it as a project. Only projects with issues are
// kept in Report.Projects. A missing projects directory is the sole error.
func Run(layout content.Layout) (*Report, error) {
	if !safeio.IsDir(layout.ProjectsDir) {
		return nil, fmt.Errorf("projects directory not found: %s", layout.ProjectsDir)
	}

	categories, err := content.SubDirs(layout.ProjectsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	sort.Strings(categories)
	logger.Debug("Auditing projects", logger.String("dir", layout.ProjectsDir), logger.Int("categories", len(categories)))

	report := &Report{
		ProjectsDir: layout.ProjectsDir,
		Categories:  []CategoryStat{},
		Projects:    []ProjectReport{},
	}
	for _, category := range categories {
		projects, err := content.ProjectsIn(filepath.Join(layout.ProjectsDir, category), category, false)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects in %s: %w", category, err)
		}
		stat := CategoryStat{Name: category}
		for _, p := range projects {
			stat.Projects++
			issues := CheckProject(layout, p)
			if len(issues) == 0 {
				continue
			}
			stat.WithIssues++
			report.Projects = append(report.Projects, ProjectReport{
				Category: p.Category,
				Slug:     p.Slug,
				Issues:   issues,
			})
		}
		report.Total += stat.Projects
		report.WithIssues += stat.WithIssues
		report.Categories = append(report.Categories, stat)
	}
	return report, nil
}

// CheckProject runs the per-project checks in order. Only a missing or
// unparseable meta.json stops the remaining checks.
func CheckProject(layout content.Layout, p content.Project) []string {
	issues := []string{}

	if !safeio.IsFile(p.DocumentPath()) {
		issues = append(issues, "Missing "+content.DocumentFile)
	}

	if _, err := os.Stat(p.MetaPath()); err != nil {
		return append(issues, "Missing "+content.MetaFile)
	}

	data, err := safeio.ReadFileContained(layout.ProjectsDir, p.MetaPath())
	if err != nil {
		return append(issues, fmt.Sprintf("%s invalid JSON: %v", content.MetaFile, err))
	}
	meta, err := content.ParseMeta(data)
	if err != nil {
		return append(issues, fmt.Sprintf("%s invalid JSON: %v", content.MetaFile, err))
	}

	issues = append(issues, fieldIssues(p, data)...)

	if v, ok := meta.Get("slug"); ok && !equalString(v, p.Slug) {
		issues = append(issues, fmt.Sprintf("slug mismatch: meta.slug='%s' folder='%s'", display(v), p.Slug))
	}

	if !layout.AllowsCategory(p.Category) {
		issues = append(issues, "Unknown category folder: "+p.Category)
	}
	if v, ok := meta.Get("category"); ok {
		if !equalString(v, p.Category) {
			issues = append(issues, fmt.Sprintf("category mismatch: meta.category='%s' parent='%s'", display(v), p.Category))
		}
		if s, isString := v.(string); !isString || !layout.AllowsCategory(s) {
			issues = append(issues, "meta.category not allowed: "+display(v))
		}
	}

	assetsDir := p.AssetsPath()
	if !safeio.IsDir(assetsDir) {
		return append(issues, "Missing assets/ directory")
	}

	if hero, ok := meta.String("hero"); ok {
		if _, err := os.Stat(filepath.Join(assetsDir, hero)); err != nil {
			issues = append(issues, "hero file missing: assets/"+hero)
		}
	}

	files, err := content.ListFiles(assetsDir)
	if err != nil {
		logger.Warn("Failed to list assets", logger.String("project", p.ID()), logger.Err(err))
		return issues
	}
	for _, name := range files {
		if content.IsGalleryTypo(name) {
			issues = append(issues, fmt.Sprintf("typo asset name: '%s' (use 'gallery-')", name))
		}
	}
	return issues
}

// fieldIssues checks meta.json against the embedded meta schema.
func fieldIssues(p content.Project, data []byte) []string {
	v, err := schema.MetaValidator()
	if err != nil {
		logger.Error("Meta schema unavailable", logger.Err(err))
		return nil
	}
	problems, err := v.CheckFields(data)
	if err != nil {
		logger.Warn("Meta schema check failed", logger.String("project", p.ID()), logger.Err(err))
		return nil
	}
	var issues []string
	for _, prob := range problems {
		if prob.Missing {
			issues = append(issues, "Missing field: "+prob.Field)
			continue
		}
		issues = append(issues, fmt.Sprintf("Field type wrong: %s expected %s, got %s", prob.Field, prob.Expected, prob.Got))
	}
	return issues
}

func equalString(v any, want string) bool {
	s, ok := v.(string)
	return ok && s == want
}

// display renders a metadata value the way it appears in the file.
func display(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
