package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fulmenhq/folio/pkg/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditText(t *testing.T) {
	root := newSite(t)
	out, err := execRoot(t, []string{"--root", root, "audit"})
	require.NoError(t, err, "issues alone do not fail the command")

	assert.Contains(t, out, "[architecture/tower]")
	assert.Contains(t, out, "  - Missing index.mdx\n")
	assert.Contains(t, out, "  - slug mismatch: meta.slug='Tower' folder='tower'\n")
	assert.Contains(t, out, "  - typo asset name: 'galleray-2.jpg' (use 'gallery-')\n")
	assert.NotContains(t, out, "[hci/touch]")
	assert.Contains(t, out, "Checked 2 projects, 1 with issues.")
}

func TestAuditFailOnIssues(t *testing.T) {
	root := newSite(t)
	_, err := execRoot(t, []string{"--root", root, "audit", "--fail-on-issues"})
	require.Error(t, err)
	assert.Equal(t, exitcode.ValidationError, exitcode.From(err))
}

func TestAuditJSONToFile(t *testing.T) {
	root := newSite(t)
	_, err := execRoot(t, []string{"--root", root, "audit", "--format", "json", "--output", "reports/audit.json"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "reports", "audit.json"))
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	assert.EqualValues(t, 2, report["total"])
	assert.EqualValues(t, 1, report["with_issues"])
}

func TestAuditBadFormat(t *testing.T) {
	_, err := execRoot(t, []string{"--root", newSite(t), "audit", "--format", "html"})
	require.Error(t, err)
	assert.Equal(t, exitcode.GeneralError, exitcode.From(err))
}

func TestAuditMissingProjectsDir(t *testing.T) {
	_, err := execRoot(t, []string{"--root", t.TempDir(), "audit"})
	require.Error(t, err)
	assert.Equal(t, exitcode.FileSystemError, exitcode.From(err))
}

func TestIndexWritesSortedFile(t *testing.T) {
	root := newSite(t)
	out, err := execRoot(t, []string{"--root", root, "index", "--check"})
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 projects to: content/projects_index.json")

	first, err := os.ReadFile(filepath.Join(root, "content", "projects_index.json"))
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(first, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "touch", records[0]["slug"], "featured projects come first")
	assert.Equal(t, "/projects/hci/touch/hero.png", records[0]["heroUrl"])
	assert.Equal(t, "tower", records[1]["slug"])

	_, err = execRoot(t, []string{"--root", root, "index"})
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(root, "content", "projects_index.json"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIndexCustomOutput(t *testing.T) {
	root := newSite(t)
	_, err := execRoot(t, []string{"--root", root, "index", "-o", "build/index.json"})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "build", "index.json"))
	assert.NoError(t, err)
}

func TestIndexCheckRejectsInvalidRecords(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, "content", "projects", "hci", "touch", "meta.json"), `{"title": 42, "hero": "hero.png"}`)
	_, err := execRoot(t, []string{"--root", root, "index", "--check"})
	require.Error(t, err)
	assert.Equal(t, exitcode.ValidationError, exitcode.From(err))
	_, statErr := os.Stat(filepath.Join(root, "content", "projects_index.json"))
	assert.True(t, os.IsNotExist(statErr), "an invalid index is not written")
}

func TestSyncRoundTrip(t *testing.T) {
	root := newSite(t)
	out, err := execRoot(t, []string{"--root", root, "sync"})
	require.NoError(t, err)
	assert.Contains(t, out, "Copied:   3\n")
	assert.Contains(t, out, "Skipped:  0\n")

	out, err = execRoot(t, []string{"--root", root, "sync"})
	require.NoError(t, err)
	assert.Contains(t, out, "Copied:   0\n")
	assert.Contains(t, out, "Skipped:  3\n")

	extra := filepath.Join(root, "public", "projects", "hci", "touch", "stale.png")
	writeFile(t, extra, "old")

	out, err = execRoot(t, []string{"--root", root, "sync", "--clean", "--dry-run"})
	require.NoError(t, err)
	assert.Contains(t, out, "[DRY] DELETE "+extra)
	assert.Contains(t, out, "Deleted:  1\n")
	_, err = os.Stat(extra)
	require.NoError(t, err, "dry run keeps the file")

	_, err = execRoot(t, []string{"--root", root, "sync", "--clean"})
	require.NoError(t, err)
	_, err = os.Stat(extra)
	assert.True(t, os.IsNotExist(err))
}

func TestSyncHonorsIgnoreFile(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, ".folioignore"), "galleray-*\n")
	out, err := execRoot(t, []string{"--root", root, "sync"})
	require.NoError(t, err)
	assert.Contains(t, out, "Copied:   2\n")
	assert.Contains(t, out, "Ignored:  1\n")
}

func TestSyncMissingSource(t *testing.T) {
	root := newSite(t)
	_, err := execRoot(t, []string{"--root", root, "sync", "--src", "does/not/exist"})
	require.Error(t, err)
	assert.Equal(t, exitcode.FileSystemError, exitcode.From(err))
}

func TestRefreshDryRunThenWrite(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, "public", "projects", "hci", "touch", "portfolio-1.jpg"), "p")
	metaPath := filepath.Join(root, "content", "projects", "hci", "touch", "meta.json")

	out, err := execRoot(t, []string{"--root", root, "refresh", "--dry-run"})
	require.NoError(t, err)
	assert.Contains(t, out, "[DRY] UPDATE hci/touch")
	data, err := os.ReadFile(metaPath)
	require.NoError(t, err)
	assert.Equal(t, touchMeta, string(data))

	_, err = execRoot(t, []string{"--root", root, "refresh"})
	require.NoError(t, err)
	data, err = os.ReadFile(metaPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"portfolioImages": [`)
	assert.True(t, strings.Index(string(data), `"slug"`) < strings.Index(string(data), `"portfolioImages"`))
}

func TestSitemapRequiresURL(t *testing.T) {
	_, err := execRoot(t, []string{"--root", newSite(t), "sitemap"})
	require.Error(t, err)
	assert.Equal(t, exitcode.ConfigError, exitcode.From(err))
}

func TestSitemapFromConfig(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, "folio.yaml"), "site:\n  url: https://portfolio.example/\n")

	_, err := execRoot(t, []string{"--root", root, "sitemap"})
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "public", "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<loc>https://portfolio.example/projects/hci/touch</loc>")

	out, err := execRoot(t, []string{"--root", root, "sitemap", "-o", "-", "--base-url", "https://other.example"})
	require.NoError(t, err)
	assert.Contains(t, out, "<loc>https://other.example/projects/architecture</loc>")
}

func TestVersionJSON(t *testing.T) {
	out, err := execRoot(t, []string{"version", "--json"})
	require.NoError(t, err)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.IsType(t, "", v["version"])
	assert.IsType(t, "", v["goVersion"])
	assert.IsType(t, "", v["platform"])
}

func TestVersionText(t *testing.T) {
	out, err := execRoot(t, []string{"version", "--extended", "--root", t.TempDir()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "folio "), out)
	assert.Contains(t, out, "Git commit: unknown")
}
