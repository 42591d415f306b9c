package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "projects", cfg.ProjectsDir)
	assert.Equal(t, "projects_index.json", cfg.IndexFile)
	assert.Equal(t, DefaultCategories, cfg.Categories)
	assert.Equal(t, DefaultAssetExtensions, cfg.AssetExtensions)
	assert.Equal(t, ".folioignore", cfg.Sync.IgnoreFile)
	assert.False(t, cfg.Sync.VerifyHash)
	assert.False(t, cfg.Index.ImageDimensions)
	assert.Empty(t, cfg.File)
}

func TestLoadProjectFile(t *testing.T) {
	root := t.TempDir()
	content := `content_dir: site-content
categories:
  - hci
  - architecture
asset_extensions: [PNG, .svg]
sync:
  verify_hash: true
site:
  url: https://example.com/
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "folio.yaml"), []byte(content), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, "site-content", cfg.ContentDir)
	assert.Equal(t, []string{"hci", "architecture"}, cfg.Categories)
	assert.Equal(t, []string{".png", ".svg"}, cfg.AssetExtensions)
	assert.True(t, cfg.Sync.VerifyHash)
	assert.Equal(t, "https://example.com", cfg.Site.URL)
	assert.Equal(t, filepath.Join(root, "folio.yaml"), cfg.File)
	// Untouched keys keep their defaults.
	assert.Equal(t, "public", cfg.PublicDir)
}

func TestLoadDotfileCandidate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".folio.yml"), []byte("public_dir: www\n"), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "www", cfg.PublicDir)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "folio.yaml"), []byte("categories: [unclosed\n"), 0o644))

	_, err := Load(root, "")
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_INDEX_FILE", "index.json")
	t.Setenv("FOLIO_SITE_URL", "https://portfolio.test")

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "index.json", cfg.IndexFile)
	assert.Equal(t, "https://portfolio.test", cfg.Site.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"no categories", func(c *Config) { c.Categories = nil }, true},
		{"duplicate category", func(c *Config) { c.Categories = []string{"hci", "hci"} }, true},
		{"category with slash", func(c *Config) { c.Categories = []string{"a/b"} }, true},
		{"empty extension", func(c *Config) { c.AssetExtensions = []string{""} }, true},
		{"empty content dir", func(c *Config) { c.ContentDir = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllowsCategory(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.AllowsCategory("hci"))
	assert.True(t, cfg.AllowsCategory("urban-interaction"))
	assert.False(t, cfg.AllowsCategory("HCI"))
	assert.False(t, cfg.AllowsCategory("misc"))
}
