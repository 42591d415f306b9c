package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for folio
type Config struct {
	ContentDir      string      `mapstructure:"content_dir"`
	PublicDir       string      `mapstructure:"public_dir"`
	ProjectsDir     string      `mapstructure:"projects_dir"`
	IndexFile       string      `mapstructure:"index_file"`
	Categories      []string    `mapstructure:"categories"`
	AssetExtensions []string    `mapstructure:"asset_extensions"`
	Sync            SyncConfig  `mapstructure:"sync"`
	Index           IndexConfig `mapstructure:"index"`
	Site            SiteConfig  `mapstructure:"site"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

// SyncConfig holds asset mirroring options
type SyncConfig struct {
	VerifyHash bool   `mapstructure:"verify_hash"`
	IgnoreFile string `mapstructure:"ignore_file"`
}

// IndexConfig holds index generation options
type IndexConfig struct {
	ImageDimensions bool `mapstructure:"image_dimensions"`
}

// SiteConfig holds public site settings
type SiteConfig struct {
	URL string `mapstructure:"url"`
}

// DefaultCategories is the allowed category set, in index order.
var DefaultCategories = []string{"architecture", "fabrication", "hci", "urban-interaction"}

// DefaultAssetExtensions lists the file types published from a project's assets directory.
var DefaultAssetExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".mp4", ".mov", ".pdf"}

// candidateFiles are probed in order inside the repository root.
var candidateFiles = []string{
	"folio.yaml",
	"folio.yml",
	".folio.yaml",
	".folio.yml",
	"folio.json",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content_dir", "content")
	v.SetDefault("public_dir", "public")
	v.SetDefault("projects_dir", "projects")
	v.SetDefault("index_file", "projects_index.json")
	v.SetDefault("categories", DefaultCategories)
	v.SetDefault("asset_extensions", DefaultAssetExtensions)
	v.SetDefault("sync.verify_hash", false)
	v.SetDefault("sync.ignore_file", ".folioignore")
	v.SetDefault("index.image_dimensions", false)
	v.SetDefault("site.url", "")
}

// Load reads configuration for the repository at root. An explicit file must
// exist; otherwise the first candidate file found in root is used, and a
// missing file means defaults. FOLIO_* environment variables override both.
func Load(root, explicitFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := explicitFile
	if file == "" {
		for _, name := range candidateFiles {
			p := filepath.Join(root, name)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				file = p
				break
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.File = file

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting files or env.
func Default() *Config {
	cfg := &Config{
		ContentDir:      "content",
		PublicDir:       "public",
		ProjectsDir:     "projects",
		IndexFile:       "projects_index.json",
		Categories:      append([]string(nil), DefaultCategories...),
		AssetExtensions: append([]string(nil), DefaultAssetExtensions...),
		Sync:            SyncConfig{IgnoreFile: ".folioignore"},
	}
	return cfg
}

func (c *Config) normalize() {
	for i, ext := range c.AssetExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.AssetExtensions[i] = ext
	}
	for i, cat := range c.Categories {
		c.Categories[i] = strings.TrimSpace(cat)
	}
	c.Site.URL = strings.TrimRight(strings.TrimSpace(c.Site.URL), "/")
}

// Validate checks invariants the commands rely on.
func (c *Config) Validate() error {
	if c.ContentDir == "" || c.PublicDir == "" || c.ProjectsDir == "" || c.IndexFile == "" {
		return errors.New("content_dir, public_dir, projects_dir and index_file must be set")
	}
	if len(c.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat == "" || strings.ContainsAny(cat, `/\`) {
			return fmt.Errorf("invalid category name %q", cat)
		}
		if seen[cat] {
			return fmt.Errorf("duplicate category %q", cat)
		}
		seen[cat] = true
	}
	for _, ext := range c.AssetExtensions {
		if ext == "" || ext == "." {
			return errors.New("asset_extensions contains an empty entry")
		}
	}
	return nil
}

// AllowsCategory reports whether name is one of the configured categories.
func (c *Config) AllowsCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}
