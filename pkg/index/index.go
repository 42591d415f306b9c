// Package index builds the consolidated projects index: one record per
// project, metadata merged with resolved asset selections and public URLs,
// in a stable total order.
package index

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/fulmenhq/folio/pkg/content"
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/fulmenhq/folio/pkg/safeio"
)

const (
	WarnMissingDocument = "missing index.mdx"
	WarnMissingHero     = "missing hero (meta.hero not found and no hero.* in assets)"
)

// Options tunes record construction.
type Options struct {
	// Dimensions adds heroWidth/heroHeight for decodable hero images.
	Dimensions bool
}

// Result is the outcome of Build.
type Result struct {
	Records []*content.Meta
	// Skipped lists "<category>/<slug>" of projects whose meta.json or assets
	// folder could not be read.
	Skipped []string
}

// Build walks the configured categories in declared order and the project
// folders of each in case-insensitive order. Folders without meta.json are
// ignored silently. A project whose metadata or assets cannot be read is
// logged and skipped; it never fails the build for the others.
func Build(layout content.Layout, opts Options) (*Result, error) {
	if !safeio.IsDir(layout.ProjectsDir) {
		return nil, fmt.Errorf("projects directory not found: %s", layout.ProjectsDir)
	}

	res := &Result{Records: []*content.Meta{}}
	for _, category := range layout.Categories {
		categoryDir := filepath.Join(layout.ProjectsDir, category)
		if !safeio.IsDir(categoryDir) {
			logger.Debug("Category folder absent", logger.String("category", category))
			continue
		}
		projects, err := content.ProjectsIn(categoryDir, category, true)
		if err != nil {
			logger.Warn("Skipping unreadable category", logger.String("category", category), logger.Err(err))
			continue
		}
		for _, p := range projects {
			if !safeio.IsFile(p.MetaPath()) {
				continue
			}
			data, err := safeio.ReadFileContained(layout.ProjectsDir, p.MetaPath())
			if err != nil {
				logger.Warn("Skipping project with unreadable metadata", logger.String("project", p.ID()), logger.Err(err))
				res.Skipped = append(res.Skipped, p.ID())
				continue
			}
			meta, err := content.ParseMeta(data)
			if err != nil {
				logger.Warn("Skipping project with invalid metadata", logger.String("project", p.ID()), logger.Err(err))
				res.Skipped = append(res.Skipped, p.ID())
				continue
			}
			rec, err := BuildRecord(layout, p, meta, opts)
			if err != nil {
				logger.Warn("Skipping project with unreadable assets", logger.String("project", p.ID()), logger.Err(err))
				res.Skipped = append(res.Skipped, p.ID())
				continue
			}
			res.Records = append(res.Records, rec)
		}
	}

	Sort(res.Records)
	return res, nil
}

// BuildRecord merges meta with the computed fields of project p. Computed keys
// that already exist in meta keep their position and take the computed value.
func BuildRecord(layout content.Layout, p content.Project, meta *content.Meta, opts Options) (*content.Meta, error) {
	assets, err := content.ListAssets(p.AssetsPath(), layout.AssetExtensions)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets of %s: %w", p.ID(), err)
	}
	if assets == nil {
		assets = []string{}
	}
	sel := content.Resolve(meta, assets)

	rec := meta.Clone()
	rec.Set("category", p.Category)
	rec.Set("slug", p.Slug)
	rec.Set("url", ProjectURL(p.Category, p.Slug))
	rec.Set("path", content.Rel(layout.ContentDir, p.Dir))
	rec.Set("mdxPath", content.Rel(layout.Root, p.DocumentPath()))
	rec.Set("assets", assets)
	rec.Set("hero", pickOr(sel.Hero, meta, "hero"))
	rec.Set("cover", pickOr(sel.Cover, meta, "cover"))
	rec.Set("gallery", sel.Gallery)
	rec.Set("heroUrl", urlOrNil(p, sel.Hero))
	rec.Set("coverUrl", urlOrNil(p, sel.Cover))

	galleryURLs := make([]string, 0, len(sel.Gallery))
	for _, name := range sel.Gallery {
		galleryURLs = append(galleryURLs, AssetURL(p.Category, p.Slug, name))
	}
	rec.Set("galleryUrls", galleryURLs)

	if opts.Dimensions && sel.Hero != "" {
		if w, h, ok := ImageSize(filepath.Join(p.AssetsPath(), sel.Hero)); ok {
			rec.Set("heroWidth", w)
			rec.Set("heroHeight", h)
		}
	}

	var warnings []string
	if !safeio.IsFile(p.DocumentPath()) {
		warnings = append(warnings, WarnMissingDocument)
	}
	if sel.Hero == "" {
		warnings = append(warnings, WarnMissingHero)
	}
	if len(warnings) > 0 {
		rec.Set("_warnings", warnings)
	}
	return rec, nil
}

// ProjectURL is the public page of a project.
func ProjectURL(category, slug string) string {
	return path.Join("/projects", category, slug)
}

// AssetURL is the public URL of a synced asset.
func AssetURL(category, slug, file string) string {
	return ProjectURL(category, slug) + "/" + file
}

// pickOr returns the resolved name, or the raw metadata value under key
// (nil when absent) so unresolved references survive into the record.
func pickOr(resolved string, meta *content.Meta, key string) any {
	if resolved != "" {
		return resolved
	}
	v, _ := meta.Get(key)
	return v
}

func urlOrNil(p content.Project, name string) any {
	if name == "" {
		return nil
	}
	return AssetURL(p.Category, p.Slug, name)
}
