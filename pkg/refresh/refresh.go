// Package refresh rewrites the image fields of each project's meta.json from
// the files already published under public/projects.
package refresh

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fulmenhq/folio/internal/printer"
	"github.com/fulmenhq/folio/pkg/content"
	"github.com/fulmenhq/folio/pkg/format"
	"github.com/fulmenhq/folio/pkg/format/finalizer"
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/fulmenhq/folio/pkg/safeio"
)

// ImageExtensions are the published file types considered images.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Images is what a published project folder offers.
type Images struct {
	Hero      string
	Portfolio []string
	Gallery   []string
}

// Options configures a refresh run.
type Options struct {
	DryRun bool
	Out    io.Writer
}

// Result counts the outcome per project.
type Result struct {
	Updated   []string
	Unchanged []string
	// MissingMeta lists published folders without a content meta.json.
	MissingMeta []string
	// Failed lists projects whose meta.json could not be read or written.
	Failed []string
}

// Scan classifies the image files directly inside dir. The hero is the file
// whose base name is exactly "hero"; portfolio-* and gallery-* names are
// sorted bytewise.
func Scan(dir string) (Images, error) {
	var img Images
	files, err := content.ListAssets(dir, ImageExtensions)
	if err != nil {
		return img, err
	}
	for _, f := range files {
		base := strings.TrimSuffix(f, filepath.Ext(f))
		switch {
		case base == "hero":
			img.Hero = f
		case strings.HasPrefix(base, "portfolio-"):
			img.Portfolio = append(img.Portfolio, f)
		case strings.HasPrefix(base, "gallery-"):
			img.Gallery = append(img.Gallery, f)
		}
	}
	sort.Strings(img.Portfolio)
	sort.Strings(img.Gallery)
	return img, nil
}

// Apply sets hero, portfolioImages and galleryImages on meta for whatever
// was found. Absent images leave the existing fields alone.
func (img Images) Apply(meta *content.Meta) {
	if img.Hero != "" {
		meta.Set("hero", img.Hero)
	}
	if len(img.Portfolio) > 0 {
		meta.Set("portfolioImages", img.Portfolio)
	}
	if len(img.Gallery) > 0 {
		meta.Set("galleryImages", img.Gallery)
	}
}

// Run walks public/projects/<category>/<slug> for every configured category
// and updates the matching content meta.json. Per-project problems are
// logged and collected; only an unreadable category folder is an error.
func Run(layout content.Layout, opts Options) (*Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	res := &Result{}
	for _, category := range layout.Categories {
		categoryDir := filepath.Join(layout.PublicProjectsDir, category)
		if !safeio.IsDir(categoryDir) {
			logger.Warn("Category not found", logger.String("category", category), logger.String("dir", categoryDir))
			continue
		}
		slugs, err := content.SubDirs(categoryDir)
		if err != nil {
			return res, fmt.Errorf("failed to list %s: %w", categoryDir, err)
		}
		sort.Strings(slugs)
		for _, slug := range slugs {
			refreshProject(layout, category, slug, opts.DryRun, out, res)
		}
	}
	return res, nil
}

func refreshProject(layout content.Layout, category, slug string, dryRun bool, out io.Writer, res *Result) {
	id := category + "/" + slug
	img, err := Scan(filepath.Join(layout.PublicProjectsDir, category, slug))
	if err != nil {
		printer.Failure(out, "%s: %v", id, err)
		res.Failed = append(res.Failed, id)
		return
	}

	metaPath := filepath.Join(layout.ProjectsDir, category, slug, content.MetaFile)
	if !safeio.IsFile(metaPath) {
		logger.Warn("Meta not found", logger.String("project", id))
		res.MissingMeta = append(res.MissingMeta, id)
		return
	}
	data, err := safeio.ReadFileContained(layout.ProjectsDir, metaPath)
	if err != nil {
		printer.Failure(out, "Error reading meta.json for %s: %v", id, err)
		res.Failed = append(res.Failed, id)
		return
	}
	meta, err := content.ParseMeta(data)
	if err != nil {
		printer.Failure(out, "Error reading meta.json for %s: %v", id, err)
		res.Failed = append(res.Failed, id)
		return
	}

	img.Apply(meta)
	updated, err := Encode(meta)
	if err != nil {
		printer.Failure(out, "Error encoding meta.json for %s: %v", id, err)
		res.Failed = append(res.Failed, id)
		return
	}
	if bytes.Equal(updated, data) {
		res.Unchanged = append(res.Unchanged, id)
		return
	}

	if !dryRun {
		if err := safeio.WriteFilePreservePerms(metaPath, updated); err != nil {
			printer.Failure(out, "Error writing meta.json for %s: %v", id, err)
			res.Failed = append(res.Failed, id)
			return
		}
	}
	printer.Action(out, dryRun, "UPDATE", "%s (hero %s, portfolio %d, gallery %d)", id, mark(img.Hero != ""), len(img.Portfolio), len(img.Gallery))
	res.Updated = append(res.Updated, id)
}

// Encode renders meta as 2-space indented JSON ending in one newline.
func Encode(meta *content.Meta) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(meta); err != nil {
		return nil, err
	}
	pretty, _, err := format.PrettifyJSON(buf.Bytes(), "  ")
	if err != nil {
		return nil, err
	}
	out, _, err := finalizer.NormalizeEOF(pretty, false, "\n")
	return out, err
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// Write prints the closing line.
func (r *Result) Write(w io.Writer, dryRun bool) {
	verb := "Updated"
	if dryRun {
		verb = "Would update"
	}
	_, _ = fmt.Fprintf(w, "\n%s %d projects (%d unchanged, %d without meta.json, %d failed).\n",
		verb, len(r.Updated), len(r.Unchanged), len(r.MissingMeta), len(r.Failed))
}
