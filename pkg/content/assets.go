package content

import (
	"os"
	"path/filepath"
	"strings"
)

// ListAssets returns the regular files directly inside dir whose extension
// (case-insensitive) is in exts, sorted case-insensitively.
// A missing directory yields no assets and no error.
func ListAssets(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}
	var files []string
	for _, e := range entries {
		if !isFileEntry(dir, e) {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	SortFold(files)
	return files, nil
}

// ListFiles returns every regular file directly inside dir, in byte order.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if isFileEntry(dir, e) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func isFileEntry(parent string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink != 0 {
		st, err := os.Stat(filepath.Join(parent, e.Name()))
		return err == nil && st.Mode().IsRegular()
	}
	return false
}

// Selection is the resolved hero, cover and gallery of one project.
// Empty Hero or Cover means none could be resolved.
type Selection struct {
	Hero    string
	Cover   string
	Gallery []string
}

var galleryPrefixes = []string{"gallery-", "galleray-", "portfolio-"}

// Resolve picks hero, cover and gallery files from assets.
//
// hero:    meta.hero when it names an asset, else the first hero.* asset.
// cover:   meta.cover when it names an asset.
// gallery: meta.gallery filtered to existing assets when that is non-empty,
// else gallery-/galleray-/portfolio- prefixed assets, else every asset but
// the hero and any other hero.* file.
func Resolve(meta *Meta, assets []string) Selection {
	present := make(map[string]bool, len(assets))
	for _, a := range assets {
		present[a] = true
	}

	var sel Selection
	if h, ok := meta.String("hero"); ok && present[h] {
		sel.Hero = h
	} else {
		for _, a := range assets {
			if FoldEqualPrefix(a, "hero.") {
				sel.Hero = a
				break
			}
		}
	}

	if c, ok := meta.String("cover"); ok && present[c] {
		sel.Cover = c
	}

	if raw, ok := meta.Get("gallery"); ok {
		if list, ok := raw.([]any); ok {
			for _, item := range list {
				if s, ok := item.(string); ok && present[s] {
					sel.Gallery = append(sel.Gallery, s)
				}
			}
		}
	}
	if len(sel.Gallery) == 0 {
		for _, a := range assets {
			if hasGalleryPrefix(a) {
				sel.Gallery = append(sel.Gallery, a)
			}
		}
	}
	if len(sel.Gallery) == 0 {
		for _, a := range assets {
			if a != sel.Hero && !FoldEqualPrefix(a, "hero.") {
				sel.Gallery = append(sel.Gallery, a)
			}
		}
	}
	if sel.Gallery == nil {
		sel.Gallery = []string{}
	}
	return sel
}

func hasGalleryPrefix(name string) bool {
	for _, p := range galleryPrefixes {
		if FoldEqualPrefix(name, p) {
			return true
		}
	}
	return false
}

// IsGalleryTypo reports asset names carrying the "galleray" misspelling.
func IsGalleryTypo(name string) bool {
	return strings.Contains(strings.ToLower(name), "galleray")
}
