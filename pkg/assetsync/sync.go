// Package assetsync mirrors every content/projects/<category>/<slug>/assets
// tree into public/projects/<category>/<slug>.
package assetsync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/folio/pkg/content"
	"github.com/fulmenhq/folio/pkg/ignore"
	"github.com/fulmenhq/folio/pkg/logger"
	"github.com/fulmenhq/folio/pkg/safeio"
)

// ErrSourceNotFound is returned when the source root does not exist.
var ErrSourceNotFound = errors.New("source root not found")

// Options configures one sync run.
type Options struct {
	Src string
	Dst string
	// DryRun reports every action without touching the destination.
	DryRun bool
	// Clean deletes destination entries with no source counterpart, per project.
	Clean bool
	// VerifyHash compares content hashes instead of modification times.
	VerifyHash bool
	// Ignore filters source files by their path relative to Src.
	Ignore *ignore.Matcher
	// Out receives one line per action. Nil discards them.
	Out io.Writer
}

// Summary counts what a run did, or would do in dry-run mode.
type Summary struct {
	Source   string
	Dest     string
	Projects int
	Copied   int
	Skipped  int
	Ignored  int
	Deleted  int
	Clean    bool
	DryRun   bool
}

// AssetDir is one discovered project assets folder.
type AssetDir struct {
	Category string
	Slug     string
	Dir      string
}

// Run synchronizes every discovered assets folder. Only a missing source
// root is fatal before any work starts.
func Run(opts Options) (*Summary, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	src, err := filepath.Abs(opts.Src)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source %s: %w", opts.Src, err)
	}
	dst, err := filepath.Abs(opts.Dst)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination %s: %w", opts.Dst, err)
	}
	if !safeio.IsDir(src) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}

	var ops fileOps = liveOps{out: out}
	if opts.DryRun {
		ops = dryOps{out: out}
	}

	summary := &Summary{Source: src, Dest: dst, Clean: opts.Clean, DryRun: opts.DryRun}

	dirs, err := Discover(src)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		logger.Warn("No assets folders found", logger.String("src", src))
		return summary, nil
	}

	s := &syncer{opts: opts, ops: ops, summary: summary, src: src}
	for _, d := range dirs {
		if err := s.project(d, filepath.Join(dst, d.Category, d.Slug)); err != nil {
			return summary, err
		}
		summary.Projects++
	}
	return summary, nil
}

// Discover lists <category>/<slug>/assets directories under root in path order.
func Discover(root string) ([]AssetDir, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "*/*/"+content.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover assets folders: %w", err)
	}
	sort.Strings(matches)

	var dirs []AssetDir
	for _, m := range matches {
		full := filepath.Join(root, filepath.FromSlash(m))
		if !safeio.IsDir(full) {
			continue
		}
		parts := strings.Split(m, "/")
		dirs = append(dirs, AssetDir{Category: parts[0], Slug: parts[1], Dir: full})
	}
	return dirs, nil
}

type syncer struct {
	opts    Options
	ops     fileOps
	summary *Summary
	src     string
}

func (s *syncer) project(d AssetDir, dstProject string) error {
	if err := s.ops.EnsureDir(dstProject); err != nil {
		return fmt.Errorf("failed to create %s: %w", dstProject, err)
	}

	files, err := doublestar.Glob(os.DirFS(d.Dir), "**", doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", d.Dir, err)
	}
	sort.Strings(files)

	seen := make(map[string]bool, len(files))
	for _, rel := range files {
		if s.opts.Ignore.IsIgnored(path.Join(d.Category, d.Slug, content.AssetsDir, rel)) {
			s.summary.Ignored++
			logger.Debug("Ignoring asset", logger.String("project", d.Category+"/"+d.Slug), logger.String("file", rel))
			continue
		}
		seen[rel] = true

		srcFile := filepath.Join(d.Dir, filepath.FromSlash(rel))
		dstFile := filepath.Join(dstProject, filepath.FromSlash(rel))
		if !s.shouldCopy(srcFile, dstFile) {
			s.summary.Skipped++
			continue
		}
		if err := s.ops.Copy(srcFile, dstFile); err != nil {
			return fmt.Errorf("failed to copy %s: %w", srcFile, err)
		}
		s.summary.Copied++
	}

	if s.opts.Clean && safeio.IsDir(dstProject) {
		return s.clean(dstProject, seen)
	}
	return nil
}

// shouldCopy compares (size, mtime), or (size, sha256) with VerifyHash.
// Any stat or read failure means copy.
func (s *syncer) shouldCopy(src, dst string) bool {
	di, err := os.Stat(dst)
	if err != nil {
		return true
	}
	si, err := os.Stat(src)
	if err != nil {
		return true
	}
	if si.Size() != di.Size() {
		return true
	}
	if !s.opts.VerifyHash {
		return !si.ModTime().Equal(di.ModTime())
	}
	sh, err := safeio.HashFile(src)
	if err != nil {
		return true
	}
	dh, err := safeio.HashFile(dst)
	if err != nil {
		return true
	}
	return sh != dh
}

// clean removes destination entries that no kept source file needs. A
// directory holding no source file is removed whole.
func (s *syncer) clean(dstProject string, keep map[string]bool) error {
	keepDirs := make(map[string]bool)
	for rel := range keep {
		for dir := path.Dir(rel); dir != "."; dir = path.Dir(dir) {
			keepDirs[dir] = true
		}
	}

	entries, err := doublestar.Glob(os.DirFS(dstProject), "**")
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dstProject, err)
	}
	sort.Strings(entries)

	var removed []string
	for _, rel := range entries {
		if rel == "." || rel == "" || underAny(rel, removed) {
			continue
		}
		full := filepath.Join(dstProject, filepath.FromSlash(rel))
		info, err := os.Lstat(full)
		if err != nil {
			continue
		}
		if info.IsDir() {
			if keepDirs[rel] {
				continue
			}
		} else if keep[rel] {
			continue
		}
		if err := s.ops.Delete(full); err != nil {
			return fmt.Errorf("failed to delete %s: %w", full, err)
		}
		removed = append(removed, rel)
		s.summary.Deleted++
	}
	return nil
}

func underAny(rel string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	return false
}

// Write prints the closing summary block.
func (s *Summary) Write(w io.Writer) {
	_, _ = fmt.Fprintln(w, "\n==== Summary ====")
	_, _ = fmt.Fprintf(w, "Source: %s\n", s.Source)
	_, _ = fmt.Fprintf(w, "Dest:   %s\n", s.Dest)
	_, _ = fmt.Fprintf(w, "Copied:   %d\n", s.Copied)
	_, _ = fmt.Fprintf(w, "Skipped:  %d\n", s.Skipped)
	if s.Ignored > 0 {
		_, _ = fmt.Fprintf(w, "Ignored:  %d\n", s.Ignored)
	}
	if s.Clean {
		_, _ = fmt.Fprintf(w, "Deleted:  %d\n", s.Deleted)
	}
	if s.DryRun {
		_, _ = fmt.Fprintln(w, "Dry run: no files were changed.")
	}
	_, _ = fmt.Fprintln(w, "Done.")
}
