package index

import (
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/folio/pkg/config"
	"github.com/fulmenhq/folio/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLayout(t *testing.T) content.Layout {
	t.Helper()
	layout, err := content.NewLayout(t.TempDir(), config.Default())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(layout.ProjectsDir, 0o755))
	return layout
}

func writeProject(t *testing.T, layout content.Layout, category, slug, meta string, doc bool, assets ...string) string {
	t.Helper()
	dir := filepath.Join(layout.ProjectsDir, category, slug)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, content.AssetsDir), 0o755))
	if meta != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, content.MetaFile), []byte(meta), 0o644))
	}
	if doc {
		require.NoError(t, os.WriteFile(filepath.Join(dir, content.DocumentFile), []byte("# doc\n"), 0o644))
	}
	for _, a := range assets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, content.AssetsDir, a), []byte(a), 0o644))
	}
	return dir
}

func decode(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestBuildRecordAutoDetection(t *testing.T) {
	layout := newLayout(t)
	writeProject(t, layout, "hci", "touch", `{"title":"Touch","slug":"touch"}`, true,
		"hero.png", "gallery-1.jpg", "galleray-2.jpg", "notes.txt")

	res, err := Build(layout, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	rec := res.Records[0]

	hero, _ := rec.Get("hero")
	assert.Equal(t, "hero.png", hero)
	gallery, _ := rec.Get("gallery")
	assert.ElementsMatch(t, []string{"gallery-1.jpg", "galleray-2.jpg"}, gallery)
	// "galleray" folds before "gallery"; gallery keeps asset order.
	assets, _ := rec.Get("assets")
	assert.Equal(t, []string{"galleray-2.jpg", "gallery-1.jpg", "hero.png"}, assets)
	assert.Equal(t, []string{"galleray-2.jpg", "gallery-1.jpg"}, gallery)
	heroURL, _ := rec.Get("heroUrl")
	assert.Equal(t, "/projects/hci/touch/hero.png", heroURL)
	coverURL, ok := rec.Get("coverUrl")
	assert.True(t, ok)
	assert.Nil(t, coverURL)
	assert.False(t, rec.Has("_warnings"))
}

func TestBuildRecordKeyOrder(t *testing.T) {
	layout := newLayout(t)
	writeProject(t, layout, "hci", "touch", `{"title":"Touch","url":"old","zeta":1}`, true, "hero.png")

	res, err := Build(layout, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, []string{
		"title", "url", "zeta",
		"category", "slug", "path", "mdxPath", "assets", "hero", "cover",
		"gallery", "heroUrl", "coverUrl", "galleryUrls",
	}, res.Records[0].Keys())

	url, _ := res.Records[0].Get("url")
	assert.Equal(t, "/projects/hci/touch", url)
	p, _ := res.Records[0].Get("path")
	assert.Equal(t, "projects/hci/touch", p)
	mdx, _ := res.Records[0].Get("mdxPath")
	assert.Equal(t, "content/projects/hci/touch/index.mdx", mdx)
}

func TestBuildRecordWarnings(t *testing.T) {
	layout := newLayout(t)
	writeProject(t, layout, "fabrication", "loom", `{"hero":"missing.png"}`, false, "detail.jpg")

	res, err := Build(layout, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	rec := res.Records[0]

	warnings, _ := rec.Get("_warnings")
	assert.Equal(t, []string{WarnMissingDocument, WarnMissingHero}, warnings)
	hero, _ := rec.Get("hero")
	assert.Equal(t, "missing.png", hero, "unresolved hero keeps the metadata value")
	gallery, _ := rec.Get("gallery")
	assert.Equal(t, []string{"detail.jpg"}, gallery)
}

func TestBuildExplicitSelections(t *testing.T) {
	layout := newLayout(t)
	writeProject(t, layout, "architecture", "tower",
		`{"hero":"main.jpg","cover":"card.jpg","gallery":["b.jpg","gone.jpg","a.jpg"]}`, true,
		"main.jpg", "card.jpg", "a.jpg", "b.jpg", "hero.png")

	res, err := Build(layout, Options{})
	require.NoError(t, err)
	rec := res.Records[0]
	hero, _ := rec.Get("hero")
	assert.Equal(t, "main.jpg", hero)
	coverURL, _ := rec.Get("coverUrl")
	assert.Equal(t, "/projects/architecture/tower/card.jpg", coverURL)
	urls, _ := rec.Get("galleryUrls")
	assert.Equal(t, []string{"/projects/architecture/tower/b.jpg", "/projects/architecture/tower/a.jpg"}, urls)
}

func TestBuildSkipsFoldersWithoutMetaAndInvalidMeta(t *testing.T) {
	layout := newLayout(t)
	writeProject(t, layout, "hci", "draft", "", true)
	writeProject(t, layout, "hci", "broken", `{"title":`, true)
	writeProject(t, layout, "hci", "ok", `{"title":"Ok"}`, true, "hero.jpg")
	writeProject(t, layout, "sculpture", "bust", `{"title":"Bust"}`, true, "hero.jpg")

	res, err := Build(layout, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	slug, _ := res.Records[0].Get("slug")
	assert.Equal(t, "ok", slug)
	assert.Equal(t, []string{"hci/broken"}, res.Skipped)
}

func TestBuildSkipsProjectWithUnreadableAssets(t *testing.T) {
	layout := newLayout(t)
	writeProject(t, layout, "hci", "good", `{"title":"Good"}`, true, "hero.jpg")
	bad := writeProject(t, layout, "hci", "bad", `{"title":"Bad"}`, true)
	assetsDir := filepath.Join(bad, content.AssetsDir)
	require.NoError(t, os.Remove(assetsDir))
	require.NoError(t, os.WriteFile(assetsDir, []byte("not a folder"), 0o644))

	res, err := Build(layout, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	slug, _ := res.Records[0].Get("slug")
	assert.Equal(t, "good", slug)
	assert.Equal(t, []string{"hci/bad"}, res.Skipped)
}

func TestBuildMissingProjectsDir(t *testing.T) {
	layout, err := content.NewLayout(t.TempDir(), config.Default())
	require.NoError(t, err)
	_, err = Build(layout, Options{})
	assert.Error(t, err)
}

func TestBuildDimensions(t *testing.T) {
	layout := newLayout(t)
	dir := writeProject(t, layout, "hci", "touch", `{"title":"Touch"}`, true)

	f, err := os.Create(filepath.Join(dir, content.AssetsDir, "hero.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 32, 18))))
	require.NoError(t, f.Close())

	res, err := Build(layout, Options{Dimensions: true})
	require.NoError(t, err)
	w, _ := res.Records[0].Get("heroWidth")
	h, _ := res.Records[0].Get("heroHeight")
	assert.Equal(t, 32, w)
	assert.Equal(t, 18, h)

	res, err = Build(layout, Options{})
	require.NoError(t, err)
	assert.False(t, res.Records[0].Has("heroWidth"))
}

func TestImageSizeRejectsNonImages(t *testing.T) {
	p := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(p, []byte("not an image"), 0o644))
	_, _, ok := ImageSize(p)
	assert.False(t, ok)
}

func TestEncodeIsDeterministic(t *testing.T) {
	layout := newLayout(t)
	writeProject(t, layout, "hci", "b", `{"title":"B <&>","featured":true,"year":2021,"order":2}`, true, "hero.png")
	writeProject(t, layout, "hci", "A", `{"title":"A","year":2024,"order":1,"ratio":1.50}`, false, "hero.webp")
	writeProject(t, layout, "architecture", "c", `{"title":"C","year":"2020"}`, true)

	first, err := Build(layout, Options{})
	require.NoError(t, err)
	a, err := Encode(first.Records)
	require.NoError(t, err)

	second, err := Build(layout, Options{})
	require.NoError(t, err)
	b, err := Encode(second.Records)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Contains(t, string(a), `"title": "B <&>"`)
	assert.Contains(t, string(a), `"ratio": 1.50`)
	assert.Equal(t, byte('\n'), a[len(a)-1])
	assert.NotEqual(t, byte('\n'), a[len(a)-2])

	out := decode(t, a)
	require.Len(t, out, 3)
	assert.Equal(t, "b", out[0]["slug"])
	assert.Equal(t, "c", out[1]["slug"])
	assert.Equal(t, "A", out[2]["slug"])
}

func TestEncodeEmpty(t *testing.T) {
	out, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}

func TestWriteAndCheck(t *testing.T) {
	layout := newLayout(t)
	writeProject(t, layout, "hci", "touch", `{"title":"Touch"}`, false, "hero.png", "gallery-1.jpg")

	res, err := Build(layout, Options{})
	require.NoError(t, err)
	data, err := Encode(res.Records)
	require.NoError(t, err)
	require.NoError(t, Write(layout.IndexFile, data))

	written, err := os.ReadFile(layout.IndexFile)
	require.NoError(t, err)
	assert.Equal(t, data, written)

	result, err := Check(written)
	require.NoError(t, err)
	assert.True(t, result.Valid, result.Summary())
}

func TestCheckFlagsBrokenRecords(t *testing.T) {
	result, err := Check([]byte(`[{"category":"hci","slug":"x","url":"/elsewhere"}]`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}
