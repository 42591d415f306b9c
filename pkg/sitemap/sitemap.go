// Package sitemap renders a sitemaps.org document for the static pages, the
// category listings and every indexed project.
package sitemap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fulmenhq/folio/pkg/content"
	"github.com/fulmenhq/folio/pkg/format"
	"github.com/fulmenhq/folio/pkg/format/finalizer"
)

const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StaticPages are always listed, in this order.
var StaticPages = []string{"/", "/about", "/projects"}

// Entry is one <url> element.
type Entry struct {
	Loc      string
	Priority string
}

// Entries lists static pages, then /projects/<category> for each category,
// then each record's project URL, in record order.
func Entries(baseURL string, categories []string, records []*content.Meta) ([]Entry, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(StaticPages)+len(categories)+len(records))
	for i, p := range StaticPages {
		prio := "0.8"
		if i == 0 {
			prio = "1.0"
		}
		entries = append(entries, Entry{Loc: base + p, Priority: prio})
	}
	for _, c := range categories {
		entries = append(entries, Entry{Loc: base + "/projects/" + url.PathEscape(c), Priority: "0.7"})
	}
	for _, rec := range records {
		category, _ := rec.String("category")
		slug, _ := rec.String("slug")
		if category == "" || slug == "" {
			continue
		}
		prio := "0.6"
		if v, ok := rec.Get("featured"); ok && v == true {
			prio = "0.8"
		}
		entries = append(entries, Entry{
			Loc:      base + "/projects/" + url.PathEscape(category) + "/" + url.PathEscape(slug),
			Priority: prio,
		})
	}
	return entries, nil
}

func parseBase(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", errors.New("site URL is required (set site.url or --base-url)")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid site URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("site URL must be absolute http(s): %q", raw)
	}
	return raw, nil
}

// Document builds the urlset element tree.
func Document(entries []Entry) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)
	for _, e := range entries {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(e.Loc)
		if e.Priority != "" {
			u.CreateElement("priority").SetText(e.Priority)
		}
	}
	return doc
}

// Render serializes entries as an indented document ending in one newline.
func Render(entries []Entry) ([]byte, error) {
	raw, err := Document(entries).WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize sitemap: %w", err)
	}
	pretty, _, err := format.PrettifyXML(raw, "  ")
	if err != nil {
		return nil, err
	}
	out, _, err := finalizer.NormalizeEOF(pretty, false, "\n")
	return out, err
}
