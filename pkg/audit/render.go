package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/fulmenhq/folio/internal/assets"
	"github.com/mattn/go-runewidth"
)

// Format selects a report rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts text, json, markdown (or md).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unsupported report format %q (want text, json or markdown)", s)
}

// Write renders r to w in the requested format.
func Write(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	default:
		return WriteText(w, r)
	}
}

// WriteText prints one block per project with issues, a per-category table
// and the closing summary line.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	for _, p := range r.Projects {
		fmt.Fprintf(&b, "\n[%s]\n", p.ID())
		for _, issue := range p.Issues {
			fmt.Fprintf(&b, "  - %s\n", issue)
		}
	}

	if r.Total == 0 {
		b.WriteString("No projects found under " + r.ProjectsDir + ".\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	width := runewidth.StringWidth("category")
	for _, c := range r.Categories {
		if cw := runewidth.StringWidth(c.Name); cw > width {
			width = cw
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %8s  %11s\n", runewidth.FillRight("category", width), "projects", "with issues")
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "%s  %8d  %11d\n", runewidth.FillRight(c.Name, width), c.Projects, c.WithIssues)
	}

	fmt.Fprintf(&b, "\nChecked %d projects, %d with issues.\n", r.Total, r.WithIssues)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON emits the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteMarkdown renders the embedded handlebars report template.
func WriteMarkdown(w io.Writer, r *Report) error {
	src, ok := assets.GetTemplate(assets.AuditReportTemplate)
	if !ok {
		return fmt.Errorf("embedded template not found: %s", assets.AuditReportTemplate)
	}
	tpl, err := raymond.Parse(string(src))
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	tpl.RegisterHelper("plural", func(n interface{}) string {
		if v, _ := strconv.Atoi(fmt.Sprintf("%v", n)); v == 1 {
			return ""
		}
		return "s"
	})

	out, err := tpl.Exec(templateData(r))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func templateData(r *Report) map[string]interface{} {
	cats := make([]map[string]interface{}, 0, len(r.Categories))
	for _, c := range r.Categories {
		cats = append(cats, map[string]interface{}{
			"name":       c.Name,
			"projects":   c.Projects,
			"withIssues": c.WithIssues,
		})
	}
	projects := make([]map[string]interface{}, 0, len(r.Projects))
	for _, p := range r.Projects {
		projects = append(projects, map[string]interface{}{
			"id":     p.ID(),
			"issues": p.Issues,
		})
	}
	return map[string]interface{}{
		"projectsDir": r.ProjectsDir,
		"total":       r.Total,
		"withIssues":  r.WithIssues,
		"categories":  cats,
		"projects":    projects,
	}
}
