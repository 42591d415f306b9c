package assets

import (
	"embed"
	"io/fs"
)

//go:embed embedded_schemas
var schemaFS embed.FS

//go:embed embedded_templates
var templateFS embed.FS

// Embedded asset paths, relative to their embed roots.
const (
	IndexSchemaPath     = "index/v1.0.0/projects-index.yaml"
	MetaSchemaPath      = "meta/v1.0.0/project-meta.yaml"
	AuditReportTemplate = "audit/report.md.hbs"
)

// GetSchema returns the embedded schema bytes by relative path (e.g. IndexSchemaPath).
func GetSchema(relPath string) ([]byte, bool) {
	data, err := fs.ReadFile(GetSchemasFS(), relPath)
	return data, err == nil
}

// GetTemplate returns the embedded template bytes by relative path.
func GetTemplate(relPath string) ([]byte, bool) {
	data, err := fs.ReadFile(GetTemplatesFS(), relPath)
	return data, err == nil
}

func GetSchemasFS() fs.FS {
	if sub, err := fs.Sub(schemaFS, "embedded_schemas"); err == nil {
		return sub
	}
	return schemaFS
}

func GetTemplatesFS() fs.FS {
	if sub, err := fs.Sub(templateFS, "embedded_templates"); err == nil {
		return sub
	}
	return templateFS
}
