package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fulmenhq/folio/internal/assets"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Validator wraps a compiled schema for repeated validation.
type Validator struct {
	schema *gojsonschema.Schema
	fields []fieldSpec
}

func compileSchemaBytes(schemaBytes []byte) (*gojsonschema.Schema, error) {
	// YAML is a superset of JSON, so one parse path covers both encodings.
	var tmp any
	if err := yaml.Unmarshal(schemaBytes, &tmp); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	jb, err := json.Marshal(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema to JSON: %w", err)
	}
	sch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jb))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return sch, nil
}

// NewValidatorFromBytes compiles schema bytes (JSON or YAML) into a reusable validator.
func NewValidatorFromBytes(schemaBytes []byte) (*Validator, error) {
	sch, err := compileSchemaBytes(schemaBytes)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: sch, fields: topLevelFields(schemaBytes)}, nil
}

// NewValidatorFromEmbeddedPath loads a schema from folio's embedded schema assets.
func NewValidatorFromEmbeddedPath(relPath string) (*Validator, error) {
	data, ok := assets.GetSchema(relPath)
	if !ok || len(data) == 0 {
		return nil, fmt.Errorf("embedded schema not found: %s", relPath)
	}
	return NewValidatorFromBytes(data)
}

// IndexValidator returns a validator for the generated projects index.
func IndexValidator() (*Validator, error) {
	return NewValidatorFromEmbeddedPath(assets.IndexSchemaPath)
}

// ValidateJSON validates an encoded JSON document.
func (v *Validator) ValidateJSON(doc []byte) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return toResult(res), nil
}

// Validate applies the compiled schema to a Go value.
func (v *Validator) Validate(data any) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	res, err := v.schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return toResult(res), nil
}

func toResult(res *gojsonschema.Result) *Result {
	out := &Result{Valid: res.Valid()}
	for _, verr := range res.Errors() {
		field := verr.Field()
		if field == "" || field == "(root)" {
			field = "root"
		}
		out.Errors = append(out.Errors, ValidationError{
			Path:    field,
			Message: verr.Description(),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool {
		return out.Errors[i].Path < out.Errors[j].Path
	})
	return out
}

// Summary renders the errors one per line as "path: message".
func (r *Result) Summary() string {
	if r == nil || r.Valid {
		return ""
	}
	lines := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		lines = append(lines, e.Path+": "+e.Message)
	}
	return strings.Join(lines, "\n")
}
