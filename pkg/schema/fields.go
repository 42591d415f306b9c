package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fulmenhq/folio/internal/assets"
	"github.com/fulmenhq/folio/pkg/content"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// FieldProblem is a top-level property that is missing or has the wrong type.
// Expected is the first type the schema declares for the property; Got is the
// JSON type of the value found.
type FieldProblem struct {
	Field    string
	Missing  bool
	Expected string
	Got      string
}

// fieldSpec is a property of the schema root, in document order.
type fieldSpec struct {
	name     string
	expected string
}

var (
	metaOnce      sync.Once
	metaValidator *Validator
	metaErr       error
)

// MetaValidator returns the shared validator for project meta.json files.
func MetaValidator() (*Validator, error) {
	metaOnce.Do(func() {
		metaValidator, metaErr = NewValidatorFromEmbeddedPath(assets.MetaSchemaPath)
	})
	return metaValidator, metaErr
}

// CheckFields validates a JSON object and reduces the result to one problem
// per top-level property: "required" errors become Missing problems, and any
// other error under a property becomes a type problem for that property.
// Problems follow the order of the schema's properties.
func (v *Validator) CheckFields(doc []byte) ([]FieldProblem, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}

	var values map[string]any
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("document is not a JSON object: %w", err)
	}

	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	missing := map[string]bool{}
	wrong := map[string]bool{}
	for _, verr := range res.Errors() {
		if verr.Type() == "required" {
			if name, ok := verr.Details()["property"].(string); ok {
				missing[name] = true
			}
			continue
		}
		if name := topLevelName(verr.Field()); name != "" {
			wrong[name] = true
		}
	}

	problems := make([]FieldProblem, 0, len(missing)+len(wrong))
	emit := func(name, expected string) {
		switch {
		case missing[name]:
			problems = append(problems, FieldProblem{Field: name, Missing: true, Expected: expected})
		case wrong[name]:
			problems = append(problems, FieldProblem{Field: name, Expected: expected, Got: string(content.KindOf(values[name]))})
		default:
			return
		}
		delete(missing, name)
		delete(wrong, name)
	}
	for _, f := range v.fields {
		emit(f.name, f.expected)
	}

	// Names the properties block does not declare, e.g. required-only keys.
	var rest []string
	for name := range missing {
		rest = append(rest, name)
	}
	for name := range wrong {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		emit(name, "")
	}
	return problems, nil
}

// topLevelName maps an error field such as "tags.0" to "tags". Root errors
// have no property and yield "".
func topLevelName(field string) string {
	if field == "" || field == "(root)" {
		return ""
	}
	name, _, _ := strings.Cut(field, ".")
	return name
}

// topLevelFields reads the root "properties" mapping in document order. JSON
// schemas parse as YAML, so one reader covers both encodings.
func topLevelFields(schemaBytes []byte) []fieldSpec {
	var doc yaml.Node
	if err := yaml.Unmarshal(schemaBytes, &doc); err != nil || len(doc.Content) == 0 {
		return nil
	}
	props := mappingValue(doc.Content[0], "properties")
	if props == nil || props.Kind != yaml.MappingNode {
		return nil
	}
	fields := make([]fieldSpec, 0, len(props.Content)/2)
	for i := 0; i+1 < len(props.Content); i += 2 {
		fields = append(fields, fieldSpec{
			name:     props.Content[i].Value,
			expected: declaredType(props.Content[i+1]),
		})
	}
	return fields
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// declaredType is the first type a property names, looking into oneOf and
// anyOf branches when it has no type of its own.
func declaredType(n *yaml.Node) string {
	if t := mappingValue(n, "type"); t != nil {
		switch t.Kind {
		case yaml.ScalarNode:
			return t.Value
		case yaml.SequenceNode:
			if len(t.Content) > 0 {
				return t.Content[0].Value
			}
		}
	}
	for _, key := range []string{"oneOf", "anyOf"} {
		branches := mappingValue(n, key)
		if branches == nil || branches.Kind != yaml.SequenceNode {
			continue
		}
		for _, b := range branches.Content {
			if t := declaredType(b); t != "" {
				return t
			}
		}
	}
	return ""
}
