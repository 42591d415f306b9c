package content

import "encoding/json"

// Kind names a JSON value type.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindNull    Kind = "null"
)

// KindOf classifies a value decoded by ParseMeta. Numbers with no fractional
// part are integers, as in JSON Schema.
func KindOf(v any) Kind {
	switch x := v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBoolean
	case json.Number:
		if _, ok := asInteger(x); ok {
			return KindInteger
		}
		return KindNumber
	case int, int64:
		return KindInteger
	case float64:
		return KindNumber
	case []any:
		return KindArray
	}
	return KindObject
}
