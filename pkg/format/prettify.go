// Package format normalizes generated JSON and XML before it is written.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrInvalidJSON is returned when the input is not a single JSON value.
var ErrInvalidJSON = errors.New("invalid JSON")

// PrettifyJSON re-indents JSON with indent, or compacts it when indent is empty.
// Key order and string escaping are left exactly as in the input.
// It reports whether the output differs from the input.
func PrettifyJSON(input []byte, indent string) ([]byte, bool, error) {
	if !json.Valid(input) {
		return nil, false, ErrInvalidJSON
	}

	var buf bytes.Buffer
	var err error
	if indent == "" {
		err = json.Compact(&buf, input)
	} else {
		err = json.Indent(&buf, input, "", indent)
	}
	if err != nil {
		return nil, false, err
	}
	return buf.Bytes(), !bytes.Equal(input, buf.Bytes()), nil
}

// PrettifyXML re-indents an XML document. A tab indent uses tabs, anything
// else indents by its length in spaces; an empty indent returns the input.
func PrettifyXML(input []byte, indent string) ([]byte, bool, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(input); err != nil {
		return nil, false, fmt.Errorf("XML is not well-formed: %w", err)
	}
	if indent == "" {
		return input, false, nil
	}

	if strings.Contains(indent, "\t") {
		doc.IndentTabs()
	} else {
		doc.Indent(len(indent))
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, false, fmt.Errorf("failed to format XML: %w", err)
	}
	return out, !bytes.Equal(input, out), nil
}
