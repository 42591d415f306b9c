package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulmenhq/folio/pkg/content"
	"github.com/fulmenhq/folio/pkg/format"
	"github.com/fulmenhq/folio/pkg/format/finalizer"
	"github.com/fulmenhq/folio/pkg/safeio"
	"github.com/fulmenhq/folio/pkg/schema"
)

// Encode renders records as 2-space indented JSON without HTML escaping,
// ending in exactly one newline.
func Encode(records []*content.Meta) ([]byte, error) {
	if records == nil {
		records = []*content.Meta{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}

	pretty, _, err := format.PrettifyJSON(buf.Bytes(), "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to indent index: %w", err)
	}
	out, _, err := finalizer.NormalizeEOF(pretty, false, "\n")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Write replaces the index file wholesale, creating its directory when needed.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := safeio.WriteFilePreservePerms(path, data); err != nil {
		return fmt.Errorf("failed to write index %s: %w", path, err)
	}
	return nil
}

// Check validates encoded index bytes against the embedded record schema.
func Check(data []byte) (*schema.Result, error) {
	v, err := schema.IndexValidator()
	if err != nil {
		return nil, err
	}
	return v.ValidateJSON(data)
}
