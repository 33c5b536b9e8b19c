// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the questions matching f to path. An empty filter
// exports the whole bank.
func (b *Bank) ExportYAML(path string, f Filter) error {
	data, err := yaml.Marshal(b.Find(f))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the questions matching f to path.
func (b *Bank) ExportJSON(path string, f Filter) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.Find(f)); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
