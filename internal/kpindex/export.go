// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kpindex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the flat knowledge point collection to path.
func (ix *Index) ExportYAML(path string) error {
	data, err := yaml.Marshal(ix.kps)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the flat knowledge point collection to path. The
// output is a valid import-kps payload, so an export can seed another
// bank.
func (ix *Index) ExportJSON(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ix.kps); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
