// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File is a Store backed by a single JSON file holding the collection as a
// top-level array. Writes go through a temporary file in the same directory
// followed by a rename, so a failed write never leaves the target truncated.
type File struct {
	path string
}

// OpenFile returns a file-backed store for path. The file need not exist
// yet; a missing file reads as an empty collection.
func OpenFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Load implements Store.
func (f *File) Load(ctx context.Context, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return json.Unmarshal([]byte("[]"), out)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return json.Unmarshal([]byte("[]"), out)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w: %v", f.path, ErrParse, err)
	}
	return nil
}

// Save implements Store.
func (f *File) Save(ctx context.Context, in any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeCollection(in)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// Close implements Store. File stores hold no open resources.
func (f *File) Close() error { return nil }

// encodeCollection marshals the collection with two-space indentation and
// without HTML escaping, so non-ASCII record text stays readable in the file.
func encodeCollection(in any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(in); err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return buf.Bytes(), nil
}
