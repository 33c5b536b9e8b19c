// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package questionbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jwen/qbank/internal/recordstore"
)

// MigrateSummary holds the counts from one migration run.
type MigrateSummary struct {
	Migrated int
	Skipped  int

	// BackupPath is where the pre-migration file was copied. Empty when
	// there was nothing to migrate.
	BackupPath string
}

// Migrate upgrades a question file written before the parent/child
// structure existed, adding structureType and parentId defaults to
// records missing them. The original file is copied to a timestamped
// backup first, and the file is rewritten only when something changed.
// Records already carrying both fields are left alone, so repeated runs
// are harmless, and unknown fields survive the rewrite untouched.
//
// This operates on the raw file rather than the typed bank: legacy
// records predate the current schema, and decoding them into the Question
// struct would silently drop fields it does not know.
func Migrate(ctx context.Context, path string, w io.Writer) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "%s does not exist, nothing to migrate\n", path)
		return summary, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	backupPath := path + ".bak_" + time.Now().Format("20060102150405")
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing backup %s: %w", backupPath, err)
	}
	summary.BackupPath = backupPath
	fmt.Fprintf(w, "backed up %s to %s\n", path, backupPath)

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", path, recordstore.ErrParse, err)
	}

	for _, rec := range records {
		_, hasStructure := rec["structureType"]
		_, hasParent := rec["parentId"]
		if hasStructure && hasParent {
			summary.Skipped++
			continue
		}
		if !hasStructure {
			rec["structureType"] = "ATOMIC"
		}
		if !hasParent {
			rec["parentId"] = nil
		}
		summary.Migrated++
	}

	if summary.Migrated > 0 {
		if err := recordstore.OpenFile(path).Save(ctx, records); err != nil {
			return summary, fmt.Errorf("rewriting %s: %w", path, err)
		}
		fmt.Fprintf(w, "rewrote %s\n", path)
	}

	fmt.Fprintf(w, "migrated: %d, skipped: %d\n", summary.Migrated, summary.Skipped)
	return summary, nil
}
