// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recordstore persists ordered collections of records as single
// replaceable units. A collection is loaded whole at startup and written
// back whole after mutation; there are no partial reads or appends.
//
// Two backends implement the Store interface: a JSON file per collection
// (the data files users edit and sync), and a SQLite database holding one
// table per collection for larger banks. Which backend serves a collection
// is a configuration choice; the index and bank logic never know.
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jwen/qbank/pkg/types"
)

// Collection names used by the qbank stores.
const (
	CollectionKnowledgePoints = "knowledge_points"
	CollectionQuestions       = "questions"
)

// ErrParse marks backing content that is present but malformed. Store
// constructors treat it as fatal; there is no self-healing to an empty
// collection.
var ErrParse = errors.New("malformed record data")

// Store persists one ordered collection of records.
type Store interface {
	// Load decodes the entire collection into out, which must be a
	// pointer to a slice. An absent or empty backing resource loads an
	// empty collection. Malformed content fails with ErrParse.
	Load(ctx context.Context, out any) error

	// Save replaces the backing resource's contents with the collection
	// in. The previous contents are not recoverable afterwards.
	Save(ctx context.Context, in any) error

	// Close releases any resources held by the store.
	Close() error
}

const dbFile = "qbank.db"

// Open returns the record store serving one named collection under cfg.
// The file backend maps a collection to <data_dir>/<collection>.json; the
// sqlite backend maps it to a table inside <data_dir>/qbank.db.
func Open(cfg types.StoreConfig, collection string) (Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	switch cfg.Backend {
	case types.BackendFile, "":
		return OpenFile(filepath.Join(dataDir, collection+".json")), nil
	case types.BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, dbFile), collection)
	default:
		return nil, fmt.Errorf("unknown storage backend %q: use file or sqlite", cfg.Backend)
	}
}
