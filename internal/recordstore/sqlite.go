// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

// collectionName restricts table names to the identifiers this package
// interpolates into SQL.
var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// SQLite is a Store backed by one table of a shared SQLite database. Each
// record is a JSON body in its own row; row order is collection order.
type SQLite struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens or creates the database at path and ensures the table
// for the named collection exists.
func OpenSQLite(path, collection string) (*SQLite, error) {
	if !collectionName.MatchString(collection) {
		return nil, fmt.Errorf("invalid collection name %q", collection)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLite{db: db, table: collection}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) createSchema() error {
	stmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			body TEXT NOT NULL
		)`, s.table)
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context, out any) error {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT body FROM %s ORDER BY seq`, s.table))
	if err != nil {
		return fmt.Errorf("querying %s: %w", s.table, err)
	}
	defer rows.Close()

	var bodies []json.RawMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		bodies = append(bodies, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", s.table, err)
	}

	combined, err := json.Marshal(bodies)
	if err != nil {
		return fmt.Errorf("decoding %s: %w: %v", s.table, ErrParse, err)
	}
	if err := json.Unmarshal(combined, out); err != nil {
		return fmt.Errorf("decoding %s: %w: %v", s.table, ErrParse, err)
	}
	return nil
}

// Save implements Store. The previous rows are replaced in one transaction.
func (s *SQLite) Save(ctx context.Context, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}
	var bodies []json.RawMessage
	if err := json.Unmarshal(data, &bodies); err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table)); err != nil {
		return fmt.Errorf("clearing %s: %w", s.table, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (body) VALUES (?)`, s.table))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, body := range bodies {
		if _, err := stmt.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("inserting record: %w", err)
		}
	}

	return tx.Commit()
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
