package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

// SQLDialect picks the placeholder style of the documents queries.
type SQLDialect int

const (
	DialectSQLite SQLDialect = iota
	DialectPostgres
)

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT PRIMARY KEY,
	body TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

var sqlQueries = map[SQLDialect]struct{ selectDoc, upsertDoc string }{
	DialectSQLite: {
		selectDoc: `SELECT body FROM documents WHERE collection = ?`,
		upsertDoc: `INSERT INTO documents (collection, body, updated_at) VALUES (?, ?, ?)
ON CONFLICT (collection) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
	},
	DialectPostgres: {
		selectDoc: `SELECT body FROM documents WHERE collection = $1`,
		upsertDoc: `INSERT INTO documents (collection, body, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (collection) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
	},
}

// SQLDocumentStore keeps every collection as one row of the documents table.
type SQLDocumentStore struct {
	DB      *sql.DB
	Dialect SQLDialect
}

// OpenSQLDocumentStore opens driver ("sqlite" or "postgres") and creates the documents
// table when it is missing.
func OpenSQLDocumentStore(ctx context.Context, driver, dsn string) (*SQLDocumentStore, error) {
	var dialect SQLDialect
	switch driver {
	case "sqlite":
		dialect = DialectSQLite
	case "postgres":
		dialect = DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		logging.Log.Errorf("STORE: failed to open %s: %v", driver, err)
		return nil, err
	}
	if dialect == DialectSQLite {
		// a single connection serializes writers on the database file
		db.SetMaxOpenConns(1)
	}

	store := &SQLDocumentStore{DB: db, Dialect: dialect}
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLDocumentStore) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, createDocumentsTable); err != nil {
		logging.Log.Errorf("STORE: failed to create documents table: %v", err)
		return err
	}
	return nil
}

func (s *SQLDocumentStore) Read(ctx context.Context, collection Collection, out any) error {
	var body string
	err := s.DB.QueryRowContext(ctx, sqlQueries[s.Dialect].selectDoc, string(collection)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDocumentNotFound
	}
	if err != nil {
		logging.Log.Errorf("STORE: failed to select %s: %v", collection, err)
		return err
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		logging.Log.Errorf("STORE: failed to decode %s: %v", collection, err)
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *SQLDocumentStore) Write(ctx context.Context, collection Collection, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		logging.Log.Errorf("STORE: failed to encode %s: %v", collection, err)
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	updatedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.DB.ExecContext(ctx, sqlQueries[s.Dialect].upsertDoc, string(collection), string(body), updatedAt); err != nil {
		logging.Log.Errorf("STORE: failed to upsert %s: %v", collection, err)
		return err
	}
	return nil
}

func (s *SQLDocumentStore) Close() error {
	return s.DB.Close()
}
