// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates the document table for the given SQL dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB, dialect string) error {
	schema, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDatabaseType, dialect)
	}

	_, err := conn.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

var schemas = map[string]string{
	dialectSQLite:   sqliteSchema,
	dialectPostgres: postgresSchema,
}

const sqliteSchema = `
-- Documents of every collection, stored as JSON text
CREATE TABLE IF NOT EXISTS document (
    id TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    doc TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_document_collection ON document(collection);
CREATE INDEX IF NOT EXISTS idx_document_movie_id ON document(collection, json_extract(doc, '$.movie_id'));
`

const postgresSchema = `
-- Documents of every collection, stored as JSONB
CREATE TABLE IF NOT EXISTS document (
    id TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    doc JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_document_collection ON document(collection);
CREATE INDEX IF NOT EXISTS idx_document_movie_id ON document(collection, (doc->>'movie_id'));
`
