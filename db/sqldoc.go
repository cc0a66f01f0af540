// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/v2/bson"
	_ "modernc.org/sqlite"

	"github.com/IronBlyzer/Movies/models"
)

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

var fieldName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// SQLStore keeps documents as JSON in a single SQL table, one row per
// document, keyed by ObjectID hex.
type SQLStore struct {
	conn    *sql.DB
	dialect string
}

// OpenSQL opens a SQLite or PostgreSQL database and creates the schema.
// dialect is also the database/sql driver name.
func OpenSQL(ctx context.Context, dialect, dsn string) (*SQLStore, error) {
	if _, ok := schemas[dialect]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDatabaseType, dialect)
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Every connection to an in-memory SQLite database is a separate database.
	if dialect == dialectSQLite && (strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")) {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s, err := NewSQLStore(ctx, conn, dialect)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open connection, creating the schema if needed.
func NewSQLStore(ctx context.Context, conn *sql.DB, dialect string) (*SQLStore, error) {
	if err := CreateSchema(ctx, conn, dialect); err != nil {
		return nil, err
	}
	return &SQLStore{conn: conn, dialect: dialect}, nil
}

func (s *SQLStore) Collection(name string) Collection {
	return &sqlCollection{store: s, name: name}
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *SQLStore) Close(ctx context.Context) error {
	return s.conn.Close()
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) fieldExpr(field string) string {
	if s.dialect == dialectPostgres {
		return "doc->>'" + field + "'"
	}
	return "json_extract(doc, '$." + field + "')"
}

type sqlCollection struct {
	store *SQLStore
	name  string
}

// where returns the WHERE clause and its arguments for f.
func (c *sqlCollection) where(f Filter) (string, []any, error) {
	if f.isID() {
		return "collection = ? AND id = ?", []any{c.name, f.Value.Hex()}, nil
	}
	if !fieldName.MatchString(f.Field) {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidField, f.Field)
	}
	return "collection = ? AND " + c.store.fieldExpr(f.Field) + " = ?", []any{c.name, f.Value.Hex()}, nil
}

func (c *sqlCollection) FindOne(ctx context.Context, f Filter) (models.Document, error) {
	cond, args, err := c.where(f)
	if err != nil {
		return nil, err
	}

	var raw []byte
	query := c.store.rebind("SELECT doc FROM document WHERE " + cond + " ORDER BY id LIMIT 1")
	err = c.store.conn.QueryRowContext(ctx, query, args...).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", c.name, err)
	}

	return decodeDocument(raw)
}

func (c *sqlCollection) Find(ctx context.Context, f Filter) ([]models.Document, error) {
	cond, args, err := c.where(f)
	if err != nil {
		return nil, err
	}

	rows, err := c.store.conn.QueryContext(ctx, c.store.rebind("SELECT doc FROM document WHERE "+cond+" ORDER BY id"), args...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.name, err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.name, err)
		}
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.name, err)
	}

	return docs, nil
}

func (c *sqlCollection) InsertOne(ctx context.Context, doc models.Document) (bson.ObjectID, error) {
	id := bson.NewObjectID()

	stored := make(models.Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored[models.FieldID] = id

	raw, err := json.Marshal(stored)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("encode document: %w", err)
	}

	_, err = c.store.conn.ExecContext(ctx, c.store.rebind(`
		INSERT INTO document (id, collection, doc)
		VALUES (?, ?, ?)
	`), id.Hex(), c.name, string(raw))
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert into %s: %w", c.name, err)
	}

	return id, nil
}

// UpdateOne merges fields into the first matching document, like $set.
func (c *sqlCollection) UpdateOne(ctx context.Context, f Filter, fields models.Document) (models.UpdateResult, error) {
	if len(fields) == 0 {
		return models.UpdateResult{}, ErrEmptyUpdate
	}
	if _, ok := fields[models.FieldID]; ok {
		return models.UpdateResult{}, ErrImmutableID
	}

	cond, args, err := c.where(f)
	if err != nil {
		return models.UpdateResult{}, err
	}

	tx, err := c.store.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var id string
	var raw []byte
	query := c.store.rebind("SELECT id, doc FROM document WHERE " + cond + " ORDER BY id LIMIT 1")
	err = tx.QueryRowContext(ctx, query, args...).Scan(&id, &raw)
	if err == sql.ErrNoRows {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update in %s: %w", c.name, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return models.UpdateResult{}, err
	}
	for k, v := range fields {
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("encode document: %w", err)
	}

	before, err := canonical(raw)
	if err != nil {
		return models.UpdateResult{}, err
	}
	result := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if bytes.Equal(before, merged) {
		return result, nil
	}

	_, err = tx.ExecContext(ctx, c.store.rebind("UPDATE document SET doc = ? WHERE id = ?"), string(merged), id)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update in %s: %w", c.name, err)
	}
	if err := tx.Commit(); err != nil {
		return models.UpdateResult{}, fmt.Errorf("commit update: %w", err)
	}

	result.ModifiedCount = 1
	return result, nil
}

func (c *sqlCollection) DeleteOne(ctx context.Context, f Filter) (int64, error) {
	cond, args, err := c.where(f)
	if err != nil {
		return 0, err
	}

	query := c.store.rebind("DELETE FROM document WHERE id = (SELECT id FROM document WHERE " + cond + " ORDER BY id LIMIT 1)")
	res, err := c.store.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", c.name, err)
	}
	return res.RowsAffected()
}

func decodeDocument(raw []byte) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		return nil, errors.New("decode document: stored value is null")
	}
	return doc, nil
}

// canonical re-encodes stored JSON so it compares byte-for-byte with
// json.Marshal output (sorted keys, no whitespace).
func canonical(raw []byte) ([]byte, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
