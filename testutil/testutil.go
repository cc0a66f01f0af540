// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/IronBlyzer/Movies/cliparse"
	"github.com/IronBlyzer/Movies/db"
	"github.com/IronBlyzer/Movies/models"
)

// TestDBURL is an in-memory SQLite database; each SetupTestDB gets its own
const TestDBURL = ":memory:"

// ErrStoreDown is returned by the handle from FailingHandle
var ErrStoreDown = errors.New("store unavailable")

// SetupTestDB opens a fresh in-memory document store and returns a handle
// to it. The store is closed when the test ends.
func SetupTestDB(t *testing.T) *db.Handle {
	t.Helper()

	ctx := context.Background()
	store, err := db.OpenSQL(ctx, cliparse.DatabaseSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	handle := db.NewHandle(func(context.Context) (db.Store, error) {
		return db.Instrument(store), nil
	})
	t.Cleanup(func() {
		handle.Close(ctx)
	})

	return handle
}

// SetupMongoDB returns a handle to a throwaway database on the MongoDB
// server at MONGODB_URI, skipping the test when the variable is unset. The
// database is dropped when the test ends.
func SetupMongoDB(t *testing.T) *db.Handle {
	t.Helper()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set; skipping MongoDB tests")
	}

	ctx := context.Background()
	store, err := db.OpenMongo(ctx, uri, "movies_test_"+bson.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("Failed to open MongoDB: %v", err)
	}

	handle := db.NewHandle(func(context.Context) (db.Store, error) {
		return db.Instrument(store), nil
	})
	t.Cleanup(func() {
		store.Drop(ctx)
		store.Close(ctx)
	})

	return handle
}

// FailingHandle returns a handle whose store can never be opened
func FailingHandle() *db.Handle {
	return db.NewHandle(func(context.Context) (db.Store, error) {
		return nil, ErrStoreDown
	})
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseURL:  TestDBURL,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseName: "test_mflix",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// SeedDocument inserts doc into collection and returns its new ID
func SeedDocument(t *testing.T, handle *db.Handle, collection string, doc models.Document) bson.ObjectID {
	t.Helper()

	ctx := context.Background()
	coll, err := handle.Collection(ctx, collection)
	if err != nil {
		t.Fatalf("Failed to open collection %s: %v", collection, err)
	}

	id, err := coll.InsertOne(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to seed %s: %v", collection, err)
	}
	return id
}

// FetchDocument reads a document straight from the store, nil if missing
func FetchDocument(t *testing.T, handle *db.Handle, collection string, id bson.ObjectID) models.Document {
	t.Helper()

	ctx := context.Background()
	coll, err := handle.Collection(ctx, collection)
	if err != nil {
		t.Fatalf("Failed to open collection %s: %v", collection, err)
	}

	doc, err := coll.FindOne(ctx, db.ByID(id))
	if err != nil {
		t.Fatalf("Failed to fetch %s %s: %v", collection, id.Hex(), err)
	}
	return doc
}

// MakeRequest creates an HTTP test request. A string body is sent as-is,
// anything else is JSON-encoded.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided value
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertFault checks a generic failure envelope: {"status": status, "data": payload}
func AssertFault(t *testing.T, w *httptest.ResponseRecorder, status int, payload string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp struct {
		Status int    `json:"status"`
		Data   string `json:"data"`
	}
	AssertJSON(t, w, &resp)
	if resp.Status != status {
		t.Errorf("Expected envelope status %d, got %d", status, resp.Status)
	}
	if resp.Data != payload {
		t.Errorf("Expected envelope data %q, got %q", payload, resp.Data)
	}
}

// AssertMessage checks a message envelope: {"status": status, "msg": msg}
func AssertMessage(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.MessageEnvelope
	AssertJSON(t, w, &resp)
	if resp.Status != status {
		t.Errorf("Expected envelope status %d, got %d", status, resp.Status)
	}
	if resp.Msg != msg {
		t.Errorf("Expected msg %q, got %q", msg, resp.Msg)
	}
}
