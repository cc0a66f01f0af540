// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the document store behind the Movies API.

# Store and Collection

Handlers see only two interfaces:

	type Store interface {
		Collection(name string) Collection
		Ping(ctx context.Context) error
		Close(ctx context.Context) error
	}

Collection offers FindOne, Find, InsertOne, UpdateOne and DeleteOne, each
taking a Filter built with ByID or ByField. FindOne returns (nil, nil) when
nothing matches. UpdateOne has $set semantics and reports counts in a
models.UpdateResult.

# Backends

  - MongoStore: MongoDB via go.mongodb.org/mongo-driver/v2
  - SQLStore: one JSON document table on SQLite (modernc.org/sqlite) or
    PostgreSQL (github.com/lib/pq)

Both assign bson.ObjectID identifiers, so a document created on one backend
has the same shape on the other.

# Shared Handle

Handle opens the store on first use and shares it across goroutines:

	handle := db.NewHandle(db.NewOpener(cfg))
	movies, err := handle.Collection(ctx, models.CollectionMovies)

A failed open is returned to the caller and retried on the next call.
Stores opened through NewOpener are wrapped with Instrument, which counts
and times every operation in Prometheus.

# Schema

CreateSchema initializes the SQL document table:

	if err := db.CreateSchema(ctx, conn, "sqlite"); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and indexes.

	document(id TEXT PRIMARY KEY, collection TEXT, doc TEXT|JSONB)

Indexes on collection and on (collection, doc.movie_id).
*/
package db
