// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Movies API server.

The Movies API is a small JSON service over two document collections,
movies and comments, stored in MongoDB or in a JSON document table on
SQLite or PostgreSQL.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	MONGODB_URI=mongodb://localhost:27017 go run .

Or with flags:

	go run . -p 3000 -d "mongodb://localhost:27017" -n sample_mflix

Without a MongoDB server:

	go run . -t sqlite -d "file:movies.db"

# Configuration

Required settings:

  - DATABASE_URL or MONGODB_URI (-d): store connection string

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): mongo, sqlite or postgres (default: mongo)
  - DATABASE_NAME (-n): MongoDB database (default: sample_mflix)
  - LOG_LEVEL (-log-level): debug, info, warn, error (default: info)
  - LOG_FORMAT (-log-format): text or json (default: text)
  - -env-file: dotenv file read before the environment (default: .env)

# Architecture

  - handlers: resource handlers with per-verb dispatch
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, request IDs, metrics, panic recovery, CORS, JSON helpers
  - db: Store interface, MongoDB and SQL backends, lazy shared handle
  - metrics: Prometheus collectors
  - models: documents and response envelopes
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
