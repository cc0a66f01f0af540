// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: MongoDB URI, SQLite DSN or PostgreSQL connection string (required)
  - DatabaseType: mongo, sqlite or postgres (default: mongo)
  - DatabaseName: MongoDB database (default: sample_mflix)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: text or json (default: text)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-n           Database name
	-log-level   Log level
	-log-format  Log format
	-env-file    dotenv file to load (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d (then MONGODB_URI)
	DATABASE_TYPE → -t
	DATABASE_NAME → -n
	LOG_LEVEL     → -log-level
	LOG_FORMAT    → -log-format

CLI flags take precedence over environment variables. The dotenv file is
loaded before the fallback and never overrides variables that are already
set; a missing file is not an error.

# Validation

ParseFlags returns an error if:

  - no database URL is configured
  - PORT is not a number
  - the database type is not one of mongo, sqlite, postgres
*/
package cliparse
