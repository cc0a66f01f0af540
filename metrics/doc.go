// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus collectors for HTTP requests and
// document store operations. Call Init once at startup; the router serves
// them on GET /metrics.
package metrics
