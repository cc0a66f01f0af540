// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON response helpers.

# Middleware

  - WithLogging: request ID (X-Request-ID, generated with uuid when absent),
    start/completion log lines with status and duration
  - WithMetrics: Prometheus request counter and latency per route
  - RecoverPanic: turns panics into the generic 500 envelope
  - CORS: reflects the Origin header and answers preflight requests

The router composes them per route:

	mux.Handle("/movies/{id}", middleware.WithMetrics("movie",
		middleware.WithLogging(movieHandler.Resource())))

# Responses

Every API response is one of two envelopes:

	middleware.DataResponse(w, 200, doc)                  // {"status":200,"data":{...}}
	middleware.MessageResponse(w, 404, "Movie not found") // {"status":404,"msg":"Movie not found"}

JSONResponse writes any value with Content-Type application/json.

# Request Helpers

	ParseJSONBody(r, &v) // decodes and closes the body
	GetClientIP(r)       // X-Forwarded-For, X-Real-IP, RemoteAddr
	Logger(ctx)          // request-scoped slog.Logger
*/
package middleware
