// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IronBlyzer/Movies/db"
	"github.com/IronBlyzer/Movies/handlers"
	"github.com/IronBlyzer/Movies/middleware"
)

const healthTimeout = 2 * time.Second

func NewRouter(handle *db.Handle) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	movieHandler := handlers.NewMovieHandler(handle)
	commentHandler := handlers.NewCommentHandler(handle)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := handle.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("UNAVAILABLE"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// Movies (method dispatch happens in the handler)
	mux.Handle("POST /movies", route("movie", movieHandler.Create))
	mux.Handle("/movies/{id}", route("movie", movieHandler.Resource()))

	// Comments; the list answers every method
	mux.Handle("/movies/{id}/comments", route("comments", commentHandler.List))
	mux.Handle("/movies/{id}/comments/{cid}", route("comment", commentHandler.Resource()))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("movies API v1"))
	})

	return middleware.RecoverPanic(middleware.CORS(mux))
}

// route wraps a resource handler so that even a recovered panic is logged
// with its request ID and counted under name.
func route(name string, h http.HandlerFunc) http.Handler {
	return middleware.WithMetrics(name, middleware.WithLogging(middleware.RecoverPanic(h).ServeHTTP))
}
