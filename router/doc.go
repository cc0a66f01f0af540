// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Movies API.

# Route Registration

NewRouter creates the route table and wraps it in panic recovery and CORS:

	h := router.NewRouter(handle)

# Endpoints

Service:

	GET /        - Banner
	GET /health  - 200 OK, or 503 when the store cannot be reached
	GET /metrics - Prometheus metrics

Movies (verb dispatch inside the handler):

	POST /movies      - Create movie
	ANY  /movies/{id} - GET, POST, PUT, DELETE one movie

Comments:

	ANY /movies/{id}/comments       - List comments of a movie
	ANY /movies/{id}/comments/{cid} - GET, POST, PUT, DELETE one comment

Resource routes are registered without a method so that unsupported verbs
reach the handler's own 400 response instead of the mux's 405.

# Handler Initialization

	movieHandler := handlers.NewMovieHandler(handle)
	commentHandler := handlers.NewCommentHandler(handle)

Every resource route is wrapped with WithMetrics and WithLogging.
*/
package router
