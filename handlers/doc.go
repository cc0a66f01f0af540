// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Movies API.

# Handler Types

Each handler is a struct holding the shared store handle:

  - MovieHandler: one movie by _id
  - CommentHandler: one comment by _id, plus the per-movie comment list

Handlers are created via constructor functions that accept *db.Handle:

	movieHandler := handlers.NewMovieHandler(handle)

Every branch first obtains a collection from the handle, so the store is
opened on the first request if it was not opened at startup.

# Method Dispatch

A resource path is served by one handler that branches on the verb:

	mux.HandleFunc("/movies/{id}", movieHandler.Resource())

Resource returns a Routes table (Method → http.HandlerFunc). Verbs other
than GET, POST, PUT and DELETE get:

	400 {"status":400,"msg":"HTTP METHOD NOT FOUND"}

# Movies

	GET    /movies/{id} → 200 {"status":200,"data":{"movie":<doc|null>}}
	POST   /movies/{id} → 200 {"status":200,"data":<new doc>}
	PUT    /movies/{id} → 200 {"status":200,"data":<update counts>}
	DELETE /movies/{id} → 200 (empty) | 404 {"status":404,"msg":"Movie not found"}

A GET for an unknown id is a 200 with a null movie; a DELETE for an
unknown id is a 404. PUT merges the body into the document ($set).

# Comments

	ANY    /movies/{id}/comments       → 200 {"status":200,"data":[...]}
	GET    /movies/{id}/comments/{cid} → as movies
	POST   /movies/{id}/comments/{cid} → movie_id set from {id}
	PUT    /movies/{id}/comments/{cid} → as movies
	DELETE /movies/{id}/comments/{cid} → 404 msg "Comment not found"

# Faults

Any failure (bad ObjectID, bad JSON, store error) is logged and answered
with a fixed payload; no detail reaches the client:

	GET, PUT                → 400 {"status":400,"data":"SERVER ERROR"}
	POST /movies            → 400 {"status":400,"data":"SERVER ERROR"}
	POST .../comments/{cid} → 400 {"status":400,"data":"BAD REQUEST"}
	DELETE, comment list    → 500 {"status":500,"data":"SERVER ERROR"}
*/
package handlers
