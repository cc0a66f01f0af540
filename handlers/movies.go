// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/IronBlyzer/Movies/db"
	"github.com/IronBlyzer/Movies/models"
)

type MovieHandler struct {
	resource documentResource
}

func NewMovieHandler(handle *db.Handle) *MovieHandler {
	return &MovieHandler{resource: documentResource{
		db:         handle,
		name:       "movie",
		collection: models.CollectionMovies,
		idParam:    "id",
		notFound:   models.MsgMovieNotFound,
		createFail: models.MsgServerError,
	}}
}

// Create handles POST /movies/{id} and POST /movies.
// The path id is ignored; the stored document gets a new _id.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.resource.create(w, r)
}

// Resource dispatches /movies/{id} by method: GET, POST, PUT and DELETE
func (h *MovieHandler) Resource() http.HandlerFunc {
	return h.resource.routes().ServeHTTP
}
