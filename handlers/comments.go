// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/IronBlyzer/Movies/db"
	"github.com/IronBlyzer/Movies/middleware"
	"github.com/IronBlyzer/Movies/models"
)

type CommentHandler struct {
	db       *db.Handle
	resource documentResource
}

func NewCommentHandler(handle *db.Handle) *CommentHandler {
	return &CommentHandler{
		db: handle,
		resource: documentResource{
			db:         handle,
			name:       "comment",
			collection: models.CollectionComments,
			idParam:    "cid",
			notFound:   models.MsgCommentMissing,
			createFail: models.MsgBadRequest,
			prepare:    linkMovie,
		},
	}
}

// linkMovie sets movie_id from the movie path segment, replacing whatever
// the client sent.
func linkMovie(r *http.Request, doc models.Document) error {
	movieID, err := pathID(r, "id")
	if err != nil {
		return fmt.Errorf("invalid movie id: %w", err)
	}
	doc[models.FieldMovieID] = movieID
	return nil
}

// List handles /movies/{id}/comments for every method.
// Returns all comments whose movie_id is the movie id; never null.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coll, err := h.db.Collection(ctx, models.CollectionComments)
	if err != nil {
		h.resource.fault(w, r, http.StatusInternalServerError, models.MsgServerError, "list", err)
		return
	}

	movieID, err := pathID(r, "id")
	if err != nil {
		h.resource.fault(w, r, http.StatusInternalServerError, models.MsgServerError, "list", err)
		return
	}

	comments, err := coll.Find(ctx, db.ByField(models.FieldMovieID, movieID))
	if err != nil {
		h.resource.fault(w, r, http.StatusInternalServerError, models.MsgServerError, "list", err)
		return
	}
	if comments == nil {
		comments = []models.Document{}
	}

	middleware.DataResponse(w, http.StatusOK, comments)
}

// Resource dispatches /movies/{id}/comments/{cid} by method. POST ignores
// {cid}; movie_id comes from {id}.
func (h *CommentHandler) Resource() http.HandlerFunc {
	return h.resource.routes().ServeHTTP
}
