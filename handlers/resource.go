// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/IronBlyzer/Movies/db"
	"github.com/IronBlyzer/Movies/middleware"
	"github.com/IronBlyzer/Movies/models"
)

var errNullBody = errors.New("request body is null")

// documentResource implements the four verbs over one collection, keyed by
// a path parameter. Movies and comments differ only in the fields below.
type documentResource struct {
	db         *db.Handle
	name       string // for logs
	collection string
	idParam    string
	notFound   string // DELETE matched nothing
	createFail string // POST fault payload

	// prepare adjusts a new document before insertion.
	prepare func(r *http.Request, doc models.Document) error
}

func (res *documentResource) fault(w http.ResponseWriter, r *http.Request, status int, payload, op string, err error) {
	middleware.Logger(r.Context()).Error(op+" "+res.name+" failed",
		"error", err,
		"path", r.URL.Path,
	)
	middleware.DataResponse(w, status, payload)
}

func (res *documentResource) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coll, err := res.db.Collection(ctx, res.collection)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, models.MsgServerError, "get", err)
		return
	}

	id, err := pathID(r, res.idParam)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, models.MsgServerError, "get", err)
		return
	}

	doc, err := coll.FindOne(ctx, db.ByID(id))
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, models.MsgServerError, "get", err)
		return
	}

	// A missing document is still a 200, with "movie": null
	middleware.DataResponse(w, http.StatusOK, models.MovieData{Movie: doc})
}

func (res *documentResource) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coll, err := res.db.Collection(ctx, res.collection)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, res.createFail, "create", err)
		return
	}

	doc, err := readDocument(r)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, res.createFail, "create", err)
		return
	}

	// Identifiers are always assigned by the store
	delete(doc, models.FieldID)

	if res.prepare != nil {
		if err := res.prepare(r, doc); err != nil {
			res.fault(w, r, http.StatusBadRequest, res.createFail, "create", err)
			return
		}
	}

	id, err := coll.InsertOne(ctx, doc)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, res.createFail, "create", err)
		return
	}

	created, err := coll.FindOne(ctx, db.ByID(id))
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, res.createFail, "create", err)
		return
	}

	middleware.Logger(ctx).Info(res.name+" created", "id", id.Hex())

	middleware.DataResponse(w, http.StatusOK, created)
}

func (res *documentResource) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coll, err := res.db.Collection(ctx, res.collection)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, models.MsgServerError, "update", err)
		return
	}

	id, err := pathID(r, res.idParam)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, models.MsgServerError, "update", err)
		return
	}

	fields, err := readDocument(r)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, models.MsgServerError, "update", err)
		return
	}

	// Merge only: fields missing from the body are left untouched
	result, err := coll.UpdateOne(ctx, db.ByID(id), fields)
	if err != nil {
		res.fault(w, r, http.StatusBadRequest, models.MsgServerError, "update", err)
		return
	}

	middleware.DataResponse(w, http.StatusOK, result)
}

func (res *documentResource) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coll, err := res.db.Collection(ctx, res.collection)
	if err != nil {
		res.fault(w, r, http.StatusInternalServerError, models.MsgServerError, "delete", err)
		return
	}

	id, err := pathID(r, res.idParam)
	if err != nil {
		res.fault(w, r, http.StatusInternalServerError, models.MsgServerError, "delete", err)
		return
	}

	deleted, err := coll.DeleteOne(ctx, db.ByID(id))
	if err != nil {
		res.fault(w, r, http.StatusInternalServerError, models.MsgServerError, "delete", err)
		return
	}

	if deleted != 1 {
		middleware.MessageResponse(w, http.StatusNotFound, res.notFound)
		return
	}

	middleware.Logger(ctx).Info(res.name+" deleted", "id", id.Hex())

	w.WriteHeader(http.StatusOK)
}

func (res *documentResource) routes() Routes {
	return Routes{
		MethodGet:    res.get,
		MethodPost:   res.create,
		MethodPut:    res.update,
		MethodDelete: res.delete,
	}
}

// pathID parses a 24-hex ObjectID path parameter.
func pathID(r *http.Request, name string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(r.PathValue(name))
}

// readDocument decodes the body as a JSON object.
func readDocument(r *http.Request) (models.Document, error) {
	var doc models.Document
	if err := middleware.ParseJSONBody(r, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errNullBody
	}
	return doc, nil
}
