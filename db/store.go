// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/IronBlyzer/Movies/models"
)

var (
	ErrEmptyUpdate         = errors.New("update document must not be empty")
	ErrImmutableID         = errors.New("_id is immutable")
	ErrInvalidField        = errors.New("invalid filter field")
	ErrUnknownDatabaseType = errors.New("unknown database type")
)

// Store is a document database holding named collections.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection is the set of single-document operations the handlers use.
// FindOne returns a nil document and a nil error when nothing matches.
type Collection interface {
	FindOne(ctx context.Context, f Filter) (models.Document, error)
	Find(ctx context.Context, f Filter) ([]models.Document, error)
	InsertOne(ctx context.Context, doc models.Document) (bson.ObjectID, error)
	UpdateOne(ctx context.Context, f Filter, fields models.Document) (models.UpdateResult, error)
	DeleteOne(ctx context.Context, f Filter) (int64, error)
}

// Filter matches documents whose Field equals the ObjectID Value.
type Filter struct {
	Field string
	Value bson.ObjectID
}

// ByID selects a document by its _id.
func ByID(id bson.ObjectID) Filter {
	return Filter{Field: models.FieldID, Value: id}
}

// ByField selects documents referencing id through field, e.g. movie_id.
func ByField(field string, id bson.ObjectID) Filter {
	return Filter{Field: field, Value: id}
}

func (f Filter) isID() bool {
	return f.Field == models.FieldID
}
