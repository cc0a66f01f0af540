// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/IronBlyzer/Movies/metrics"
	"github.com/IronBlyzer/Movies/models"
)

// Instrument wraps s so every collection operation is counted and timed.
func Instrument(s Store) Store {
	return &instrumentedStore{Store: s}
}

type instrumentedStore struct {
	Store
}

func (s *instrumentedStore) Collection(name string) Collection {
	return &instrumentedCollection{next: s.Store.Collection(name), name: name}
}

type instrumentedCollection struct {
	next Collection
	name string
}

func (c *instrumentedCollection) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.StoreOperations.WithLabelValues(c.name, op, result).Inc()
	metrics.StoreDuration.WithLabelValues(c.name, op).Observe(time.Since(start).Seconds())
}

func (c *instrumentedCollection) FindOne(ctx context.Context, f Filter) (doc models.Document, err error) {
	start := time.Now()
	defer func() { c.observe("find_one", start, err) }()
	return c.next.FindOne(ctx, f)
}

func (c *instrumentedCollection) Find(ctx context.Context, f Filter) (docs []models.Document, err error) {
	start := time.Now()
	defer func() { c.observe("find", start, err) }()
	return c.next.Find(ctx, f)
}

func (c *instrumentedCollection) InsertOne(ctx context.Context, doc models.Document) (id bson.ObjectID, err error) {
	start := time.Now()
	defer func() { c.observe("insert_one", start, err) }()
	return c.next.InsertOne(ctx, doc)
}

func (c *instrumentedCollection) UpdateOne(ctx context.Context, f Filter, fields models.Document) (res models.UpdateResult, err error) {
	start := time.Now()
	defer func() { c.observe("update_one", start, err) }()
	return c.next.UpdateOne(ctx, f, fields)
}

func (c *instrumentedCollection) DeleteOne(ctx context.Context, f Filter) (n int64, err error) {
	start := time.Now()
	defer func() { c.observe("delete_one", start, err) }()
	return c.next.DeleteOne(ctx, f)
}
