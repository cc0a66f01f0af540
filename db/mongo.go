// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/IronBlyzer/Movies/models"
)

// MongoStore is a Store backed by a MongoDB database. The underlying client
// pools connections and is safe for concurrent use.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to uri, verifies the connection and selects dbName.
func OpenMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	// Embedded documents decode to bson.M so they serialize as JSON objects.
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop deletes the selected database and everything in it.
func (s *MongoStore) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func mongoFilter(f Filter) bson.M {
	return bson.M{f.Field: f.Value}
}

func (c *mongoCollection) FindOne(ctx context.Context, f Filter) (models.Document, error) {
	var doc bson.M
	err := c.coll.FindOne(ctx, mongoFilter(f)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return models.Document(doc), nil
}

func (c *mongoCollection) Find(ctx context.Context, f Filter) ([]models.Document, error) {
	cursor, err := c.coll.Find(ctx, mongoFilter(f))
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("read cursor for %s: %w", c.coll.Name(), err)
	}

	docs := make([]models.Document, 0, len(raw))
	for _, d := range raw {
		docs = append(docs, models.Document(d))
	}
	return docs, nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc models.Document) (bson.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("insert into %s: unexpected _id type %T", c.coll.Name(), res.InsertedID)
	}
	return id, nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, f Filter, fields models.Document) (models.UpdateResult, error) {
	// Servers from 5.0 accept an empty $set as a no-op; keep both backends strict.
	if len(fields) == 0 {
		return models.UpdateResult{}, ErrEmptyUpdate
	}
	if _, ok := fields[models.FieldID]; ok {
		return models.UpdateResult{}, ErrImmutableID
	}

	res, err := c.coll.UpdateOne(ctx, mongoFilter(f), bson.M{"$set": bson.M(fields)})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update in %s: %w", c.coll.Name(), err)
	}

	return updateResult(res), nil
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	if res == nil {
		return models.UpdateResult{}
	}
	return models.UpdateResult{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func (c *mongoCollection) DeleteOne(ctx context.Context, f Filter) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, mongoFilter(f))
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	return res.DeletedCount, nil
}
