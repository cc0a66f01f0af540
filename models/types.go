package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Collection names
const (
	CollectionMovies   = "movies"
	CollectionComments = "comments"
)

// Field names shared by every document
const (
	FieldID      = "_id"
	FieldMovieID = "movie_id"
)

// Response messages. These are part of the API contract; clients match on them.
const (
	MsgServerError    = "SERVER ERROR"
	MsgBadRequest     = "BAD REQUEST"
	MsgMethodNotFound = "HTTP METHOD NOT FOUND"
	MsgMovieNotFound  = "Movie not found"
	MsgCommentMissing = "Comment not found"
)

// Document is a free-form stored record. Values are whatever the JSON
// decoder or the store driver produced.
type Document map[string]any

// ID returns the document's identifier, if it carries one the store assigned.
func (d Document) ID() (bson.ObjectID, bool) {
	switch v := d[FieldID].(type) {
	case bson.ObjectID:
		return v, true
	case string:
		id, err := bson.ObjectIDFromHex(v)
		return id, err == nil
	}
	return bson.ObjectID{}, false
}

// Response types

// Envelope wraps every data-carrying response: {status, data}.
type Envelope struct {
	Status int `json:"status"`
	Data   any `json:"data"`
}

// MessageEnvelope wraps responses that carry a message instead of data.
type MessageEnvelope struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

// MovieData is the GET payload: {movie: <document|null>}
type MovieData struct {
	Movie Document `json:"movie"`
}

// UpdateResult reports the outcome of a merge update. Counts only, never
// the updated document.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}
