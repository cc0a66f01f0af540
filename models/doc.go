// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the document and response types for the API.

# Documents

Movies and comments are schema-less:

	type Document map[string]any

The only fields the API itself touches are:

  - _id: store-assigned ObjectID, never taken from a request
  - movie_id: on comments, the owning movie's ObjectID

# Response Types

Every handler answers with one of two envelopes:

  - Envelope: {"status": 200, "data": ...}
  - MessageEnvelope: {"status": 404, "msg": "Movie not found"}

Payloads carried in Envelope.Data:

  - MovieData: {"movie": <document|null>} for GET
  - UpdateResult: matched/modified counts for PUT
  - Document or []Document for POST and list reads

# Constants

Collections:

	CollectionMovies   = "movies"
	CollectionComments = "comments"

Messages:

	MsgServerError    = "SERVER ERROR"
	MsgBadRequest     = "BAD REQUEST"
	MsgMethodNotFound = "HTTP METHOD NOT FOUND"
	MsgMovieNotFound  = "Movie not found"
	MsgCommentMissing = "Comment not found"
*/
package models
