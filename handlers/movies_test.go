// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/IronBlyzer/Movies/models"
	"github.com/IronBlyzer/Movies/testutil"
)

type getResponse struct {
	Status int `json:"status"`
	Data   struct {
		Movie map[string]any `json:"movie"`
	} `json:"data"`
}

type documentResponse struct {
	Status int             `json:"status"`
	Data   models.Document `json:"data"`
}

type updateResponse struct {
	Status int                 `json:"status"`
	Data   models.UpdateResult `json:"data"`
}

// serveMovie sends a request for /movies/{id} through the method dispatch
func serveMovie(h *MovieHandler, method, id string, body interface{}) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, "/movies/"+id, body, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Resource()(w, req)
	return w
}

func TestGetMovie(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewMovieHandler(handle)

	movieID := testutil.SeedDocument(t, handle, models.CollectionMovies, models.Document{
		"title": "Mon Titre",
		"year":  1992,
	})

	t.Run("existing movie", func(t *testing.T) {
		w := serveMovie(handler, "GET", movieID.Hex(), nil)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp getResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Status != 200 {
			t.Errorf("Expected envelope status 200, got %d", resp.Status)
		}
		if resp.Data.Movie["title"] != "Mon Titre" {
			t.Errorf("Expected title 'Mon Titre', got %v", resp.Data.Movie["title"])
		}
		if resp.Data.Movie["year"] != float64(1992) {
			t.Errorf("Expected year 1992, got %v", resp.Data.Movie["year"])
		}
		if resp.Data.Movie["_id"] != movieID.Hex() {
			t.Errorf("Expected _id %s, got %v", movieID.Hex(), resp.Data.Movie["_id"])
		}
	})

	t.Run("missing movie is a 200 with null", func(t *testing.T) {
		w := serveMovie(handler, "GET", bson.NewObjectID().Hex(), nil)
		testutil.AssertStatus(t, w, http.StatusOK)

		body := strings.TrimSpace(w.Body.String())
		if body != `{"status":200,"data":{"movie":null}}` {
			t.Errorf("Unexpected body: %s", body)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		for _, id := range []string{"123", "not-an-object-id", "zzzzzzzzzzzzzzzzzzzzzzzz", ""} {
			w := serveMovie(handler, "GET", id, nil)
			testutil.AssertFault(t, w, http.StatusBadRequest, models.MsgServerError)
		}
	})
}

func TestCreateMovie(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewMovieHandler(handle)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:           "valid movie",
			requestBody:    map[string]any{"title": "A", "year": 2020},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp documentResponse
				testutil.AssertJSON(t, w, &resp)

				if resp.Status != 200 {
					t.Errorf("Expected envelope status 200, got %d", resp.Status)
				}
				if resp.Data["title"] != "A" || resp.Data["year"] != float64(2020) {
					t.Errorf("Expected submitted fields back, got %v", resp.Data)
				}

				id, ok := resp.Data.ID()
				if !ok {
					t.Fatalf("Expected an assigned ObjectID, got %v", resp.Data["_id"])
				}

				// Verify the movie was stored
				if stored := testutil.FetchDocument(t, handle, models.CollectionMovies, id); stored == nil {
					t.Error("Expected movie to be stored")
				}
			},
		},
		{
			name:           "nested fields are persisted verbatim",
			requestBody:    map[string]any{"title": "B", "imdb": map[string]any{"rating": 7.5}, "genres": []string{"Drama"}},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp documentResponse
				testutil.AssertJSON(t, w, &resp)

				imdb, ok := resp.Data["imdb"].(map[string]any)
				if !ok || imdb["rating"] != 7.5 {
					t.Errorf("Expected nested imdb.rating 7.5, got %v", resp.Data["imdb"])
				}
				genres, ok := resp.Data["genres"].([]any)
				if !ok || len(genres) != 1 || genres[0] != "Drama" {
					t.Errorf("Expected genres [Drama], got %v", resp.Data["genres"])
				}
			},
		},
		{
			name:           "client _id is replaced",
			requestBody:    map[string]any{"_id": "client-chosen", "title": "C"},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp documentResponse
				testutil.AssertJSON(t, w, &resp)

				if _, ok := resp.Data.ID(); !ok {
					t.Errorf("Expected store-assigned _id, got %v", resp.Data["_id"])
				}
			},
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				testutil.AssertFault(t, w, http.StatusBadRequest, models.MsgServerError)
			},
		},
		{
			name:           "null body",
			requestBody:    "null",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "array body",
			requestBody:    `[{"title":"A"}]`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveMovie(handler, "POST", "anything", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestUpdateMovie(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewMovieHandler(handle)

	t.Run("merges fields", func(t *testing.T) {
		movieID := testutil.SeedDocument(t, handle, models.CollectionMovies, models.Document{
			"title": "X",
			"year":  1999,
		})

		w := serveMovie(handler, "PUT", movieID.Hex(), map[string]any{"year": 2000})
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp updateResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != 200 {
			t.Errorf("Expected envelope status 200, got %d", resp.Status)
		}
		if resp.Data.MatchedCount != 1 || resp.Data.ModifiedCount != 1 {
			t.Errorf("Expected matched=1 modified=1, got %+v", resp.Data)
		}

		stored := testutil.FetchDocument(t, handle, models.CollectionMovies, movieID)
		if stored["title"] != "X" {
			t.Errorf("Expected title to be preserved, got %v", stored["title"])
		}
		if stored["year"] != float64(2000) {
			t.Errorf("Expected year 2000, got %v", stored["year"])
		}
	})

	t.Run("adds new fields", func(t *testing.T) {
		movieID := testutil.SeedDocument(t, handle, models.CollectionMovies, models.Document{"title": "Y"})

		w := serveMovie(handler, "PUT", movieID.Hex(), map[string]any{"plot": "Something happens."})
		testutil.AssertStatus(t, w, http.StatusOK)

		stored := testutil.FetchDocument(t, handle, models.CollectionMovies, movieID)
		if stored["title"] != "Y" || stored["plot"] != "Something happens." {
			t.Errorf("Unexpected merged document: %v", stored)
		}
	})

	t.Run("unchanged values are not modified", func(t *testing.T) {
		movieID := testutil.SeedDocument(t, handle, models.CollectionMovies, models.Document{"title": "Z"})

		w := serveMovie(handler, "PUT", movieID.Hex(), map[string]any{"title": "Z"})

		var resp updateResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.MatchedCount != 1 || resp.Data.ModifiedCount != 0 {
			t.Errorf("Expected matched=1 modified=0, got %+v", resp.Data)
		}
	})

	t.Run("missing movie reports zero matches", func(t *testing.T) {
		w := serveMovie(handler, "PUT", bson.NewObjectID().Hex(), map[string]any{"year": 2000})
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp updateResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Data.MatchedCount != 0 || resp.Data.ModifiedCount != 0 {
			t.Errorf("Expected matched=0 modified=0, got %+v", resp.Data)
		}
		if !resp.Data.Acknowledged {
			t.Error("Expected acknowledged update")
		}
	})

	faults := []struct {
		name string
		id   string
		body interface{}
	}{
		{"malformed id", "bad-id", map[string]any{"year": 2000}},
		{"invalid JSON", bson.NewObjectID().Hex(), "{year:"},
		{"empty update", bson.NewObjectID().Hex(), map[string]any{}},
		{"changing _id", bson.NewObjectID().Hex(), map[string]any{"_id": "x"}},
	}
	for _, tc := range faults {
		t.Run(tc.name, func(t *testing.T) {
			w := serveMovie(handler, "PUT", tc.id, tc.body)
			testutil.AssertFault(t, w, http.StatusBadRequest, models.MsgServerError)
		})
	}
}

func TestDeleteMovie(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewMovieHandler(handle)

	movieID := testutil.SeedDocument(t, handle, models.CollectionMovies, models.Document{"title": "Gone"})

	// First delete succeeds with an empty body
	w := serveMovie(handler, "DELETE", movieID.Hex(), nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %s", w.Body.String())
	}

	if stored := testutil.FetchDocument(t, handle, models.CollectionMovies, movieID); stored != nil {
		t.Error("Expected movie to be removed")
	}

	// Second delete finds nothing
	w = serveMovie(handler, "DELETE", movieID.Hex(), nil)
	testutil.AssertMessage(t, w, http.StatusNotFound, models.MsgMovieNotFound)

	// Malformed id is a server error, not a 404
	w = serveMovie(handler, "DELETE", "bad-id", nil)
	testutil.AssertFault(t, w, http.StatusInternalServerError, models.MsgServerError)
}

func TestMovieUnsupportedMethod(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewMovieHandler(handle)

	for _, method := range []string{"PATCH", "OPTIONS", "TRACE"} {
		t.Run(method, func(t *testing.T) {
			w := serveMovie(handler, method, bson.NewObjectID().Hex(), nil)
			testutil.AssertMessage(t, w, http.StatusBadRequest, models.MsgMethodNotFound)
		})
	}
}

func TestMovieStoreUnavailable(t *testing.T) {
	handler := NewMovieHandler(testutil.FailingHandle())
	id := bson.NewObjectID().Hex()

	tests := []struct {
		method string
		body   interface{}
		status int
	}{
		{"GET", nil, http.StatusBadRequest},
		{"POST", map[string]any{"title": "A"}, http.StatusBadRequest},
		{"PUT", map[string]any{"title": "A"}, http.StatusBadRequest},
		{"DELETE", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := serveMovie(handler, tt.method, id, tt.body)
			testutil.AssertFault(t, w, tt.status, models.MsgServerError)
		})
	}
}

func TestCreateMovieWithoutPathID(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewMovieHandler(handle)

	req := testutil.MakeRequest("POST", "/movies", map[string]any{"title": "Heat"}, nil)
	w := httptest.NewRecorder()
	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp documentResponse
	testutil.AssertJSON(t, w, &resp)

	id, ok := resp.Data.ID()
	if !ok {
		t.Fatalf("Expected an assigned ObjectID, got %v", resp.Data["_id"])
	}
	if stored := testutil.FetchDocument(t, handle, models.CollectionMovies, id); stored["title"] != "Heat" {
		t.Errorf("Expected stored title 'Heat', got %v", stored)
	}
}
