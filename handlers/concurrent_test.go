// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/IronBlyzer/Movies/models"
	"github.com/IronBlyzer/Movies/testutil"
)

// TestConcurrentMovieCreation verifies that simultaneous inserts each get
// their own store-assigned identifier
func TestConcurrentMovieCreation(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewMovieHandler(handle)

	numRequests := 20

	var mu sync.Mutex
	ids := make(map[string]bool)
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			w := serveMovie(handler, "POST", "new", map[string]any{"title": "Concurrent", "n": n})
			if w.Code != http.StatusOK {
				t.Errorf("Request %d: expected 200, got %d: %s", n, w.Code, w.Body.String())
				return
			}

			var resp documentResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Errorf("Request %d: failed to decode response: %v", n, err)
				return
			}

			id, ok := resp.Data.ID()
			if !ok {
				t.Errorf("Request %d: missing _id in %v", n, resp.Data)
				return
			}
			mu.Lock()
			ids[id.Hex()] = true
			mu.Unlock()
			successCount.Add(1)
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numRequests {
		t.Errorf("Expected %d successful inserts, got %d", numRequests, successCount.Load())
	}
	if len(ids) != numRequests {
		t.Errorf("Expected %d distinct ids, got %d", numRequests, len(ids))
	}
}

// TestConcurrentDeleteSameMovie verifies that exactly one of many
// simultaneous deletes of the same movie succeeds
func TestConcurrentDeleteSameMovie(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewMovieHandler(handle)

	movieID := testutil.SeedDocument(t, handle, models.CollectionMovies, models.Document{"title": "Once"})

	numRequests := 10
	var deleted, notFound atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := serveMovie(handler, "DELETE", movieID.Hex(), nil)
			switch w.Code {
			case http.StatusOK:
				deleted.Add(1)
			case http.StatusNotFound:
				notFound.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}

	wg.Wait()

	if deleted.Load() != 1 {
		t.Errorf("Expected exactly 1 successful delete, got %d", deleted.Load())
	}
	if notFound.Load() != int32(numRequests-1) {
		t.Errorf("Expected %d not-found responses, got %d", numRequests-1, notFound.Load())
	}
}

// TestConcurrentCommentsAcrossMovies verifies that comments created in
// parallel for different movies are listed under the right movie
func TestConcurrentCommentsAcrossMovies(t *testing.T) {
	handle := testutil.SetupTestDB(t)
	handler := NewCommentHandler(handle)

	movies := []string{
		testutil.SeedDocument(t, handle, models.CollectionMovies, models.Document{"title": "One"}).Hex(),
		testutil.SeedDocument(t, handle, models.CollectionMovies, models.Document{"title": "Two"}).Hex(),
	}
	perMovie := 5

	var wg sync.WaitGroup
	for _, movieID := range movies {
		for i := 0; i < perMovie; i++ {
			wg.Add(1)
			go func(movieID string) {
				defer wg.Done()
				w := serveComment(handler, "POST", movieID, "new", map[string]any{"text": "parallel"})
				if w.Code != http.StatusOK {
					t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
				}
			}(movieID)
		}
	}
	wg.Wait()

	for _, movieID := range movies {
		w := serveCommentList(handler, "GET", movieID)

		var resp listResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Data) != perMovie {
			t.Errorf("Movie %s: expected %d comments, got %d", movieID, perMovie, len(resp.Data))
		}
	}
}
