package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newsServer(t *testing.T, articles []apiArticle, gotQuery *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			q := map[string]string{}
			for k := range r.URL.Query() {
				q[k] = r.URL.Query().Get(k)
			}
			*gotQuery = q
		}
		if err := json.NewEncoder(w).Encode(apiResponse{Articles: articles}); err != nil {
			t.Errorf("encoding response failed: %v", err)
		}
	}))
}

func TestLatest(t *testing.T) {
	articles := []apiArticle{
		{Title: "Final tonight", Description: "Big match", URL: "https://example.com/1", URLToImage: "https://example.com/1.jpg", PublishedAt: "2025-05-20T10:00:00Z"},
		{Title: "", Description: "", URL: "https://example.com/2", PublishedAt: "not-a-date"},
		{Title: "Third", Description: "Filler", URL: "https://example.com/3", PublishedAt: "2025-05-18T10:00:00Z"},
	}
	var query map[string]string
	srv := newsServer(t, articles, &query)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))

	got, err := client.Latest(context.Background(), "tennis", 2)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}

	if query["q"] != "tennis" || query["language"] != "en" || query["sortBy"] != "publishedAt" {
		t.Errorf("unexpected query params: %v", query)
	}
	if query["apiKey"] != "test-key" {
		t.Errorf("apiKey param = %q, want test-key", query["apiKey"])
	}

	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2 (truncated)", len(got))
	}
	if got[0].Title != "Final tonight" || got[0].ImageURL != "https://example.com/1.jpg" {
		t.Errorf("first article = %+v", got[0])
	}
	want := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	if !got[0].PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", got[0].PublishedAt, want)
	}

	// empty fields and unparsable dates get defaults
	if got[1].Title != "No title" || got[1].Description != "No description" {
		t.Errorf("second article defaults = %+v", got[1])
	}
	if got[1].PublishedAt.IsZero() {
		t.Error("unparsable date should default to now, not zero")
	}
}

func TestLatestDefaults(t *testing.T) {
	var query map[string]string
	srv := newsServer(t, nil, &query)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))

	if _, err := client.Latest(context.Background(), "", 0); err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if query["q"] != "sports" {
		t.Errorf("empty sport should query %q, got %q", "sports", query["q"])
	}
}

func TestLatestWithoutKeyServesPlaceholder(t *testing.T) {
	client := New("")

	got, err := client.Latest(context.Background(), "football", 3)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d articles, want 1 placeholder", len(got))
	}
	if got[0].Title != "SportsPal Daily Update" {
		t.Errorf("placeholder title = %q", got[0].Title)
	}
}

func TestLatestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	if _, err := client.Latest(context.Background(), "tennis", 1); err == nil {
		t.Fatal("expected error from 429 response")
	}
}

// fakeCache is a single-entry in-memory news.Cache. Setting stale makes
// TTL-checked reads miss while ttl-0 reads (the 304 path) still hit, matching
// the file cache's expiry behavior.
type fakeCache struct {
	key    string
	body   []byte
	etag   string
	stale  bool
	writes int
}

func (f *fakeCache) Read(key string, ttl time.Duration) ([]byte, string, bool) {
	if key != f.key || f.body == nil {
		return nil, "", false
	}
	if ttl > 0 && f.stale {
		return nil, "", false
	}
	return f.body, f.etag, true
}

func (f *fakeCache) Write(key string, body []byte, etag string) {
	f.key, f.body, f.etag = key, body, etag
	f.writes++
}

func (f *fakeCache) ETag(key string) string {
	if key != f.key {
		return ""
	}
	return f.etag
}

func TestLatestUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("ETag", `"v1"`)
		if err := json.NewEncoder(w).Encode(apiResponse{Articles: []apiArticle{{Title: "Cached story"}}}); err != nil {
			t.Errorf("encoding response failed: %v", err)
		}
	}))
	defer srv.Close()

	fc := &fakeCache{}
	client := New("test-key", WithBaseURL(srv.URL), WithCache(fc, time.Hour))

	for i := 0; i < 3; i++ {
		got, err := client.Latest(context.Background(), "tennis", 1)
		if err != nil {
			t.Fatalf("Latest #%d failed: %v", i+1, err)
		}
		if got[0].Title != "Cached story" {
			t.Errorf("Latest #%d title = %q", i+1, got[0].Title)
		}
	}

	if hits != 1 {
		t.Errorf("upstream hits = %d, want 1 (fresh cache serves the rest)", hits)
	}
	if fc.writes != 1 {
		t.Errorf("cache writes = %d, want 1", fc.writes)
	}
}

func TestLatestRevalidatesWithETag(t *testing.T) {
	var sawETag string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inm := r.Header.Get("If-None-Match"); inm != "" {
			sawETag = inm
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		if err := json.NewEncoder(w).Encode(apiResponse{Articles: []apiArticle{{Title: "Original"}}}); err != nil {
			t.Errorf("encoding response failed: %v", err)
		}
	}))
	defer srv.Close()

	fc := &fakeCache{}
	client := New("test-key", WithBaseURL(srv.URL), WithCache(fc, time.Hour))

	if _, err := client.Latest(context.Background(), "tennis", 1); err != nil {
		t.Fatalf("first Latest failed: %v", err)
	}

	// expire the cached entry so the next call revalidates
	fc.stale = true

	got, err := client.Latest(context.Background(), "tennis", 1)
	if err != nil {
		t.Fatalf("second Latest failed: %v", err)
	}
	if sawETag != `"v1"` {
		t.Errorf("If-None-Match = %q, want %q", sawETag, `"v1"`)
	}
	if got[0].Title != "Original" {
		t.Errorf("304 should serve the cached body, got %q", got[0].Title)
	}
}
