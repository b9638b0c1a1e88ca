package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JinojiLock/Airlines/internal/cache"
	"github.com/JinojiLock/Airlines/internal/model"
	"github.com/JinojiLock/Airlines/internal/worker"
)

func testClient(t *testing.T, apiBase string, store cache.Cache) *Client {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Lookup.APIBase = apiBase
	cfg.HTTP.Timeout = 5 * time.Second
	return NewClient(cfg, store, worker.NewLimiter(1000, 100))
}

// newWikiServer serves a minimal MediaWiki API: opensearch and extracts
// for one known article.
func newWikiServer(t *testing.T, title, extract string, articlePath string) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/w/api.php" && r.URL.Query().Get("action") == "opensearch":
			if r.URL.Query().Get("search") != title {
				_ = json.NewEncoder(w).Encode([]interface{}{r.URL.Query().Get("search"), []string{}, []string{}, []string{}})
				return
			}
			_ = json.NewEncoder(w).Encode([]interface{}{
				title,
				[]string{title},
				[]string{""},
				[]string{server.URL + articlePath},
			})
		case r.URL.Path == "/w/api.php" && r.URL.Query().Get("action") == "query":
			fmt.Fprintf(w, `{"query":{"pages":{"42":{"title":%q,"extract":%q}}}}`, title, extract)
		case r.URL.Path == "/robots.txt":
			http.NotFound(w, r)
		case r.URL.Path == articlePath:
			fmt.Fprint(w, `<html><body><div class="mw-parser-output">`+
				`<p>Air Foo ceased operations in 1999.</p>`+
				`<h2>History</h2><p>Founded long ago.</p></div></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	return server
}

func TestLookup_Found(t *testing.T) {
	server := newWikiServer(t, "Air Foo", "Air Foo is currently operating flights.", "/wiki/Air_Foo")
	defer server.Close()

	c := testClient(t, server.URL+"/w/api.php", nil)
	summary, err := c.Lookup(context.Background(), "Air Foo")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if !summary.Found {
		t.Fatal("expected Found=true")
	}
	if summary.Title != "Air Foo" {
		t.Errorf("Title = %q, want %q", summary.Title, "Air Foo")
	}
	if summary.Extract != "Air Foo is currently operating flights." {
		t.Errorf("unexpected extract: %q", summary.Extract)
	}
	if summary.URL == "" {
		t.Error("expected article URL to be set")
	}
}

func TestLookup_NotFound(t *testing.T) {
	server := newWikiServer(t, "Air Foo", "whatever", "/wiki/Air_Foo")
	defer server.Close()

	c := testClient(t, server.URL+"/w/api.php", nil)
	summary, err := c.Lookup(context.Background(), "No Such Airline")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if summary.Found {
		t.Error("expected Found=false for unmatched name")
	}
}

func TestLookup_HTMLFallbackWhenExtractEmpty(t *testing.T) {
	server := newWikiServer(t, "Air Foo", "", "/wiki/Air_Foo")
	defer server.Close()

	c := testClient(t, server.URL+"/w/api.php", nil)
	summary, err := c.Lookup(context.Background(), "Air Foo")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if !summary.Found {
		t.Fatal("expected Found=true")
	}
	if summary.Extract != "Air Foo ceased operations in 1999." {
		t.Errorf("fallback extract = %q", summary.Extract)
	}
}

func TestGet_RetriesTransientErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	origSleep := retrySleep
	retrySleep = func(ctx context.Context, d time.Duration) error { return nil }
	defer func() { retrySleep = origSleep }()

	c := testClient(t, server.URL, nil)
	body, err := c.get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
	if attempts.Load() != 3 {
		t.Errorf("attempts = %d, want 3", attempts.Load())
	}
}

func TestGet_PermanentFailureNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	origSleep := retrySleep
	retrySleep = func(ctx context.Context, d time.Duration) error { return nil }
	defer func() { retrySleep = origSleep }()

	c := testClient(t, server.URL, nil)
	if _, err := c.get(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404")
	}
	if attempts.Load() != 1 {
		t.Errorf("attempts = %d, want 1", attempts.Load())
	}
}

func TestGet_ServesFromCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, "payload")
	}))
	defer server.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	c := testClient(t, server.URL, store)

	for i := 0; i < 3; i++ {
		body, err := c.get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if string(body) != "payload" {
			t.Errorf("body = %q", body)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (cache misses)", hits.Load())
	}
}
