
package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchParsesDocument(t *testing.T) {
	var gotUA, gotTS string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotTS = r.URL.Query().Get("_ts")
		_, _ = w.Write([]byte(`<html><body><div class="x">hello</div></body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher(quietLogger())
	doc := f.Fetch(context.Background(), srv.URL)
	if doc == nil {
		t.Fatal("Fetch returned nil for a healthy server")
	}
	if got := doc.Find("div.x").Text(); got != "hello" {
		t.Errorf("parsed text = %q", got)
	}
	if gotUA != userAgent {
		t.Errorf("user-agent = %q", gotUA)
	}
	if gotTS == "" {
		t.Error("cache-busting _ts parameter not sent")
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(quietLogger())
	if doc := f.Fetch(context.Background(), srv.URL); doc != nil {
		t.Error("expected nil document on 503")
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	f := NewFetcher(quietLogger())
	if doc := f.Fetch(context.Background(), srv.URL); doc != nil {
		t.Error("expected nil document for unreachable host")
	}
}

func TestFetchCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(quietLogger())
	if doc := f.Fetch(ctx, srv.URL); doc != nil {
		t.Error("expected nil document for canceled context")
	}
}
