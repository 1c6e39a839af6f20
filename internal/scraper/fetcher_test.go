package scraper

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept, gotBypass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotBypass = r.Header.Get(BypassHeaderName)
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(0, "1")
	body, ok := f.Fetch(srv.URL)
	if !ok {
		t.Fatal("expected fetch to succeed")
	}
	if body == "" {
		t.Error("expected page body")
	}
	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept == "" {
		t.Error("Accept header missing")
	}
	if gotBypass != "1" {
		t.Errorf("bypass header = %q", gotBypass)
	}
}

func TestFetchOmitsEmptyBypassHeader(t *testing.T) {
	var hasBypass bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasBypass = r.Header[http.CanonicalHeaderKey(BypassHeaderName)]
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher(0, "")
	if _, ok := f.Fetch(srv.URL); !ok {
		t.Fatal("expected fetch to succeed")
	}
	if hasBypass {
		t.Error("bypass header sent despite empty value")
	}
}

func TestFetchNonOKStatusIsMiss(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		}))
		if _, ok := NewFetcher(0, "").Fetch(srv.URL); ok {
			t.Errorf("status %d: expected miss", status)
		}
		srv.Close()
	}
}

func TestFetchTransportFailureIsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	f := NewFetcher(500*time.Millisecond, "")
	if _, ok := f.Fetch(srv.URL); ok {
		t.Error("expected miss on refused connection")
	}
}

func TestFetchBadURLIsMiss(t *testing.T) {
	f := NewFetcher(0, "")
	if _, ok := f.Fetch("://not-a-url"); ok {
		t.Error("expected miss on unparseable URL")
	}
}
