package httpsender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestSend_PostsJSONWithAPIKey(t *testing.T) {
	var gotKey, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := &Sender{URL: srv.URL, APIKey: "secret"}
	if err := s.Send(context.Background(), []byte(`{"players":[]}`)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotKey != "secret" {
		t.Fatalf("X-API-Key = %q", gotKey)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if string(gotBody) != `{"players":[]}` {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestSend_OmitsAPIKeyWhenUnset(t *testing.T) {
	var hasKey bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasKey = r.Header["X-Api-Key"]
	}))
	defer srv.Close()

	s := &Sender{URL: srv.URL}
	if err := s.Send(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if hasKey {
		t.Fatal("header must be omitted when no key is configured")
	}
}

func TestSend_Non2xxIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := &Sender{URL: srv.URL}
	if err := s.Send(context.Background(), []byte(`{}`)); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestSend_GzipBodyRoundTrips(t *testing.T) {
	var encoding string
	var decoded []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoding = r.Header.Get("Content-Encoding")
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		decoded, _ = io.ReadAll(zr)
	}))
	defer srv.Close()

	s := &Sender{URL: srv.URL, Gzip: true}
	if err := s.Send(context.Background(), []byte(`{"server_unix_time":1}`)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if encoding != "gzip" {
		t.Fatalf("Content-Encoding = %q", encoding)
	}
	if string(decoded) != `{"server_unix_time":1}` {
		t.Fatalf("decompressed body = %q", decoded)
	}
}

func TestSend_TransportErrorIsAnError(t *testing.T) {
	s := &Sender{URL: "http://127.0.0.1:1/ingest"}
	if err := s.Send(context.Background(), []byte(`{}`)); err == nil {
		t.Fatal("expected transport error")
	}
}
