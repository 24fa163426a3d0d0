package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTP_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/demo.cast":
			if r.Header.Get("Authorization") != "Bearer abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"version":2,"width":80,"height":24}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	h := &HTTP{Client: srv.Client()}

	data, err := h.Fetch(context.Background(), srv.URL+"/demo.cast", Options{Headers: map[string]string{"Authorization": "Bearer abc"}})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if string(data) != `{"version":2,"width":80,"height":24}` {
		t.Errorf("unexpected body %q", data)
	}

	tests := []struct {
		name     string
		path     string
		expected int
	}{
		{"missing header", "/demo.cast", http.StatusUnauthorized},
		{"not found", "/missing.cast", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Fetch(context.Background(), srv.URL+tt.path, Options{})
			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("expected TransportError, got %v", err)
			}
			if te.Status != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, te.Status)
			}
		})
	}
}

func TestHTTP_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := (&HTTP{}).Fetch(context.Background(), url, Options{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Status != 0 {
		t.Errorf("expected no status, got %d", te.Status)
	}
}

func TestFile_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.cast")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, loc := range []string{path, "file://" + path} {
		data, err := File{}.Fetch(context.Background(), loc, Options{})
		if err != nil {
			t.Fatalf("fetch %s failed: %v", loc, err)
		}
		if string(data) != "hello" {
			t.Errorf("expected hello, got %q", data)
		}
	}

	_, err := File{}.Fetch(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
	}{
		{"http://example.com/a.cast", true},
		{"https://example.com/a.cast", true},
		{"file:///tmp/a.cast", false},
		{"demo.cast", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.in); got != tt.expected {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}

func TestAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	urls := []string{srv.URL + "/a", srv.URL + "/missing", srv.URL + "/c"}
	results := All(context.Background(), &HTTP{}, urls, Options{}, 2)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if string(results[0].Data) != "/a" || results[0].Err != nil {
		t.Errorf("unexpected first result: %q %v", results[0].Data, results[0].Err)
	}
	var te *TransportError
	if !errors.As(results[1].Err, &te) || te.Status != http.StatusNotFound {
		t.Errorf("expected 404 TransportError, got %v", results[1].Err)
	}
	if string(results[2].Data) != "/c" || results[2].URL != urls[2] {
		t.Errorf("expected results in input order, got %+v", results[2])
	}
}

func TestAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := All(ctx, Bytes("x"), []string{"a", "b"}, Options{}, 1)
	for _, r := range results {
		if r.Err == nil && string(r.Data) != "x" {
			t.Errorf("unexpected result %+v", r)
		}
	}
}
