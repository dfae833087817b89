package httpsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/genoslab/docregress/internal/core/domain"
	"github.com/genoslab/docregress/internal/infrastructure/resilience"
)

func TestExtractDecodesVectors(t *testing.T) {
	var capturedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/extract" {
			http.NotFound(w, r)
			return
		}
		var payload extractRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPath = payload.Path
		_, _ = w.Write([]byte(`{"vectors":[
			{"order_index":0,"label":"title","text":"Report","bbox":{"page":1,"l":0,"t":0,"r":100,"b":20}},
			{"order_index":1,"label":"text","text":"Body"}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	vectors, err := client.Extract(context.Background(), "/samples/report.pdf")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if capturedPath != "/samples/report.pdf" {
		t.Fatalf("request path = %q", capturedPath)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}
	if vectors[0].Label == nil || *vectors[0].Label != "title" {
		t.Fatalf("first vector label = %v", vectors[0].Label)
	}
	if vectors[0].BBox == nil || vectors[0].BBox.Page != 1 {
		t.Fatalf("bounding box lost: %+v", vectors[0].BBox)
	}
	if vectors[1].OrderIndex == nil || *vectors[1].OrderIndex != 1 {
		t.Fatalf("second vector order index = %v", vectors[1].OrderIndex)
	}
}

func TestExtractIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pipeline crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Extract(context.Background(), "/samples/a.pdf")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "pipeline crashed") {
		t.Fatalf("expected response body in error, got %v", err)
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("5xx should be wrapped as temporary, got %v", err)
	}
}

func TestExtractRetriesThroughExecutor(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"vectors":[]}`))
	}))
	defer server.Close()

	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: 1,
		RetryMaxBackoff:     1,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})
	client := New(server.URL, Options{Executor: exec})

	if _, err := client.Extract(context.Background(), "/samples/a.docx"); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if attempts != 2 {
		t.Fatalf("got %d attempts, want retry to recover on the 2nd", attempts)
	}
}

func TestExtractClientErrorIsNotTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported format", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Extract(context.Background(), "/samples/a.xyz")
	if err == nil {
		t.Fatalf("expected error")
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("4xx must not be classified temporary: %v", err)
	}
}
