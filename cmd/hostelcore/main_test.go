package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hostelcore/internal/config"
)

func testConfig(t *testing.T, extra map[string]string) config.Config {
	t.Helper()
	vars := map[string]string{
		"HOSTEL_STORAGE_DRIVER": "memory",
		"HOSTEL_BLOB_DRIVER":    "memory",
		"HOSTEL_SEED_FIXTURES":  "true",
		"HOSTEL_ID_STRATEGY":    "sequence",
		"HOSTEL_LOG_LEVEL":      "error",
	}
	for k, v := range extra {
		vars[k] = v
	}
	cfg, err := config.FromLookup(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestBuildServesSeededStore(t *testing.T) {
	a, err := build(context.Background(), testConfig(t, nil), io.Discard)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer func() { _ = a.Close() }()

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/students?inHostel=true", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"total":2`) {
		t.Fatalf("expected two boarders, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/academic-classes", strings.NewReader(`{"name":"Senior 3","section":"C"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"Active"`) {
		t.Fatalf("expected defaulted status in %s", rec.Body.String())
	}
}

func TestBuildRejectsUnreachableRedis(t *testing.T) {
	cfg := testConfig(t, map[string]string{"HOSTEL_REDIS_ADDR": "127.0.0.1:1"})
	if _, err := build(context.Background(), cfg, io.Discard); err == nil {
		t.Fatal("expected redis ping failure")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := testConfig(t, map[string]string{"HOSTEL_HTTP_ADDR": "127.0.0.1:0"})
	a, err := build(context.Background(), cfg, io.Discard)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer func() { _ = a.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := serve(ctx, a); err != nil {
		t.Fatalf("serve: %v", err)
	}
}
