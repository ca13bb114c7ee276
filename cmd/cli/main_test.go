package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/reconciliation/report" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"consistent":true,"products_checked":3}`))
	}))
	defer server.Close()

	origURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = origURL }()

	result := fetch("/api/v1/reconciliation/report")

	if consistent, _ := result["consistent"].(bool); !consistent {
		t.Fatalf("expected consistent=true, got %+v", result)
	}
}

func TestRunReport_Consistent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"consistent":true,"products_checked":2,"transactions_checked":1}`))
	}))
	defer server.Close()

	origURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = origURL }()

	out := captureOutput(t, runReport)

	if !strings.Contains(out, "Reconciliation PASSED") {
		t.Fatalf("expected pass message, got %q", out)
	}
	if !strings.Contains(out, "Products checked: 2") {
		t.Fatalf("expected product count, got %q", out)
	}
}

func TestRunCheck_Passed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"expected":97,"actual":97,"drift":0}`))
	}))
	defer server.Close()

	origURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = origURL }()

	out := captureOutput(t, func() {
		runCheck("/api/v1/reconciliation/products/p1")
	})

	if !strings.Contains(out, "Check PASSED") {
		t.Fatalf("expected pass message, got %q", out)
	}
	if !strings.Contains(out, "Drift: 0") {
		t.Fatalf("expected drift line, got %q", out)
	}
}
