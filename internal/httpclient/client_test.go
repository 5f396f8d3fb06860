package httpclient

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(retryMax int) *Client {
	return New(Options{
		Timeout:   2 * time.Second,
		RetryMax:  retryMax,
		RetryWait: time.Millisecond,
		UserAgent: "apidash-test",
	}, zerolog.Nop())
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "apidash-test" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"hello"}`))
	}))
	defer srv.Close()

	var out struct {
		Message string `json:"message"`
	}
	if err := newTestClient(0).GetJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.Message != "hello" {
		t.Errorf("message = %q, want hello", out.Message)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		var out map[string]any
		err := newTestClient(0).GetJSON(context.Background(), srv.URL, &out)
		srv.Close()

		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("status %d: expected StatusError, got %v", code, err)
		}
		if se.StatusCode != code {
			t.Errorf("StatusCode = %d, want %d", se.StatusCode, code)
		}
	}
}

func TestGetJSONMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	var out map[string]any
	err := newTestClient(0).GetJSON(context.Background(), srv.URL, &out)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestGetJSONNoRetryByDefault(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var out map[string]any
	if err := newTestClient(0).GetJSON(context.Background(), srv.URL, &out); err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestGetJSONRetryOptIn(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	if err := newTestClient(2).GetJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !out.OK {
		t.Error("expected ok after retry")
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestGetJSONCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	if err := newTestClient(0).GetJSON(ctx, srv.URL, &out); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://api.example/v1/x", "https://api.example/v1/x"},
		{"https://api.example/search?name=Paris&count=1", "https://api.example/search?name=Paris&count=1"},
		{"https://api.example/trending?api_key=abc", "https://api.example/trending?api_key=REDACTED"},
		{"https://api.example/x?Token=abc&q=1", "https://api.example/x?Token=REDACTED&q=1"},
	}
	for _, tt := range tests {
		if got := Redact(tt.in); got != tt.want {
			t.Errorf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetJSONRedactsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	c := New(Options{Timeout: 2 * time.Second}, zerolog.New(&logs).Level(zerolog.DebugLevel))

	var out map[string]any
	err := c.GetJSON(context.Background(), srv.URL+"/x?api_key=hunter2", &out)

	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 StatusError, got %v", err)
	}
	if strings.Contains(err.Error(), "hunter2") {
		t.Errorf("error leaks credential: %v", err)
	}
	if strings.Contains(logs.String(), "hunter2") {
		t.Errorf("log leaks credential: %s", logs.String())
	}
}
