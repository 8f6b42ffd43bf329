package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &Logger{zap.New(core).Sugar()}

	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/sessions/abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodGet {
		t.Errorf("expected method GET, got %v", fields["method"])
	}
	if fields["path"] != "/sessions/abc" {
		t.Errorf("expected path /sessions/abc, got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("expected status 418, got %v", fields["status"])
	}
	if fields["size"] != int64(len("short and stout")) {
		t.Errorf("expected size %d, got %v", len("short and stout"), fields["size"])
	}
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := (&Logger{zap.New(core).Sugar()}).With("session", "s1")

	log.Debugw("applied", "type", "split")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["session"] != "s1" || fields["type"] != "split" {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestNewLogger(t *testing.T) {
	if !NewLogger(true).Desugar().Core().Enabled(zap.DebugLevel) {
		t.Error("expected verbose logger to enable debug")
	}
	if NewLogger(false).Desugar().Core().Enabled(zap.DebugLevel) {
		t.Error("expected default logger to skip debug")
	}
	NewNop().Infow("discarded")
}
