package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveEdit(t *testing.T) {
	m := New()

	m.ObserveEdit("split", true)
	m.ObserveEdit("split", true)
	m.ObserveEdit("split", false)
	m.ObserveUndo(true)
	m.ObserveRedo(false)
	m.AddChunkErrors(3)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"split applied", testutil.ToFloat64(m.editsTotal.WithLabelValues("split", "applied")), 2},
		{"split rejected", testutil.ToFloat64(m.editsTotal.WithLabelValues("split", "rejected")), 1},
		{"undo applied", testutil.ToFloat64(m.historyTotal.WithLabelValues("undo", "applied")), 1},
		{"redo rejected", testutil.ToFloat64(m.historyTotal.WithLabelValues("redo", "rejected")), 1},
		{"chunk errors", testutil.ToFloat64(m.chunkErrorsTotal), 3},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestRequestMiddleware(t *testing.T) {
	m := New()
	handler := RequestMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	for _, path := range []string{"/ok", "/missing", "/ok"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requestsTotal); got != 3 {
		t.Errorf("expected 3 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.errorsTotal); got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveEdit("join", true)

	srv := httptest.NewServer(m.Handler(func() { m.SetActiveSessions(4) }))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	for _, want := range []string{
		"cuedit_active_sessions 4",
		`cuedit_edits_total{result="applied",type="join"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected scrape to contain %q", want)
		}
	}
}
