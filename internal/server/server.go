package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mgpai22/cuedit/internal/logging"
	"github.com/mgpai22/cuedit/internal/platform/metrics"
)

// NewRouter mounts the session API, plus /metrics when m is non-nil.
func NewRouter(h *Handler, log *logging.Logger, m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()
	r.Use(logging.RequestLogger(log))
	if m != nil {
		r.Use(metrics.RequestMiddleware(m))
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			m.Handler(func() { m.SetActiveSessions(h.store.Count()) }).ServeHTTP(w, r)
		})
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/", h.ListSessions)
		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/edits", h.ApplyEdit)
			r.Post("/undo", h.Undo)
			r.Post("/redo", h.Redo)
			r.Get("/cue", h.CueAt)
			r.Get("/navigate", h.Navigate)
			r.Get("/export", h.Export)
		})
	})

	return r
}

// Run serves handler on addr until ctx is cancelled, then drains
// connections for up to shutdownTimeout.
func Run(
	ctx context.Context,
	addr string,
	handler http.Handler,
	log *logging.Logger,
	shutdownTimeout time.Duration,
) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Infow("Server starting", "addr", addr)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	log.Infow("Server stopped")
	return nil
}
