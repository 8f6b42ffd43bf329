package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mgpai22/cuedit/internal/cue"
	"github.com/mgpai22/cuedit/internal/logging"
	"github.com/mgpai22/cuedit/internal/platform/metrics"
	"github.com/mgpai22/cuedit/internal/session"
	"github.com/mgpai22/cuedit/internal/subtitle"
)

// largest caption file or edit request accepted
const maxBodyBytes = 10 << 20

// Handler exposes edit sessions over HTTP using go-chi.
type Handler struct {
	store   *session.Store
	log     *logging.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler serving the sessions in store. Metrics may
// be nil to disable metric recording (e.g. in tests).
func NewHandler(store *session.Store, log *logging.Logger, m *metrics.Metrics) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{store: store, log: log, metrics: m}
}

type stateResponse struct {
	Session  string   `json:"session"`
	Timeline *cue.Set `json:"timeline"`
	CanUndo  bool     `json:"can_undo"`
	CanRedo  bool     `json:"can_redo"`
}

type createResponse struct {
	stateResponse
	Warnings []string `json:"warnings"`
}

type editResponse struct {
	stateResponse
	Applied bool `json:"applied"`
}

type stepResponse struct {
	stateResponse
	Moved bool `json:"moved"`
}

type cueResponse struct {
	Index int      `json:"index"`
	Cue   *cue.Cue `json:"cue"`
}

type timeResponse struct {
	Time float64 `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newStateResponse(s *session.Session, st session.State) stateResponse {
	return stateResponse{
		Session:  s.ID(),
		Timeline: st.Timeline,
		CanUndo:  st.CanUndo,
		CanRedo:  st.CanRedo,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "session_id")
	s, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}

func parseFormat(r *http.Request) (subtitle.Format, error) {
	f := r.URL.Query().Get("format")
	if f == "" {
		return subtitle.FormatVTT, nil
	}
	return subtitle.ParseFormat(f)
}

// CreateSession handles POST /sessions. The body is caption text in the
// format named by ?format= (vtt by default); an empty body starts an empty
// timeline.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	format, err := parseFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log.Debugw("Failed to read caption body", "error", err)
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	set, chunkErrs := subtitle.Decode(string(body), format)
	warnings := make([]string, 0, len(chunkErrs))
	for _, ce := range chunkErrs {
		warnings = append(warnings, ce.Error())
	}
	if h.metrics != nil && len(chunkErrs) > 0 {
		h.metrics.AddChunkErrors(len(chunkErrs))
	}

	s := h.store.Create(set)
	if len(warnings) > 0 {
		h.log.Warnw("Imported with skipped chunks",
			"session", s.ID(),
			"skipped", len(warnings),
		)
	}

	writeJSON(w, http.StatusCreated, createResponse{
		stateResponse: newStateResponse(s, s.State()),
		Warnings:      warnings,
	})
}

// ListSessions handles GET /sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": h.store.IDs()})
}

// GetSession handles GET /sessions/{session_id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(s, s.State()))
}

// DeleteSession handles DELETE /sessions/{session_id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(chi.URLParam(r, "session_id")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyEdit handles POST /sessions/{session_id}/edits. A well-formed edit
// that the timeline rejects is still a 200 with applied set to false.
func (h *Handler) ApplyEdit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	edit, err := cue.DecodeEdit(body)
	if err != nil {
		h.log.Debugw("Invalid edit body", "session", s.ID(), "error", err)
		status := http.StatusBadRequest
		if errors.Is(err, cue.ErrUnknownEditType) || errors.Is(err, cue.ErrInvalidEdge) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	st, applied := s.Apply(edit)
	writeJSON(w, http.StatusOK, editResponse{
		stateResponse: newStateResponse(s, st),
		Applied:       applied,
	})
}

// Undo handles POST /sessions/{session_id}/undo.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	st, moved := s.Undo()
	if h.metrics != nil {
		h.metrics.ObserveUndo(moved)
	}
	writeJSON(w, http.StatusOK, stepResponse{stateResponse: newStateResponse(s, st), Moved: moved})
}

// Redo handles POST /sessions/{session_id}/redo.
func (h *Handler) Redo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	st, moved := s.Redo()
	if h.metrics != nil {
		h.metrics.ObserveRedo(moved)
	}
	writeJSON(w, http.StatusOK, stepResponse{stateResponse: newStateResponse(s, st), Moved: moved})
}

func parseTime(w http.ResponseWriter, r *http.Request) (float64, bool) {
	t, err := strconv.ParseFloat(r.URL.Query().Get("t"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "t must be a number of seconds")
		return 0, false
	}
	return t, true
}

// CueAt handles GET /sessions/{session_id}/cue?t=SECONDS.
func (h *Handler) CueAt(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	t, ok := parseTime(w, r)
	if !ok {
		return
	}

	set := s.Current()
	c, ok := set.CueAt(t)
	if !ok {
		writeError(w, http.StatusNotFound, "no cue at that time")
		return
	}
	writeJSON(w, http.StatusOK, cueResponse{Index: set.Index(c.ID()), Cue: c})
}

// Navigate handles GET /sessions/{session_id}/navigate?t=SECONDS&dir=prev|next.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	t, ok := parseTime(w, r)
	if !ok {
		return
	}

	set := s.Current()
	switch r.URL.Query().Get("dir") {
	case "prev":
		writeJSON(w, http.StatusOK, timeResponse{Time: set.PreviousStart(t)})
	case "next":
		writeJSON(w, http.StatusOK, timeResponse{Time: set.NextEnd(t)})
	default:
		writeError(w, http.StatusBadRequest, "dir must be prev or next")
	}
}

// Export handles GET /sessions/{session_id}/export?format=vtt|srt.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	format, err := parseFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType := "text/vtt; charset=utf-8"
	if format == subtitle.FormatSRT {
		contentType = "application/x-subrip; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, subtitle.Encode(s.Current(), format))
}
