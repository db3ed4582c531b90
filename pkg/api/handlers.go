package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/moodboard/pkg/arrange"
	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/board/layout"
	"github.com/matzehuels/moodboard/pkg/buildinfo"
	"github.com/matzehuels/moodboard/pkg/errors"
	"github.com/matzehuels/moodboard/pkg/storage"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

type createRequest struct {
	Items  []board.Item  `json:"items"`
	Canvas *layout.Frame `json:"canvas,omitempty"`
}

type createResponse struct {
	ID     string       `json:"id"`
	Canvas layout.Frame `json:"canvas"`
}

type itemsRequest struct {
	Items []board.Item `json:"items"`
}

type arrangeResponse struct {
	Items      []board.Item              `json:"items"`
	Positions  map[string]board.Position `json:"positions"`
	Cached     bool                      `json:"cached"`
	Index      int                       `json:"index"`
	DurationMS float64                   `json:"duration_ms"`
}

type timelineEntry struct {
	Index     int       `json:"index"`
	Timestamp int64     `json:"timestamp"`
	Time      time.Time `json:"time"`
	Items     int       `json:"items"`
}

type timelineResponse struct {
	Pointer   int             `json:"pointer"`
	Snapshots []timelineEntry `json:"snapshots"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	canvas := s.canvas
	if req.Canvas != nil {
		canvas = *req.Canvas
	}
	if err := canvas.Validate(); err != nil {
		writeError(w, err)
		return
	}

	b := arrange.NewBoard(uuid.NewString(), canvas, req.Items)
	s.boards.Put(b)
	s.logger.Info("board created", "board", b.ID(), "items", len(req.Items))
	writeJSON(w, http.StatusCreated, createResponse{ID: b.ID(), Canvas: canvas})
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b.CurrentFrame())
}

func (s *Server) handleSetItems(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req itemsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	defer s.lock(b.ID())()
	b.SetItems(req.Items)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r)
	if err != nil {
		writeError(w, err)
		return
	}
	save, _ := strconv.ParseBool(r.URL.Query().Get("save"))

	unlock := s.lock(b.ID())
	res, err := s.orch.Arrange(r.Context(), b, save)
	unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if res.Index != arrange.NotSaved {
		status = http.StatusCreated
	}
	writeJSON(w, status, arrangeResponse{
		Items:      res.Items,
		Positions:  res.Positions,
		Cached:     res.Cached,
		Index:      res.Index,
		DurationMS: float64(res.Duration.Microseconds()) / 1000,
	})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snaps := b.Snapshots()
	resp := timelineResponse{Pointer: b.Pointer(), Snapshots: make([]timelineEntry, len(snaps))}
	for i, snap := range snaps {
		resp.Snapshots[i] = timelineEntry{
			Index:     i,
			Timestamp: snap.Timestamp,
			Time:      snap.Time().UTC(),
			Items:     len(snap.Items),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "index must be an integer"))
		return
	}

	unlock := s.lock(b.ID())
	view, err := b.JumpTo(index)
	unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b.Frame(view))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := chi.URLParam(r, "format")
	sink, ok := s.sinks[format]
	if !ok {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format))
		return
	}
	data, err := sink.Render(r.Context(), b.CurrentFrame())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
		return
	}
	w.Header().Set("Content-Type", sink.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// board resolves the {id} URL parameter, loading the board from the
// snapshot store on first use when the server is persistent.
func (s *Server) board(r *http.Request) (*arrange.Board, error) {
	id := chi.URLParam(r, "id")
	if err := storage.ValidateBoardID(id); err != nil {
		return nil, err
	}
	if b, ok := s.boards.Get(id); ok {
		return b, nil
	}
	if !s.persistent {
		return nil, errors.New(errors.ErrCodeNotFound, "board %s not found", id)
	}

	defer s.lock(id)()
	if b, ok := s.boards.Get(id); ok {
		return b, nil
	}
	b, err := s.orch.LoadBoard(r.Context(), id, s.canvas)
	if err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "board %s not found", id)
	}
	s.boards.Put(b)
	return b, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidContainer, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeOutOfRange:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
