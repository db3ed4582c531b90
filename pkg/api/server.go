// Package api serves moodboards over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /version
//	POST /boards                      create a board from {"items": [...], "canvas": {...}}
//	GET  /boards/{id}/current         frame at the timeline pointer
//	PUT  /boards/{id}/items           replace the live items
//	POST /boards/{id}/arrange         arrange live items; ?save=true appends a snapshot
//	GET  /boards/{id}/timeline        snapshot summaries
//	POST /boards/{id}/seek/{index}    move the pointer; -1 is the live board
//	GET  /boards/{id}/render.svg      SVG of the current frame
//	GET  /boards/{id}/render.png      PNG of the current frame via Graphviz
//
// Errors are JSON {"code": ..., "error": ...} with the status derived from
// the error code.
package api

import (
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/moodboard/pkg/arrange"
	"github.com/matzehuels/moodboard/pkg/board/layout"
	"github.com/matzehuels/moodboard/pkg/render"
	"github.com/matzehuels/moodboard/pkg/render/dot"
	"github.com/matzehuels/moodboard/pkg/render/svg"
)

// Options configures a Server.
type Options struct {
	// Orchestrator arranges and saves boards. Default: arrange.New with no
	// store.
	Orchestrator *arrange.Orchestrator

	// Canvas is used for boards created without one.
	Canvas layout.Frame

	// Persistent reports whether the orchestrator has a snapshot store, so
	// unknown board IDs are looked up there.
	Persistent bool

	// Logger receives request logs. Default: discard.
	Logger *log.Logger
}

// Server holds the boards served over HTTP.
type Server struct {
	orch       *arrange.Orchestrator
	boards     *arrange.Registry
	canvas     layout.Frame
	persistent bool
	logger     *log.Logger
	sinks      map[string]render.Sink

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates a Server.
func New(opts Options) *Server {
	s := &Server{
		orch:       opts.Orchestrator,
		boards:     arrange.NewRegistry(),
		canvas:     opts.Canvas,
		persistent: opts.Persistent,
		logger:     opts.Logger,
		sinks: map[string]render.Sink{
			"svg": svg.NewSink(svg.WithLabels()),
			"png": dot.NewPNGSink(dot.Options{Labels: true}),
		},
		locks: make(map[string]*sync.Mutex),
	}
	if s.orch == nil {
		s.orch = arrange.New(arrange.Options{Logger: opts.Logger})
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.canvas == (layout.Frame{}) {
		s.canvas = layout.Frame{Width: 1600, Height: 1200, TopMargin: 60}
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/boards", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/current", s.handleCurrent)
			r.Put("/items", s.handleSetItems)
			r.Post("/arrange", s.handleArrange)
			r.Get("/timeline", s.handleTimeline)
			r.Post("/seek/{index}", s.handleSeek)
			r.Get("/render.{format}", s.handleRender)
		})
	})
	return r
}

// lock serializes mutations of one board across requests.
func (s *Server) lock(id string) func() {
	s.locksMu.Lock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	return m.Unlock
}
