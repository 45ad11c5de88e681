// Package server implements the HTTP API behind "roomml serve".
//
// The API runs documents through the same [pipeline.Runner] the CLI uses:
//
//	POST   /v1/validate              issues for the posted document
//	POST   /v1/layout                box tree and issues
//	POST   /v1/render/{format}       one artifact (json, svg, dot, tree, mesh)
//	GET    /v1/documents             stored documents, newest first
//	POST   /v1/documents             store a document {name, source}
//	GET    /v1/documents/{id}        one stored document
//	PUT    /v1/documents/{id}        replace a stored document
//	DELETE /v1/documents/{id}        remove a stored document
//	GET    /v1/documents/{id}/render/{format}
//	GET    /v1/live                  websocket of layout frames
//	GET    /v1/version, /healthz
//
// Posted documents are the raw JSON or YAML text. The optional "source"
// query parameter names the document; a name ending in .yaml selects the
// YAML parser.
//
// A document with validation errors is not a request error: validate and
// layout answer 200 with the issues, render answers 422 with the issues.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/pipeline"
	"github.com/roomml/roomml/pkg/store"
)

const (
	// maxBodyBytes caps request bodies.
	maxBodyBytes = 4 << 20

	executeTimeout = 30 * time.Second
)

// Server is the HTTP API. It implements [http.Handler].
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	hub    *Hub
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil store gets an in-memory store; a nil logger
// gets the runner's logger.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner: runner,
		store:  st,
		hub:    NewHub(),
		logger: logger.WithPrefix("http"),
	}
	s.router = s.routes()
	return s
}

// Hub returns the hub that feeds /v1/live.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, apperr.New(apperr.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/live", s.handleLive)

		r.Post("/validate", s.handleValidate)
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Post("/", s.handleCreateDocument)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(s.validateID)
				r.Get("/", s.handleGetDocument)
				r.Put("/", s.handlePutDocument)
				r.Delete("/", s.handleDeleteDocument)
				r.Get("/render/{format}", s.handleRenderDocument)
			})
		})
	})
	return r
}
