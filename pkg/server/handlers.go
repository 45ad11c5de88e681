package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roomml/roomml/pkg/buildinfo"
	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/pipeline"
	"github.com/roomml/roomml/pkg/scene/sink"
	"github.com/roomml/roomml/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// readBody reads a request body of at most maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "document larger than %d bytes", maxBodyBytes)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read body")
	}
	return data, nil
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, source []byte, name string, formats ...string) (*pipeline.Result, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), executeTimeout)
	defer cancel()
	res, err := s.runner.Execute(ctx, source, pipeline.Options{
		Source:  name,
		Formats: formats,
		Logger:  s.logger,
	})
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperr.Wrap(apperr.ErrCodeTimeout, err, "execute %s", name)
	}
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return res, true
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	source, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, ok := s.execute(w, r, source, r.URL.Query().Get("source"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newIssuesBody(res))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	source, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name := r.URL.Query().Get("source")
	res, ok := s.execute(w, r, source, name)
	if !ok {
		return
	}
	data, err := sink.RenderJSON(res.Box, sink.WithJSONSource(name), sink.WithJSONIssues(res.Issues))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	source, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, source, r.URL.Query().Get("source"))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, source []byte, name string) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "render"))
		return
	}
	res, ok := s.execute(w, r, source, name, format)
	if !ok {
		return
	}
	if res.Blocked() {
		writeJSON(w, http.StatusUnprocessableEntity, newIssuesBody(res))
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(res.Artifacts[format])
}

// =============================================================================
// Documents
// =============================================================================

type documentRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type documentSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func decodeDocumentRequest(w http.ResponseWriter, r *http.Request) (documentRequest, error) {
	var req documentRequest
	data, err := readBody(w, r)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode request")
	}
	if err := apperr.ValidateDocumentName(req.Name); err != nil {
		return req, err
	}
	return req, nil
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]documentSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentSummary{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDocumentRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := store.NewDocument(req.Name, req.Source)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/documents/"+doc.ID)
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := decodeDocumentRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc.Name = req.Name
	doc.Source = req.Source
	doc.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, []byte(doc.Source), doc.Name)
}
