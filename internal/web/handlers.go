package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taxdesk/taxdesk/internal/document"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListDocuments returns the document snapshot, optionally filtered by
// type via ?type=.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	var typ document.Type
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := document.ParseType(raw)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		typ = parsed
	}

	docs, err := s.service.List(r.Context(), typ)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	payload := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		b, err := document.MarshalDocument(d)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		payload = append(payload, b)
	}
	writeJSON(w, http.StatusOK, payload)
}

// handleUpdateDocument applies a partial field update and returns the
// updated record.
func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if len(fields) == 0 {
		badRequest(w, "no fields to update")
		return
	}

	doc, err := s.service.Update(r.Context(), id, fields)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	b, err := document.MarshalDocument(doc)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(b))
}

// handleDeleteDocument removes one document. Deleting an id that no longer
// exists answers 404, never a silent success.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// handleDocumentHistory returns the recorded edits for one document.
func (s *Server) handleDocumentHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	changes, err := s.service.History(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, changes)
}

// handleOptions returns the advisory filter option lists.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.service.Options(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}
