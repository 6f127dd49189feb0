package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/intelhub/backend/internal/domain"
)

// ListCompetitors handles GET /competitors.
func (s *Server) ListCompetitors(w http.ResponseWriter, r *http.Request) {
	competitors, err := s.competitors.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, competitors)
}

// GetCompetitor handles GET /competitors/{businessName}.
func (s *Server) GetCompetitor(w http.ResponseWriter, r *http.Request) {
	c, err := s.competitors.Get(r.Context(), chi.URLParam(r, "businessName"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCompetitor handles POST /competitors.
func (s *Server) CreateCompetitor(w http.ResponseWriter, r *http.Request) {
	var c domain.Competitor
	if err := decodeBody(r, &c); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := s.competitors.Create(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCompetitor handles PUT /competitors/{businessName}.
func (s *Server) UpdateCompetitor(w http.ResponseWriter, r *http.Request) {
	var c domain.Competitor
	if err := decodeBody(r, &c); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	updated, err := s.competitors.Update(r.Context(), chi.URLParam(r, "businessName"), c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCompetitor handles DELETE /competitors/{businessName}.
func (s *Server) DeleteCompetitor(w http.ResponseWriter, r *http.Request) {
	if err := s.competitors.Delete(r.Context(), chi.URLParam(r, "businessName")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
