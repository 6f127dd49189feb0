package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/intelhub/backend/internal/domain"
)

// ListMasterProducts handles GET /master-products.
func (s *Server) ListMasterProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetMasterProduct handles GET /master-products/{productID}.
func (s *Server) GetMasterProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.Get(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateMasterProduct handles POST /master-products.
func (s *Server) CreateMasterProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.MasterProduct
	if err := decodeBody(r, &p); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := s.products.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateMasterProduct handles PUT /master-products/{productID}.
func (s *Server) UpdateMasterProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.MasterProduct
	if err := decodeBody(r, &p); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	updated, err := s.products.Update(r.Context(), chi.URLParam(r, "productID"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteMasterProduct handles DELETE /master-products/{productID}.
func (s *Server) DeleteMasterProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.products.Delete(r.Context(), chi.URLParam(r, "productID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
