package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/intelhub/backend/internal/domain"
)

// ListVendors handles GET /vendors.
func (s *Server) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.vendors.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendors)
}

// GetVendor handles GET /vendors/{vendorID}.
func (s *Server) GetVendor(w http.ResponseWriter, r *http.Request) {
	v, err := s.vendors.Get(r.Context(), chi.URLParam(r, "vendorID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVendor handles POST /vendors. Free-text tags in the body are
// resolved into canonical slugs by the service.
func (s *Server) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var v domain.Vendor
	if err := decodeBody(r, &v); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := s.vendors.Create(r.Context(), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateVendor handles PUT /vendors/{vendorID}.
func (s *Server) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var v domain.Vendor
	if err := decodeBody(r, &v); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	updated, err := s.vendors.Update(r.Context(), chi.URLParam(r, "vendorID"), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteVendor handles DELETE /vendors/{vendorID}.
func (s *Server) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := s.vendors.Delete(r.Context(), chi.URLParam(r, "vendorID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
