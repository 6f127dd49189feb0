package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/service"
)

// ListWishlist handles GET /wishlist. Query parameters: status, priority,
// vendor_id, tag.
func (s *Server) ListWishlist(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.WishlistFilter{
		Status:   domain.WishlistStatus(q.Get("status")),
		Priority: domain.WishlistPriority(q.Get("priority")),
		VendorID: q.Get("vendor_id"),
		Tag:      q.Get("tag"),
	}
	items, err := s.wishlist.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetWishlistItem handles GET /wishlist/{wishID}.
func (s *Server) GetWishlistItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.wishlist.Get(r.Context(), chi.URLParam(r, "wishID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateWishlistItem handles POST /wishlist.
func (s *Server) CreateWishlistItem(w http.ResponseWriter, r *http.Request) {
	var item domain.WishlistItem
	if err := decodeBody(r, &item); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := s.wishlist.Create(r.Context(), item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateWishlistItem handles PUT /wishlist/{wishID}.
func (s *Server) UpdateWishlistItem(w http.ResponseWriter, r *http.Request) {
	var item domain.WishlistItem
	if err := decodeBody(r, &item); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	updated, err := s.wishlist.Update(r.Context(), chi.URLParam(r, "wishID"), item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteWishlistItem handles DELETE /wishlist/{wishID}.
func (s *Server) DeleteWishlistItem(w http.ResponseWriter, r *http.Request) {
	if err := s.wishlist.Delete(r.Context(), chi.URLParam(r, "wishID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PatchWishlistStatus handles PATCH /wishlist/{wishID}/status.
func (s *Server) PatchWishlistStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status      string   `json:"status"`
		PriceActual *float64 `json:"price_actual"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	item, err := s.wishlist.PatchStatus(r.Context(), chi.URLParam(r, "wishID"), domain.WishlistStatus(req.Status), req.PriceActual)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// PatchWishlistVendor handles PATCH /wishlist/{wishID}/vendor.
// An empty vendor_id clears the link.
func (s *Server) PatchWishlistVendor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VendorID string `json:"vendor_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	item, err := s.wishlist.PatchVendor(r.Context(), chi.URLParam(r, "wishID"), req.VendorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// PatchWishlistMasterProduct handles PATCH /wishlist/{wishID}/master-product.
// An empty master_product_id clears the link.
func (s *Server) PatchWishlistMasterProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MasterProductID string `json:"master_product_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	item, err := s.wishlist.PatchMasterProduct(r.Context(), chi.URLParam(r, "wishID"), req.MasterProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// PatchWishlistCompetitors handles PATCH /wishlist/{wishID}/competitors.
func (s *Server) PatchWishlistCompetitors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Add    []string `json:"add"`
		Remove []string `json:"remove"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	item, err := s.wishlist.PatchCompetitors(r.Context(), chi.URLParam(r, "wishID"), req.Add, req.Remove)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
