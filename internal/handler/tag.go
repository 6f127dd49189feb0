package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/service"
)

// createTagRequest is the body for POST /tags.
type createTagRequest struct {
	DisplayName string   `json:"display_name"`
	Category    string   `json:"category"`
	Aliases     []string `json:"aliases"`
	ParentSlug  string   `json:"parent_slug"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
}

// updateTagRequest is the body for PUT /tags/{slug}. Absent fields are left
// unchanged.
type updateTagRequest struct {
	DisplayName *string `json:"display_name"`
	Category    *string `json:"category"`
	ParentSlug  *string `json:"parent_slug"`
	Description *string `json:"description"`
}

// ListTags handles GET /tags. Query parameters: q (substring over
// slug/name/aliases/description), category, status, slugs (comma-separated),
// entity_type (scopes usage counts).
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.TagListFilter{
		Query:    q.Get("q"),
		Category: domain.TagCategory(q.Get("category")),
		Status:   domain.TagStatus(q.Get("status")),
	}
	if raw := q.Get("slugs"); raw != "" {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				filter.Slugs = append(filter.Slugs, slug)
			}
		}
	}
	if raw := q.Get("entity_type"); raw != "" {
		entityType := domain.EntityType(raw)
		filter.EntityType = &entityType
	}

	summaries, err := s.stats.ListSummaries(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetTag handles GET /tags/{slug}.
func (s *Server) GetTag(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.GetSummary(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// CreateTag handles POST /tags.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	tag, err := s.tags.Create(r.Context(), service.CreateTagInput{
		DisplayName: req.DisplayName,
		Category:    domain.TagCategory(req.Category),
		Aliases:     req.Aliases,
		ParentSlug:  req.ParentSlug,
		Description: req.Description,
		Status:      domain.TagStatus(req.Status),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// UpdateTag handles PUT /tags/{slug}.
func (s *Server) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req updateTagRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	in := service.UpdateTagInput{
		DisplayName: req.DisplayName,
		ParentSlug:  req.ParentSlug,
		Description: req.Description,
	}
	if req.Category != nil {
		category := domain.TagCategory(*req.Category)
		in.Category = &category
	}
	tag, err := s.tags.Update(r.Context(), chi.URLParam(r, "slug"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// PatchTagStatus handles PATCH /tags/{slug}/status.
func (s *Server) PatchTagStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	tag, err := s.tags.PatchStatus(r.Context(), chi.URLParam(r, "slug"), domain.TagStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// AddTagAlias handles POST /tags/alias.
func (s *Server) AddTagAlias(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TagSlug string `json:"tag_slug"`
		Alias   string `json:"alias"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	tag, err := s.tags.AddAlias(r.Context(), req.TagSlug, req.Alias)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// ResolveTag handles POST /tags/resolve. Returns 201 when the value created
// a new draft tag, 200 when it resolved to an existing one.
func (s *Server) ResolveTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	tag, created, err := s.tags.Resolve(r.Context(), req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{"tag": tag, "created": created})
}

// MergeTags handles POST /tags/merge.
func (s *Server) MergeTags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceSlug string `json:"source_slug"`
		TargetSlug string `json:"target_slug"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	result, err := s.merges.Merge(r.Context(), req.SourceSlug, req.TargetSlug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AssignTags handles POST /tag-assignments.
func (s *Server) AssignTags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntityType string   `json:"entity_type"`
		EntityID   string   `json:"entity_id"`
		Add        []string `json:"add"`
		Remove     []string `json:"remove"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	entity, err := s.assignments.Assign(r.Context(), domain.EntityType(req.EntityType), req.EntityID, req.Add, req.Remove)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entity)
}

// TopTags handles GET /tags/stats/top?limit=.
func (s *Server) TopTags(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, 10)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	counts, err := s.stats.TopTags(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// TagCooccurrence handles GET /tags/stats/cooccurrence?tag=&limit=.
func (s *Server) TagCooccurrence(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		writeBadRequest(w, "tag query parameter is required")
		return
	}
	limit, err := limitParam(r, 10)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	counts, err := s.stats.Cooccurrence(r.Context(), tag, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// TagCategoryRollup handles GET /tags/stats/categories.
func (s *Server) TagCategoryRollup(w http.ResponseWriter, r *http.Request) {
	rollup, err := s.stats.CategoryRollup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rollup)
}

// limitParam parses the optional ?limit= query parameter, defaulting when
// absent. Range validation happens in the service.
func limitParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	return limit, nil
}
