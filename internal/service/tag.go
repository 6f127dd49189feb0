package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// TagService implements the tag catalog: CRUD with slug/alias uniqueness,
// hierarchy validation, and resolve-or-create coercion of free text into
// canonical tags. Alias and slug uniqueness checks scan the full catalog;
// they assume a small taxonomy.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// CreateTagInput carries the caller-supplied fields for a new tag.
// The slug is always derived from DisplayName, never supplied.
type CreateTagInput struct {
	DisplayName string
	Category    domain.TagCategory
	Aliases     []string
	ParentSlug  string
	Description string
	Status      domain.TagStatus
}

// UpdateTagInput carries partial updates for an existing tag. Nil fields are
// left unchanged. The slug itself is immutable.
type UpdateTagInput struct {
	DisplayName *string
	Category    *domain.TagCategory
	ParentSlug  *string
	Description *string
}

// List returns every tag in the catalog.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	return tags, nil
}

// Get returns the tag with the given slug, or domain.ErrNotFound.
func (s *TagService) Get(ctx context.Context, slug string) (domain.Tag, error) {
	tag, err := s.tags.Get(ctx, slug)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Get: %w", err)
	}
	return tag, nil
}

// Create derives the slug from the display name, validates uniqueness,
// parentage, and aliases, then persists the new tag.
func (s *TagService) Create(ctx context.Context, in CreateTagInput) (domain.Tag, error) {
	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		return domain.Tag{}, fmt.Errorf("%w: display name is required", domain.ErrValidation)
	}
	slug, err := domain.Slugify(displayName)
	if err != nil {
		return domain.Tag{}, err
	}

	if _, err := s.tags.Get(ctx, slug); err == nil {
		return domain.Tag{}, fmt.Errorf("%w: tag %q already exists", domain.ErrConflict, slug)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", err)
	}

	if err := s.validateParent(ctx, slug, in.ParentSlug); err != nil {
		return domain.Tag{}, err
	}

	category := in.Category
	if category == "" {
		category = domain.CategoryOther
	}
	if !category.Valid() {
		return domain.Tag{}, fmt.Errorf("%w: unknown tag category %q", domain.ErrValidation, category)
	}
	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.Valid() {
		return domain.Tag{}, fmt.Errorf("%w: unknown tag status %q", domain.ErrValidation, status)
	}

	aliases := domain.NormalizeAliases(in.Aliases)
	for _, alias := range aliases {
		if err := s.ensureAliasUnique(ctx, alias, ""); err != nil {
			return domain.Tag{}, err
		}
	}

	now := time.Now().UTC()
	created, err := s.tags.Create(ctx, domain.Tag{
		Slug:        slug,
		DisplayName: displayName,
		Category:    category,
		Aliases:     aliases,
		Status:      status,
		ParentSlug:  in.ParentSlug,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", err)
	}
	return created, nil
}

// Update applies a partial update to an existing tag. The slug is never
// recomputed, even when the display name changes.
func (s *TagService) Update(ctx context.Context, slug string, in UpdateTagInput) (domain.Tag, error) {
	current, err := s.tags.Get(ctx, slug)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Update: %w", err)
	}

	if in.DisplayName != nil {
		displayName := strings.TrimSpace(*in.DisplayName)
		if displayName == "" {
			return domain.Tag{}, fmt.Errorf("%w: display name cannot be empty", domain.ErrValidation)
		}
		current.DisplayName = displayName
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return domain.Tag{}, fmt.Errorf("%w: unknown tag category %q", domain.ErrValidation, *in.Category)
		}
		current.Category = *in.Category
	}
	if in.ParentSlug != nil {
		if err := s.validateParent(ctx, slug, *in.ParentSlug); err != nil {
			return domain.Tag{}, err
		}
		current.ParentSlug = *in.ParentSlug
	}
	if in.Description != nil {
		current.Description = *in.Description
	}
	current.UpdatedAt = time.Now().UTC()

	updated, err := s.tags.Update(ctx, current)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Update: %w", err)
	}
	return updated, nil
}

// PatchStatus moves a tag to the given status. Any transition is allowed;
// there is no guard table.
func (s *TagService) PatchStatus(ctx context.Context, slug string, status domain.TagStatus) (domain.Tag, error) {
	if !status.Valid() {
		return domain.Tag{}, fmt.Errorf("%w: unknown tag status %q", domain.ErrValidation, status)
	}
	current, err := s.tags.Get(ctx, slug)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.PatchStatus: %w", err)
	}
	current.Status = status
	current.UpdatedAt = time.Now().UTC()
	updated, err := s.tags.Update(ctx, current)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.PatchStatus: %w", err)
	}
	return updated, nil
}

// AddAlias attaches an alternate spelling to a tag after verifying the alias
// is unique across the whole catalog (other tags' aliases and all slugs).
func (s *TagService) AddAlias(ctx context.Context, slug, alias string) (domain.Tag, error) {
	tag, err := s.tags.Get(ctx, slug)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.AddAlias: %w", err)
	}
	cleaned := strings.Join(strings.Fields(alias), " ")
	if cleaned == "" {
		return domain.Tag{}, fmt.Errorf("%w: alias cannot be empty", domain.ErrValidation)
	}
	if err := s.ensureAliasUnique(ctx, cleaned, tag.Slug); err != nil {
		return domain.Tag{}, err
	}
	tag.Aliases = domain.NormalizeAliases(append(tag.Aliases, cleaned))
	tag.UpdatedAt = time.Now().UTC()
	updated, err := s.tags.Update(ctx, tag)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.AddAlias: %w", err)
	}
	return updated, nil
}

// Resolve coerces free text into a canonical tag: by slug first, then by
// case-insensitive alias match, and finally by creating a new draft tag in
// the "other" category. The returned bool reports whether a tag was created.
func (s *TagService) Resolve(ctx context.Context, input string) (domain.Tag, bool, error) {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return domain.Tag{}, false, fmt.Errorf("%w: tag value cannot be empty", domain.ErrValidation)
	}
	slug, err := domain.Slugify(candidate)
	if err != nil {
		return domain.Tag{}, false, err
	}

	existing, err := s.tags.Get(ctx, slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Tag{}, false, fmt.Errorf("service.TagService.Resolve: %w", err)
	}

	all, err := s.tags.List(ctx)
	if err != nil {
		return domain.Tag{}, false, fmt.Errorf("service.TagService.Resolve: %w", err)
	}
	lowered := strings.ToLower(candidate)
	for _, tag := range all {
		for _, alias := range tag.Aliases {
			if strings.ToLower(alias) == lowered {
				return tag, false, nil
			}
		}
	}

	now := time.Now().UTC()
	created, err := s.tags.Create(ctx, domain.Tag{
		Slug:        slug,
		DisplayName: cases.Title(language.Und).String(candidate),
		Category:    domain.CategoryOther,
		Aliases:     []string{},
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.Tag{}, false, fmt.Errorf("service.TagService.Resolve: %w", err)
	}
	return created, true, nil
}

// EnsureAssignable verifies that every slug names an existing tag whose
// status allows assignment (active or draft). An unknown slug is a
// validation failure, not a not-found: the caller supplied bad input.
func (s *TagService) EnsureAssignable(ctx context.Context, slugs []string) ([]domain.Tag, error) {
	resolved := make([]domain.Tag, 0, len(slugs))
	for _, slug := range slugs {
		tag, err := s.tags.Get(ctx, slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown tag %q", domain.ErrValidation, slug)
			}
			return nil, fmt.Errorf("service.TagService.EnsureAssignable: %w", err)
		}
		if !tag.Status.Assignable() {
			return nil, fmt.Errorf("%w: tag %q is %s and cannot be assigned", domain.ErrValidation, slug, tag.Status)
		}
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

// validateParent checks that a parent reference names an existing tag and is
// not the tag itself. A missing parent surfaces as a validation failure, not
// not-found. Only self-parenting is rejected; deeper cycles (a -> b -> a)
// are accepted as-is.
func (s *TagService) validateParent(ctx context.Context, slug, parentSlug string) error {
	if parentSlug == "" {
		return nil
	}
	if parentSlug == slug {
		return fmt.Errorf("%w: parent cannot be the same as the tag", domain.ErrValidation)
	}
	if _, err := s.tags.Get(ctx, parentSlug); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: parent tag not found", domain.ErrValidation)
		}
		return fmt.Errorf("service.TagService.validateParent: %w", err)
	}
	return nil
}

// ensureAliasUnique rejects an alias that collides case-insensitively with
// any existing tag's slug or with an alias of any tag other than excludeSlug.
func (s *TagService) ensureAliasUnique(ctx context.Context, alias, excludeSlug string) error {
	normalized := strings.ToLower(strings.TrimSpace(alias))
	if normalized == "" {
		return fmt.Errorf("%w: alias cannot be empty", domain.ErrValidation)
	}
	all, err := s.tags.List(ctx)
	if err != nil {
		return fmt.Errorf("service.TagService.ensureAliasUnique: %w", err)
	}
	for _, tag := range all {
		if tag.Slug == excludeSlug {
			continue
		}
		if normalized == tag.Slug {
			return fmt.Errorf("%w: alias %q matches the slug of tag %q", domain.ErrConflict, alias, tag.Slug)
		}
		for _, existing := range tag.Aliases {
			if strings.ToLower(existing) == normalized {
				return fmt.Errorf("%w: alias %q is already mapped to tag %q", domain.ErrConflict, alias, tag.Slug)
			}
		}
	}
	return nil
}
