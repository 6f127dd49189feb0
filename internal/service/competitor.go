package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// CompetitorService implements competitor CRUD with tag validation and
// inverted-index sync on every mutation.
type CompetitorService struct {
	competitors repo.CompetitorRepo
	tags        *TagService
	index       repo.TagIndexRepo
}

// NewCompetitorService constructs a CompetitorService.
func NewCompetitorService(competitors repo.CompetitorRepo, tags *TagService, index repo.TagIndexRepo) *CompetitorService {
	return &CompetitorService{competitors: competitors, tags: tags, index: index}
}

// List returns all competitors.
func (s *CompetitorService) List(ctx context.Context) ([]domain.Competitor, error) {
	competitors, err := s.competitors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CompetitorService.List: %w", err)
	}
	return competitors, nil
}

// Get returns the competitor with the given business name.
func (s *CompetitorService) Get(ctx context.Context, businessName string) (domain.Competitor, error) {
	c, err := s.competitors.Get(ctx, businessName)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("service.CompetitorService.Get: %w", err)
	}
	return c, nil
}

// Create validates the competitor's tags, persists the record, and seeds the
// inverted index from an empty tag set.
func (s *CompetitorService) Create(ctx context.Context, c domain.Competitor) (domain.Competitor, error) {
	c.BusinessName = strings.TrimSpace(c.BusinessName)
	if c.BusinessName == "" {
		return domain.Competitor{}, fmt.Errorf("%w: business name is required", domain.ErrValidation)
	}
	c.Tags = domain.DedupePreserveOrder(c.Tags)
	if _, err := s.tags.EnsureAssignable(ctx, c.Tags); err != nil {
		return domain.Competitor{}, err
	}

	created, err := s.competitors.Create(ctx, c)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("service.CompetitorService.Create: %w", err)
	}
	if err := SyncTagIndex(ctx, s.index, domain.EntityCompetitor, created.BusinessName, nil, created.Tags); err != nil {
		return domain.Competitor{}, err
	}
	return created, nil
}

// Update replaces the competitor record, validating its tags and syncing the
// index against the previous tag list. The business name is immutable.
func (s *CompetitorService) Update(ctx context.Context, businessName string, c domain.Competitor) (domain.Competitor, error) {
	previous, err := s.competitors.Get(ctx, businessName)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("service.CompetitorService.Update: %w", err)
	}
	c.Tags = domain.DedupePreserveOrder(c.Tags)
	if _, err := s.tags.EnsureAssignable(ctx, c.Tags); err != nil {
		return domain.Competitor{}, err
	}

	updated, err := s.competitors.Update(ctx, businessName, c)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("service.CompetitorService.Update: %w", err)
	}
	if err := SyncTagIndex(ctx, s.index, domain.EntityCompetitor, businessName, previous.Tags, updated.Tags); err != nil {
		return domain.Competitor{}, err
	}
	return updated, nil
}

// Delete removes the competitor and drains its index entries.
func (s *CompetitorService) Delete(ctx context.Context, businessName string) error {
	previous, err := s.competitors.Get(ctx, businessName)
	if err != nil {
		return fmt.Errorf("service.CompetitorService.Delete: %w", err)
	}
	if err := s.competitors.Delete(ctx, businessName); err != nil {
		return fmt.Errorf("service.CompetitorService.Delete: %w", err)
	}
	return SyncTagIndex(ctx, s.index, domain.EntityCompetitor, businessName, previous.Tags, nil)
}
