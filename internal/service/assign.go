package service

import (
	"context"
	"fmt"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// AssignmentService applies add/remove tag deltas to a single entity and
// keeps the inverted index in step.
type AssignmentService struct {
	tags     *TagService
	index    repo.TagIndexRepo
	entities EntityDirectory
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(tags *TagService, index repo.TagIndexRepo, entities EntityDirectory) *AssignmentService {
	return &AssignmentService{tags: tags, index: index, entities: entities}
}

// Assign removes the slugs in remove from the entity's tag list, appends the
// slugs in add (skipping those already present), persists the new list, and
// syncs the inverted index. Every added slug must name an assignable tag;
// removed slugs are not validated, so stale references can always be shed.
func (s *AssignmentService) Assign(ctx context.Context, entityType domain.EntityType, entityID string, add, remove []string) (domain.TaggedEntity, error) {
	if entityID == "" {
		return domain.TaggedEntity{}, fmt.Errorf("%w: entity id is required", domain.ErrValidation)
	}
	tagged, err := s.entities.ForType(entityType)
	if err != nil {
		return domain.TaggedEntity{}, err
	}

	add = domain.DedupePreserveOrder(add)
	if _, err := s.tags.EnsureAssignable(ctx, add); err != nil {
		return domain.TaggedEntity{}, err
	}

	entity, err := tagged.GetTagged(ctx, entityID)
	if err != nil {
		return domain.TaggedEntity{}, fmt.Errorf("service.AssignmentService.Assign: %w", err)
	}

	removing := make(map[string]bool, len(remove))
	for _, slug := range remove {
		removing[slug] = true
	}
	next := make([]string, 0, len(entity.Tags)+len(add))
	for _, slug := range entity.Tags {
		if !removing[slug] {
			next = append(next, slug)
		}
	}
	next = domain.DedupePreserveOrder(append(next, add...))

	updated, err := tagged.UpdateTags(ctx, entityID, next)
	if err != nil {
		return domain.TaggedEntity{}, fmt.Errorf("service.AssignmentService.Assign: %w", err)
	}
	if err := SyncTagIndex(ctx, s.index, entityType, entityID, entity.Tags, updated.Tags); err != nil {
		return domain.TaggedEntity{}, err
	}
	return updated, nil
}
