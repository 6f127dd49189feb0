package service

import (
	"context"
	"fmt"
	"time"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// MergeService folds one tag into another: the target absorbs the source's
// aliases (plus the source slug itself), the source is deprecated, every
// entity referencing the source is rewritten to the target, and the inverted
// index bucket is moved. The steps run in that order and are not atomic; a
// failure mid-way leaves the source deprecated but some references
// unrewritten, which a retry of the merge repairs.
type MergeService struct {
	tags     repo.TagRepo
	index    repo.TagIndexRepo
	entities EntityDirectory
}

// NewMergeService constructs a MergeService.
func NewMergeService(tags repo.TagRepo, index repo.TagIndexRepo, entities EntityDirectory) *MergeService {
	return &MergeService{tags: tags, index: index, entities: entities}
}

// Merge folds sourceSlug into targetSlug and reports how many entities of
// each type were rewritten.
func (s *MergeService) Merge(ctx context.Context, sourceSlug, targetSlug string) (domain.MergeResult, error) {
	if sourceSlug == "" || targetSlug == "" {
		return domain.MergeResult{}, fmt.Errorf("%w: source and target slugs are required", domain.ErrValidation)
	}
	if sourceSlug == targetSlug {
		return domain.MergeResult{}, fmt.Errorf("%w: source and target cannot match", domain.ErrValidation)
	}

	source, err := s.tags.Get(ctx, sourceSlug)
	if err != nil {
		return domain.MergeResult{}, fmt.Errorf("service.MergeService.Merge: source: %w", err)
	}
	target, err := s.tags.Get(ctx, targetSlug)
	if err != nil {
		return domain.MergeResult{}, fmt.Errorf("service.MergeService.Merge: target: %w", err)
	}
	if target.Status == domain.StatusDeprecated {
		return domain.MergeResult{}, fmt.Errorf("%w: cannot merge into a deprecated tag", domain.ErrValidation)
	}

	now := time.Now().UTC()

	// The source slug becomes an alias of the target so future resolves of
	// the old spelling land on the merged tag.
	merged := append(append([]string{}, target.Aliases...), source.Slug)
	merged = append(merged, source.Aliases...)
	target.Aliases = domain.NormalizeAliases(merged)
	target.UpdatedAt = now
	target, err = s.tags.Update(ctx, target)
	if err != nil {
		return domain.MergeResult{}, fmt.Errorf("service.MergeService.Merge: update target: %w", err)
	}

	source.Status = domain.StatusDeprecated
	source.UpdatedAt = now
	source, err = s.tags.Update(ctx, source)
	if err != nil {
		return domain.MergeResult{}, fmt.Errorf("service.MergeService.Merge: deprecate source: %w", err)
	}

	counts := map[domain.EntityType]int{}
	for _, tagged := range s.entities.All() {
		n, err := s.rewriteEntities(ctx, tagged, sourceSlug, targetSlug)
		if err != nil {
			return domain.MergeResult{}, err
		}
		counts[tagged.EntityType()] = n
	}

	if err := s.index.Move(ctx, sourceSlug, targetSlug); err != nil {
		return domain.MergeResult{}, fmt.Errorf("service.MergeService.Merge: %w", err)
	}

	return domain.MergeResult{Target: target, Source: source, UpdatedCounts: counts}, nil
}

// rewriteEntities replaces sourceSlug with targetSlug in the tag list of
// every entity of one type that references it. An entity already carrying
// the target keeps a single occurrence.
func (s *MergeService) rewriteEntities(ctx context.Context, tagged repo.Tagged, sourceSlug, targetSlug string) (int, error) {
	entities, err := tagged.ListTagged(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.MergeService.Merge: list %s: %w", tagged.EntityType(), err)
	}
	updated := 0
	for _, entity := range entities {
		next, changed := replaceSlug(entity.Tags, sourceSlug, targetSlug)
		if !changed {
			continue
		}
		if _, err := tagged.UpdateTags(ctx, entity.ID, next); err != nil {
			return updated, fmt.Errorf("service.MergeService.Merge: rewrite %s %s: %w", tagged.EntityType(), entity.ID, err)
		}
		updated++
	}
	return updated, nil
}

func replaceSlug(tags []string, from, to string) ([]string, bool) {
	changed := false
	next := make([]string, 0, len(tags))
	for _, slug := range tags {
		if slug == from {
			slug = to
			changed = true
		}
		next = append(next, slug)
	}
	if !changed {
		return tags, false
	}
	return domain.DedupePreserveOrder(next), true
}
