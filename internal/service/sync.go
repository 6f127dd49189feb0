package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// SyncTagIndex reconciles the inverted index with a change in an entity's
// forward tag list: one Put for all added slugs, then one Remove per dropped
// slug. Slugs present in both lists are untouched. The steps are not atomic;
// if a Remove fails after the Put, the index over-reports until the entity is
// re-synced.
func SyncTagIndex(ctx context.Context, index repo.TagIndexRepo, entityType domain.EntityType, entityID string, previousTags, nextTags []string) error {
	previous := make(map[string]bool, len(previousTags))
	for _, slug := range previousTags {
		previous[slug] = true
	}
	next := make(map[string]bool, len(nextTags))
	for _, slug := range nextTags {
		next[slug] = true
	}

	var toAdd, toRemove []string
	for slug := range next {
		if !previous[slug] {
			toAdd = append(toAdd, slug)
		}
	}
	for slug := range previous {
		if !next[slug] {
			toRemove = append(toRemove, slug)
		}
	}
	sort.Strings(toAdd)
	sort.Strings(toRemove)

	if len(toAdd) > 0 {
		now := time.Now().UTC()
		records := make([]domain.TagIndexRecord, 0, len(toAdd))
		for _, slug := range toAdd {
			records = append(records, domain.TagIndexRecord{
				TagSlug:    slug,
				EntityType: entityType,
				EntityID:   entityID,
				CreatedAt:  now,
			})
		}
		if err := index.Put(ctx, records); err != nil {
			return fmt.Errorf("service.SyncTagIndex: %w", err)
		}
	}

	entityKey := domain.EntityKey(entityType, entityID)
	for _, slug := range toRemove {
		if err := index.Remove(ctx, slug, []string{entityKey}); err != nil {
			return fmt.Errorf("service.SyncTagIndex: %w", err)
		}
	}
	return nil
}
