package repo

import (
	"context"

	"github.com/intelhub/backend/internal/domain"
)

// Tagged is the minimal capability the tag subsystem requires from an entity
// repository: enumerate forward tag lists, fetch one entity's, and rewrite
// one entity's. Merge rewrites, tag assignment, index sync, and usage
// analytics all operate through this interface and never see the rest of the
// entity's fields.
type Tagged interface {
	// EntityType identifies which kind of entity the repository owns.
	EntityType() domain.EntityType

	// ListTagged returns a transient tags snapshot of every entity.
	ListTagged(ctx context.Context) ([]domain.TaggedEntity, error)

	// GetTagged returns one entity's tags snapshot.
	// Returns domain.ErrNotFound if the entity does not exist.
	GetTagged(ctx context.Context, entityID string) (domain.TaggedEntity, error)

	// UpdateTags replaces an entity's forward tag list and persists the
	// entity. Repositories whose entities carry timestamps refresh
	// updated_at as part of the write.
	// Returns domain.ErrNotFound if the entity no longer exists.
	UpdateTags(ctx context.Context, entityID string, tags []string) (domain.TaggedEntity, error)
}
