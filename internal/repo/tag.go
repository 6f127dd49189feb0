package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/intelhub/backend/internal/domain"
)

// TagRepo defines the persistence operations for the tag catalog.
// The catalog exclusively owns Tag records; slugs are the primary key.
type TagRepo interface {
	// List returns every tag in the catalog.
	List(ctx context.Context) ([]domain.Tag, error)

	// Get returns the tag with the given slug.
	// Returns domain.ErrNotFound if no such tag exists.
	Get(ctx context.Context, slug string) (domain.Tag, error)

	// Create inserts a tag only if its slug is not already taken.
	// Returns domain.ErrConflict if it is.
	Create(ctx context.Context, tag domain.Tag) (domain.Tag, error)

	// Update overwrites a tag only if its slug already exists.
	// Returns domain.ErrNotFound if it does not. There is no content-version
	// check; concurrent updates race and the later write wins.
	Update(ctx context.Context, tag domain.Tag) (domain.Tag, error)
}

// redisTagRepo is the Redis implementation of TagRepo.
type redisTagRepo struct {
	store *Store
}

// NewTagRepo constructs a TagRepo backed by the provided store.
func NewTagRepo(store *Store) TagRepo {
	return &redisTagRepo{store: store}
}

func (r *redisTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	values, err := r.store.scanValues(ctx, keyTag)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	tags := []domain.Tag{}
	for _, raw := range values {
		tag, err := decodeTag(raw)
		if err != nil {
			return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *redisTagRepo) Get(ctx context.Context, slug string) (domain.Tag, error) {
	raw, err := r.store.get(ctx, keyTag+slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Tag{}, fmt.Errorf("repo.TagRepo.Get: %w: tag not found", domain.ErrNotFound)
		}
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Get: %w", err)
	}
	tag, err := decodeTag(raw)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Get: %w", err)
	}
	return tag, nil
}

func (r *redisTagRepo) Create(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	raw, err := encodeTag(tag)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Create: %w", err)
	}
	if err := r.store.putIfAbsent(ctx, keyTag+tag.Slug, raw); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Tag{}, fmt.Errorf("repo.TagRepo.Create: %w: tag already exists", domain.ErrConflict)
		}
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Create: %w", err)
	}
	return tag, nil
}

func (r *redisTagRepo) Update(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	raw, err := encodeTag(tag)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Update: %w", err)
	}
	if err := r.store.putIfPresent(ctx, keyTag+tag.Slug, raw); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Tag{}, fmt.Errorf("repo.TagRepo.Update: %w: tag not found", domain.ErrNotFound)
		}
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Update: %w", err)
	}
	return tag, nil
}

func encodeTag(tag domain.Tag) ([]byte, error) {
	tag.Aliases = domain.NormalizeAliases(tag.Aliases)
	if tag.Category == "" {
		tag.Category = domain.CategoryOther
	}
	if tag.Status == "" {
		tag.Status = domain.StatusDraft
	}
	raw, err := json.Marshal(tag)
	if err != nil {
		return nil, fmt.Errorf("encode tag: %w", err)
	}
	return raw, nil
}

func decodeTag(raw []byte) (domain.Tag, error) {
	var tag domain.Tag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return domain.Tag{}, fmt.Errorf("decode tag: %w", err)
	}
	if tag.Aliases == nil {
		tag.Aliases = []string{}
	}
	if tag.Category == "" {
		tag.Category = domain.CategoryOther
	}
	if tag.Status == "" {
		tag.Status = domain.StatusDraft
	}
	return tag, nil
}
