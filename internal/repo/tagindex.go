package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/intelhub/backend/internal/domain"
)

// TagIndexRepo defines the persistence operations for the inverted tag index
// (tag slug -> referencing entities). The index exclusively owns its records;
// it never touches an entity's own tags field.
type TagIndexRepo interface {
	// Put upserts a batch of membership records. Idempotent: re-inserting an
	// existing (slug, entity key) pair overwrites it in place.
	Put(ctx context.Context, records []domain.TagIndexRecord) error

	// Remove deletes the records for the given entity keys under one slug.
	// Idempotent: missing records are ignored.
	Remove(ctx context.Context, tagSlug string, entityKeys []string) error

	// Move re-keys every record under sourceSlug to targetSlug, preserving
	// entity identity. A record for the same entity already under targetSlug
	// is overwritten. No-op when the source bucket is empty or the slugs
	// match. The delete+put batch is not atomic.
	Move(ctx context.Context, sourceSlug, targetSlug string) error

	// ListEntityKeys returns the entity keys currently indexed under tagSlug,
	// sorted.
	ListEntityKeys(ctx context.Context, tagSlug string) ([]string, error)
}

// redisTagIndexRepo is the Redis implementation of TagIndexRepo.
// Records live at tagindex:<slug>:<entityKey>, so one slug's bucket is a
// single prefix scan.
type redisTagIndexRepo struct {
	store *Store
}

// NewTagIndexRepo constructs a TagIndexRepo backed by the provided store.
func NewTagIndexRepo(store *Store) TagIndexRepo {
	return &redisTagIndexRepo{store: store}
}

func indexKey(tagSlug, entityKey string) string {
	return keyTagIndex + tagSlug + ":" + entityKey
}

func (r *redisTagIndexRepo) Put(ctx context.Context, records []domain.TagIndexRecord) error {
	if len(records) == 0 {
		return nil
	}
	entries := make(map[string][]byte, len(records))
	for _, record := range records {
		raw, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("repo.TagIndexRepo.Put: encode record: %w", err)
		}
		entries[indexKey(record.TagSlug, record.EntityKey())] = raw
	}
	if err := r.store.putBatch(ctx, entries); err != nil {
		return fmt.Errorf("repo.TagIndexRepo.Put: %w", err)
	}
	return nil
}

func (r *redisTagIndexRepo) Remove(ctx context.Context, tagSlug string, entityKeys []string) error {
	if len(entityKeys) == 0 {
		return nil
	}
	keys := make([]string, 0, len(entityKeys))
	for _, entityKey := range entityKeys {
		keys = append(keys, indexKey(tagSlug, entityKey))
	}
	if err := r.store.deleteBatch(ctx, keys); err != nil {
		return fmt.Errorf("repo.TagIndexRepo.Remove: %w", err)
	}
	return nil
}

func (r *redisTagIndexRepo) Move(ctx context.Context, sourceSlug, targetSlug string) error {
	if sourceSlug == targetSlug {
		return nil
	}
	values, err := r.store.scanValues(ctx, keyTagIndex+sourceSlug+":")
	if err != nil {
		return fmt.Errorf("repo.TagIndexRepo.Move: %w", err)
	}
	if len(values) == 0 {
		return nil
	}

	var (
		old     []string
		entries = make(map[string][]byte, len(values))
	)
	for _, raw := range values {
		var record domain.TagIndexRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("repo.TagIndexRepo.Move: decode record: %w", err)
		}
		old = append(old, indexKey(sourceSlug, record.EntityKey()))
		record.TagSlug = targetSlug
		if record.CreatedAt.IsZero() {
			record.CreatedAt = time.Now().UTC()
		}
		moved, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("repo.TagIndexRepo.Move: encode record: %w", err)
		}
		entries[indexKey(targetSlug, record.EntityKey())] = moved
	}

	if err := r.store.deleteBatch(ctx, old); err != nil {
		return fmt.Errorf("repo.TagIndexRepo.Move: %w", err)
	}
	if err := r.store.putBatch(ctx, entries); err != nil {
		return fmt.Errorf("repo.TagIndexRepo.Move: %w", err)
	}
	return nil
}

func (r *redisTagIndexRepo) ListEntityKeys(ctx context.Context, tagSlug string) ([]string, error) {
	prefix := keyTagIndex + tagSlug + ":"
	keys, err := r.store.scanKeys(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("repo.TagIndexRepo.ListEntityKeys: %w", err)
	}
	entityKeys := []string{}
	for _, key := range keys {
		entityKeys = append(entityKeys, strings.TrimPrefix(key, prefix))
	}
	return entityKeys, nil
}
