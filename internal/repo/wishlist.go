package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/intelhub/backend/internal/domain"
)

// WishlistRepo defines the persistence operations for wishlist items.
// Identity is the wish ID.
type WishlistRepo interface {
	List(ctx context.Context) ([]domain.WishlistItem, error)
	Get(ctx context.Context, wishID string) (domain.WishlistItem, error)
	Create(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error)
	Update(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error)
	Delete(ctx context.Context, wishID string) error

	Tagged
}

type redisWishlistRepo struct {
	store *Store
}

// NewWishlistRepo constructs a WishlistRepo backed by the provided store.
func NewWishlistRepo(store *Store) WishlistRepo {
	return &redisWishlistRepo{store: store}
}

func (r *redisWishlistRepo) List(ctx context.Context) ([]domain.WishlistItem, error) {
	values, err := r.store.scanValues(ctx, keyWishlist)
	if err != nil {
		return nil, fmt.Errorf("repo.WishlistRepo.List: %w", err)
	}
	items := []domain.WishlistItem{}
	for _, raw := range values {
		item, err := decodeWishlistItem(raw)
		if err != nil {
			return nil, fmt.Errorf("repo.WishlistRepo.List: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *redisWishlistRepo) Get(ctx context.Context, wishID string) (domain.WishlistItem, error) {
	raw, err := r.store.get(ctx, keyWishlist+wishID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Get: %w: wishlist item not found", domain.ErrNotFound)
		}
		return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Get: %w", err)
	}
	item, err := decodeWishlistItem(raw)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Get: %w", err)
	}
	return item, nil
}

func (r *redisWishlistRepo) Create(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Create: encode: %w", err)
	}
	if err := r.store.putIfAbsent(ctx, keyWishlist+item.WishID, raw); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Create: %w: wishlist item already exists", domain.ErrConflict)
		}
		return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Create: %w", err)
	}
	return item, nil
}

func (r *redisWishlistRepo) Update(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Update: encode: %w", err)
	}
	if err := r.store.putIfPresent(ctx, keyWishlist+item.WishID, raw); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Update: %w: wishlist item not found", domain.ErrNotFound)
		}
		return domain.WishlistItem{}, fmt.Errorf("repo.WishlistRepo.Update: %w", err)
	}
	return item, nil
}

func (r *redisWishlistRepo) Delete(ctx context.Context, wishID string) error {
	if err := r.store.deleteIfPresent(ctx, keyWishlist+wishID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("repo.WishlistRepo.Delete: %w: wishlist item not found", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.WishlistRepo.Delete: %w", err)
	}
	return nil
}

func (r *redisWishlistRepo) EntityType() domain.EntityType {
	return domain.EntityWishlist
}

func (r *redisWishlistRepo) ListTagged(ctx context.Context) ([]domain.TaggedEntity, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	entities := make([]domain.TaggedEntity, 0, len(items))
	for _, item := range items {
		entities = append(entities, domain.TaggedEntity{
			Type: domain.EntityWishlist,
			ID:   item.WishID,
			Tags: item.Tags,
		})
	}
	return entities, nil
}

func (r *redisWishlistRepo) GetTagged(ctx context.Context, entityID string) (domain.TaggedEntity, error) {
	item, err := r.Get(ctx, entityID)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	return domain.TaggedEntity{Type: domain.EntityWishlist, ID: item.WishID, Tags: item.Tags}, nil
}

func (r *redisWishlistRepo) UpdateTags(ctx context.Context, entityID string, tags []string) (domain.TaggedEntity, error) {
	item, err := r.Get(ctx, entityID)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	item.Tags = domain.DedupePreserveOrder(tags)
	item.UpdatedAt = time.Now().UTC()
	updated, err := r.Update(ctx, item)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	return domain.TaggedEntity{Type: domain.EntityWishlist, ID: updated.WishID, Tags: updated.Tags}, nil
}

func decodeWishlistItem(raw []byte) (domain.WishlistItem, error) {
	var item domain.WishlistItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.WishlistItem{}, fmt.Errorf("decode wishlist item: %w", err)
	}
	for _, field := range []*[]string{&item.ReferenceURLs, &item.Images, &item.SourcePlatforms, &item.Competitors, &item.Tags} {
		if *field == nil {
			*field = []string{}
		}
	}
	if item.Status == "" {
		item.Status = domain.WishlistPlanned
	}
	if item.Priority == "" {
		item.Priority = domain.PriorityMedium
	}
	return item, nil
}
