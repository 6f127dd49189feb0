package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/intelhub/backend/internal/domain"
)

// VendorRepo defines the persistence operations for vendors.
// Identity is the vendor ID.
type VendorRepo interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	Get(ctx context.Context, vendorID string) (domain.Vendor, error)
	Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error)
	Update(ctx context.Context, v domain.Vendor) (domain.Vendor, error)
	Delete(ctx context.Context, vendorID string) error

	Tagged
}

type redisVendorRepo struct {
	store *Store
}

// NewVendorRepo constructs a VendorRepo backed by the provided store.
func NewVendorRepo(store *Store) VendorRepo {
	return &redisVendorRepo{store: store}
}

func (r *redisVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) {
	values, err := r.store.scanValues(ctx, keyVendor)
	if err != nil {
		return nil, fmt.Errorf("repo.VendorRepo.List: %w", err)
	}
	vendors := []domain.Vendor{}
	for _, raw := range values {
		v, err := decodeVendor(raw)
		if err != nil {
			return nil, fmt.Errorf("repo.VendorRepo.List: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}

func (r *redisVendorRepo) Get(ctx context.Context, vendorID string) (domain.Vendor, error) {
	raw, err := r.store.get(ctx, keyVendor+vendorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Get: %w: vendor not found", domain.ErrNotFound)
		}
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Get: %w", err)
	}
	v, err := decodeVendor(raw)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Get: %w", err)
	}
	return v, nil
}

func (r *redisVendorRepo) Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Create: encode: %w", err)
	}
	if err := r.store.putIfAbsent(ctx, keyVendor+v.VendorID, raw); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Create: %w: vendor already exists", domain.ErrConflict)
		}
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Create: %w", err)
	}
	return v, nil
}

func (r *redisVendorRepo) Update(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Update: encode: %w", err)
	}
	if err := r.store.putIfPresent(ctx, keyVendor+v.VendorID, raw); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Update: %w: vendor not found", domain.ErrNotFound)
		}
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Update: %w", err)
	}
	return v, nil
}

func (r *redisVendorRepo) Delete(ctx context.Context, vendorID string) error {
	if err := r.store.deleteIfPresent(ctx, keyVendor+vendorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("repo.VendorRepo.Delete: %w: vendor not found", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.VendorRepo.Delete: %w", err)
	}
	return nil
}

func (r *redisVendorRepo) EntityType() domain.EntityType {
	return domain.EntityVendor
}

func (r *redisVendorRepo) ListTagged(ctx context.Context) ([]domain.TaggedEntity, error) {
	vendors, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	entities := make([]domain.TaggedEntity, 0, len(vendors))
	for _, v := range vendors {
		entities = append(entities, domain.TaggedEntity{
			Type: domain.EntityVendor,
			ID:   v.VendorID,
			Tags: v.Tags,
		})
	}
	return entities, nil
}

func (r *redisVendorRepo) GetTagged(ctx context.Context, entityID string) (domain.TaggedEntity, error) {
	v, err := r.Get(ctx, entityID)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	return domain.TaggedEntity{Type: domain.EntityVendor, ID: v.VendorID, Tags: v.Tags}, nil
}

func (r *redisVendorRepo) UpdateTags(ctx context.Context, entityID string, tags []string) (domain.TaggedEntity, error) {
	v, err := r.Get(ctx, entityID)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	v.Tags = domain.DedupePreserveOrder(tags)
	v.UpdatedAt = time.Now().UTC()
	updated, err := r.Update(ctx, v)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	return domain.TaggedEntity{Type: domain.EntityVendor, ID: updated.VendorID, Tags: updated.Tags}, nil
}

func decodeVendor(raw []byte) (domain.Vendor, error) {
	var v domain.Vendor
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.Vendor{}, fmt.Errorf("decode vendor: %w", err)
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if v.CatalogURLs == nil {
		v.CatalogURLs = []string{}
	}
	return v, nil
}
