package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/intelhub/backend/internal/domain"
)

// MasterProductRepo defines the persistence operations for master products.
// Identity is the product ID. Master products carry no tags field and do not
// participate in the tag index.
type MasterProductRepo interface {
	// List returns all master products, most recently updated first.
	List(ctx context.Context) ([]domain.MasterProduct, error)
	Get(ctx context.Context, productID string) (domain.MasterProduct, error)
	Create(ctx context.Context, p domain.MasterProduct) (domain.MasterProduct, error)
	Update(ctx context.Context, p domain.MasterProduct) (domain.MasterProduct, error)
	Delete(ctx context.Context, productID string) error
}

type redisMasterProductRepo struct {
	store *Store
}

// NewMasterProductRepo constructs a MasterProductRepo backed by the provided store.
func NewMasterProductRepo(store *Store) MasterProductRepo {
	return &redisMasterProductRepo{store: store}
}

func (r *redisMasterProductRepo) List(ctx context.Context) ([]domain.MasterProduct, error) {
	values, err := r.store.scanValues(ctx, keyProduct)
	if err != nil {
		return nil, fmt.Errorf("repo.MasterProductRepo.List: %w", err)
	}
	products := []domain.MasterProduct{}
	for _, raw := range values {
		var p domain.MasterProduct
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("repo.MasterProductRepo.List: decode: %w", err)
		}
		products = append(products, p)
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].UpdatedAt.After(products[j].UpdatedAt)
	})
	return products, nil
}

func (r *redisMasterProductRepo) Get(ctx context.Context, productID string) (domain.MasterProduct, error) {
	raw, err := r.store.get(ctx, keyProduct+productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Get: %w: master product not found", domain.ErrNotFound)
		}
		return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Get: %w", err)
	}
	var p domain.MasterProduct
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Get: decode: %w", err)
	}
	return p, nil
}

func (r *redisMasterProductRepo) Create(ctx context.Context, p domain.MasterProduct) (domain.MasterProduct, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Create: encode: %w", err)
	}
	if err := r.store.putIfAbsent(ctx, keyProduct+p.ProductID, raw); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Create: %w: master product already exists", domain.ErrConflict)
		}
		return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Create: %w", err)
	}
	return p, nil
}

func (r *redisMasterProductRepo) Update(ctx context.Context, p domain.MasterProduct) (domain.MasterProduct, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Update: encode: %w", err)
	}
	if err := r.store.putIfPresent(ctx, keyProduct+p.ProductID, raw); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Update: %w: master product not found", domain.ErrNotFound)
		}
		return domain.MasterProduct{}, fmt.Errorf("repo.MasterProductRepo.Update: %w", err)
	}
	return p, nil
}

func (r *redisMasterProductRepo) Delete(ctx context.Context, productID string) error {
	if err := r.store.deleteIfPresent(ctx, keyProduct+productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("repo.MasterProductRepo.Delete: %w: master product not found", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.MasterProductRepo.Delete: %w", err)
	}
	return nil
}
