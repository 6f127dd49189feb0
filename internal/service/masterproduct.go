package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// MasterProductService implements master-product CRUD. Master products carry
// no tags; the only cross-aggregate rule is the delete guard against linked
// wishlist items.
type MasterProductService struct {
	products repo.MasterProductRepo
	wishlist repo.WishlistRepo
}

// NewMasterProductService constructs a MasterProductService.
func NewMasterProductService(products repo.MasterProductRepo, wishlist repo.WishlistRepo) *MasterProductService {
	return &MasterProductService{products: products, wishlist: wishlist}
}

// List returns all master products, most recently updated first.
func (s *MasterProductService) List(ctx context.Context) ([]domain.MasterProduct, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.MasterProductService.List: %w", err)
	}
	return products, nil
}

// Get returns the master product with the given ID.
func (s *MasterProductService) Get(ctx context.Context, productID string) (domain.MasterProduct, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.MasterProduct{}, fmt.Errorf("service.MasterProductService.Get: %w", err)
	}
	return p, nil
}

// Create assigns a fresh ID and persists the product.
func (s *MasterProductService) Create(ctx context.Context, p domain.MasterProduct) (domain.MasterProduct, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.MasterProduct{}, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	p.ProductID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.products.Create(ctx, p)
	if err != nil {
		return domain.MasterProduct{}, fmt.Errorf("service.MasterProductService.Create: %w", err)
	}
	return created, nil
}

// Update replaces the product record. The product ID is immutable.
func (s *MasterProductService) Update(ctx context.Context, productID string, p domain.MasterProduct) (domain.MasterProduct, error) {
	previous, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.MasterProduct{}, fmt.Errorf("service.MasterProductService.Update: %w", err)
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.MasterProduct{}, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}

	p.ProductID = productID
	p.CreatedAt = previous.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return domain.MasterProduct{}, fmt.Errorf("service.MasterProductService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes the product unless a wishlist item still links to it.
func (s *MasterProductService) Delete(ctx context.Context, productID string) error {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return fmt.Errorf("service.MasterProductService.Delete: %w", err)
	}

	items, err := s.wishlist.List(ctx)
	if err != nil {
		return fmt.Errorf("service.MasterProductService.Delete: %w", err)
	}
	for _, item := range items {
		if item.MasterProductID == productID {
			return fmt.Errorf("%w: cannot delete master product while linked to wishlist items", domain.ErrValidation)
		}
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return fmt.Errorf("service.MasterProductService.Delete: %w", err)
	}
	return nil
}
