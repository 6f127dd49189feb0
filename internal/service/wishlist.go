package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// WishlistService implements wishlist-item CRUD, the lifecycle patches, and
// link validation against the competitor, vendor, and master-product
// repositories. Every tag mutation syncs the inverted index.
type WishlistService struct {
	wishlist    repo.WishlistRepo
	competitors repo.CompetitorRepo
	vendors     repo.VendorRepo
	products    repo.MasterProductRepo
	tags        *TagService
	index       repo.TagIndexRepo
}

// NewWishlistService constructs a WishlistService.
func NewWishlistService(wishlist repo.WishlistRepo, competitors repo.CompetitorRepo, vendors repo.VendorRepo, products repo.MasterProductRepo, tags *TagService, index repo.TagIndexRepo) *WishlistService {
	return &WishlistService{
		wishlist:    wishlist,
		competitors: competitors,
		vendors:     vendors,
		products:    products,
		tags:        tags,
		index:       index,
	}
}

// WishlistFilter narrows List results. Zero values mean "no filter".
type WishlistFilter struct {
	Status   domain.WishlistStatus
	Priority domain.WishlistPriority
	VendorID string
	Tag      string
}

// List returns wishlist items matching the filter, most recently updated
// first.
func (s *WishlistService) List(ctx context.Context, filter WishlistFilter) ([]domain.WishlistItem, error) {
	items, err := s.wishlist.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.WishlistService.List: %w", err)
	}
	filtered := []domain.WishlistItem{}
	for _, item := range items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && item.Priority != filter.Priority {
			continue
		}
		if filter.VendorID != "" && item.VendorID != filter.VendorID {
			continue
		}
		if filter.Tag != "" && !containsSlug(item.Tags, filter.Tag) {
			continue
		}
		filtered = append(filtered, item)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})
	return filtered, nil
}

// Get returns the wishlist item with the given ID.
func (s *WishlistService) Get(ctx context.Context, wishID string) (domain.WishlistItem, error) {
	item, err := s.wishlist.Get(ctx, wishID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.Get: %w", err)
	}
	return item, nil
}

// Create validates the item, assigns a fresh ID, persists it, and seeds the
// inverted index from an empty tag set.
func (s *WishlistService) Create(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	normalized, err := s.normalizeItem(ctx, item)
	if err != nil {
		return domain.WishlistItem{}, err
	}

	now := time.Now().UTC()
	normalized.WishID = uuid.New().String()
	normalized.CreatedAt = now
	normalized.UpdatedAt = now

	created, err := s.wishlist.Create(ctx, normalized)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.Create: %w", err)
	}
	if err := SyncTagIndex(ctx, s.index, domain.EntityWishlist, created.WishID, nil, created.Tags); err != nil {
		return domain.WishlistItem{}, err
	}
	return created, nil
}

// Update replaces the item with the same validation as Create and syncs the
// index against the previous tag list. The wish ID is immutable.
func (s *WishlistService) Update(ctx context.Context, wishID string, item domain.WishlistItem) (domain.WishlistItem, error) {
	previous, err := s.wishlist.Get(ctx, wishID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.Update: %w", err)
	}

	normalized, err := s.normalizeItem(ctx, item)
	if err != nil {
		return domain.WishlistItem{}, err
	}
	normalized.WishID = wishID
	normalized.CreatedAt = previous.CreatedAt
	normalized.UpdatedAt = time.Now().UTC()

	updated, err := s.wishlist.Update(ctx, normalized)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.Update: %w", err)
	}
	if err := SyncTagIndex(ctx, s.index, domain.EntityWishlist, wishID, previous.Tags, updated.Tags); err != nil {
		return domain.WishlistItem{}, err
	}
	return updated, nil
}

// Delete removes the item and drains its index entries.
func (s *WishlistService) Delete(ctx context.Context, wishID string) error {
	previous, err := s.wishlist.Get(ctx, wishID)
	if err != nil {
		return fmt.Errorf("service.WishlistService.Delete: %w", err)
	}
	if err := s.wishlist.Delete(ctx, wishID); err != nil {
		return fmt.Errorf("service.WishlistService.Delete: %w", err)
	}
	return SyncTagIndex(ctx, s.index, domain.EntityWishlist, wishID, previous.Tags, nil)
}

// PatchStatus moves the item through its sourcing lifecycle. The actual
// price is only meaningful while procured: entering "procured" stores the
// supplied value, leaving it clears any stored value.
func (s *WishlistService) PatchStatus(ctx context.Context, wishID string, status domain.WishlistStatus, priceActual *float64) (domain.WishlistItem, error) {
	if !status.Valid() {
		return domain.WishlistItem{}, fmt.Errorf("%w: unknown wishlist status %q", domain.ErrValidation, status)
	}
	item, err := s.wishlist.Get(ctx, wishID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchStatus: %w", err)
	}
	item.Status = status
	if status == domain.WishlistProcured {
		if priceActual != nil {
			item.PriceActual = priceActual
		}
	} else {
		item.PriceActual = nil
	}
	item.UpdatedAt = time.Now().UTC()
	updated, err := s.wishlist.Update(ctx, item)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchStatus: %w", err)
	}
	return updated, nil
}

// PatchVendor links the item to a vendor, or clears the link when vendorID
// is empty.
func (s *WishlistService) PatchVendor(ctx context.Context, wishID, vendorID string) (domain.WishlistItem, error) {
	item, err := s.wishlist.Get(ctx, wishID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchVendor: %w", err)
	}
	if vendorID != "" {
		if _, err := s.vendors.Get(ctx, vendorID); err != nil {
			return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchVendor: %w", err)
		}
	}
	item.VendorID = vendorID
	item.UpdatedAt = time.Now().UTC()
	updated, err := s.wishlist.Update(ctx, item)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchVendor: %w", err)
	}
	return updated, nil
}

// PatchMasterProduct links the item to a master product, or clears the link
// when productID is empty.
func (s *WishlistService) PatchMasterProduct(ctx context.Context, wishID, productID string) (domain.WishlistItem, error) {
	item, err := s.wishlist.Get(ctx, wishID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchMasterProduct: %w", err)
	}
	if productID != "" {
		if _, err := s.products.Get(ctx, productID); err != nil {
			return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchMasterProduct: %w", err)
		}
	}
	item.MasterProductID = productID
	item.UpdatedAt = time.Now().UTC()
	updated, err := s.wishlist.Update(ctx, item)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchMasterProduct: %w", err)
	}
	return updated, nil
}

// PatchCompetitors applies an add/remove delta to the item's competitor
// references. Added names must resolve to existing competitors.
func (s *WishlistService) PatchCompetitors(ctx context.Context, wishID string, add, remove []string) (domain.WishlistItem, error) {
	item, err := s.wishlist.Get(ctx, wishID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchCompetitors: %w", err)
	}

	add = domain.DedupePreserveOrder(add)
	for _, name := range add {
		if _, err := s.competitors.Get(ctx, name); err != nil {
			return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchCompetitors: %w", err)
		}
	}

	removing := make(map[string]bool, len(remove))
	for _, name := range remove {
		removing[name] = true
	}
	next := make([]string, 0, len(item.Competitors)+len(add))
	for _, name := range item.Competitors {
		if !removing[name] {
			next = append(next, name)
		}
	}
	item.Competitors = domain.DedupePreserveOrder(append(next, add...))
	item.UpdatedAt = time.Now().UTC()

	updated, err := s.wishlist.Update(ctx, item)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("service.WishlistService.PatchCompetitors: %w", err)
	}
	return updated, nil
}

// normalizeItem validates the caller-supplied fields shared by Create and
// Update: title, enum defaults, tag assignability, and the three outbound
// links. PriceActual is dropped unless the item is procured.
func (s *WishlistService) normalizeItem(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return domain.WishlistItem{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if item.Status == "" {
		item.Status = domain.WishlistPlanned
	}
	if !item.Status.Valid() {
		return domain.WishlistItem{}, fmt.Errorf("%w: unknown wishlist status %q", domain.ErrValidation, item.Status)
	}
	if item.Priority == "" {
		item.Priority = domain.PriorityMedium
	}
	if !item.Priority.Valid() {
		return domain.WishlistItem{}, fmt.Errorf("%w: unknown wishlist priority %q", domain.ErrValidation, item.Priority)
	}
	if item.Status != domain.WishlistProcured {
		item.PriceActual = nil
	}

	item.Tags = domain.DedupePreserveOrder(item.Tags)
	if _, err := s.tags.EnsureAssignable(ctx, item.Tags); err != nil {
		return domain.WishlistItem{}, err
	}

	if item.VendorID != "" {
		if _, err := s.vendors.Get(ctx, item.VendorID); err != nil {
			return domain.WishlistItem{}, fmt.Errorf("service.WishlistService: vendor link: %w", err)
		}
	}
	if item.MasterProductID != "" {
		if _, err := s.products.Get(ctx, item.MasterProductID); err != nil {
			return domain.WishlistItem{}, fmt.Errorf("service.WishlistService: master product link: %w", err)
		}
	}
	item.Competitors = domain.DedupePreserveOrder(item.Competitors)
	for _, name := range item.Competitors {
		if _, err := s.competitors.Get(ctx, name); err != nil {
			return domain.WishlistItem{}, fmt.Errorf("service.WishlistService: competitor link: %w", err)
		}
	}
	return item, nil
}
