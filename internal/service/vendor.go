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

// VendorService implements vendor CRUD. Vendor tags arrive as free text and
// are coerced into canonical slugs through resolve-or-create before storage;
// vendor names are unique case-insensitively across the catalog.
type VendorService struct {
	vendors  repo.VendorRepo
	wishlist repo.WishlistRepo
	tags     *TagService
	index    repo.TagIndexRepo
}

// NewVendorService constructs a VendorService.
func NewVendorService(vendors repo.VendorRepo, wishlist repo.WishlistRepo, tags *TagService, index repo.TagIndexRepo) *VendorService {
	return &VendorService{vendors: vendors, wishlist: wishlist, tags: tags, index: index}
}

// List returns all vendors.
func (s *VendorService) List(ctx context.Context) ([]domain.Vendor, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VendorService.List: %w", err)
	}
	return vendors, nil
}

// Get returns the vendor with the given ID.
func (s *VendorService) Get(ctx context.Context, vendorID string) (domain.Vendor, error) {
	v, err := s.vendors.Get(ctx, vendorID)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("service.VendorService.Get: %w", err)
	}
	return v, nil
}

// Create normalizes the vendor's phone and tags, enforces name uniqueness,
// assigns a fresh ID, persists, and seeds the inverted index.
func (s *VendorService) Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return domain.Vendor{}, fmt.Errorf("%w: vendor name is required", domain.ErrValidation)
	}
	if err := s.ensureNameUnique(ctx, v.Name, ""); err != nil {
		return domain.Vendor{}, err
	}
	phone, err := normalizePhone(v.Phone)
	if err != nil {
		return domain.Vendor{}, err
	}
	v.Phone = phone
	v.Tags, err = s.resolveTags(ctx, v.Tags)
	if err != nil {
		return domain.Vendor{}, err
	}

	now := time.Now().UTC()
	v.VendorID = uuid.New().String()
	v.CreatedAt = now
	v.UpdatedAt = now

	created, err := s.vendors.Create(ctx, v)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("service.VendorService.Create: %w", err)
	}
	if err := SyncTagIndex(ctx, s.index, domain.EntityVendor, created.VendorID, nil, created.Tags); err != nil {
		return domain.Vendor{}, err
	}
	return created, nil
}

// Update replaces the vendor record with the same normalization as Create
// and syncs the index against the previous tag list.
func (s *VendorService) Update(ctx context.Context, vendorID string, v domain.Vendor) (domain.Vendor, error) {
	previous, err := s.vendors.Get(ctx, vendorID)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("service.VendorService.Update: %w", err)
	}

	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return domain.Vendor{}, fmt.Errorf("%w: vendor name is required", domain.ErrValidation)
	}
	if err := s.ensureNameUnique(ctx, v.Name, vendorID); err != nil {
		return domain.Vendor{}, err
	}
	phone, err := normalizePhone(v.Phone)
	if err != nil {
		return domain.Vendor{}, err
	}
	v.Phone = phone
	v.Tags, err = s.resolveTags(ctx, v.Tags)
	if err != nil {
		return domain.Vendor{}, err
	}

	v.VendorID = vendorID
	v.CreatedAt = previous.CreatedAt
	v.UpdatedAt = time.Now().UTC()

	updated, err := s.vendors.Update(ctx, v)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("service.VendorService.Update: %w", err)
	}
	if err := SyncTagIndex(ctx, s.index, domain.EntityVendor, vendorID, previous.Tags, updated.Tags); err != nil {
		return domain.Vendor{}, err
	}
	return updated, nil
}

// Delete removes the vendor, clears its reference off any wishlist items
// that link to it, and drains its index entries.
func (s *VendorService) Delete(ctx context.Context, vendorID string) error {
	previous, err := s.vendors.Get(ctx, vendorID)
	if err != nil {
		return fmt.Errorf("service.VendorService.Delete: %w", err)
	}

	items, err := s.wishlist.List(ctx)
	if err != nil {
		return fmt.Errorf("service.VendorService.Delete: %w", err)
	}
	for _, item := range items {
		if item.VendorID != vendorID {
			continue
		}
		item.VendorID = ""
		item.UpdatedAt = time.Now().UTC()
		if _, err := s.wishlist.Update(ctx, item); err != nil {
			return fmt.Errorf("service.VendorService.Delete: unlink wishlist item %s: %w", item.WishID, err)
		}
	}

	if err := s.vendors.Delete(ctx, vendorID); err != nil {
		return fmt.Errorf("service.VendorService.Delete: %w", err)
	}
	return SyncTagIndex(ctx, s.index, domain.EntityVendor, vendorID, previous.Tags, nil)
}

// resolveTags coerces free-text vendor tags into canonical slugs, deduping
// the result while preserving input order.
func (s *VendorService) resolveTags(ctx context.Context, values []string) ([]string, error) {
	slugs := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		tag, _, err := s.tags.Resolve(ctx, value)
		if err != nil {
			return nil, err
		}
		slugs = append(slugs, tag.Slug)
	}
	return domain.DedupePreserveOrder(slugs), nil
}

// ensureNameUnique rejects a vendor name already used case-insensitively by
// a vendor other than excludeID.
func (s *VendorService) ensureNameUnique(ctx context.Context, name, excludeID string) error {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return fmt.Errorf("service.VendorService.ensureNameUnique: %w", err)
	}
	lowered := strings.ToLower(name)
	for _, v := range vendors {
		if v.VendorID == excludeID {
			continue
		}
		if strings.ToLower(v.Name) == lowered {
			return fmt.Errorf("%w: vendor name already exists", domain.ErrConflict)
		}
	}
	return nil
}

// normalizePhone strips non-digits and keeps the last ten digits. An empty
// phone is allowed; a non-empty one must contain at least ten digits.
func normalizePhone(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", nil
	}
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	if len(cleaned) < 10 {
		return "", fmt.Errorf("%w: phone must contain at least 10 digits", domain.ErrValidation)
	}
	return cleaned[len(cleaned)-10:], nil
}
