// Package service implements the business logic for the IntelHub backend:
// the tag taxonomy (catalog, resolve-or-create, merges, assignment, inverted
// index sync, usage analytics) and the entity flows that feed it.
package service

import (
	"fmt"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// EntityDirectory resolves entity types to the repositories that own them.
// Only types present here carry tags; anything else is rejected with
// domain.ErrUnsupported before any mutation happens.
type EntityDirectory struct {
	Competitors repo.Tagged
	Wishlist    repo.Tagged
	Vendors     repo.Tagged
}

// ForType returns the repository owning the given entity type.
func (d EntityDirectory) ForType(entityType domain.EntityType) (repo.Tagged, error) {
	switch entityType {
	case domain.EntityCompetitor:
		return d.Competitors, nil
	case domain.EntityWishlist:
		return d.Wishlist, nil
	case domain.EntityVendor:
		return d.Vendors, nil
	case domain.EntityInfluencer:
		return nil, fmt.Errorf("%w: influencer tagging is not yet supported", domain.ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: tagging is not supported for entity type %q", domain.ErrUnsupported, entityType)
	}
}

// All returns every tagged repository, in the fixed order merge rewrites
// visit them: competitor, wishlist, vendor.
func (d EntityDirectory) All() []repo.Tagged {
	return []repo.Tagged{d.Competitors, d.Wishlist, d.Vendors}
}

// Select narrows All to a single repository when entityType is non-nil.
func (d EntityDirectory) Select(entityType *domain.EntityType) ([]repo.Tagged, error) {
	if entityType == nil {
		return d.All(), nil
	}
	tagged, err := d.ForType(*entityType)
	if err != nil {
		return nil, err
	}
	return []repo.Tagged{tagged}, nil
}
