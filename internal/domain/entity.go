// Package domain contains the core data types for the IntelHub backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"fmt"
	"strings"
	"time"
)

// EntityType identifies a kind of tagged business record.
// Influencer is accepted on the wire but not yet backed by a repository;
// operations against it return ErrUnsupported.
type EntityType string

const (
	EntityCompetitor    EntityType = "competitor"
	EntityWishlist      EntityType = "wishlist"
	EntityVendor        EntityType = "vendor"
	EntityInfluencer    EntityType = "influencer"
	EntityMasterProduct EntityType = "master-product"
)

// TaggedEntityTypes lists the entity types that carry a tags field and
// participate in merges, assignments, and usage analytics, in the order
// merge rewrites visit them.
var TaggedEntityTypes = []EntityType{EntityCompetitor, EntityWishlist, EntityVendor}

// EntityKey builds the inverted-index addressing key for an entity.
func EntityKey(entityType EntityType, entityID string) string {
	return string(entityType) + "#" + entityID
}

// ParseEntityKey splits an inverted-index key back into its entity type and
// identifier. The ID itself may contain '#' characters.
func ParseEntityKey(key string) (EntityType, string, error) {
	entityType, entityID, ok := strings.Cut(key, "#")
	if !ok {
		return "", "", fmt.Errorf("%w: invalid entity key %q", ErrValidation, key)
	}
	return EntityType(entityType), entityID, nil
}

// TaggedEntity is the transient view of an entity the tag subsystem works
// with: its identity plus a snapshot of its forward tag list. The subsystem
// never holds a long-lived reference to entity state.
type TaggedEntity struct {
	Type EntityType `json:"entity_type"`
	ID   string     `json:"entity_id"`
	Tags []string   `json:"tags"`
}

// Key returns the entity's inverted-index addressing key.
func (e TaggedEntity) Key() string {
	return EntityKey(e.Type, e.ID)
}

// Competitor is a tracked competitor business. Identity is BusinessName.
type Competitor struct {
	BusinessName       string   `json:"business_name"`
	WebsiteURL         string   `json:"website_url,omitempty"`
	Country            string   `json:"country,omitempty"`
	City               string   `json:"city,omitempty"`
	Categories         []string `json:"categories"`
	PriceRange         string   `json:"price_range,omitempty"`
	InstagramHandle    string   `json:"instagram_handle,omitempty"`
	InstagramFollowers int      `json:"instagram_followers,omitempty"`
	Email              string   `json:"email,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	IntelScore         int      `json:"intel_score,omitempty"`
	Priority           string   `json:"priority,omitempty"`
	Watchlist          bool     `json:"watchlist"`
	BrandNotes         string   `json:"brand_notes,omitempty"`
	Tags               []string `json:"tags"`
}

// WishlistStatus is the sourcing lifecycle of a wishlist item.
type WishlistStatus string

const (
	WishlistPlanned   WishlistStatus = "planned"
	WishlistSourcing  WishlistStatus = "sourcing"
	WishlistOrdered   WishlistStatus = "ordered"
	WishlistProcured  WishlistStatus = "procured"
	WishlistAbandoned WishlistStatus = "abandoned"
)

// Valid reports whether s is a known wishlist status.
func (s WishlistStatus) Valid() bool {
	switch s {
	case WishlistPlanned, WishlistSourcing, WishlistOrdered, WishlistProcured, WishlistAbandoned:
		return true
	}
	return false
}

// WishlistPriority ranks how urgently an item should be sourced.
type WishlistPriority string

const (
	PriorityLow    WishlistPriority = "low"
	PriorityMedium WishlistPriority = "medium"
	PriorityHigh   WishlistPriority = "high"
)

// Valid reports whether p is a known wishlist priority.
func (p WishlistPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// WishlistItem is a sourcing wishlist entry. Identity is WishID.
// PriceActual is only meaningful while Status is "procured".
type WishlistItem struct {
	WishID          string           `json:"wish_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	ReferenceURLs   []string         `json:"reference_urls"`
	Images          []string         `json:"images"`
	SourcePlatforms []string         `json:"source_platforms"`
	Competitors     []string         `json:"competitors"`
	VendorID        string           `json:"vendor_id,omitempty"`
	MasterProductID string           `json:"master_product_id,omitempty"`
	Status          WishlistStatus   `json:"status"`
	PriceTarget     *float64         `json:"price_target,omitempty"`
	PriceActual     *float64         `json:"price_actual,omitempty"`
	Tags            []string         `json:"tags"`
	Priority        WishlistPriority `json:"priority"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Vendor is a sourcing vendor. Identity is VendorID; Name is additionally
// unique case-insensitively across the catalog.
type Vendor struct {
	VendorID     string    `json:"vendor_id"`
	Name         string    `json:"name"`
	WebsiteURL   string    `json:"website_url,omitempty"`
	WhatsappLink string    `json:"whatsapp_link,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	CatalogURLs  []string  `json:"catalog_urls"`
	LeadTimeDays int       `json:"lead_time_days,omitempty"`
	MOQUnits     int       `json:"moq_units,omitempty"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	Tags         []string  `json:"tags"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MasterProduct is a canonical product record wishlist items can link to.
// Identity is ProductID.
type MasterProduct struct {
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ProductType string    `json:"product_type,omitempty"`
	Metal       string    `json:"metal,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
