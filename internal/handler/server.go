// Package handler implements the HTTP handlers for the IntelHub API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (tag.go, competitor.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/service"
)

// TagServicer defines the tag catalog operations the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type TagServicer interface {
	Create(ctx context.Context, in service.CreateTagInput) (domain.Tag, error)
	Update(ctx context.Context, slug string, in service.UpdateTagInput) (domain.Tag, error)
	PatchStatus(ctx context.Context, slug string, status domain.TagStatus) (domain.Tag, error)
	AddAlias(ctx context.Context, slug, alias string) (domain.Tag, error)
	Resolve(ctx context.Context, input string) (domain.Tag, bool, error)
}

// StatsServicer defines the read-side tag operations: listings with usage
// counts attached and the analytics endpoints.
type StatsServicer interface {
	ListSummaries(ctx context.Context, filter service.TagListFilter) ([]domain.TagSummary, error)
	GetSummary(ctx context.Context, slug string) (domain.TagSummary, error)
	TopTags(ctx context.Context, limit int) ([]domain.TagCount, error)
	Cooccurrence(ctx context.Context, input string, limit int) ([]domain.TagCount, error)
	CategoryRollup(ctx context.Context) ([]domain.TagCategoryCount, error)
}

// AssignServicer applies add/remove tag deltas to one entity.
type AssignServicer interface {
	Assign(ctx context.Context, entityType domain.EntityType, entityID string, add, remove []string) (domain.TaggedEntity, error)
}

// MergeServicer folds one tag into another.
type MergeServicer interface {
	Merge(ctx context.Context, sourceSlug, targetSlug string) (domain.MergeResult, error)
}

// CompetitorServicer defines the competitor operations the handler depends on.
type CompetitorServicer interface {
	List(ctx context.Context) ([]domain.Competitor, error)
	Get(ctx context.Context, businessName string) (domain.Competitor, error)
	Create(ctx context.Context, c domain.Competitor) (domain.Competitor, error)
	Update(ctx context.Context, businessName string, c domain.Competitor) (domain.Competitor, error)
	Delete(ctx context.Context, businessName string) error
}

// WishlistServicer defines the wishlist operations the handler depends on.
type WishlistServicer interface {
	List(ctx context.Context, filter service.WishlistFilter) ([]domain.WishlistItem, error)
	Get(ctx context.Context, wishID string) (domain.WishlistItem, error)
	Create(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error)
	Update(ctx context.Context, wishID string, item domain.WishlistItem) (domain.WishlistItem, error)
	Delete(ctx context.Context, wishID string) error
	PatchStatus(ctx context.Context, wishID string, status domain.WishlistStatus, priceActual *float64) (domain.WishlistItem, error)
	PatchVendor(ctx context.Context, wishID, vendorID string) (domain.WishlistItem, error)
	PatchMasterProduct(ctx context.Context, wishID, productID string) (domain.WishlistItem, error)
	PatchCompetitors(ctx context.Context, wishID string, add, remove []string) (domain.WishlistItem, error)
}

// VendorServicer defines the vendor operations the handler depends on.
type VendorServicer interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	Get(ctx context.Context, vendorID string) (domain.Vendor, error)
	Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error)
	Update(ctx context.Context, vendorID string, v domain.Vendor) (domain.Vendor, error)
	Delete(ctx context.Context, vendorID string) error
}

// MasterProductServicer defines the master-product operations the handler
// depends on.
type MasterProductServicer interface {
	List(ctx context.Context) ([]domain.MasterProduct, error)
	Get(ctx context.Context, productID string) (domain.MasterProduct, error)
	Create(ctx context.Context, p domain.MasterProduct) (domain.MasterProduct, error)
	Update(ctx context.Context, productID string, p domain.MasterProduct) (domain.MasterProduct, error)
	Delete(ctx context.Context, productID string) error
}

// Server holds every servicer the API endpoints need.
// Methods live in domain-specific files but all operate on this struct.
type Server struct {
	tags        TagServicer
	stats       StatsServicer
	assignments AssignServicer
	merges      MergeServicer
	competitors CompetitorServicer
	wishlist    WishlistServicer
	vendors     VendorServicer
	products    MasterProductServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	tags TagServicer,
	stats StatsServicer,
	assignments AssignServicer,
	merges MergeServicer,
	competitors CompetitorServicer,
	wishlist WishlistServicer,
	vendors VendorServicer,
	products MasterProductServicer,
) *Server {
	return &Server{
		tags:        tags,
		stats:       stats,
		assignments: assignments,
		merges:      merges,
		competitors: competitors,
		wishlist:    wishlist,
		vendors:     vendors,
		products:    products,
	}
}

// Routes registers every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.Health)

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", s.ListTags)
		r.Post("/", s.CreateTag)
		r.Post("/alias", s.AddTagAlias)
		r.Post("/resolve", s.ResolveTag)
		r.Post("/merge", s.MergeTags)
		r.Route("/stats", func(r chi.Router) {
			r.Get("/top", s.TopTags)
			r.Get("/cooccurrence", s.TagCooccurrence)
			r.Get("/categories", s.TagCategoryRollup)
		})
		r.Get("/{slug}", s.GetTag)
		r.Put("/{slug}", s.UpdateTag)
		r.Patch("/{slug}/status", s.PatchTagStatus)
	})

	r.Post("/tag-assignments", s.AssignTags)

	r.Route("/competitors", func(r chi.Router) {
		r.Get("/", s.ListCompetitors)
		r.Post("/", s.CreateCompetitor)
		r.Get("/{businessName}", s.GetCompetitor)
		r.Put("/{businessName}", s.UpdateCompetitor)
		r.Delete("/{businessName}", s.DeleteCompetitor)
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", s.ListWishlist)
		r.Post("/", s.CreateWishlistItem)
		r.Get("/{wishID}", s.GetWishlistItem)
		r.Put("/{wishID}", s.UpdateWishlistItem)
		r.Delete("/{wishID}", s.DeleteWishlistItem)
		r.Patch("/{wishID}/status", s.PatchWishlistStatus)
		r.Patch("/{wishID}/vendor", s.PatchWishlistVendor)
		r.Patch("/{wishID}/master-product", s.PatchWishlistMasterProduct)
		r.Patch("/{wishID}/competitors", s.PatchWishlistCompetitors)
	})

	r.Route("/vendors", func(r chi.Router) {
		r.Get("/", s.ListVendors)
		r.Post("/", s.CreateVendor)
		r.Get("/{vendorID}", s.GetVendor)
		r.Put("/{vendorID}", s.UpdateVendor)
		r.Delete("/{vendorID}", s.DeleteVendor)
	})

	r.Route("/master-products", func(r chi.Router) {
		r.Get("/", s.ListMasterProducts)
		r.Post("/", s.CreateMasterProduct)
		r.Get("/{productID}", s.GetMasterProduct)
		r.Put("/{productID}", s.UpdateMasterProduct)
		r.Delete("/{productID}", s.DeleteMasterProduct)
	})

	return r
}
