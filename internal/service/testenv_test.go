package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
	"github.com/intelhub/backend/internal/service"
)

// testEnv wires the full service stack onto a miniredis so multi-aggregate
// flows (assign, merge, stats) run against real repositories.
type testEnv struct {
	tagRepo        repo.TagRepo
	index          repo.TagIndexRepo
	competitorRepo repo.CompetitorRepo
	wishlistRepo   repo.WishlistRepo
	vendorRepo     repo.VendorRepo
	productRepo    repo.MasterProductRepo

	tags        *service.TagService
	stats       *service.StatsService
	assignments *service.AssignmentService
	merges      *service.MergeService
	competitors *service.CompetitorService
	wishlist    *service.WishlistService
	vendors     *service.VendorService
	products    *service.MasterProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := repo.NewStore(rdb)

	env := &testEnv{
		tagRepo:        repo.NewTagRepo(store),
		index:          repo.NewTagIndexRepo(store),
		competitorRepo: repo.NewCompetitorRepo(store),
		wishlistRepo:   repo.NewWishlistRepo(store),
		vendorRepo:     repo.NewVendorRepo(store),
		productRepo:    repo.NewMasterProductRepo(store),
	}
	directory := service.EntityDirectory{
		Competitors: env.competitorRepo,
		Wishlist:    env.wishlistRepo,
		Vendors:     env.vendorRepo,
	}
	env.tags = service.NewTagService(env.tagRepo)
	env.stats = service.NewStatsService(env.tagRepo, directory)
	env.assignments = service.NewAssignmentService(env.tags, env.index, directory)
	env.merges = service.NewMergeService(env.tagRepo, env.index, directory)
	env.competitors = service.NewCompetitorService(env.competitorRepo, env.tags, env.index)
	env.wishlist = service.NewWishlistService(env.wishlistRepo, env.competitorRepo, env.vendorRepo, env.productRepo, env.tags, env.index)
	env.vendors = service.NewVendorService(env.vendorRepo, env.wishlistRepo, env.tags, env.index)
	env.products = service.NewMasterProductService(env.productRepo, env.wishlistRepo)
	return env
}

// seedTag inserts a tag directly through the repo, bypassing service
// validation, so tests control every field.
func (e *testEnv) seedTag(t *testing.T, slug string, category domain.TagCategory, status domain.TagStatus, aliases ...string) domain.Tag {
	t.Helper()
	now := time.Now().UTC()
	tag, err := e.tagRepo.Create(context.Background(), domain.Tag{
		Slug:        slug,
		DisplayName: slug,
		Category:    category,
		Aliases:     aliases,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return tag
}

// seedWishlistItem inserts a wishlist item directly through the repo with
// the given tags, mirroring an entity persisted before index sync.
func (e *testEnv) seedWishlistItem(t *testing.T, wishID string, tags ...string) domain.WishlistItem {
	t.Helper()
	now := time.Now().UTC()
	item, err := e.wishlistRepo.Create(context.Background(), domain.WishlistItem{
		WishID:    wishID,
		Title:     "Item " + wishID,
		Status:    domain.WishlistPlanned,
		Priority:  domain.PriorityMedium,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) seedCompetitor(t *testing.T, businessName string, tags ...string) domain.Competitor {
	t.Helper()
	c, err := e.competitorRepo.Create(context.Background(), domain.Competitor{
		BusinessName: businessName,
		Tags:         tags,
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) seedVendor(t *testing.T, vendorID, name string, tags ...string) domain.Vendor {
	t.Helper()
	now := time.Now().UTC()
	v, err := e.vendorRepo.Create(context.Background(), domain.Vendor{
		VendorID:  vendorID,
		Name:      name,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return v
}
