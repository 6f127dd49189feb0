package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/service"
)

func TestWishlistService_Create_DefaultsAndIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTag(t, "gold", domain.CategoryMaterial, domain.StatusActive)

	created, err := env.wishlist.Create(ctx, domain.WishlistItem{
		Title: "  Filigree Hoops  ",
		Tags:  []string{"gold", "gold"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.WishID)
	assert.Equal(t, "Filigree Hoops", created.Title)
	assert.Equal(t, domain.WishlistPlanned, created.Status)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, []string{"gold"}, created.Tags)

	keys, err := env.index.ListEntityKeys(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, []string{"wishlist#" + created.WishID}, keys)
}

func TestWishlistService_Create_TitleRequired(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.wishlist.Create(context.Background(), domain.WishlistItem{Title: "   "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWishlistService_Create_UnknownTagRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.wishlist.Create(context.Background(), domain.WishlistItem{
		Title: "Hoops",
		Tags:  []string{"never-created"},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWishlistService_Create_ValidatesLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.wishlist.Create(ctx, domain.WishlistItem{Title: "Hoops", VendorID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.wishlist.Create(ctx, domain.WishlistItem{Title: "Hoops", MasterProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.wishlist.Create(ctx, domain.WishlistItem{Title: "Hoops", Competitors: []string{"missing"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWishlistService_Create_PriceActualDroppedUnlessProcured(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	price := 129.5

	planned, err := env.wishlist.Create(ctx, domain.WishlistItem{
		Title:       "Hoops",
		PriceActual: &price,
	})
	require.NoError(t, err)
	assert.Nil(t, planned.PriceActual)

	procured, err := env.wishlist.Create(ctx, domain.WishlistItem{
		Title:       "Bangles",
		Status:      domain.WishlistProcured,
		PriceActual: &price,
	})
	require.NoError(t, err)
	require.NotNil(t, procured.PriceActual)
	assert.Equal(t, price, *procured.PriceActual)
}

func TestWishlistService_Update_SyncsIndexAgainstPrevious(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTag(t, "gold", domain.CategoryMaterial, domain.StatusActive)
	env.seedTag(t, "boho", domain.CategoryStyle, domain.StatusActive)

	created, err := env.wishlist.Create(ctx, domain.WishlistItem{Title: "Hoops", Tags: []string{"gold"}})
	require.NoError(t, err)

	updated, err := env.wishlist.Update(ctx, created.WishID, domain.WishlistItem{
		Title: "Hoops",
		Tags:  []string{"boho"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.WishID, updated.WishID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	keys, err := env.index.ListEntityKeys(ctx, "gold")
	require.NoError(t, err)
	assert.Empty(t, keys)
	keys, err = env.index.ListEntityKeys(ctx, "boho")
	require.NoError(t, err)
	assert.Equal(t, []string{"wishlist#" + created.WishID}, keys)
}

func TestWishlistService_Delete_DrainsIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTag(t, "gold", domain.CategoryMaterial, domain.StatusActive)

	created, err := env.wishlist.Create(ctx, domain.WishlistItem{Title: "Hoops", Tags: []string{"gold"}})
	require.NoError(t, err)

	require.NoError(t, env.wishlist.Delete(ctx, created.WishID))

	keys, err := env.index.ListEntityKeys(ctx, "gold")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestWishlistService_PatchStatus_PriceActualRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.seedWishlistItem(t, "w-1")
	price := 80.0

	procured, err := env.wishlist.PatchStatus(ctx, item.WishID, domain.WishlistProcured, &price)
	require.NoError(t, err)
	require.NotNil(t, procured.PriceActual)
	assert.Equal(t, price, *procured.PriceActual)

	// Leaving procured clears the stored price.
	sourcing, err := env.wishlist.PatchStatus(ctx, item.WishID, domain.WishlistSourcing, nil)
	require.NoError(t, err)
	assert.Nil(t, sourcing.PriceActual)

	_, err = env.wishlist.PatchStatus(ctx, item.WishID, "lost", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWishlistService_PatchVendor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVendor(t, "v-1", "Golden Source")
	item := env.seedWishlistItem(t, "w-1")

	linked, err := env.wishlist.PatchVendor(ctx, item.WishID, "v-1")
	require.NoError(t, err)
	assert.Equal(t, "v-1", linked.VendorID)

	_, err = env.wishlist.PatchVendor(ctx, item.WishID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cleared, err := env.wishlist.PatchVendor(ctx, item.WishID, "")
	require.NoError(t, err)
	assert.Empty(t, cleared.VendorID)
}

func TestWishlistService_PatchCompetitors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCompetitor(t, "Acme")
	env.seedCompetitor(t, "Globex")
	item := env.seedWishlistItem(t, "w-1")

	withBoth, err := env.wishlist.PatchCompetitors(ctx, item.WishID, []string{"Acme", "Globex"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Globex"}, withBoth.Competitors)

	_, err = env.wishlist.PatchCompetitors(ctx, item.WishID, []string{"missing"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	remaining, err := env.wishlist.PatchCompetitors(ctx, item.WishID, nil, []string{"Acme"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Globex"}, remaining.Competitors)
}

func TestWishlistService_List_FiltersAndOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTag(t, "gold", domain.CategoryMaterial, domain.StatusActive)

	first, err := env.wishlist.Create(ctx, domain.WishlistItem{Title: "First", Tags: []string{"gold"}})
	require.NoError(t, err)
	second, err := env.wishlist.Create(ctx, domain.WishlistItem{Title: "Second", Priority: domain.PriorityHigh})
	require.NoError(t, err)
	// Touch the first item so it becomes the most recently updated.
	_, err = env.wishlist.PatchStatus(ctx, first.WishID, domain.WishlistSourcing, nil)
	require.NoError(t, err)

	all, err := env.wishlist.List(ctx, service.WishlistFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.WishID, all[0].WishID, "most recently updated first")

	highs, err := env.wishlist.List(ctx, service.WishlistFilter{Priority: domain.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, highs, 1)
	assert.Equal(t, second.WishID, highs[0].WishID)

	tagged, err := env.wishlist.List(ctx, service.WishlistFilter{Tag: "gold"})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, first.WishID, tagged[0].WishID)
}
