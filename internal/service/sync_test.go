package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/service"
)

func TestSyncTagIndex_DiffsBeforeAndAfter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, service.SyncTagIndex(ctx, env.index, domain.EntityWishlist, "w-1",
		nil, []string{"gold", "boho"}))

	keys, err := env.index.ListEntityKeys(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, []string{"wishlist#w-1"}, keys)

	// gold stays, boho goes, minimal arrives.
	require.NoError(t, service.SyncTagIndex(ctx, env.index, domain.EntityWishlist, "w-1",
		[]string{"gold", "boho"}, []string{"gold", "minimal"}))

	for slug, want := range map[string][]string{
		"gold":    {"wishlist#w-1"},
		"minimal": {"wishlist#w-1"},
		"boho":    {},
	} {
		keys, err := env.index.ListEntityKeys(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, want, keys, "bucket %s", slug)
	}
}

func TestSyncTagIndex_NoopWhenUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, service.SyncTagIndex(ctx, env.index, domain.EntityWishlist, "w-1",
		[]string{"gold"}, []string{"gold"}))

	keys, err := env.index.ListEntityKeys(ctx, "gold")
	require.NoError(t, err)
	assert.Empty(t, keys, "no records written when the tag sets match")
}

func TestEntityDirectory_ForType(t *testing.T) {
	env := newTestEnv(t)
	directory := service.EntityDirectory{
		Competitors: env.competitorRepo,
		Wishlist:    env.wishlistRepo,
		Vendors:     env.vendorRepo,
	}

	for _, entityType := range domain.TaggedEntityTypes {
		tagged, err := directory.ForType(entityType)
		require.NoError(t, err)
		assert.Equal(t, entityType, tagged.EntityType())
	}

	_, err := directory.ForType(domain.EntityInfluencer)
	assert.ErrorIs(t, err, domain.ErrUnsupported)

	_, err = directory.ForType("spaceship")
	assert.ErrorIs(t, err, domain.ErrUnsupported)
}
