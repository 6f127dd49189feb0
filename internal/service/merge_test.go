package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelhub/backend/internal/domain"
)

func TestMerge_RewritesEntitiesAndIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTag(t, "gold", domain.CategoryMaterial, domain.StatusActive)
	env.seedTag(t, "gold-plated", domain.CategoryMaterial, domain.StatusActive, "plated")

	env.seedWishlistItem(t, "w-1", "gold-plated")
	env.seedWishlistItem(t, "w-2", "gold-plated")
	env.seedWishlistItem(t, "w-3", "gold-plated", "gold")
	// Index as prior syncs would have left it.
	for _, id := range []string{"w-1", "w-2", "w-3"} {
		item, err := env.wishlistRepo.Get(ctx, id)
		require.NoError(t, err)
		require.NoError(t, syncSeed(ctx, env, domain.EntityWishlist, id, item.Tags))
	}

	result, err := env.merges.Merge(ctx, "gold-plated", "gold")
	require.NoError(t, err)

	assert.Equal(t, "gold", result.Target.Slug)
	assert.Equal(t, domain.StatusDeprecated, result.Source.Status)
	assert.Contains(t, result.Target.Aliases, "gold-plated", "source slug becomes a target alias")
	assert.Contains(t, result.Target.Aliases, "plated")
	assert.Equal(t, 3, result.UpdatedCounts[domain.EntityWishlist])
	assert.Equal(t, 0, result.UpdatedCounts[domain.EntityCompetitor])
	assert.Equal(t, 0, result.UpdatedCounts[domain.EntityVendor])

	// Every entity now carries gold exactly once and gold-plated nowhere.
	for _, id := range []string{"w-1", "w-2", "w-3"} {
		item, err := env.wishlistRepo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"gold"}, item.Tags, "item %s", id)
	}

	keys, err := env.index.ListEntityKeys(ctx, "gold-plated")
	require.NoError(t, err)
	assert.Empty(t, keys)

	keys, err = env.index.ListEntityKeys(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, []string{"wishlist#w-1", "wishlist#w-2", "wishlist#w-3"}, keys)
}

func TestMerge_IntoDeprecatedTarget_NoMutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTag(t, "source-tag", domain.CategoryStyle, domain.StatusActive, "src")
	env.seedTag(t, "target-tag", domain.CategoryStyle, domain.StatusDeprecated)
	env.seedWishlistItem(t, "w-1", "source-tag")
	require.NoError(t, syncSeed(ctx, env, domain.EntityWishlist, "w-1", []string{"source-tag"}))

	_, err := env.merges.Merge(ctx, "source-tag", "target-tag")
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Nothing moved: tags, entity, and index are all unchanged.
	source, err := env.tagRepo.Get(ctx, "source-tag")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, source.Status)
	assert.Equal(t, []string{"src"}, source.Aliases)

	target, err := env.tagRepo.Get(ctx, "target-tag")
	require.NoError(t, err)
	assert.Empty(t, target.Aliases)

	item, err := env.wishlistRepo.Get(ctx, "w-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"source-tag"}, item.Tags)

	keys, err := env.index.ListEntityKeys(ctx, "source-tag")
	require.NoError(t, err)
	assert.Equal(t, []string{"wishlist#w-1"}, keys)
}

func TestMerge_SameSlugRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.merges.Merge(context.Background(), "gold", "gold")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMerge_MissingTag(t *testing.T) {
	env := newTestEnv(t)
	env.seedTag(t, "gold", domain.CategoryMaterial, domain.StatusActive)

	_, err := env.merges.Merge(context.Background(), "missing", "gold")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.merges.Merge(context.Background(), "gold", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMerge_DeprecatedSourcePermitted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTag(t, "old-gold", domain.CategoryMaterial, domain.StatusDeprecated)
	env.seedTag(t, "gold", domain.CategoryMaterial, domain.StatusActive)

	result, err := env.merges.Merge(ctx, "old-gold", "gold")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeprecated, result.Source.Status)
	assert.Contains(t, result.Target.Aliases, "old-gold")
}

func TestMerge_SpansAllEntityTypes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTag(t, "gold", domain.CategoryMaterial, domain.StatusActive)
	env.seedTag(t, "gilded", domain.CategoryMaterial, domain.StatusActive)
	env.seedCompetitor(t, "Acme", "gilded")
	env.seedWishlistItem(t, "w-1", "gilded")
	env.seedVendor(t, "v-1", "Goldsmith", "gilded")

	result, err := env.merges.Merge(ctx, "gilded", "gold")

	require.NoError(t, err)
	assert.Equal(t, map[domain.EntityType]int{
		domain.EntityCompetitor: 1,
		domain.EntityWishlist:   1,
		domain.EntityVendor:     1,
	}, result.UpdatedCounts)
}

// syncSeed pushes an entity's current tags into the index the way a prior
// assignment sync would have, so merge tests start from a consistent state.
func syncSeed(ctx context.Context, env *testEnv, entityType domain.EntityType, entityID string, tags []string) error {
	records := make([]domain.TagIndexRecord, 0, len(tags))
	for _, slug := range tags {
		records = append(records, domain.TagIndexRecord{
			TagSlug:    slug,
			EntityType: entityType,
			EntityID:   entityID,
		})
	}
	return env.index.Put(ctx, records)
}
