package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelhub/backend/internal/domain"
)

func TestSlugify_CollapsesPunctuationAndCase(t *testing.T) {
	slug, err := domain.Slugify("Hand-Made  Gold!!")

	require.NoError(t, err)
	assert.Equal(t, "hand-made-gold", slug)
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, input := range []string{"Gold Plated", "18k GOLD", "  Boho & Chic  ", "price--band"} {
		first, err := domain.Slugify(input)
		require.NoError(t, err)

		second, err := domain.Slugify(first)
		require.NoError(t, err)
		assert.Equal(t, first, second, "slugify should be idempotent for %q", input)
	}
}

func TestSlugify_TrimsHyphens(t *testing.T) {
	slug, err := domain.Slugify("--gold--")

	require.NoError(t, err)
	assert.Equal(t, "gold", slug)
}

func TestSlugify_EmptyInput(t *testing.T) {
	_, err := domain.Slugify("   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlugify_EmptyAfterNormalization(t *testing.T) {
	_, err := domain.Slugify("!!! ---")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNormalizeAliases_DedupesCaseInsensitively(t *testing.T) {
	got := domain.NormalizeAliases([]string{"Boho", "boho", "  BOHO  ", "chic"})

	assert.Equal(t, []string{"Boho", "chic"}, got, "first spelling wins")
}

func TestNormalizeAliases_CollapsesWhitespace(t *testing.T) {
	got := domain.NormalizeAliases([]string{"  gold   plated ", ""})

	assert.Equal(t, []string{"gold plated"}, got)
}

func TestDedupePreserveOrder(t *testing.T) {
	got := domain.DedupePreserveOrder([]string{"b", "a", "b", "", "c", "a"})

	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestEntityKey_RoundTrip(t *testing.T) {
	key := domain.EntityKey(domain.EntityWishlist, "w-1")
	require.Equal(t, "wishlist#w-1", key)

	entityType, entityID, err := domain.ParseEntityKey(key)
	require.NoError(t, err)
	assert.Equal(t, domain.EntityWishlist, entityType)
	assert.Equal(t, "w-1", entityID)
}

func TestParseEntityKey_IDMayContainSeparator(t *testing.T) {
	entityType, entityID, err := domain.ParseEntityKey("competitor#Shop #42")

	require.NoError(t, err)
	assert.Equal(t, domain.EntityCompetitor, entityType)
	assert.Equal(t, "Shop #42", entityID)
}

func TestParseEntityKey_Invalid(t *testing.T) {
	_, _, err := domain.ParseEntityKey("no-separator")

	assert.ErrorIs(t, err, domain.ErrValidation)
}
