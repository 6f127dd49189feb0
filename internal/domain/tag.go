package domain

import "time"

// TagCategory classifies a tag within the curated taxonomy.
// The set is closed; anything unrecognised falls back to CategoryOther.
type TagCategory string

const (
	CategoryMaterial  TagCategory = "material"
	CategoryMotif     TagCategory = "motif"
	CategoryStyle     TagCategory = "style"
	CategoryOccasion  TagCategory = "occasion"
	CategoryColor     TagCategory = "color"
	CategoryTechnique TagCategory = "technique"
	CategoryRegion    TagCategory = "region"
	CategoryTrend     TagCategory = "trend"
	CategoryPriceBand TagCategory = "price-band"
	CategoryOther     TagCategory = "other"
)

// TagCategories lists every valid category, in display order.
var TagCategories = []TagCategory{
	CategoryMaterial, CategoryMotif, CategoryStyle, CategoryOccasion,
	CategoryColor, CategoryTechnique, CategoryRegion, CategoryTrend,
	CategoryPriceBand, CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c TagCategory) Valid() bool {
	for _, known := range TagCategories {
		if c == known {
			return true
		}
	}
	return false
}

// TagStatus is the lifecycle state of a tag. Transitions are unconstrained:
// PatchStatus moves a tag between any two states without a guard table.
type TagStatus string

const (
	StatusDraft      TagStatus = "draft"
	StatusActive     TagStatus = "active"
	StatusDeprecated TagStatus = "deprecated"
)

// Valid reports whether s is one of the known statuses.
func (s TagStatus) Valid() bool {
	return s == StatusDraft || s == StatusActive || s == StatusDeprecated
}

// Assignable reports whether a tag in this status may be attached to an
// entity. Deprecated tags are rejected at assignment time.
func (s TagStatus) Assignable() bool {
	return s == StatusActive || s == StatusDraft
}

// Tag is a canonical taxonomy entry. Identity is Slug, derived once from the
// display name at creation time and never recomputed on update.
// Aliases are alternate free-text spellings, unique case-insensitively across
// the whole catalog.
type Tag struct {
	Slug        string      `json:"tag_slug"`
	DisplayName string      `json:"display_name"`
	Category    TagCategory `json:"category"`
	Aliases     []string    `json:"aliases"`
	Status      TagStatus   `json:"status"`
	ParentSlug  string      `json:"parent_slug,omitempty"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TagSummary is a Tag decorated with its usage count across entity tag lists.
// The count comes from scanning entities, not from the inverted index, so the
// two can disagree after a partial failure.
type TagSummary struct {
	Tag
	UsageCount int `json:"usage_count"`
}

// TagIndexRecord is one membership entry in the inverted index: the entity
// identified by (EntityType, EntityID) currently bears TagSlug.
type TagIndexRecord struct {
	TagSlug    string     `json:"tag_slug"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// EntityKey returns the index addressing key for the record's entity.
func (r TagIndexRecord) EntityKey() string {
	return EntityKey(r.EntityType, r.EntityID)
}

// TagCount pairs a tag with an occurrence count for the stats endpoints.
type TagCount struct {
	Tag   Tag `json:"tag"`
	Count int `json:"count"`
}

// TagCategoryCount is the per-category usage rollup.
type TagCategoryCount struct {
	Category TagCategory `json:"category"`
	Count    int         `json:"count"`
}

// MergeResult reports the outcome of a taxonomy merge: the updated target,
// the now-deprecated source, and how many entities of each type were
// rewritten.
type MergeResult struct {
	Target        Tag                `json:"target"`
	Source        Tag                `json:"source"`
	UpdatedCounts map[EntityType]int `json:"updated_counts"`
}
