package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/intelhub/backend/internal/domain"
	"github.com/intelhub/backend/internal/repo"
)

// StatsService computes usage counts, co-occurrence, and category rollups.
// Counts come from scanning entity tag lists, never from the inverted index,
// so a divergence between the two shows up here as the forward-list view.
type StatsService struct {
	tags     repo.TagRepo
	entities EntityDirectory
}

// NewStatsService constructs a StatsService.
func NewStatsService(tags repo.TagRepo, entities EntityDirectory) *StatsService {
	return &StatsService{tags: tags, entities: entities}
}

// TagListFilter narrows TagService listings. Zero values mean "no filter".
type TagListFilter struct {
	// Query matches case-insensitively against slug, display name, aliases,
	// and description.
	Query      string
	Category   domain.TagCategory
	Status     domain.TagStatus
	Slugs      []string
	EntityType *domain.EntityType
}

// UsageCounts returns slug -> occurrence count across the tag lists of the
// selected entity type (or all tagged types when entityType is nil).
func (s *StatsService) UsageCounts(ctx context.Context, entityType *domain.EntityType) (map[string]int, error) {
	repos, err := s.entities.Select(entityType)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, tagged := range repos {
		entities, err := tagged.ListTagged(ctx)
		if err != nil {
			return nil, fmt.Errorf("service.StatsService.UsageCounts: %w", err)
		}
		for _, entity := range entities {
			for _, slug := range entity.Tags {
				counts[slug]++
			}
		}
	}
	return counts, nil
}

// TopTags returns the most-used tags across all entity types, highest count
// first. Only slugs that still resolve to catalog tags are included.
func (s *StatsService) TopTags(ctx context.Context, limit int) ([]domain.TagCount, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	counts, err := s.UsageCounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	return s.rankCounts(ctx, counts, limit)
}

// Cooccurrence resolves input to a canonical slug (exact slug, then alias
// match — never creating a tag) and counts every other slug appearing in the
// tag set of an entity that carries the resolved slug.
func (s *StatsService) Cooccurrence(ctx context.Context, input string, limit int) ([]domain.TagCount, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	slug, err := s.resolveExisting(ctx, input)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, tagged := range s.entities.All() {
		entities, err := tagged.ListTagged(ctx)
		if err != nil {
			return nil, fmt.Errorf("service.StatsService.Cooccurrence: %w", err)
		}
		for _, entity := range entities {
			if !containsSlug(entity.Tags, slug) {
				continue
			}
			for _, other := range entity.Tags {
				if other != slug {
					counts[other]++
				}
			}
		}
	}
	return s.rankCounts(ctx, counts, limit)
}

// CategoryRollup sums usage counts per tag category, sorted by count
// descending then category name ascending.
func (s *StatsService) CategoryRollup(ctx context.Context) ([]domain.TagCategoryCount, error) {
	counts, err := s.UsageCounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	all, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.CategoryRollup: %w", err)
	}

	perCategory := map[domain.TagCategory]int{}
	for _, tag := range all {
		if n := counts[tag.Slug]; n > 0 {
			perCategory[tag.Category] += n
		}
	}

	rollup := make([]domain.TagCategoryCount, 0, len(perCategory))
	for category, count := range perCategory {
		rollup = append(rollup, domain.TagCategoryCount{Category: category, Count: count})
	}
	sort.Slice(rollup, func(i, j int) bool {
		if rollup[i].Count != rollup[j].Count {
			return rollup[i].Count > rollup[j].Count
		}
		return rollup[i].Category < rollup[j].Category
	})
	return rollup, nil
}

// ListSummaries returns catalog tags matching the filter, each decorated with
// its usage count, sorted active-first then by display name case-insensitive.
func (s *StatsService) ListSummaries(ctx context.Context, filter TagListFilter) ([]domain.TagSummary, error) {
	all, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.ListSummaries: %w", err)
	}
	counts, err := s.UsageCounts(ctx, filter.EntityType)
	if err != nil {
		return nil, err
	}

	var wanted map[string]bool
	if len(filter.Slugs) > 0 {
		wanted = make(map[string]bool, len(filter.Slugs))
		for _, slug := range filter.Slugs {
			wanted[slug] = true
		}
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	summaries := []domain.TagSummary{}
	for _, tag := range all {
		if wanted != nil && !wanted[tag.Slug] {
			continue
		}
		if filter.Category != "" && tag.Category != filter.Category {
			continue
		}
		if filter.Status != "" && tag.Status != filter.Status {
			continue
		}
		if query != "" && !matchesQuery(tag, query) {
			continue
		}
		summaries = append(summaries, domain.TagSummary{Tag: tag, UsageCount: counts[tag.Slug]})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		iActive := summaries[i].Status == domain.StatusActive
		jActive := summaries[j].Status == domain.StatusActive
		if iActive != jActive {
			return iActive
		}
		return strings.ToLower(summaries[i].DisplayName) < strings.ToLower(summaries[j].DisplayName)
	})
	return summaries, nil
}

// GetSummary returns a single tag with its usage count across all types.
func (s *StatsService) GetSummary(ctx context.Context, slug string) (domain.TagSummary, error) {
	tag, err := s.tags.Get(ctx, slug)
	if err != nil {
		return domain.TagSummary{}, fmt.Errorf("service.StatsService.GetSummary: %w", err)
	}
	counts, err := s.UsageCounts(ctx, nil)
	if err != nil {
		return domain.TagSummary{}, err
	}
	return domain.TagSummary{Tag: tag, UsageCount: counts[tag.Slug]}, nil
}

// rankCounts turns a slug->count map into TagCounts sorted by count
// descending, slug ascending on ties, keeping only slugs that still resolve
// to catalog tags, truncated to limit.
func (s *StatsService) rankCounts(ctx context.Context, counts map[string]int, limit int) ([]domain.TagCount, error) {
	all, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService: %w", err)
	}
	bySlug := make(map[string]domain.Tag, len(all))
	for _, tag := range all {
		bySlug[tag.Slug] = tag
	}

	ranked := []domain.TagCount{}
	for slug, count := range counts {
		tag, ok := bySlug[slug]
		if !ok || count == 0 {
			continue
		}
		ranked = append(ranked, domain.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag.Slug < ranked[j].Tag.Slug
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// resolveExisting maps a slug or alias to its canonical slug without ever
// creating a tag.
func (s *StatsService) resolveExisting(ctx context.Context, input string) (string, error) {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return "", fmt.Errorf("%w: tag value cannot be empty", domain.ErrValidation)
	}
	slug, err := domain.Slugify(candidate)
	if err != nil {
		return "", err
	}
	if _, err := s.tags.Get(ctx, slug); err == nil {
		return slug, nil
	}

	all, err := s.tags.List(ctx)
	if err != nil {
		return "", fmt.Errorf("service.StatsService.resolveExisting: %w", err)
	}
	lowered := strings.ToLower(candidate)
	for _, tag := range all {
		for _, alias := range tag.Aliases {
			if strings.ToLower(alias) == lowered {
				return tag.Slug, nil
			}
		}
	}
	return "", fmt.Errorf("%w: tag %q not found", domain.ErrNotFound, input)
}

func validateLimit(limit int) error {
	if limit < 1 || limit > 100 {
		return fmt.Errorf("%w: limit must be between 1 and 100", domain.ErrValidation)
	}
	return nil
}

func matchesQuery(tag domain.Tag, query string) bool {
	if strings.Contains(tag.Slug, query) ||
		strings.Contains(strings.ToLower(tag.DisplayName), query) ||
		strings.Contains(strings.ToLower(tag.Description), query) {
		return true
	}
	for _, alias := range tag.Aliases {
		if strings.Contains(strings.ToLower(alias), query) {
			return true
		}
	}
	return false
}

func containsSlug(tags []string, slug string) bool {
	for _, s := range tags {
		if s == slug {
			return true
		}
	}
	return false
}
