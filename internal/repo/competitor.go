package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/intelhub/backend/internal/domain"
)

// CompetitorRepo defines the persistence operations for competitors.
// Identity is the business name.
type CompetitorRepo interface {
	List(ctx context.Context) ([]domain.Competitor, error)
	Get(ctx context.Context, businessName string) (domain.Competitor, error)
	Create(ctx context.Context, c domain.Competitor) (domain.Competitor, error)
	Update(ctx context.Context, businessName string, c domain.Competitor) (domain.Competitor, error)
	Delete(ctx context.Context, businessName string) error

	Tagged
}

type redisCompetitorRepo struct {
	store *Store
}

// NewCompetitorRepo constructs a CompetitorRepo backed by the provided store.
func NewCompetitorRepo(store *Store) CompetitorRepo {
	return &redisCompetitorRepo{store: store}
}

func (r *redisCompetitorRepo) List(ctx context.Context) ([]domain.Competitor, error) {
	values, err := r.store.scanValues(ctx, keyCompetitor)
	if err != nil {
		return nil, fmt.Errorf("repo.CompetitorRepo.List: %w", err)
	}
	competitors := []domain.Competitor{}
	for _, raw := range values {
		c, err := decodeCompetitor(raw)
		if err != nil {
			return nil, fmt.Errorf("repo.CompetitorRepo.List: %w", err)
		}
		competitors = append(competitors, c)
	}
	return competitors, nil
}

func (r *redisCompetitorRepo) Get(ctx context.Context, businessName string) (domain.Competitor, error) {
	raw, err := r.store.get(ctx, keyCompetitor+businessName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Get: %w: competitor not found", domain.ErrNotFound)
		}
		return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Get: %w", err)
	}
	c, err := decodeCompetitor(raw)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Get: %w", err)
	}
	return c, nil
}

func (r *redisCompetitorRepo) Create(ctx context.Context, c domain.Competitor) (domain.Competitor, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Create: encode: %w", err)
	}
	if err := r.store.putIfAbsent(ctx, keyCompetitor+c.BusinessName, raw); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Create: %w: competitor already exists", domain.ErrConflict)
		}
		return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Create: %w", err)
	}
	return c, nil
}

func (r *redisCompetitorRepo) Update(ctx context.Context, businessName string, c domain.Competitor) (domain.Competitor, error) {
	if c.BusinessName != businessName {
		return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Update: %w: business name mismatch", domain.ErrValidation)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Update: encode: %w", err)
	}
	if err := r.store.putIfPresent(ctx, keyCompetitor+businessName, raw); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Update: %w: competitor not found", domain.ErrNotFound)
		}
		return domain.Competitor{}, fmt.Errorf("repo.CompetitorRepo.Update: %w", err)
	}
	return c, nil
}

func (r *redisCompetitorRepo) Delete(ctx context.Context, businessName string) error {
	if err := r.store.deleteIfPresent(ctx, keyCompetitor+businessName); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("repo.CompetitorRepo.Delete: %w: competitor not found", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.CompetitorRepo.Delete: %w", err)
	}
	return nil
}

func (r *redisCompetitorRepo) EntityType() domain.EntityType {
	return domain.EntityCompetitor
}

func (r *redisCompetitorRepo) ListTagged(ctx context.Context) ([]domain.TaggedEntity, error) {
	competitors, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	entities := make([]domain.TaggedEntity, 0, len(competitors))
	for _, c := range competitors {
		entities = append(entities, domain.TaggedEntity{
			Type: domain.EntityCompetitor,
			ID:   c.BusinessName,
			Tags: c.Tags,
		})
	}
	return entities, nil
}

func (r *redisCompetitorRepo) GetTagged(ctx context.Context, entityID string) (domain.TaggedEntity, error) {
	c, err := r.Get(ctx, entityID)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	return domain.TaggedEntity{Type: domain.EntityCompetitor, ID: c.BusinessName, Tags: c.Tags}, nil
}

func (r *redisCompetitorRepo) UpdateTags(ctx context.Context, entityID string, tags []string) (domain.TaggedEntity, error) {
	c, err := r.Get(ctx, entityID)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	c.Tags = domain.DedupePreserveOrder(tags)
	updated, err := r.Update(ctx, entityID, c)
	if err != nil {
		return domain.TaggedEntity{}, err
	}
	return domain.TaggedEntity{Type: domain.EntityCompetitor, ID: updated.BusinessName, Tags: updated.Tags}, nil
}

func decodeCompetitor(raw []byte) (domain.Competitor, error) {
	var c domain.Competitor
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Competitor{}, fmt.Errorf("decode competitor: %w", err)
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Categories == nil {
		c.Categories = []string{}
	}
	return c, nil
}
