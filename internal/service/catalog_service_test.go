package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/partydeck/monikers-server/internal/domain"
	"github.com/partydeck/monikers-server/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCardRepo is an in-memory CardRepository for service tests.
type memoryCardRepo struct {
	cards map[string]*domain.Card
}

func newMemoryCardRepo() *memoryCardRepo {
	return &memoryCardRepo{cards: make(map[string]*domain.Card)}
}

func (r *memoryCardRepo) Upsert(ctx context.Context, card *domain.Card) error {
	r.cards[card.ID] = card
	return nil
}

func (r *memoryCardRepo) UpsertMany(ctx context.Context, cards []*domain.Card) error {
	for _, card := range cards {
		r.cards[card.ID] = card
	}
	return nil
}

func (r *memoryCardRepo) GetAll(ctx context.Context) ([]*domain.Card, error) {
	out := make([]*domain.Card, 0, len(r.cards))
	for _, card := range r.cards {
		out = append(out, card)
	}
	return out, nil
}

func (r *memoryCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	card, ok := r.cards[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return card, nil
}

func (r *memoryCardRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.cards)), nil
}

func TestCatalogService_SeedDefaultCards(t *testing.T) {
	repo := newMemoryCardRepo()
	svc := service.NewCatalogService(repo)
	ctx := context.Background()

	seeded, err := svc.SeedDefaultCards(ctx)
	require.NoError(t, err)
	assert.Greater(t, seeded, 0)

	cards, err := svc.GetAllCards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, seeded)
}

func TestCatalogService_SeedIsIdempotent(t *testing.T) {
	repo := newMemoryCardRepo()
	svc := service.NewCatalogService(repo)
	ctx := context.Background()

	first, err := svc.SeedDefaultCards(ctx)
	require.NoError(t, err)
	require.Greater(t, first, 0)

	second, err := svc.SeedDefaultCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second, "a non-empty catalog is left alone")

	cards, err := svc.GetAllCards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, first)
}

func TestCatalogService_SeedSkipsCustomCatalog(t *testing.T) {
	repo := newMemoryCardRepo()
	require.NoError(t, repo.Upsert(context.Background(), &domain.Card{ID: "custom-1", Name: "Custom"}))

	svc := service.NewCatalogService(repo)
	seeded, err := svc.SeedDefaultCards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)
}
