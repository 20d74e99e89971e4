package postgres_test

import (
	"context"
	"testing"

	"github.com/partydeck/monikers-server/internal/domain"
	"github.com/partydeck/monikers-server/internal/repository/postgres"
	"github.com/partydeck/monikers-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardRepository_Upsert(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCardRepository(testDB.DB)
	ctx := context.Background()

	card := &domain.Card{
		ID:          "c001",
		Name:        "Sherlock Holmes",
		Description: "Fictional detective with a famous address",
	}

	// Create
	err := repo.Upsert(ctx, card)
	require.NoError(t, err)

	// Verify creation
	got, err := repo.GetByID(ctx, "c001")
	require.NoError(t, err)
	assert.Equal(t, "Sherlock Holmes", got.Name)

	// Update
	card.Description = "Consulting detective of Baker Street"
	err = repo.Upsert(ctx, card)
	require.NoError(t, err)

	// Verify update
	got, err = repo.GetByID(ctx, "c001")
	require.NoError(t, err)
	assert.Equal(t, "Consulting detective of Baker Street", got.Description)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCardRepository_UpsertMany(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCardRepository(testDB.DB)
	ctx := context.Background()

	cards := []*domain.Card{
		{ID: "c001", Name: "Marie Curie", Description: "Two-time Nobel laureate"},
		{ID: "c002", Name: "A Rubber Duck", Description: "Debugging confidant"},
		{ID: "c003", Name: "Cleopatra", Description: "Last pharaoh of Egypt"},
	}

	err := repo.UpsertMany(ctx, cards)
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Re-upserting the same batch must not duplicate rows.
	cards[0].Description = "Pioneer of radioactivity"
	err = repo.UpsertMany(ctx, cards)
	require.NoError(t, err)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	got, err := repo.GetByID(ctx, "c001")
	require.NoError(t, err)
	assert.Equal(t, "Pioneer of radioactivity", got.Description)
}

func TestCardRepository_GetAllOrdersByName(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCardRepository(testDB.DB)
	ctx := context.Background()

	err := repo.UpsertMany(ctx, []*domain.Card{
		{ID: "c001", Name: "Zeus"},
		{ID: "c002", Name: "Athena"},
		{ID: "c003", Name: "Hermes"},
	})
	require.NoError(t, err)

	cards, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "Athena", cards[0].Name)
	assert.Equal(t, "Hermes", cards[1].Name)
	assert.Equal(t, "Zeus", cards[2].Name)
}

func TestCardRepository_GetByIDMissing(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCardRepository(testDB.DB)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}
