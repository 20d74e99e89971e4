package postgres_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/partydeck/monikers-server/internal/domain"
	"github.com/partydeck/monikers-server/internal/repository/postgres"
	"github.com/partydeck/monikers-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func matchRecord(code string, completedAt time.Time) *domain.MatchRecord {
	playersJSON, _ := json.Marshal([]domain.MatchPlayer{
		{PlayerID: "player-1", Name: "Alice", Team: 1},
		{PlayerID: "player-2", Name: "Bob", Team: 2},
	})
	return &domain.MatchRecord{
		ID:          uuid.New(),
		RoomCode:    code,
		Rounds:      3,
		Team1Score:  12,
		Team2Score:  9,
		CardCount:   8,
		Players:     datatypes.JSON(playersJSON),
		CompletedAt: completedAt,
	}
}

func TestMatchRepository_CreateAndGetByRoomCode(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMatchRepository(testDB.DB)
	ctx := context.Background()

	err := repo.Create(ctx, matchRecord("AB12", time.Now()))
	require.NoError(t, err)

	records, err := repo.GetByRoomCode(ctx, "AB12")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AB12", records[0].RoomCode)
	assert.Equal(t, 12, records[0].Team1Score)
	assert.Equal(t, 9, records[0].Team2Score)

	var players []domain.MatchPlayer
	require.NoError(t, json.Unmarshal(records[0].Players, &players))
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)

	records, err = repo.GetByRoomCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMatchRepository_ListNewestFirst(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMatchRepository(testDB.DB)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		record := matchRecord(fmt.Sprintf("ROOM%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, record))
	}

	records, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "ROOM2", records[0].RoomCode)
	assert.Equal(t, "ROOM0", records[2].RoomCode)

	records, err = repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
