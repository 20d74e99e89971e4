package repository

import (
	"context"

	"github.com/partydeck/monikers-server/internal/domain"
)

type CardRepository interface {
	Upsert(ctx context.Context, card *domain.Card) error
	UpsertMany(ctx context.Context, cards []*domain.Card) error
	GetAll(ctx context.Context) ([]*domain.Card, error)
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	Count(ctx context.Context) (int64, error)
}

type MatchRepository interface {
	Create(ctx context.Context, record *domain.MatchRecord) error
	List(ctx context.Context, limit int) ([]*domain.MatchRecord, error)
	GetByRoomCode(ctx context.Context, code string) ([]*domain.MatchRecord, error)
}

type Repositories struct {
	Card  CardRepository
	Match MatchRepository
}
