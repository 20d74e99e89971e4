package service

import (
	"context"
	"log"
	"time"

	"github.com/partydeck/monikers-server/internal/domain"
	"github.com/partydeck/monikers-server/internal/repository"
)

// HistoryService persists finished-game summaries. It satisfies the engine's
// Recorder interface; the write happens off the game goroutine so a slow
// database never stalls a room.
type HistoryService struct {
	matchRepo repository.MatchRepository
}

func NewHistoryService(matchRepo repository.MatchRepository) *HistoryService {
	return &HistoryService{matchRepo: matchRepo}
}

func (s *HistoryService) MatchCompleted(record *domain.MatchRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.matchRepo.Create(ctx, record); err != nil {
			log.Printf("ERROR [history.MatchCompleted] failed to persist match for room %s: %v", record.RoomCode, err)
			return
		}
		log.Printf("Recorded match for room %s (%d-%d)", record.RoomCode, record.Team1Score, record.Team2Score)
	}()
}

func (s *HistoryService) Recent(ctx context.Context, limit int) ([]*domain.MatchRecord, error) {
	return s.matchRepo.List(ctx, limit)
}

func (s *HistoryService) ForRoom(ctx context.Context, code string) ([]*domain.MatchRecord, error) {
	return s.matchRepo.GetByRoomCode(ctx, code)
}
