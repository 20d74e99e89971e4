package postgres

import (
	"context"

	"github.com/partydeck/monikers-server/internal/domain"
	"gorm.io/gorm"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, record *domain.MatchRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *matchRepository) List(ctx context.Context, limit int) ([]*domain.MatchRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []*domain.MatchRecord
	err := r.db.WithContext(ctx).Order("completed_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *matchRepository) GetByRoomCode(ctx context.Context, code string) ([]*domain.MatchRecord, error) {
	var records []*domain.MatchRecord
	err := r.db.WithContext(ctx).Where("room_code = ?", code).Order("completed_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
