package postgres

import (
	"context"
	"fmt"
	"workOracle/business/engine"
	"workOracle/domain"

	"gorm.io/gorm"
)

type GameEventRepository struct {
	DB *gorm.DB
}

var _ engine.EventRepository = (*GameEventRepository)(nil)

func NewGameEventRepository(db *gorm.DB) *GameEventRepository {
	return &GameEventRepository{
		DB: db,
	}
}

func (r *GameEventRepository) SaveEvent(ctx context.Context, ev domain.GameEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("failed to save game event: %w", err)
	}

	return nil
}

// FindBySession returns the event trail of one session, oldest first.
func (r *GameEventRepository) FindBySession(ctx context.Context, sessionID string) ([]domain.GameEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.GameEvent

	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list game events: %w", err)
	}

	return events, nil
}
