package postgres

import (
	"context"
	"errors"
	"fmt"
	"workOracle/business/engine"
	"workOracle/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkRepository struct {
	DB *gorm.DB
}

var _ engine.WorkRepository = (*WorkRepository)(nil)

func NewWorkRepository(db *gorm.DB) *WorkRepository {
	return &WorkRepository{
		DB: db,
	}
}

func (r *WorkRepository) FindAll(ctx context.Context) ([]domain.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var works []domain.Work

	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&works).Error; err != nil {
		return nil, fmt.Errorf("failed to list works: %w", err)
	}

	return works, nil
}

func (r *WorkRepository) FindByID(ctx context.Context, id uint64) (domain.Work, error) {
	if err := ctx.Err(); err != nil {
		return domain.Work{}, fmt.Errorf("context error: %w", err)
	}

	var work domain.Work

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&work).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Work{}, errors.New("work not found")
		}
		return domain.Work{}, fmt.Errorf("failed to find work: %w", err)
	}

	return work, nil
}

func (r *WorkRepository) TotalCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64

	if err := r.DB.WithContext(ctx).Model(&domain.Work{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count works: %w", err)
	}

	return int(count), nil
}

// CommentaryCount counts works carrying soft-confirm content.
func (r *WorkRepository) CommentaryCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64

	err := r.DB.WithContext(ctx).
		Model(&domain.Work{}).
		Where("commentary <> ''").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count commentaries: %w", err)
	}

	return int(count), nil
}

// UpsertWorks bulk-seeds or refreshes catalog rows, keyed by id.
func (r *WorkRepository) UpsertWorks(ctx context.Context, works []domain.Work) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(works) == 0 {
		return nil
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title",
				"title_initial",
				"author",
				"popularity",
				"commentary",
			}),
		}).
		Create(&works).Error
	if err != nil {
		return fmt.Errorf("failed to upsert works: %w", err)
	}

	return nil
}

func (r *WorkRepository) WorkIDsWithTag(ctx context.Context, tagKey string) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64

	err := r.DB.WithContext(ctx).
		Model(&domain.WorkTag{}).
		Where("tag_key = ?", tagKey).
		Order("work_id ASC").
		Pluck("work_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list work ids for tag: %w", err)
	}

	return ids, nil
}
