package postgres

import (
	"context"
	"errors"
	"fmt"
	"workOracle/business/engine"
	"workOracle/domain"

	"gorm.io/gorm"
)

type TagRepository struct {
	DB *gorm.DB
}

var _ engine.TagRepository = (*TagRepository)(nil)

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		DB: db,
	}
}

func (r *TagRepository) ListCandidateTags(ctx context.Context, filter domain.TagFilter) ([]domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Tag{})

	if len(filter.Types) > 0 {
		query = query.Where("tag_type IN ?", filter.Types)
	}
	if filter.MinWorkCount > 0 {
		query = query.Where("work_count >= ?", filter.MinWorkCount)
	}
	if len(filter.ExcludedKeys) > 0 {
		query = query.Where("tag_key NOT IN ?", filter.ExcludedKeys)
	}

	var tags []domain.Tag

	if err := query.Order("tag_key ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

func (r *TagRepository) FindByKey(ctx context.Context, tagKey string) (domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return domain.Tag{}, fmt.Errorf("context error: %w", err)
	}

	var tag domain.Tag

	err := r.DB.WithContext(ctx).Where("tag_key = ?", tagKey).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, errors.New("tag not found")
		}
		return domain.Tag{}, fmt.Errorf("failed to find tag: %w", err)
	}

	return tag, nil
}
