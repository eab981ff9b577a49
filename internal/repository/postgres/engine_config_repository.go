package postgres

import (
	"context"
	"encoding/json"
	"workOracle/business/engine"
	"workOracle/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngineConfigRepository struct {
	DB *gorm.DB
}

var _ engine.ConfigRepository = (*EngineConfigRepository)(nil)

func NewEngineConfigRepository(db *gorm.DB) *EngineConfigRepository {
	return &EngineConfigRepository{DB: db}
}

func (r *EngineConfigRepository) GetConfig(ctx context.Context, name string) (domain.EngineConfigRecord, bool, error) {
	var rec domain.EngineConfigRecord

	err := r.DB.WithContext(ctx).
		Where("name = ?", name).
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return domain.EngineConfigRecord{}, false, nil
	}
	if err != nil {
		return domain.EngineConfigRecord{}, false, err
	}

	if len(rec.BandsRaw) > 0 {
		_ = json.Unmarshal(rec.BandsRaw, &rec.Bands)
	}
	return rec, true, nil
}

func (r *EngineConfigRepository) UpsertConfig(ctx context.Context, rec domain.EngineConfigRecord) error {
	// if Bands is set but BandsRaw is empty, serialize it
	if len(rec.BandsRaw) == 0 {
		raw, _ := json.Marshal(rec.Bands)
		rec.BandsRaw = raw
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"epsilon",
				"beta",
				"soft_confirm_strength",
				"effective_confirm_threshold",
				"soft_confidence_min",
				"hard_confidence_min",
				"coverage_mode",
				"min_coverage_ratio",
				"min_coverage_works",
				"max_coverage_ratio",
				"consecutive_no_for_atari",
				"reveal_confidence_min",
				"reveal_effective_max",
				"reveal_penalty",
				"max_questions",
				"max_reveal_misses",
				"title_initial_top_n",
				"fail_list_size",
				"seed_by_popularity",
				"bands",
			}),
		}).
		Create(&rec).Error
}
