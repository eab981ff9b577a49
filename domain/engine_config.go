package domain

// EngineConfigBands holds the slice-valued tunables, stored as one JSON column.
type EngineConfigBands struct {
	QForcedIndices        []int      `json:"q_forced_indices"`
	ConfidenceConfirmBand [2]float64 `json:"confidence_confirm_band"`
	PValueBand            [2]float64 `json:"p_value_band"`
}

// EngineConfigRecord is the admin-editable engine tuning row.
type EngineConfigRecord struct {
	Name string `json:"name" gorm:"primaryKey;column:name;type:text"`

	Epsilon             float64 `json:"epsilon" gorm:"column:epsilon"`
	Beta                float64 `json:"beta" gorm:"column:beta"`
	SoftConfirmStrength float64 `json:"soft_confirm_strength" gorm:"column:soft_confirm_strength"`

	EffectiveConfirmThreshold float64 `json:"effective_confirm_threshold" gorm:"column:effective_confirm_threshold"`
	SoftConfidenceMin         float64 `json:"soft_confidence_min" gorm:"column:soft_confidence_min"`
	HardConfidenceMin         float64 `json:"hard_confidence_min" gorm:"column:hard_confidence_min"`

	CoverageMode     string  `json:"coverage_mode" gorm:"column:coverage_mode"`
	MinCoverageRatio float64 `json:"min_coverage_ratio" gorm:"column:min_coverage_ratio"`
	MinCoverageWorks int     `json:"min_coverage_works" gorm:"column:min_coverage_works"`
	MaxCoverageRatio float64 `json:"max_coverage_ratio" gorm:"column:max_coverage_ratio"`

	ConsecutiveNoForAtari int     `json:"consecutive_no_for_atari" gorm:"column:consecutive_no_for_atari"`
	RevealConfidenceMin   float64 `json:"reveal_confidence_min" gorm:"column:reveal_confidence_min"`
	RevealEffectiveMax    float64 `json:"reveal_effective_max" gorm:"column:reveal_effective_max"`
	RevealPenalty         float64 `json:"reveal_penalty" gorm:"column:reveal_penalty"`

	MaxQuestions     int  `json:"max_questions" gorm:"column:max_questions"`
	MaxRevealMisses  int  `json:"max_reveal_misses" gorm:"column:max_reveal_misses"`
	TitleInitialTopN int  `json:"title_initial_top_n" gorm:"column:title_initial_top_n"`
	FailListSize     int  `json:"fail_list_size" gorm:"column:fail_list_size"`
	// Nil means the row does not override the compiled default.
	SeedByPopularity *bool `json:"seed_by_popularity,omitempty" gorm:"column:seed_by_popularity"`

	BandsRaw []byte            `json:"-" gorm:"column:bands"`
	Bands    EngineConfigBands `json:"bands" gorm:"-"`
}

func (EngineConfigRecord) TableName() string {
	return "engine_configs"
}
