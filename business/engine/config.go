package engine

import (
	"context"
	"time"

	"workOracle/domain"
)

// Config holds every engine tunable with documented defaults. Validated once
// at startup; admin overrides are re-validated before use.
type Config struct {
	// Epsilon is the likelihood noise floor in [0, 0.5]; keeps weights from
	// collapsing to exactly zero on a hard YES/NO.
	Epsilon float64
	// Beta is the sharpness constant of the exponential update form.
	Beta float64
	// SoftConfirmStrength scales the signed answer strength of soft-confirm
	// (summary) questions. No hard ceiling; bounded only by exp stability.
	SoftConfirmStrength float64

	// QForcedIndices are question indices that always get a confirmation.
	QForcedIndices []int
	// ConfidenceConfirmBand inserts a confirmation while top-candidate
	// confidence sits inside [min, max].
	ConfidenceConfirmBand [2]float64
	// EffectiveConfirmThreshold inserts a confirmation once the effective
	// candidate count drops to or below it.
	EffectiveConfirmThreshold float64

	// SoftConfidenceMin / HardConfidenceMin pick the confirmation style.
	// SoftConfidenceMin must not exceed HardConfidenceMin.
	SoftConfidenceMin float64
	HardConfidenceMin float64

	// Coverage gate settings for candidate tags.
	CoverageMode     CoverageMode
	MinCoverageRatio float64
	MinCoverageWorks int
	// MaxCoverageRatio excludes near-universal tags; 0 disables.
	MaxCoverageRatio float64

	// PValueBand restricts explore tags to coverage within [min, max];
	// a zero band disables the filter.
	PValueBand [2]float64

	// ConsecutiveNoForAtari switches the selector into seek-a-hit mode
	// after this many negative answers in a row. 0 disables.
	ConsecutiveNoForAtari int

	// Reveal thresholds: confidence at or above RevealConfidenceMin, or an
	// effective candidate count at or below RevealEffectiveMax, commits the
	// engine to a guess.
	RevealConfidenceMin float64
	RevealEffectiveMax  float64
	// RevealPenalty in (0, 1] multiplies the guessed work's weight after a
	// rejected reveal.
	RevealPenalty float64

	MaxQuestions    int
	MaxRevealMisses int

	// TitleInitialTopN bounds how many leading candidates contribute their
	// title initial to a TITLE_INITIAL hard confirm.
	TitleInitialTopN int
	FailListSize     int

	// SeedByPopularity seeds initial weights from catalog popularity
	// instead of uniformly.
	SeedByPopularity bool

	// SessionTTL bounds how long an idle session survives in the store.
	SessionTTL time.Duration
}

const (
	defaultEpsilon                   = 0.02
	defaultBeta                      = 1.0
	defaultSoftConfirmStrength       = 1.0
	defaultEffectiveConfirmThreshold = 3.0
	defaultSoftConfidenceMin         = 0.35
	defaultHardConfidenceMin         = 0.75
	defaultMinCoverageRatio          = 0.05
	defaultMinCoverageWorks          = 20
	defaultMaxCoverageRatio          = 0.95
	defaultConsecutiveNoForAtari     = 3
	defaultRevealConfidenceMin       = 0.85
	defaultRevealEffectiveMax        = 1.5
	defaultRevealPenalty             = 0.1
	defaultMaxQuestions              = 25
	defaultMaxRevealMisses           = 2
	defaultTitleInitialTopN          = 3
	defaultFailListSize              = 10
	defaultSessionTTL                = 2 * time.Hour
)

func DefaultConfig() Config {
	return Config{
		Epsilon:             defaultEpsilon,
		Beta:                defaultBeta,
		SoftConfirmStrength: defaultSoftConfirmStrength,

		QForcedIndices:            []int{5, 10, 15},
		ConfidenceConfirmBand:     [2]float64{0.45, 0.6},
		EffectiveConfirmThreshold: defaultEffectiveConfirmThreshold,

		SoftConfidenceMin: defaultSoftConfidenceMin,
		HardConfidenceMin: defaultHardConfidenceMin,

		CoverageMode:     CoverageModeAuto,
		MinCoverageRatio: defaultMinCoverageRatio,
		MinCoverageWorks: defaultMinCoverageWorks,
		MaxCoverageRatio: defaultMaxCoverageRatio,

		PValueBand: [2]float64{},

		ConsecutiveNoForAtari: defaultConsecutiveNoForAtari,

		RevealConfidenceMin: defaultRevealConfidenceMin,
		RevealEffectiveMax:  defaultRevealEffectiveMax,
		RevealPenalty:       defaultRevealPenalty,

		MaxQuestions:    defaultMaxQuestions,
		MaxRevealMisses: defaultMaxRevealMisses,

		TitleInitialTopN: defaultTitleInitialTopN,
		FailListSize:     defaultFailListSize,

		SeedByPopularity: true,
		SessionTTL:       defaultSessionTTL,
	}
}

// Validate fails fast on malformed tunables instead of degrading silently.
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 0.5 {
		return &ConfigError{Field: "epsilon", Reason: "must be within [0, 0.5]"}
	}
	if c.Beta <= 0 {
		return &ConfigError{Field: "beta", Reason: "must be positive"}
	}
	if c.ConfidenceConfirmBand[0] > c.ConfidenceConfirmBand[1] {
		return &ConfigError{Field: "confidence_confirm_band", Reason: "min exceeds max"}
	}
	if c.ConfidenceConfirmBand[0] < 0 || c.ConfidenceConfirmBand[1] > 1 {
		return &ConfigError{Field: "confidence_confirm_band", Reason: "must be within [0, 1]"}
	}
	if c.PValueBand[0] > c.PValueBand[1] {
		return &ConfigError{Field: "p_value_band", Reason: "min exceeds max"}
	}
	if c.PValueBand[0] < 0 || c.PValueBand[1] > 1 {
		return &ConfigError{Field: "p_value_band", Reason: "must be within [0, 1]"}
	}
	if c.SoftConfidenceMin > c.HardConfidenceMin {
		return &ConfigError{Field: "soft_confidence_min", Reason: "exceeds hard_confidence_min"}
	}
	if c.SoftConfidenceMin < 0 || c.SoftConfidenceMin > 1 {
		return &ConfigError{Field: "soft_confidence_min", Reason: "must be within [0, 1]"}
	}
	if c.HardConfidenceMin < 0 || c.HardConfidenceMin > 1 {
		return &ConfigError{Field: "hard_confidence_min", Reason: "must be within [0, 1]"}
	}
	switch c.CoverageMode {
	case CoverageModeRatio, CoverageModeWorks, CoverageModeAuto:
	default:
		return &ConfigError{Field: "coverage_mode", Reason: "unknown mode"}
	}
	if c.MinCoverageRatio < 0 || c.MinCoverageRatio > 1 {
		return &ConfigError{Field: "min_coverage_ratio", Reason: "must be within [0, 1]"}
	}
	if c.MinCoverageWorks < 0 {
		return &ConfigError{Field: "min_coverage_works", Reason: "must not be negative"}
	}
	if c.MaxCoverageRatio < 0 || c.MaxCoverageRatio > 1 {
		return &ConfigError{Field: "max_coverage_ratio", Reason: "must be within [0, 1]"}
	}
	if c.RevealPenalty <= 0 || c.RevealPenalty > 1 {
		return &ConfigError{Field: "reveal_penalty", Reason: "must be within (0, 1]"}
	}
	if c.RevealConfidenceMin <= 0 || c.RevealConfidenceMin > 1 {
		return &ConfigError{Field: "reveal_confidence_min", Reason: "must be within (0, 1]"}
	}
	if c.RevealEffectiveMax < 1 {
		return &ConfigError{Field: "reveal_effective_max", Reason: "must be at least 1"}
	}
	if c.MaxQuestions <= 0 {
		return &ConfigError{Field: "max_questions", Reason: "must be positive"}
	}
	if c.MaxRevealMisses < 0 {
		return &ConfigError{Field: "max_reveal_misses", Reason: "must not be negative"}
	}
	if c.TitleInitialTopN <= 0 {
		return &ConfigError{Field: "title_initial_top_n", Reason: "must be positive"}
	}
	if c.FailListSize <= 0 {
		return &ConfigError{Field: "fail_list_size", Reason: "must be positive"}
	}
	if c.SessionTTL <= 0 {
		return &ConfigError{Field: "session_ttl", Reason: "must be positive"}
	}
	return nil
}

// ConfigRepository reads and writes the admin-tunable engine config row.
type ConfigRepository interface {
	GetConfig(ctx context.Context, name string) (domain.EngineConfigRecord, bool, error)
	UpsertConfig(ctx context.Context, rec domain.EngineConfigRecord) error
}
