package engine

import (
	"context"
	"encoding/json"

	"workOracle/domain"
	"workOracle/pkg/logger"
)

// loadConfig reads the named engine config from the repo, layered on top of
// the startup defaults so missing fields keep sane values. Repo misses,
// repo errors, and overrides that fail validation all fall back to the
// defaults; a broken admin row must not take the game down.
func (s *GameService) loadConfig(ctx context.Context) Config {
	if s.cfgRepo == nil {
		return s.defaultCfg
	}

	rec, ok, err := s.cfgRepo.GetConfig(ctx, s.cfgName)
	if err != nil || !ok {
		return s.defaultCfg
	}

	cfg := mergeConfig(s.defaultCfg, rec)
	if vErr := cfg.Validate(); vErr != nil {
		logger.Error("invalid engine config override, using defaults",
			"name", s.cfgName,
			"error", vErr,
		)
		return s.defaultCfg
	}

	return cfg
}

// mergeConfig copies the record's fields over base. Zero-valued scalars in
// the record mean "keep the default".
func mergeConfig(base Config, rec domain.EngineConfigRecord) Config {
	cfg := base

	if rec.Epsilon > 0 {
		cfg.Epsilon = rec.Epsilon
	}
	if rec.Beta > 0 {
		cfg.Beta = rec.Beta
	}
	if rec.SoftConfirmStrength > 0 {
		cfg.SoftConfirmStrength = rec.SoftConfirmStrength
	}
	if rec.EffectiveConfirmThreshold > 0 {
		cfg.EffectiveConfirmThreshold = rec.EffectiveConfirmThreshold
	}
	if rec.SoftConfidenceMin > 0 {
		cfg.SoftConfidenceMin = rec.SoftConfidenceMin
	}
	if rec.HardConfidenceMin > 0 {
		cfg.HardConfidenceMin = rec.HardConfidenceMin
	}
	if rec.CoverageMode != "" {
		cfg.CoverageMode = CoverageMode(rec.CoverageMode)
	}
	if rec.MinCoverageRatio > 0 {
		cfg.MinCoverageRatio = rec.MinCoverageRatio
	}
	if rec.MinCoverageWorks > 0 {
		cfg.MinCoverageWorks = rec.MinCoverageWorks
	}
	if rec.MaxCoverageRatio > 0 {
		cfg.MaxCoverageRatio = rec.MaxCoverageRatio
	}
	if rec.ConsecutiveNoForAtari > 0 {
		cfg.ConsecutiveNoForAtari = rec.ConsecutiveNoForAtari
	}
	if rec.RevealConfidenceMin > 0 {
		cfg.RevealConfidenceMin = rec.RevealConfidenceMin
	}
	if rec.RevealEffectiveMax > 0 {
		cfg.RevealEffectiveMax = rec.RevealEffectiveMax
	}
	if rec.RevealPenalty > 0 {
		cfg.RevealPenalty = rec.RevealPenalty
	}
	if rec.MaxQuestions > 0 {
		cfg.MaxQuestions = rec.MaxQuestions
	}
	if rec.MaxRevealMisses > 0 {
		cfg.MaxRevealMisses = rec.MaxRevealMisses
	}
	if rec.TitleInitialTopN > 0 {
		cfg.TitleInitialTopN = rec.TitleInitialTopN
	}
	if rec.FailListSize > 0 {
		cfg.FailListSize = rec.FailListSize
	}
	if rec.SeedByPopularity != nil {
		cfg.SeedByPopularity = *rec.SeedByPopularity
	}

	bands := rec.Bands
	if len(rec.BandsRaw) > 0 {
		// bands column arrives as raw JSON from the repo
		if err := json.Unmarshal(rec.BandsRaw, &bands); err != nil {
			logger.Error("failed to unmarshal engine config bands", "error", err)
			bands = domain.EngineConfigBands{}
		}
	}
	if len(bands.QForcedIndices) > 0 {
		cfg.QForcedIndices = bands.QForcedIndices
	}
	if bands.ConfidenceConfirmBand != [2]float64{} {
		cfg.ConfidenceConfirmBand = bands.ConfidenceConfirmBand
	}
	if bands.PValueBand != [2]float64{} {
		cfg.PValueBand = bands.PValueBand
	}

	return cfg
}
