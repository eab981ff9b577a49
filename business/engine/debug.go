package engine

import (
	"context"
	"fmt"
	"math"
	"sort"

	"workOracle/domain"
)

const debugTopCandidates = 10

// DebugState returns the full selector/updater picture for one session:
// top candidates with weights and probabilities, plus every candidate tag
// with its coverage and selection score. Read-only.
func (s *GameService) DebugState(ctx context.Context, sessionID string) (*domain.DebugState, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cfg := s.loadConfig(ctx)

	probs := Normalize(sess.Weights)
	_, conf := Confidence(probs)
	eff := EffectiveCandidates(probs)

	works, err := s.workRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load works: %w", err)
	}
	byID := make(map[uint64]domain.Work, len(works))
	for _, w := range works {
		byID[w.ID] = w
	}

	ids := sortedIDs(probs)
	sort.SliceStable(ids, func(i, j int) bool {
		return probs[ids[i]] > probs[ids[j]]
	})

	top := make([]domain.DebugCandidate, 0, debugTopCandidates)
	for i := 0; i < len(ids) && i < debugTopCandidates; i++ {
		id := ids[i]
		top = append(top, domain.DebugCandidate{
			WorkID:      id,
			Title:       byID[id].Title,
			Weight:      sess.Weights[id],
			Probability: probs[id],
		})
	}

	total, err := s.workRepo.TotalCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count works: %w", err)
	}

	asked := make(map[string]bool)
	for _, key := range sess.AskedTagKeys() {
		asked[key] = true
	}

	tags, err := s.tagRepo.ListCandidateTags(ctx, domain.TagFilter{})
	if err != nil {
		return nil, fmt.Errorf("list candidate tags: %w", err)
	}

	tagScores := make([]domain.DebugTagScore, 0, len(tags))
	for _, tag := range tags {
		passed := PassesCoverageGate(tag.WorkCount, total, cfg.CoverageMode, cfg.MinCoverageRatio, cfg.MinCoverageWorks, cfg.MaxCoverageRatio)

		coverage := 0.0
		if passed {
			holderIDs, err := s.workRepo.WorkIDsWithTag(ctx, tag.TagKey)
			if err != nil {
				return nil, fmt.Errorf("load tag holders: %w", err)
			}
			coverage = TagCoverage(probs, idSet(holderIDs))
		}

		tagScores = append(tagScores, domain.DebugTagScore{
			TagKey:      tag.TagKey,
			Coverage:    coverage,
			Score:       math.Abs(coverage - 0.5),
			PassedGate:  passed,
			AlreadyUsed: asked[tag.TagKey],
		})
	}

	return &domain.DebugState{
		SessionID:           sess.ID,
		Phase:               string(sess.Phase),
		QuestionCount:       sess.QuestionCount,
		Confidence:          conf,
		EffectiveCandidates: eff,
		TopCandidates:       top,
		TagScores:           tagScores,
	}, nil
}
