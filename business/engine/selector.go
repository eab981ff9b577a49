package engine

import (
	"math"
	"sort"
)

// ExploreCandidate is one coverage-gate-passing tag with its probability-mass
// coverage over the current distribution.
type ExploreCandidate struct {
	TagKey   string
	Coverage float64
}

// ShouldInsertConfirm decides whether to interrupt tag exploration with a
// confirmation question this round: forced index, confidence inside the
// configured band, or the effective candidate count dropping to the
// threshold all trigger it.
func ShouldInsertConfirm(qIndex int, confidence, effective float64, cfg Config) bool {
	for _, idx := range cfg.QForcedIndices {
		if idx == qIndex {
			return true
		}
	}
	if confidence >= cfg.ConfidenceConfirmBand[0] && confidence <= cfg.ConfidenceConfirmBand[1] {
		return true
	}
	if effective <= cfg.EffectiveConfirmThreshold {
		return true
	}
	return false
}

// TagCoverage sums the probability mass of candidates carrying the tag.
func TagCoverage(probs ProbabilityVector, holders map[uint64]bool) float64 {
	sum := 0.0
	for id, p := range probs {
		if holders[id] {
			sum += p
		}
	}
	return sum
}

// SelectExploreTag picks the next tag to ask about.
//
// Default scoring is |coverage - 0.5| ascending: the closest split to 50/50
// carries the most expected information. With preferHighP (the seek-a-hit
// mode after a run of negative answers) it scores by coverage descending
// instead. pValueBand restricts candidates to coverage within [min,max]
// before scoring; a zero band disables the filter. Ties resolve to the
// ascending tagKey. Returns ErrNoCandidate when nothing survives.
func SelectExploreTag(cands []ExploreCandidate, preferHighP bool, pValueBand [2]float64) (ExploreCandidate, error) {
	filtered := cands
	if pValueBand[0] != 0 || pValueBand[1] != 0 {
		filtered = make([]ExploreCandidate, 0, len(cands))
		for _, c := range cands {
			if c.Coverage >= pValueBand[0] && c.Coverage <= pValueBand[1] {
				filtered = append(filtered, c)
			}
		}
	}
	if len(filtered) == 0 {
		return ExploreCandidate{}, ErrNoCandidate
	}

	score := func(c ExploreCandidate) float64 {
		if preferHighP {
			return -c.Coverage
		}
		return math.Abs(c.Coverage - 0.5)
	}

	sorted := make([]ExploreCandidate, len(filtered))
	copy(sorted, filtered)
	sort.Slice(sorted, func(i, j int) bool {
		si, sj := score(sorted[i]), score(sorted[j])
		if si != sj {
			return si < sj
		}
		return sorted[i].TagKey < sorted[j].TagKey
	})

	return sorted[0], nil
}
