package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmTestConfig() Config {
	cfg := DefaultConfig()
	cfg.QForcedIndices = []int{6, 10}
	cfg.ConfidenceConfirmBand = [2]float64{0.4, 0.6}
	cfg.EffectiveConfirmThreshold = 100
	return cfg
}

func TestShouldInsertConfirm_ForcedIndex(t *testing.T) {
	cfg := confirmTestConfig()

	assert.True(t, ShouldInsertConfirm(6, 0.8, 1000, cfg))
	assert.False(t, ShouldInsertConfirm(5, 0.8, 1000, cfg))
}

func TestShouldInsertConfirm_ConfidenceBand(t *testing.T) {
	cfg := confirmTestConfig()

	assert.True(t, ShouldInsertConfirm(3, 0.5, 1000, cfg))
	assert.True(t, ShouldInsertConfirm(3, 0.4, 1000, cfg))
	assert.True(t, ShouldInsertConfirm(3, 0.6, 1000, cfg))
	assert.False(t, ShouldInsertConfirm(3, 0.39, 1000, cfg))
	assert.False(t, ShouldInsertConfirm(3, 0.61, 1000, cfg))
}

func TestShouldInsertConfirm_EffectiveThreshold(t *testing.T) {
	cfg := confirmTestConfig()

	assert.True(t, ShouldInsertConfirm(3, 0.8, 100, cfg))
	assert.True(t, ShouldInsertConfirm(3, 0.8, 12, cfg))
	assert.False(t, ShouldInsertConfirm(3, 0.8, 101, cfg))
}

func TestTagCoverage(t *testing.T) {
	probs := ProbabilityVector{1: 0.5, 2: 0.3, 3: 0.2}

	assert.InDelta(t, 0.8, TagCoverage(probs, map[uint64]bool{1: true, 2: true}), 1e-9)
	assert.Zero(t, TagCoverage(probs, nil))
}

func TestSelectExploreTag_ClosestToHalf(t *testing.T) {
	cands := []ExploreCandidate{
		{TagKey: "isekai", Coverage: 0.9},
		{TagKey: "romance", Coverage: 0.52},
		{TagKey: "mecha", Coverage: 0.1},
	}

	pick, err := SelectExploreTag(cands, false, [2]float64{})
	require.NoError(t, err)
	assert.Equal(t, "romance", pick.TagKey)
}

func TestSelectExploreTag_PreferHighP(t *testing.T) {
	cands := []ExploreCandidate{
		{TagKey: "isekai", Coverage: 0.9},
		{TagKey: "romance", Coverage: 0.52},
		{TagKey: "mecha", Coverage: 0.1},
	}

	pick, err := SelectExploreTag(cands, true, [2]float64{})
	require.NoError(t, err)
	assert.Equal(t, "isekai", pick.TagKey)
}

func TestSelectExploreTag_TieBreaksOnTagKey(t *testing.T) {
	cands := []ExploreCandidate{
		{TagKey: "zombie", Coverage: 0.4},
		{TagKey: "alien", Coverage: 0.6},
	}

	pick, err := SelectExploreTag(cands, false, [2]float64{})
	require.NoError(t, err)
	assert.Equal(t, "alien", pick.TagKey)

	even := []ExploreCandidate{
		{TagKey: "zombie", Coverage: 0.7},
		{TagKey: "alien", Coverage: 0.7},
	}
	pick, err = SelectExploreTag(even, true, [2]float64{})
	require.NoError(t, err)
	assert.Equal(t, "alien", pick.TagKey)
}

func TestSelectExploreTag_PValueBand(t *testing.T) {
	cands := []ExploreCandidate{
		{TagKey: "isekai", Coverage: 0.95},
		{TagKey: "mecha", Coverage: 0.03},
	}

	_, err := SelectExploreTag(cands, false, [2]float64{0.1, 0.9})
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestSelectExploreTag_EmptyInput(t *testing.T) {
	_, err := SelectExploreTag(nil, false, [2]float64{})
	assert.ErrorIs(t, err, ErrNoCandidate)
}
