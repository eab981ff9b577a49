package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassesCoverageGate_Auto(t *testing.T) {
	cases := []struct {
		name         string
		tagWorkCount int
		totalWorks   int
		want         bool
	}{
		{"enough coverage", 25, 100, true},
		{"small catalog below clamped bar", 2, 10, false},
		{"empty catalog does not crash", 0, 0, false},
		{"small catalog full coverage", 10, 10, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PassesCoverageGate(tc.tagWorkCount, tc.totalWorks, CoverageModeAuto, 0.05, 20, 0)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPassesCoverageGate_Ratio(t *testing.T) {
	assert.True(t, PassesCoverageGate(5, 100, CoverageModeRatio, 0.05, 20, 0))
	assert.False(t, PassesCoverageGate(4, 100, CoverageModeRatio, 0.05, 20, 0))
}

func TestPassesCoverageGate_Works(t *testing.T) {
	assert.True(t, PassesCoverageGate(20, 100, CoverageModeWorks, 0.05, 20, 0))
	assert.False(t, PassesCoverageGate(19, 100, CoverageModeWorks, 0.05, 20, 0))
}

func TestPassesCoverageGate_MaxRatioExcludesUbiquitousTags(t *testing.T) {
	// a tag nearly every work carries is useless as a discriminator
	assert.False(t, PassesCoverageGate(99, 100, CoverageModeRatio, 0.05, 20, 0.95))
	assert.True(t, PassesCoverageGate(90, 100, CoverageModeRatio, 0.05, 20, 0.95))
}

func TestPassesCoverageGate_NegativeCount(t *testing.T) {
	assert.False(t, PassesCoverageGate(-1, 100, CoverageModeAuto, 0.05, 20, 0))
}
