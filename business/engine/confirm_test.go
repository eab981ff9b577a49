package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextHardConfirmType_FixedOrder(t *testing.T) {
	assert.Equal(t, HardConfirmTitleInitial, NextHardConfirmType(nil))
	assert.Equal(t, HardConfirmAuthor, NextHardConfirmType([]HardConfirmType{HardConfirmTitleInitial}))
	assert.Equal(t, HardConfirmType(""), NextHardConfirmType([]HardConfirmType{HardConfirmTitleInitial, HardConfirmAuthor}))
}

func TestNextHardConfirmType_OrderIndependentOfUsageOrder(t *testing.T) {
	assert.Equal(t, HardConfirmTitleInitial, NextHardConfirmType([]HardConfirmType{HardConfirmAuthor}))
}

func confirmKindConfig() Config {
	cfg := DefaultConfig()
	cfg.SoftConfidenceMin = 0.35
	cfg.HardConfidenceMin = 0.75
	return cfg
}

func TestSelectConfirmKind_HighConfidenceEscalatesToHard(t *testing.T) {
	cfg := confirmKindConfig()

	kind := SelectConfirmKind(0.8, true, cfg, func() float64 { return 0.0 })
	assert.Equal(t, KindHardConfirm, kind)
}

func TestSelectConfirmKind_MidConfidenceWithSoftData(t *testing.T) {
	cfg := confirmKindConfig()

	kind := SelectConfirmKind(0.5, true, cfg, func() float64 { return 0.9 })
	assert.Equal(t, KindSoftConfirm, kind)
}

func TestSelectConfirmKind_LowConfidenceCoinFlip(t *testing.T) {
	cfg := confirmKindConfig()

	soft := SelectConfirmKind(0.1, true, cfg, func() float64 { return 0.2 })
	assert.Equal(t, KindSoftConfirm, soft)

	hard := SelectConfirmKind(0.1, true, cfg, func() float64 { return 0.8 })
	assert.Equal(t, KindHardConfirm, hard)
}

func TestSelectConfirmKind_NoSoftDataAlwaysHard(t *testing.T) {
	cfg := confirmKindConfig()

	for _, conf := range []float64{0.1, 0.5, 0.9} {
		kind := SelectConfirmKind(conf, false, cfg, func() float64 { return 0.0 })
		assert.Equal(t, KindHardConfirm, kind)
	}
}
