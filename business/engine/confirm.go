package engine

// HardConfirmType is one of the escalating hard confirmation variants.
type HardConfirmType string

const (
	HardConfirmTitleInitial HardConfirmType = "TITLE_INITIAL"
	HardConfirmAuthor       HardConfirmType = "AUTHOR"
)

// hardConfirmOrder is the fixed presentation order for hard confirms.
var hardConfirmOrder = []HardConfirmType{HardConfirmTitleInitial, HardConfirmAuthor}

// NextHardConfirmType returns the first hard-confirm variant not yet used
// this session, or "" when every variant has been spent.
func NextHardConfirmType(used []HardConfirmType) HardConfirmType {
	for _, t := range hardConfirmOrder {
		spent := false
		for _, u := range used {
			if u == t {
				spent = true
				break
			}
		}
		if !spent {
			return t
		}
	}
	return ""
}

// SelectConfirmKind chooses between soft and hard confirmation.
//
// Near-certainty escalates straight to hard. Mid confidence with available
// soft content stays soft. Below the soft threshold the choice is a 50/50
// coin flip when soft content exists, so the question pattern does not turn
// monotonous; randFloat is injected so callers can pin either branch.
func SelectConfirmKind(confidence float64, hasSoftConfirmData bool, cfg Config, randFloat func() float64) QuestionKind {
	if confidence >= cfg.HardConfidenceMin {
		return KindHardConfirm
	}
	if confidence >= cfg.SoftConfidenceMin && hasSoftConfirmData {
		return KindSoftConfirm
	}
	if hasSoftConfirmData {
		if randFloat() < 0.5 {
			return KindSoftConfirm
		}
		return KindHardConfirm
	}
	return KindHardConfirm
}
