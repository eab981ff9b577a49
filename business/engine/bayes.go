package engine

import "math"

// Answer is the player's reply to one tag question.
type Answer string

const (
	AnswerYes         Answer = "YES"
	AnswerProbablyYes Answer = "PROBABLY_YES"
	AnswerUnknown     Answer = "UNKNOWN"
	AnswerProbablyNo  Answer = "PROBABLY_NO"
	AnswerNo          Answer = "NO"
	AnswerDontCare    Answer = "DONT_CARE"
)

// ValidAnswer reports whether a is one of the six known answer values.
func ValidAnswer(a Answer) bool {
	switch a {
	case AnswerYes, AnswerProbablyYes, AnswerUnknown, AnswerProbablyNo, AnswerNo, AnswerDontCare:
		return true
	}
	return false
}

// IsNegative reports whether the answer counts toward a losing streak.
func (a Answer) IsNegative() bool {
	return a == AnswerNo || a == AnswerProbablyNo
}

// IsPositive reports whether the answer breaks a losing streak.
func (a Answer) IsPositive() bool {
	return a == AnswerYes || a == AnswerProbablyYes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Likelihood returns the multiplier for one candidate given its feature
// membership and the player's answer. eps in [0, 0.5] is the noise floor
// that keeps weights from collapsing to exactly zero.
func Likelihood(hasFeature bool, answer Answer, eps float64) float64 {
	switch answer {
	case AnswerYes:
		if hasFeature {
			return 1 - eps
		}
		return eps
	case AnswerNo:
		if hasFeature {
			return eps
		}
		return 1 - eps
	case AnswerProbablyYes:
		if hasFeature {
			return clamp(0.7, eps, 1-eps)
		}
		return clamp(0.3, eps, 1-eps)
	case AnswerProbablyNo:
		if hasFeature {
			return clamp(0.3, eps, 1-eps)
		}
		return clamp(0.7, eps, 1-eps)
	case AnswerUnknown, AnswerDontCare:
		fallthrough
	default:
		return 1
	}
}

// ApplyAnswer multiplies every candidate's weight by the likelihood of the
// answer given feature membership. Normalization is the caller's business;
// the input vector is not mutated.
func ApplyAnswer(weights WeightVector, holders map[uint64]bool, answer Answer, eps float64) WeightVector {
	out := make(WeightVector, len(weights))
	for id, w := range weights {
		out[id] = w * Likelihood(holders[id], answer, eps)
	}
	return out
}

// ApplyStrength is the multiplicative-exponent update used by weighted
// (summary-style) questions: w *= exp(beta*s) for feature holders,
// w *= exp(-beta*s) otherwise. strength is a signed real with no hard
// ceiling beyond the numeric range of exp.
func ApplyStrength(weights WeightVector, holders map[uint64]bool, beta, strength float64) WeightVector {
	up := math.Exp(beta * strength)
	down := math.Exp(-beta * strength)

	out := make(WeightVector, len(weights))
	for id, w := range weights {
		if holders[id] {
			out[id] = w * up
		} else {
			out[id] = w * down
		}
	}
	return out
}
