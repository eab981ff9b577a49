package engine

import "sort"

// WeightVector maps workID -> unnormalized non-negative weight.
type WeightVector map[uint64]float64

// ProbabilityVector maps workID -> probability. Produced only by Normalize.
type ProbabilityVector map[uint64]float64

// Clone returns an independent copy of the vector.
func (w WeightVector) Clone() WeightVector {
	out := make(WeightVector, len(w))
	for id, v := range w {
		out[id] = v
	}
	return out
}

// Normalize converts weights into a probability distribution.
// If the total mass is zero the result is uniform 1/n, so a degenerate
// all-zero state never divides by zero.
func Normalize(weights WeightVector) ProbabilityVector {
	out := make(ProbabilityVector, len(weights))
	if len(weights) == 0 {
		return out
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}

	if total <= 0 {
		uniform := 1.0 / float64(len(weights))
		for id := range weights {
			out[id] = uniform
		}
		return out
	}

	for id, w := range weights {
		out[id] = w / total
	}
	return out
}

// sortedIDs returns the vector's keys in ascending order, for deterministic
// tie-breaks in every selection step.
func sortedIDs(probs ProbabilityVector) []uint64 {
	ids := make([]uint64, 0, len(probs))
	for id := range probs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Confidence returns the top candidate and its probability. Equal
// probabilities resolve to the lowest workID.
func Confidence(probs ProbabilityVector) (uint64, float64) {
	var topID uint64
	top := 0.0
	for _, id := range sortedIDs(probs) {
		if probs[id] > top {
			top = probs[id]
			topID = id
		}
	}
	return topID, top
}

// EffectiveCandidates is the inverse-Simpson diversity index 1 / sum(p^2):
// 1 for a one-hot distribution, n for a uniform one. A soft count of how
// many candidates are still plausible.
func EffectiveCandidates(probs ProbabilityVector) float64 {
	sumSq := 0.0
	for _, p := range probs {
		sumSq += p * p
	}
	if sumSq <= 0 {
		return 0
	}
	return 1.0 / sumSq
}
