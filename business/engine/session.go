package engine

import "time"

// Phase is the session's position in the game state machine.
type Phase string

const (
	PhaseGate          Phase = "GATE"
	PhaseQuiz          Phase = "QUIZ"
	PhaseReveal        Phase = "REVEAL"
	PhaseSuccess       Phase = "SUCCESS"
	PhaseFailList      Phase = "FAIL_LIST"
	PhaseAlmostSuccess Phase = "ALMOST_SUCCESS"
	PhaseNotInList     Phase = "NOT_IN_LIST"
)

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseAlmostSuccess || p == PhaseNotInList
}

// QuestionKind distinguishes exploration from confirmation questions.
type QuestionKind string

const (
	KindExploreTag  QuestionKind = "EXPLORE_TAG"
	KindSoftConfirm QuestionKind = "SOFT_CONFIRM"
	KindHardConfirm QuestionKind = "HARD_CONFIRM"
)

// QuestionCandidate is one round's selected question. Ephemeral beyond the
// round except for the session's question history.
type QuestionCandidate struct {
	QIndex          int             `json:"q_index"`
	Kind            QuestionKind    `json:"kind"`
	TagKey          string          `json:"tag_key,omitempty"`
	HardConfirmType HardConfirmType `json:"hard_confirm_type,omitempty"`
}

// WeightSnapshot is the pre-answer weight state for one question index,
// recorded so "go back one question" can restore it exactly.
type WeightSnapshot struct {
	QIndex        int          `json:"q_index"`
	Weights       WeightVector `json:"weights"`
	ConsecutiveNo int          `json:"consecutive_no"`
}

// SessionState is the whole mutable record for one game session. Exclusively
// owned by that session; the service serializes access per session id.
type SessionState struct {
	ID    string `json:"id"`
	Phase Phase  `json:"phase"`

	Weights         WeightVector       `json:"weights"`
	WeightsHistory  []WeightSnapshot   `json:"weights_history"`
	QuestionHistory []QuestionCandidate `json:"question_history"`
	QuestionCount   int                `json:"question_count"`

	PendingQuestion      *QuestionCandidate `json:"pending_question,omitempty"`
	UsedHardConfirmTypes []HardConfirmType  `json:"used_hard_confirm_types"`
	ConsecutiveNo        int                `json:"consecutive_no"`

	RevealWorkID        uint64   `json:"reveal_work_id,omitempty"`
	RevealMissCount     int      `json:"reveal_miss_count"`
	RevealRejectedIDs   []uint64 `json:"reveal_rejected_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PushQuestion appends the emitted question and snapshots the pre-answer
// weights keyed by its qIndex. Call before applying the answer.
func (s *SessionState) PushQuestion(q QuestionCandidate) {
	s.PendingQuestion = &q
	s.QuestionHistory = append(s.QuestionHistory, q)
	s.WeightsHistory = append(s.WeightsHistory, WeightSnapshot{
		QIndex:        q.QIndex,
		Weights:       s.Weights.Clone(),
		ConsecutiveNo: s.ConsecutiveNo,
	})
}

// MarkHardConfirmUsed records that a hard-confirm variant has been spent.
func (s *SessionState) MarkHardConfirmUsed(t HardConfirmType) {
	for _, u := range s.UsedHardConfirmTypes {
		if u == t {
			return
		}
	}
	s.UsedHardConfirmTypes = append(s.UsedHardConfirmTypes, t)
}

// RejectedSet returns the reveal-rejected work ids as a lookup set.
func (s *SessionState) RejectedSet() map[uint64]bool {
	out := make(map[uint64]bool, len(s.RevealRejectedIDs))
	for _, id := range s.RevealRejectedIDs {
		out[id] = true
	}
	return out
}

// RejectWork adds a missed reveal guess to the exclusion set.
func (s *SessionState) RejectWork(id uint64) {
	if s.RejectedSet()[id] {
		return
	}
	s.RevealRejectedIDs = append(s.RevealRejectedIDs, id)
}

// Rollback undoes the current question: the previous question's snapshot is
// restored and the histories truncated so it can be re-answered. Rolling
// back past the first question returns the session to the gate phase with
// its seed weights intact.
func (s *SessionState) Rollback() {
	if s.PendingQuestion == nil || len(s.WeightsHistory) == 0 {
		return
	}

	if len(s.QuestionHistory) <= 1 {
		seed := s.WeightsHistory[0]
		s.Weights = seed.Weights.Clone()
		s.ConsecutiveNo = seed.ConsecutiveNo
		s.WeightsHistory = nil
		s.QuestionHistory = nil
		s.QuestionCount = 0
		s.PendingQuestion = nil
		s.Phase = PhaseGate
		return
	}

	target := s.PendingQuestion.QIndex - 1

	idx := -1
	for i, snap := range s.WeightsHistory {
		if snap.QIndex == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	snap := s.WeightsHistory[idx]
	s.Weights = snap.Weights.Clone()
	s.ConsecutiveNo = snap.ConsecutiveNo
	s.WeightsHistory = s.WeightsHistory[:idx+1]
	s.QuestionHistory = s.QuestionHistory[:idx+1]
	q := s.QuestionHistory[idx]
	s.PendingQuestion = &q
	s.QuestionCount = target
	s.Phase = PhaseQuiz
}

// AskedTagKeys lists the explore tags already asked, so the selector does
// not repeat them.
func (s *SessionState) AskedTagKeys() []string {
	out := make([]string, 0, len(s.QuestionHistory))
	for _, q := range s.QuestionHistory {
		if q.Kind == KindExploreTag && q.TagKey != "" {
			out = append(out, q.TagKey)
		}
	}
	return out
}
