package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizSession(weights WeightVector) *SessionState {
	return &SessionState{
		ID:      "test-session",
		Phase:   PhaseQuiz,
		Weights: weights,
	}
}

func TestPushQuestion_SnapshotsPreAnswerWeights(t *testing.T) {
	sess := quizSession(WeightVector{1: 1, 2: 1})

	sess.PushQuestion(QuestionCandidate{QIndex: 0, Kind: KindExploreTag, TagKey: "mecha"})

	require.Len(t, sess.WeightsHistory, 1)
	assert.Equal(t, 0, sess.WeightsHistory[0].QIndex)
	assert.Equal(t, WeightVector{1: 1, 2: 1}, sess.WeightsHistory[0].Weights)

	// the snapshot must be independent of later mutation
	sess.Weights[1] = 99
	assert.Equal(t, 1.0, sess.WeightsHistory[0].Weights[1])
}

func TestRollback_ReplayReproducesWeights(t *testing.T) {
	holders := map[uint64]bool{1: true}
	eps := 0.02

	sess := quizSession(WeightVector{1: 1, 2: 1})

	// q0 answered YES
	sess.PushQuestion(QuestionCandidate{QIndex: 0, Kind: KindExploreTag, TagKey: "mecha"})
	sess.Weights = ApplyAnswer(sess.Weights, holders, AnswerYes, eps)
	sess.PendingQuestion = nil
	sess.QuestionCount++

	// q1 pending
	sess.PushQuestion(QuestionCandidate{QIndex: 1, Kind: KindExploreTag, TagKey: "romance"})
	afterFirstAnswer := sess.Weights.Clone()

	// go back one question: q0 becomes pending again
	sess.Rollback()
	require.NotNil(t, sess.PendingQuestion)
	assert.Equal(t, 0, sess.PendingQuestion.QIndex)
	assert.Equal(t, 0, sess.QuestionCount)
	assert.Equal(t, WeightVector{1: 1, 2: 1}, sess.Weights)

	// replaying the same answer reproduces the exact weight vector
	replayed := ApplyAnswer(sess.Weights, holders, AnswerYes, eps)
	assert.Equal(t, afterFirstAnswer, replayed)
}

func TestRollback_TruncatesHistories(t *testing.T) {
	sess := quizSession(WeightVector{1: 1, 2: 1})

	for i := 0; i < 3; i++ {
		sess.PushQuestion(QuestionCandidate{QIndex: i, Kind: KindExploreTag, TagKey: "t"})
		sess.Weights = ApplyAnswer(sess.Weights, map[uint64]bool{1: true}, AnswerNo, 0.02)
		sess.PendingQuestion = nil
		sess.QuestionCount++
	}
	sess.PushQuestion(QuestionCandidate{QIndex: 3, Kind: KindExploreTag, TagKey: "t3"})

	sess.Rollback()

	assert.Len(t, sess.QuestionHistory, 3)
	assert.Len(t, sess.WeightsHistory, 3)
	assert.Equal(t, 2, sess.QuestionCount)
}

func TestRollback_PastFirstQuestionReturnsToGate(t *testing.T) {
	sess := quizSession(WeightVector{1: 3, 2: 1})
	sess.PushQuestion(QuestionCandidate{QIndex: 0, Kind: KindExploreTag, TagKey: "mecha"})

	sess.Rollback()

	assert.Equal(t, PhaseGate, sess.Phase)
	assert.Nil(t, sess.PendingQuestion)
	assert.Empty(t, sess.QuestionHistory)
	assert.Empty(t, sess.WeightsHistory)
	assert.Equal(t, 0, sess.QuestionCount)
	// seed weights survive the deep rollback
	assert.Equal(t, WeightVector{1: 3, 2: 1}, sess.Weights)
}

func TestRollback_NoopWithoutPendingQuestion(t *testing.T) {
	sess := quizSession(WeightVector{1: 1})

	sess.Rollback()

	assert.Equal(t, PhaseQuiz, sess.Phase)
}

func TestRejectWork_Deduplicates(t *testing.T) {
	sess := quizSession(WeightVector{1: 1})

	sess.RejectWork(7)
	sess.RejectWork(7)

	assert.Equal(t, []uint64{7}, sess.RevealRejectedIDs)
}

func TestMarkHardConfirmUsed_Deduplicates(t *testing.T) {
	sess := quizSession(WeightVector{1: 1})

	sess.MarkHardConfirmUsed(HardConfirmTitleInitial)
	sess.MarkHardConfirmUsed(HardConfirmTitleInitial)

	assert.Equal(t, []HardConfirmType{HardConfirmTitleInitial}, sess.UsedHardConfirmTypes)
}

func TestAskedTagKeys_OnlyExploreQuestions(t *testing.T) {
	sess := quizSession(WeightVector{1: 1})
	sess.QuestionHistory = []QuestionCandidate{
		{QIndex: 0, Kind: KindExploreTag, TagKey: "mecha"},
		{QIndex: 1, Kind: KindSoftConfirm},
		{QIndex: 2, Kind: KindExploreTag, TagKey: "romance"},
	}

	assert.Equal(t, []string{"mecha", "romance"}, sess.AskedTagKeys())
}
