package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workOracle/domain"
)

// ---- in-memory fakes ----

type fakeCatalog struct {
	works   []domain.Work
	tags    []domain.Tag
	holders map[string][]uint64
}

func (f *fakeCatalog) FindAll(ctx context.Context) ([]domain.Work, error) {
	return f.works, nil
}

func (f *fakeCatalog) FindByID(ctx context.Context, id uint64) (domain.Work, error) {
	for _, w := range f.works {
		if w.ID == id {
			return w, nil
		}
	}
	return domain.Work{}, fmt.Errorf("work %d not found", id)
}

func (f *fakeCatalog) TotalCount(ctx context.Context) (int, error) {
	return len(f.works), nil
}

func (f *fakeCatalog) WorkIDsWithTag(ctx context.Context, tagKey string) ([]uint64, error) {
	return f.holders[tagKey], nil
}

func (f *fakeCatalog) ListCandidateTags(ctx context.Context, filter domain.TagFilter) ([]domain.Tag, error) {
	excluded := make(map[string]bool, len(filter.ExcludedKeys))
	for _, k := range filter.ExcludedKeys {
		excluded[k] = true
	}
	out := make([]domain.Tag, 0, len(f.tags))
	for _, t := range f.tags {
		if !excluded[t.TagKey] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByKey(ctx context.Context, tagKey string) (domain.Tag, error) {
	for _, t := range f.tags {
		if t.TagKey == tagKey {
			return t, nil
		}
	}
	return domain.Tag{}, fmt.Errorf("tag %s not found", tagKey)
}

// fakeSessionRepo round-trips sessions through JSON, the same way the Redis
// store does, so non-serializable state would fail here too.
type fakeSessionRepo struct {
	data map[string][]byte
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{data: make(map[string][]byte)}
}

func (f *fakeSessionRepo) GetSession(ctx context.Context, id string) (*SessionState, error) {
	raw, ok := f.data[id]
	if !ok {
		return nil, nil
	}
	var s SessionState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fakeSessionRepo) SaveSession(ctx context.Context, s *SessionState, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	f.data[s.ID] = raw
	return nil
}

func (f *fakeSessionRepo) DeleteSession(ctx context.Context, id string) error {
	delete(f.data, id)
	return nil
}

type fakeEventRepo struct {
	events []domain.GameEvent
}

func (f *fakeEventRepo) SaveEvent(ctx context.Context, ev domain.GameEvent) error {
	f.events = append(f.events, ev)
	return nil
}

// ---- fixtures ----

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		works: []domain.Work{
			{ID: 1, Title: "Gundam", TitleInitial: "G", Author: "Tomino", Commentary: "A giant robot war story."},
			{ID: 2, Title: "Macross", TitleInitial: "M", Author: "Kawamori"},
			{ID: 3, Title: "Akira", TitleInitial: "A", Author: "Otomo"},
			{ID: 4, Title: "Slam Dunk", TitleInitial: "S", Author: "Inoue"},
		},
		tags: []domain.Tag{
			{TagKey: "cyberpunk", DisplayName: "Cyberpunk", TagType: domain.TagTypeOfficial, WorkCount: 1},
			{TagKey: "mecha", DisplayName: "Mecha", TagType: domain.TagTypeOfficial, WorkCount: 2},
			{TagKey: "sports", DisplayName: "Sports", TagType: domain.TagTypeOfficial, WorkCount: 1},
		},
		holders: map[string][]uint64{
			"cyberpunk": {3},
			"mecha":     {1, 2},
			"sports":    {4},
		},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CoverageMode = CoverageModeRatio
	cfg.MinCoverageRatio = 0.2
	cfg.MaxCoverageRatio = 0
	cfg.QForcedIndices = nil
	cfg.ConfidenceConfirmBand = [2]float64{0, 0} // confidence is never 0, so unreachable
	cfg.EffectiveConfirmThreshold = 0            // unreachable
	cfg.RevealConfidenceMin = 0.9
	cfg.RevealEffectiveMax = 1.2
	cfg.MaxQuestions = 20
	return cfg
}

func newTestService(cat *fakeCatalog, cfg Config) (*GameService, *fakeSessionRepo, *fakeEventRepo) {
	sessions := newFakeSessionRepo()
	events := &fakeEventRepo{}
	svc := NewGameService(cat, cat, sessions, events, nil, "default", cfg, func() float64 { return 0.0 })
	return svc, sessions, events
}

// truthfulAnswer answers every question as if the player is thinking of
// work 1 (Gundam).
func truthfulAnswer(q *domain.Question) Answer {
	switch QuestionKind(q.Kind) {
	case KindExploreTag:
		if q.TagKey == "mecha" {
			return AnswerYes
		}
		return AnswerNo
	case KindSoftConfirm:
		if strings.Contains(q.Payload, "giant robot") {
			return AnswerYes
		}
		return AnswerNo
	case KindHardConfirm:
		switch HardConfirmType(q.HardConfirmType) {
		case HardConfirmTitleInitial:
			if strings.Contains(q.Payload, "G") {
				return AnswerYes
			}
		case HardConfirmAuthor:
			if q.Payload == "Tomino" {
				return AnswerYes
			}
		}
		return AnswerNo
	}
	return AnswerUnknown
}

// ---- tests ----

func TestGame_FullRunConvergesToReveal(t *testing.T) {
	ctx := context.Background()
	svc, _, events := newTestService(testCatalog(), testConfig())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseGate, sess.Phase)
	assert.Len(t, sess.Weights, 4)

	res, err := svc.Begin(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Question)
	// 50/50 split beats the lopsided tags on the first round
	assert.Equal(t, "mecha", res.Question.TagKey)

	var guess *domain.Guess
	for round := 0; round < 20; round++ {
		res, err = svc.Answer(ctx, sess.ID, truthfulAnswer(res.Question))
		require.NoError(t, err)
		if res.Guess != nil {
			guess = res.Guess
			break
		}
		require.NotNil(t, res.Question, "round %d produced neither question nor guess", round)
	}

	require.NotNil(t, guess, "game never reached a reveal")
	assert.Equal(t, uint64(1), guess.WorkID)
	assert.Equal(t, "Gundam", guess.Title)
	assert.GreaterOrEqual(t, guess.Confidence, 0.9)
	assert.Equal(t, PhaseReveal, res.Session.Phase)
	assert.NotEmpty(t, events.events)

	// accepting the guess ends the game
	final, err := svc.ResolveReveal(ctx, sess.ID, true)
	require.NoError(t, err)
	assert.Equal(t, PhaseSuccess, final.Session.Phase)
}

func TestGame_RevealMissAppliesPenaltyAndExcludes(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	svc, _, _ := newTestService(testCatalog(), cfg)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	res, err := svc.Begin(ctx, sess.ID)
	require.NoError(t, err)
	for res.Guess == nil {
		res, err = svc.Answer(ctx, sess.ID, truthfulAnswer(res.Question))
		require.NoError(t, err)
	}
	guessedID := res.Guess.WorkID
	weightBefore := res.Session.Weights[guessedID]

	res, err = svc.ResolveReveal(ctx, sess.ID, false)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Session.RevealMissCount)
	assert.Contains(t, res.Session.RevealRejectedIDs, guessedID)
	assert.InDelta(t, weightBefore*cfg.RevealPenalty, res.Session.Weights[guessedID], 1e-9)
	// the quiz resumes (or re-reveals a different candidate)
	if res.Guess != nil {
		assert.NotEqual(t, guessedID, res.Guess.WorkID)
	} else {
		assert.Equal(t, PhaseQuiz, res.Session.Phase)
	}
}

func TestGame_MaxQuestionsDropsToFailList(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxQuestions = 1
	svc, _, _ := newTestService(testCatalog(), cfg)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	res, err := svc.Begin(ctx, sess.ID)
	require.NoError(t, err)

	res, err = svc.Answer(ctx, sess.ID, AnswerUnknown)
	require.NoError(t, err)

	assert.Equal(t, PhaseFailList, res.Session.Phase)
	require.NotEmpty(t, res.FailList)

	// probabilities descend down the list
	for i := 1; i < len(res.FailList); i++ {
		assert.GreaterOrEqual(t, res.FailList[i-1].Probability, res.FailList[i].Probability)
	}

	found := res.FailList[0].WorkID
	final, err := svc.ResolveFailList(ctx, sess.ID, &found)
	require.NoError(t, err)
	assert.Equal(t, PhaseAlmostSuccess, final.Session.Phase)
}

func TestGame_FailListMissEndsNotInList(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxQuestions = 1
	svc, _, _ := newTestService(testCatalog(), cfg)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Begin(ctx, sess.ID)
	require.NoError(t, err)
	_, err = svc.Answer(ctx, sess.ID, AnswerUnknown)
	require.NoError(t, err)

	final, err := svc.ResolveFailList(ctx, sess.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, PhaseNotInList, final.Session.Phase)
}

func TestGame_BackRestoresPreviousQuestion(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testCatalog(), testConfig())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	res, err := svc.Begin(ctx, sess.ID)
	require.NoError(t, err)
	firstTag := res.Question.TagKey

	res, err = svc.Answer(ctx, sess.ID, AnswerYes)
	require.NoError(t, err)
	require.NotNil(t, res.Question)

	res, err = svc.Back(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Question)
	assert.Equal(t, firstTag, res.Question.TagKey)
	assert.Equal(t, 0, res.Session.QuestionCount)

	// weights are back to the seed distribution
	for _, w := range res.Session.Weights {
		assert.InDelta(t, 1.0, w, 1e-9)
	}
}

func TestGame_BackPastFirstQuestionReturnsToGate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testCatalog(), testConfig())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Begin(ctx, sess.ID)
	require.NoError(t, err)

	res, err := svc.Back(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, PhaseGate, res.Session.Phase)
	assert.Nil(t, res.Question)

	// Begin works again after the deep rollback
	res, err = svc.Begin(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Question)
}

func TestGame_UnknownSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testCatalog(), testConfig())

	_, err := svc.Answer(ctx, "no-such-session", AnswerYes)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Back(ctx, "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGame_RejectsUnknownAnswer(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testCatalog(), testConfig())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Begin(ctx, sess.ID)
	require.NoError(t, err)

	_, err = svc.Answer(ctx, sess.ID, Answer("MAYBE"))
	assert.Error(t, err)
}

func TestConfidenceExcluding_DistinguishesAllExcludedFromZeroMass(t *testing.T) {
	probs := ProbabilityVector{1: 0.6, 2: 0.4}

	id, p, ok := confidenceExcluding(probs, map[uint64]bool{2: true})
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)
	assert.InDelta(t, 0.6, p, 1e-9)

	// every candidate rejected must be reported, not mistaken for a result
	_, _, ok = confidenceExcluding(probs, map[uint64]bool{1: true, 2: true})
	assert.False(t, ok)

	// a zero-probability survivor is still a valid pick
	id, p, ok = confidenceExcluding(ProbabilityVector{1: 1.0, 2: 0.0}, map[uint64]bool{1: true})
	assert.True(t, ok)
	assert.Equal(t, uint64(2), id)
	assert.Zero(t, p)
}

func TestDebugState_ReportsDistributionAndTagScores(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testCatalog(), testConfig())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Begin(ctx, sess.ID)
	require.NoError(t, err)

	dbg, err := svc.DebugState(ctx, sess.ID)
	require.NoError(t, err)

	assert.Equal(t, sess.ID, dbg.SessionID)
	assert.InDelta(t, 4.0, dbg.EffectiveCandidates, 1e-9)
	assert.Len(t, dbg.TopCandidates, 4)
	assert.Len(t, dbg.TagScores, 3)
}
