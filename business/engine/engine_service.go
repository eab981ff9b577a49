package engine

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"workOracle/domain"
	"workOracle/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const sessionLockStripes = 64

// ---- Repository interfaces ----

type WorkRepository interface {
	FindAll(ctx context.Context) ([]domain.Work, error)
	FindByID(ctx context.Context, id uint64) (domain.Work, error)
	TotalCount(ctx context.Context) (int, error)
	WorkIDsWithTag(ctx context.Context, tagKey string) ([]uint64, error)
}

type TagRepository interface {
	ListCandidateTags(ctx context.Context, filter domain.TagFilter) ([]domain.Tag, error)
	FindByKey(ctx context.Context, tagKey string) (domain.Tag, error)
}

// SessionRepository is a durable key-value store with read-modify-write,
// last-writer-wins semantics per session.
type SessionRepository interface {
	GetSession(ctx context.Context, id string) (*SessionState, error)
	SaveSession(ctx context.Context, s *SessionState, ttl time.Duration) error
	DeleteSession(ctx context.Context, id string) error
}

type EventRepository interface {
	SaveEvent(ctx context.Context, ev domain.GameEvent) error
}

// RoundResult is the outcome of one engine step. Exactly one of Question,
// Guess, or FailList is set while the session is live; none on a terminal
// or gate phase.
type RoundResult struct {
	Session  *SessionState          `json:"session"`
	Question *domain.Question       `json:"question,omitempty"`
	Guess    *domain.Guess          `json:"guess,omitempty"`
	FailList []domain.FailListEntry `json:"fail_list,omitempty"`
}

// ---- Usecase / Service ----

type GameService struct {
	workRepo    WorkRepository
	tagRepo     TagRepository
	sessionRepo SessionRepository
	eventRepo   EventRepository
	cfgRepo     ConfigRepository
	cfgName     string
	defaultCfg  Config

	// injectable random source for the 50/50 confirm-type fallback
	randFloat func() float64

	locks [sessionLockStripes]sync.Mutex
}

func NewGameService(
	workRepo WorkRepository,
	tagRepo TagRepository,
	sessionRepo SessionRepository,
	eventRepo EventRepository,
	cfgRepo ConfigRepository,
	cfgName string,
	defaultCfg Config,
	randFloat func() float64,
) *GameService {
	if randFloat == nil {
		randFloat = rand.Float64
	}
	return &GameService{
		workRepo:    workRepo,
		tagRepo:     tagRepo,
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		cfgRepo:     cfgRepo,
		cfgName:     cfgName,
		defaultCfg:  defaultCfg,
		randFloat:   randFloat,
	}
}

// lockSession serializes rounds of one session. Two rounds of the same
// session must never be evaluated concurrently.
func (s *GameService) lockSession(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	m := &s.locks[h.Sum32()%sessionLockStripes]
	m.Lock()
	return m.Unlock
}

func (s *GameService) loadSession(ctx context.Context, id string) (*SessionState, error) {
	sess, err := s.sessionRepo.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *GameService) saveSession(ctx context.Context, sess *SessionState, cfg Config) error {
	sess.UpdatedAt = time.Now()
	if err := s.sessionRepo.SaveSession(ctx, sess, cfg.SessionTTL); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Start creates a new session in the gate phase, weights seeded from
// catalog popularity (or uniformly when disabled or unset).
func (s *GameService) Start(ctx context.Context) (*SessionState, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cfg := s.loadConfig(ctx)

	works, err := s.workRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load works: %w", err)
	}
	if len(works) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	weights := make(WeightVector, len(works))
	for _, w := range works {
		weight := 1.0
		if cfg.SeedByPopularity && w.Popularity > 0 {
			weight = w.Popularity
		}
		weights[w.ID] = weight
	}

	now := time.Now()
	sess := &SessionState{
		ID:        uuid.NewString(),
		Phase:     PhaseGate,
		Weights:   weights,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.saveSession(ctx, sess, cfg); err != nil {
		return nil, err
	}

	logger.Info("game_started",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", sess.ID,
		"candidates", len(works),
	)

	return sess, nil
}

// Begin leaves the gate phase and emits the first question. Calling it again
// while a question is pending just re-emits that question.
func (s *GameService) Begin(ctx context.Context, sessionID string) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cfg := s.loadConfig(ctx)

	if sess.Phase == PhaseQuiz && sess.PendingQuestion != nil {
		q, err := s.buildQuestion(ctx, sess, cfg, *sess.PendingQuestion)
		if err != nil {
			return nil, err
		}
		return &RoundResult{Session: sess, Question: q}, nil
	}
	if sess.Phase != PhaseGate {
		return nil, fmt.Errorf("cannot begin in phase %s", sess.Phase)
	}

	sess.Phase = PhaseQuiz

	q, guess, err := s.nextQuestion(ctx, sess, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, sess, cfg); err != nil {
		return nil, err
	}

	return &RoundResult{Session: sess, Question: q, Guess: guess}, nil
}

// Answer applies the player's reply to the pending question, then either
// emits the next question, commits to a reveal, or drops into the fail list.
func (s *GameService) Answer(ctx context.Context, sessionID string, answer Answer) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if !ValidAnswer(answer) {
		return nil, fmt.Errorf("unknown answer: %s", answer)
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Phase != PhaseQuiz || sess.PendingQuestion == nil {
		return nil, fmt.Errorf("no pending question in phase %s", sess.Phase)
	}

	cfg := s.loadConfig(ctx)
	q := *sess.PendingQuestion

	holders, err := s.featureHolders(ctx, sess, cfg, q)
	if err != nil {
		return nil, err
	}

	switch q.Kind {
	case KindSoftConfirm:
		strength := answerStrength(answer) * cfg.SoftConfirmStrength
		sess.Weights = ApplyStrength(sess.Weights, holders, cfg.Beta, strength)
	default:
		sess.Weights = ApplyAnswer(sess.Weights, holders, answer, cfg.Epsilon)
	}

	if answer.IsNegative() {
		sess.ConsecutiveNo++
	} else if answer.IsPositive() {
		sess.ConsecutiveNo = 0
	}

	sess.PendingQuestion = nil
	sess.QuestionCount++

	s.logEvent(ctx, sess, q, string(answer))
	AnswerEventsTotal.WithLabelValues(string(q.Kind), string(answer)).Inc()

	probs := Normalize(sess.Weights)
	_, conf := Confidence(probs)
	eff := EffectiveCandidates(probs)

	logger.Debug("engine_answer",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", sess.ID,
		"q_index", q.QIndex,
		"kind", q.Kind,
		"answer", answer,
		"confidence", conf,
		"effective_candidates", eff,
	)

	result := &RoundResult{Session: sess}

	switch {
	case conf >= cfg.RevealConfidenceMin || eff <= cfg.RevealEffectiveMax:
		guess, err := s.enterReveal(ctx, sess, probs)
		if err != nil {
			return nil, err
		}
		result.Guess = guess
	case sess.QuestionCount >= cfg.MaxQuestions:
		list, err := s.enterFailList(ctx, sess, cfg)
		if err != nil {
			return nil, err
		}
		result.FailList = list
	default:
		question, guess, err := s.nextQuestion(ctx, sess, cfg)
		if err != nil {
			return nil, err
		}
		result.Question = question
		result.Guess = guess
	}

	if err := s.saveSession(ctx, sess, cfg); err != nil {
		return nil, err
	}

	return result, nil
}

// Back rolls the session back one question: the previous snapshot is
// restored and that question re-emitted. Rolling back past the first
// question returns to the gate phase.
func (s *GameService) Back(ctx context.Context, sessionID string) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Phase != PhaseQuiz || sess.PendingQuestion == nil {
		return nil, fmt.Errorf("cannot go back in phase %s", sess.Phase)
	}

	cfg := s.loadConfig(ctx)
	sess.Rollback()

	result := &RoundResult{Session: sess}
	if sess.Phase == PhaseQuiz && sess.PendingQuestion != nil {
		q, err := s.buildQuestion(ctx, sess, cfg, *sess.PendingQuestion)
		if err != nil {
			return nil, err
		}
		result.Question = q
	}

	if err := s.saveSession(ctx, sess, cfg); err != nil {
		return nil, err
	}

	return result, nil
}

// ResolveReveal records the player's verdict on the engine's guess. A miss
// applies the one-shot penalty to the guessed work, excludes it from later
// fail lists, and either resumes the quiz or gives up into the fail list.
func (s *GameService) ResolveReveal(ctx context.Context, sessionID string, accepted bool) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Phase != PhaseReveal {
		return nil, fmt.Errorf("no reveal pending in phase %s", sess.Phase)
	}

	cfg := s.loadConfig(ctx)

	if accepted {
		sess.Phase = PhaseSuccess
		SessionOutcomesTotal.WithLabelValues(string(PhaseSuccess)).Inc()
		s.logEvent(ctx, sess, QuestionCandidate{QIndex: sess.QuestionCount}, "REVEAL_ACCEPTED")
		if err := s.saveSession(ctx, sess, cfg); err != nil {
			return nil, err
		}
		return &RoundResult{Session: sess}, nil
	}

	sess.Weights[sess.RevealWorkID] *= cfg.RevealPenalty
	sess.RejectWork(sess.RevealWorkID)
	sess.RevealMissCount++
	s.logEvent(ctx, sess, QuestionCandidate{QIndex: sess.QuestionCount}, "REVEAL_REJECTED")

	result := &RoundResult{Session: sess}

	if sess.RevealMissCount > cfg.MaxRevealMisses {
		list, err := s.enterFailList(ctx, sess, cfg)
		if err != nil {
			return nil, err
		}
		result.FailList = list
	} else {
		sess.Phase = PhaseQuiz
		question, guess, err := s.nextQuestion(ctx, sess, cfg)
		if err != nil {
			return nil, err
		}
		result.Question = question
		result.Guess = guess
	}

	if err := s.saveSession(ctx, sess, cfg); err != nil {
		return nil, err
	}

	return result, nil
}

// FailList re-reads the last-chance candidate list for a session already in
// the fail-list phase.
func (s *GameService) FailList(ctx context.Context, sessionID string) ([]domain.FailListEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Phase != PhaseFailList {
		return nil, fmt.Errorf("no fail list in phase %s", sess.Phase)
	}

	cfg := s.loadConfig(ctx)
	return s.failListEntries(ctx, sess, cfg)
}

// ResolveFailList ends the session: the player either found their work in
// the list (almost a win) or it was not there at all.
func (s *GameService) ResolveFailList(ctx context.Context, sessionID string, foundWorkID *uint64) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Phase != PhaseFailList {
		return nil, fmt.Errorf("no fail list in phase %s", sess.Phase)
	}

	cfg := s.loadConfig(ctx)

	if foundWorkID != nil {
		sess.Phase = PhaseAlmostSuccess
		s.logEvent(ctx, sess, QuestionCandidate{QIndex: sess.QuestionCount}, "FAIL_LIST_FOUND")
	} else {
		sess.Phase = PhaseNotInList
		s.logEvent(ctx, sess, QuestionCandidate{QIndex: sess.QuestionCount}, "FAIL_LIST_MISS")
	}
	SessionOutcomesTotal.WithLabelValues(string(sess.Phase)).Inc()

	if err := s.saveSession(ctx, sess, cfg); err != nil {
		return nil, err
	}

	return &RoundResult{Session: sess}, nil
}

// ---- Round internals ----

// nextQuestion runs the per-round selector state machine: confirm-insertion
// check, explore-tag selection with confirmation fallback, and the
// soft/hard confirm choice. When every confirmation variant is spent and no
// soft content exists, it forces a reveal instead.
func (s *GameService) nextQuestion(ctx context.Context, sess *SessionState, cfg Config) (*domain.Question, *domain.Guess, error) {
	probs := Normalize(sess.Weights)
	topID, conf := Confidence(probs)
	eff := EffectiveCandidates(probs)

	confirm := ShouldInsertConfirm(sess.QuestionCount, conf, eff, cfg)

	if !confirm {
		cands, err := s.exploreCandidates(ctx, sess, cfg, probs)
		if err != nil {
			return nil, nil, err
		}

		preferHighP := cfg.ConsecutiveNoForAtari > 0 && sess.ConsecutiveNo >= cfg.ConsecutiveNoForAtari

		pick, selErr := SelectExploreTag(cands, preferHighP, cfg.PValueBand)
		switch selErr {
		case nil:
			qc := QuestionCandidate{QIndex: sess.QuestionCount, Kind: KindExploreTag, TagKey: pick.TagKey}
			sess.PushQuestion(qc)
			q, err := s.buildQuestion(ctx, sess, cfg, qc)
			if err != nil {
				return nil, nil, err
			}
			return q, nil, nil
		case ErrNoCandidate:
			// nothing left worth exploring, fall back to a confirmation
			confirm = true
		default:
			return nil, nil, selErr
		}
	}

	leader, err := s.workRepo.FindByID(ctx, topID)
	if err != nil {
		return nil, nil, fmt.Errorf("load leading candidate: %w", err)
	}

	kind := SelectConfirmKind(conf, leader.HasCommentary(), cfg, s.randFloat)

	qc := QuestionCandidate{QIndex: sess.QuestionCount, Kind: kind}
	if kind == KindHardConfirm {
		next := NextHardConfirmType(sess.UsedHardConfirmTypes)
		if next == "" {
			if leader.HasCommentary() {
				qc.Kind = KindSoftConfirm
			} else {
				// out of confirmation material; commit to a guess
				guess, err := s.enterReveal(ctx, sess, probs)
				if err != nil {
					return nil, nil, err
				}
				return nil, guess, nil
			}
		} else {
			qc.HardConfirmType = next
			sess.MarkHardConfirmUsed(next)
		}
	}

	sess.PushQuestion(qc)
	q, err := s.buildQuestion(ctx, sess, cfg, qc)
	if err != nil {
		return nil, nil, err
	}
	return q, nil, nil
}

// exploreCandidates lists coverage-gate-passing tags with their probability
// mass coverage, excluding tags this session already asked about.
func (s *GameService) exploreCandidates(ctx context.Context, sess *SessionState, cfg Config, probs ProbabilityVector) ([]ExploreCandidate, error) {
	total, err := s.workRepo.TotalCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count works: %w", err)
	}

	tags, err := s.tagRepo.ListCandidateTags(ctx, domain.TagFilter{ExcludedKeys: sess.AskedTagKeys()})
	if err != nil {
		return nil, fmt.Errorf("list candidate tags: %w", err)
	}

	cands := make([]ExploreCandidate, 0, len(tags))
	for _, tag := range tags {
		if !PassesCoverageGate(tag.WorkCount, total, cfg.CoverageMode, cfg.MinCoverageRatio, cfg.MinCoverageWorks, cfg.MaxCoverageRatio) {
			continue
		}

		ids, err := s.workRepo.WorkIDsWithTag(ctx, tag.TagKey)
		if err != nil {
			return nil, fmt.Errorf("load tag holders: %w", err)
		}
		holders := idSet(ids)

		cands = append(cands, ExploreCandidate{
			TagKey:   tag.TagKey,
			Coverage: TagCoverage(probs, holders),
		})
	}

	return cands, nil
}

// featureHolders resolves the binary feature of the pending question into
// the set of candidate works carrying it.
func (s *GameService) featureHolders(ctx context.Context, sess *SessionState, cfg Config, q QuestionCandidate) (map[uint64]bool, error) {
	probs := Normalize(sess.Weights)
	topID, _ := Confidence(probs)

	switch q.Kind {
	case KindExploreTag:
		ids, err := s.workRepo.WorkIDsWithTag(ctx, q.TagKey)
		if err != nil {
			return nil, fmt.Errorf("load tag holders: %w", err)
		}
		return idSet(ids), nil

	case KindSoftConfirm:
		return map[uint64]bool{topID: true}, nil

	case KindHardConfirm:
		works, err := s.workRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load works: %w", err)
		}

		holders := make(map[uint64]bool)
		switch q.HardConfirmType {
		case HardConfirmTitleInitial:
			initials := topInitials(probs, works, cfg.TitleInitialTopN)
			for _, w := range works {
				if initials[w.TitleInitial] {
					holders[w.ID] = true
				}
			}
		case HardConfirmAuthor:
			var leaderAuthor string
			for _, w := range works {
				if w.ID == topID {
					leaderAuthor = w.Author
					break
				}
			}
			for _, w := range works {
				if w.Author != "" && w.Author == leaderAuthor {
					holders[w.ID] = true
				}
			}
		}
		return holders, nil
	}

	return nil, fmt.Errorf("unknown question kind: %s", q.Kind)
}

// buildQuestion renders a QuestionCandidate into its player-facing form.
// Question text is a display-string lookup, not generation.
func (s *GameService) buildQuestion(ctx context.Context, sess *SessionState, cfg Config, qc QuestionCandidate) (*domain.Question, error) {
	probs := Normalize(sess.Weights)
	topID, _ := Confidence(probs)

	q := &domain.Question{
		QIndex:          qc.QIndex,
		Kind:            string(qc.Kind),
		TagKey:          qc.TagKey,
		HardConfirmType: string(qc.HardConfirmType),
	}

	switch qc.Kind {
	case KindExploreTag:
		tag, err := s.tagRepo.FindByKey(ctx, qc.TagKey)
		if err != nil {
			return nil, fmt.Errorf("load tag: %w", err)
		}
		q.Text = fmt.Sprintf("Does your work have %q?", tag.DisplayName)

	case KindSoftConfirm:
		leader, err := s.workRepo.FindByID(ctx, topID)
		if err != nil {
			return nil, fmt.Errorf("load leading candidate: %w", err)
		}
		q.Payload = snippet(leader.Commentary, 200)
		q.Text = "Does this commentary sound like your work?"

	case KindHardConfirm:
		switch qc.HardConfirmType {
		case HardConfirmTitleInitial:
			works, err := s.workRepo.FindAll(ctx)
			if err != nil {
				return nil, fmt.Errorf("load works: %w", err)
			}
			initials := topInitials(probs, works, cfg.TitleInitialTopN)
			keys := make([]string, 0, len(initials))
			for k := range initials {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			q.Payload = strings.Join(keys, ", ")
			q.Text = fmt.Sprintf("Does the title start with one of: %s?", q.Payload)
		case HardConfirmAuthor:
			leader, err := s.workRepo.FindByID(ctx, topID)
			if err != nil {
				return nil, fmt.Errorf("load leading candidate: %w", err)
			}
			q.Payload = leader.Author
			q.Text = fmt.Sprintf("Is it by %s?", leader.Author)
		}
	}

	return q, nil
}

// enterReveal commits the engine to naming its best non-rejected candidate.
func (s *GameService) enterReveal(ctx context.Context, sess *SessionState, probs ProbabilityVector) (*domain.Guess, error) {
	topID, conf, ok := confidenceExcluding(probs, sess.RejectedSet())
	if !ok {
		// every candidate already rejected; fall back to the overall top
		topID, conf = Confidence(probs)
	}

	work, err := s.workRepo.FindByID(ctx, topID)
	if err != nil {
		return nil, fmt.Errorf("load guess work: %w", err)
	}

	sess.Phase = PhaseReveal
	sess.RevealWorkID = topID

	logger.Info("engine_reveal",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", sess.ID,
		"work_id", topID,
		"confidence", conf,
	)

	return &domain.Guess{
		WorkID:     work.ID,
		Title:      work.Title,
		Author:     work.Author,
		Confidence: conf,
	}, nil
}

// enterFailList moves the session into its last-chance phase.
func (s *GameService) enterFailList(ctx context.Context, sess *SessionState, cfg Config) ([]domain.FailListEntry, error) {
	sess.Phase = PhaseFailList
	return s.failListEntries(ctx, sess, cfg)
}

func (s *GameService) failListEntries(ctx context.Context, sess *SessionState, cfg Config) ([]domain.FailListEntry, error) {
	works, err := s.workRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load works: %w", err)
	}
	byID := make(map[uint64]domain.Work, len(works))
	for _, w := range works {
		byID[w.ID] = w
	}

	probs := Normalize(sess.Weights)
	rejected := sess.RejectedSet()

	ids := sortedIDs(probs)
	sort.SliceStable(ids, func(i, j int) bool {
		return probs[ids[i]] > probs[ids[j]]
	})

	out := make([]domain.FailListEntry, 0, cfg.FailListSize)
	for _, id := range ids {
		if rejected[id] {
			continue
		}
		w, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, domain.FailListEntry{
			WorkID:      id,
			Title:       w.Title,
			Author:      w.Author,
			Probability: probs[id],
		})
		if len(out) >= cfg.FailListSize {
			break
		}
	}

	return out, nil
}

func (s *GameService) logEvent(ctx context.Context, sess *SessionState, q QuestionCandidate, answer string) {
	if s.eventRepo == nil {
		return
	}
	ev := domain.GameEvent{
		SessionID: sess.ID,
		QIndex:    q.QIndex,
		Kind:      string(q.Kind),
		TagKey:    q.TagKey,
		Answer:    answer,
		Phase:     string(sess.Phase),
		Context: datatypes.JSONMap{
			"trace_id":          TraceIDFromContext(ctx),
			"question_count":    sess.QuestionCount,
			"reveal_miss_count": sess.RevealMissCount,
		},
	}
	// audit log only; a failed insert must not break the round
	if err := s.eventRepo.SaveEvent(ctx, ev); err != nil {
		logger.Error("failed to save game event", "session_id", sess.ID, "error", err)
	}
}

// ---- helpers ----

func idSet(ids []uint64) map[uint64]bool {
	out := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// confidenceExcluding is Confidence restricted to non-excluded candidates.
// ok is false when every candidate is excluded.
func confidenceExcluding(probs ProbabilityVector, excluded map[uint64]bool) (topID uint64, top float64, ok bool) {
	for _, id := range sortedIDs(probs) {
		if excluded[id] {
			continue
		}
		if !ok || probs[id] > top {
			top = probs[id]
			topID = id
			ok = true
		}
	}
	return topID, top, ok
}

// topInitials collects the distinct title initials of the top-n candidates
// by probability, ties resolved by ascending work id.
func topInitials(probs ProbabilityVector, works []domain.Work, n int) map[string]bool {
	byID := make(map[uint64]domain.Work, len(works))
	for _, w := range works {
		byID[w.ID] = w
	}

	ids := sortedIDs(probs)
	sort.SliceStable(ids, func(i, j int) bool {
		return probs[ids[i]] > probs[ids[j]]
	})

	out := make(map[string]bool)
	for i := 0; i < len(ids) && i < n; i++ {
		if w, ok := byID[ids[i]]; ok && w.TitleInitial != "" {
			out[w.TitleInitial] = true
		}
	}
	return out
}

func snippet(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "…"
}

func answerStrength(a Answer) float64 {
	switch a {
	case AnswerYes:
		return 1
	case AnswerProbablyYes:
		return 0.5
	case AnswerProbablyNo:
		return -0.5
	case AnswerNo:
		return -1
	default:
		return 0
	}
}
