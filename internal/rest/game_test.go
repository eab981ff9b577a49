package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"workOracle/business/engine"
	"workOracle/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGameService struct {
	answerCalled bool
	gotAnswer    engine.Answer
	result       *engine.RoundResult
	err          error
}

func (s *stubGameService) Start(ctx context.Context) (*engine.SessionState, error) {
	return &engine.SessionState{ID: "s-1", Phase: engine.PhaseGate}, s.err
}

func (s *stubGameService) Begin(ctx context.Context, sessionID string) (*engine.RoundResult, error) {
	return s.result, s.err
}

func (s *stubGameService) Answer(ctx context.Context, sessionID string, answer engine.Answer) (*engine.RoundResult, error) {
	s.answerCalled = true
	s.gotAnswer = answer
	return s.result, s.err
}

func (s *stubGameService) Back(ctx context.Context, sessionID string) (*engine.RoundResult, error) {
	return s.result, s.err
}

func (s *stubGameService) ResolveReveal(ctx context.Context, sessionID string, accepted bool) (*engine.RoundResult, error) {
	return s.result, s.err
}

func (s *stubGameService) FailList(ctx context.Context, sessionID string) ([]domain.FailListEntry, error) {
	return nil, s.err
}

func (s *stubGameService) ResolveFailList(ctx context.Context, sessionID string, foundWorkID *uint64) (*engine.RoundResult, error) {
	return s.result, s.err
}

func TestGameHandler_Answer(t *testing.T) {
	svc := &stubGameService{
		result: &engine.RoundResult{
			Session:  &engine.SessionState{ID: "s-1", Phase: engine.PhaseQuiz},
			Question: &domain.Question{QIndex: 1, Kind: "EXPLORE_TAG", TagKey: "mecha"},
		},
	}
	h := NewGameHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"answer":"YES"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("s-1")

	require.NoError(t, h.Answer(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.answerCalled)
	assert.Equal(t, engine.AnswerYes, svc.gotAnswer)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, rec.Body.String(), "mecha")
}

func TestGameHandler_AnswerRejectsEmptyBody(t *testing.T) {
	h := NewGameHandler(&stubGameService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("s-1")

	require.NoError(t, h.Answer(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGameHandler_SessionNotFound(t *testing.T) {
	h := NewGameHandler(&stubGameService{err: engine.ErrSessionNotFound})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	require.NoError(t, h.Back(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
