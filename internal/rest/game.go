package rest

import (
	"context"
	"errors"
	"net/http"
	"time"
	"workOracle/business/engine"
	"workOracle/domain"
	"workOracle/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

type (
	GameHandler struct {
		validate    *validator.Validate
		gameService GameService
	}

	GameService interface {
		Start(ctx context.Context) (*engine.SessionState, error)
		Begin(ctx context.Context, sessionID string) (*engine.RoundResult, error)
		Answer(ctx context.Context, sessionID string, answer engine.Answer) (*engine.RoundResult, error)
		Back(ctx context.Context, sessionID string) (*engine.RoundResult, error)
		ResolveReveal(ctx context.Context, sessionID string, accepted bool) (*engine.RoundResult, error)
		FailList(ctx context.Context, sessionID string) ([]domain.FailListEntry, error)
		ResolveFailList(ctx context.Context, sessionID string, foundWorkID *uint64) (*engine.RoundResult, error)
	}

	AnswerRequest struct {
		Answer string `json:"answer" validate:"required"`
	}

	RevealRequest struct {
		Accepted bool `json:"accepted"`
	}

	FailListResolveRequest struct {
		FoundWorkID *uint64 `json:"found_work_id"`
	}
)

func NewGameHandler(svc GameService) *GameHandler {
	return &GameHandler{
		validate:    validator.New(),
		gameService: svc,
	}
}

// POST /api/v1/game/sessions
func (h *GameHandler) Start(c echo.Context) error {
	sess, err := h.gameService.Start(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.GameSessionsStarted.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(sess))
}

// POST /api/v1/game/sessions/:id/begin
func (h *GameHandler) Begin(c echo.Context) error {
	res, err := h.gameService.Begin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.roundError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

// POST /api/v1/game/sessions/:id/answer
func (h *GameHandler) Answer(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.GameRoundLatency.Observe(time.Since(start).Seconds())
	}()

	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	res, err := h.gameService.Answer(c.Request().Context(), c.Param("id"), engine.Answer(req.Answer))
	if err != nil {
		return h.roundError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

// POST /api/v1/game/sessions/:id/back
func (h *GameHandler) Back(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.GameRoundLatency.Observe(time.Since(start).Seconds())
	}()

	res, err := h.gameService.Back(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.roundError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

// POST /api/v1/game/sessions/:id/reveal
func (h *GameHandler) ResolveReveal(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.GameRoundLatency.Observe(time.Since(start).Seconds())
	}()

	var req RevealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	res, err := h.gameService.ResolveReveal(c.Request().Context(), c.Param("id"), req.Accepted)
	if err != nil {
		return h.roundError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

// GET /api/v1/game/sessions/:id/fail-list
func (h *GameHandler) FailList(c echo.Context) error {
	entries, err := h.gameService.FailList(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.roundError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(entries))
}

// POST /api/v1/game/sessions/:id/fail-list
func (h *GameHandler) ResolveFailList(c echo.Context) error {
	var req FailListResolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	res, err := h.gameService.ResolveFailList(c.Request().Context(), c.Param("id"), req.FoundWorkID)
	if err != nil {
		return h.roundError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

func (h *GameHandler) roundError(c echo.Context, err error) error {
	if errors.Is(err, engine.ErrSessionNotFound) {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "session not found"})
	}

	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}
