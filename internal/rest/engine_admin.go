package rest

import (
	"context"
	"errors"
	"net/http"
	"workOracle/business/engine"
	"workOracle/domain"

	"github.com/labstack/echo/v4"
)

type (
	EngineAdminHandler struct {
		cfgRepo      engine.ConfigRepository
		debugService DebugService
		eventReader  EventReader
	}

	DebugService interface {
		DebugState(ctx context.Context, sessionID string) (*domain.DebugState, error)
	}

	EventReader interface {
		FindBySession(ctx context.Context, sessionID string) ([]domain.GameEvent, error)
	}
)

func NewEngineAdminHandler(
	cfgRepo engine.ConfigRepository,
	debugService DebugService,
	eventReader EventReader,
) *EngineAdminHandler {
	return &EngineAdminHandler{
		cfgRepo:      cfgRepo,
		debugService: debugService,
		eventReader:  eventReader,
	}
}

// GET /api/v1/admin/engine/config?name=default
func (h *EngineAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.QueryParam("name")

	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	cfg, ok, err := h.cfgRepo.GetConfig(ctx, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "config not found",
		})
	}

	return c.JSON(http.StatusOK, cfg)
}

// PUT /api/v1/admin/engine/config
// body: EngineConfigRecord JSON
func (h *EngineAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body domain.EngineConfigRecord
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	if err := h.cfgRepo.UpsertConfig(ctx, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}

// GET /api/v1/admin/engine/sessions/:id/debug
func (h *EngineAdminHandler) DebugSession(c echo.Context) error {
	state, err := h.debugService.DebugState(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, engine.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "session not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, state)
}

// GET /api/v1/admin/engine/sessions/:id/events
func (h *EngineAdminHandler) SessionEvents(c echo.Context) error {
	events, err := h.eventReader.FindBySession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, events)
}
