package rest

import (
	"context"
	"net/http"
	"strconv"
	"workOracle/business/engine"
	"workOracle/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

// WorkCatalogRepository is the engine's work repo plus the catalog-surface
// extras (stats and bulk seeding).
type WorkCatalogRepository interface {
	engine.WorkRepository
	CommentaryCount(ctx context.Context) (int, error)
	UpsertWorks(ctx context.Context, works []domain.Work) error
}

// CatalogHandler serves the work and tag catalog.
type CatalogHandler struct {
	workRepo WorkCatalogRepository
	tagRepo  engine.TagRepository
}

func NewCatalogHandler(workRepo WorkCatalogRepository, tagRepo engine.TagRepository) *CatalogHandler {
	return &CatalogHandler{
		workRepo: workRepo,
		tagRepo:  tagRepo,
	}
}

// GET /api/v1/catalog/works
func (h *CatalogHandler) GetAllWorks(c echo.Context) error {
	works, err := h.workRepo.FindAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(works))
}

// GET /api/v1/catalog/works/:id
func (h *CatalogHandler) GetWorkByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid work id"})
	}

	work, err := h.workRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(work))
}

// GET /api/v1/catalog/tags?type=OFFICIAL&min_works=5
func (h *CatalogHandler) GetAllTags(c echo.Context) error {
	filter := domain.TagFilter{}

	if t := c.QueryParam("type"); t != "" {
		filter.Types = []domain.TagType{domain.TagType(t)}
	}
	if v := c.QueryParam("min_works"); v != "" {
		minWorks, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid min_works"})
		}
		filter.MinWorkCount = minWorks
	}

	tags, err := h.tagRepo.ListCandidateTags(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tags))
}

// GET /api/v1/catalog/tags/:key
func (h *CatalogHandler) GetTagByKey(c echo.Context) error {
	tag, err := h.tagRepo.FindByKey(c.Request().Context(), c.Param("key"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tag))
}

// GET /api/v1/catalog/stats
func (h *CatalogHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.workRepo.TotalCount(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	withCommentary, err := h.workRepo.CommentaryCount(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	tags, err := h.tagRepo.ListCandidateTags(ctx, domain.TagFilter{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(echo.Map{
		"total_works":           total,
		"works_with_commentary": withCommentary,
		"total_tags":            len(tags),
	}))
}

// PUT /api/v1/admin/catalog/works
// body: array of works, upserted by id
func (h *CatalogHandler) UpsertWorks(c echo.Context) error {
	var works []domain.Work
	if err := c.Bind(&works); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if len(works) == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "empty work list"})
	}

	if err := h.workRepo.UpsertWorks(c.Request().Context(), works); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(len(works)))
}
