package router

import (
	"workOracle/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetGameRoutes(api *echo.Group, handler *rest.GameHandler) {
	game := api.Group("/game/sessions")

	game.POST("", handler.Start)
	game.POST("/:id/begin", handler.Begin)
	game.POST("/:id/answer", handler.Answer)
	game.POST("/:id/back", handler.Back)
	game.POST("/:id/reveal", handler.ResolveReveal)
	game.GET("/:id/fail-list", handler.FailList)
	game.POST("/:id/fail-list", handler.ResolveFailList)
}

func SetCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler) {
	catalog := api.Group("/catalog")

	catalog.GET("/works", handler.GetAllWorks)
	catalog.GET("/works/:id", handler.GetWorkByID)
	catalog.GET("/tags", handler.GetAllTags)
	catalog.GET("/tags/:key", handler.GetTagByKey)
	catalog.GET("/stats", handler.GetStats)

	api.PUT("/admin/catalog/works", handler.UpsertWorks)
}

func SetEngineAdminRoutes(api *echo.Group, handler *rest.EngineAdminHandler) {
	admin := api.Group("/admin/engine")

	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
	admin.GET("/sessions/:id/debug", handler.DebugSession)
	admin.GET("/sessions/:id/events", handler.SessionEvents)
}
