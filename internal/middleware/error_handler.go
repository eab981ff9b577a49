package middleware

import (
	"net/http"
	"workOracle/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: uncaught errors become a JSON
// body and a warn log instead of echo's default HTML page.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	logger.Warn("Request failed", "method", c.Request().Method, "path", c.Path(), "status", code, "error", err)

	if jsonErr := c.JSON(code, echo.Map{"error": message}); jsonErr != nil {
		logger.Error("Failed to write error response", "error", jsonErr)
	}
}
