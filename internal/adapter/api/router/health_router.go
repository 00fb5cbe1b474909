package router

import (
	"github.com/labstack/echo/v4"

	"idstore/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/database-health", healthHandler.CheckDatabaseHealth)
}
