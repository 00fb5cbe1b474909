package router

import (
	"github.com/labstack/echo/v4"

	"idstore/internal/adapter/api/handler"
)

func SetupDevRouter(e *echo.Echo, environment string) {
	if environment != "development" {
		return
	}
	devSessionHandler := handler.GetDevSessionHandler()

	e.POST("/_dev/session", devSessionHandler.CreateSession)
}
