package router

import (
	"github.com/labstack/echo/v4"

	"idstore/internal/adapter/api/handler"
	"idstore/internal/adapter/api/middleware"
)

func SetupWebSocketRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	wsHandler := handler.GetWebSocketHandler()
	e.GET("/v1/ws", wsHandler.HandleWebSocket, rateLimitMiddleware.Limit("connect"))
}
