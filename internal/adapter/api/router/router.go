package router

import (
	"github.com/labstack/echo/v4"

	"idstore/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupCatalogRouter(e, rateLimitMiddleware)
	SetupAdminRouter(e, adminMiddleware, rateLimitMiddleware)
	SetupHealthRouter(e)
}
