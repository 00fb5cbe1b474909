package router

import (
	"github.com/labstack/echo/v4"

	"idstore/internal/adapter/api/handler"
	"idstore/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(adminMiddleware.RequireSession)

	admin.POST("/listings", adminHandler.CreateListing, rateLimitMiddleware.Limit("submit"))
	admin.PUT("/listings/:id", adminHandler.UpdateListing, rateLimitMiddleware.Limit("submit"))
	admin.PATCH("/listings/:id/stock", adminHandler.SetStock)
	admin.DELETE("/listings/:id", adminHandler.DeleteListing)
	admin.POST("/logout", adminHandler.Logout)
}
