package router

import (
	"github.com/labstack/echo/v4"

	"idstore/internal/adapter/api/handler"
	"idstore/internal/adapter/api/middleware"
)

func SetupCatalogRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	catalogHandler := handler.GetCatalogHandler()

	listings := e.Group("/v1/listings")
	listings.GET("", catalogHandler.ListListings)
	listings.GET("/:id", catalogHandler.GetListing)
	listings.GET("/:id/contact", catalogHandler.ContactListing, rateLimitMiddleware.Limit("contact"))
}
