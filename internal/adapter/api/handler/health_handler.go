package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"idstore/internal/domain/repository"
)

type HealthHandler struct {
	listingRepo repository.ListingRepository
}

var healthHandler *HealthHandler

func NewHealthHandler(listingRepo repository.ListingRepository) *HealthHandler {
	return &HealthHandler{
		listingRepo: listingRepo,
	}
}

func SetupHealthHandler(listingRepo repository.ListingRepository) {
	healthHandler = NewHealthHandler(listingRepo)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckDatabaseHealth(c echo.Context) error {
	if _, err := h.listingRepo.List(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Database connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Database connected successfully",
	})
}
