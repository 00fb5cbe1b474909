package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"idstore/internal/adapter/api/middleware"
	"idstore/pkg/response"
)

// DevSessionHandler issues the admin session flag in development, standing in
// for the external login surface. It is never routed in production.
type DevSessionHandler struct{}

var devSessionHandler *DevSessionHandler

func SetupDevSessionHandler() {
	devSessionHandler = &DevSessionHandler{}
}

func GetDevSessionHandler() *DevSessionHandler {
	return devSessionHandler
}

func (h *DevSessionHandler) CreateSession(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    middleware.SessionActive,
		Path:     "/",
		HttpOnly: true,
	})

	return response.Success(c, map[string]string{
		"message": "Admin session activated",
	})
}
