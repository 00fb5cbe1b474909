package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"idstore/internal/adapter/api/middleware"
	"idstore/internal/usecase"
	"idstore/pkg/errors"
	"idstore/pkg/response"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type listingFormRequest struct {
	Title       string `form:"title" validate:"required"`
	Price       string `form:"price" validate:"required"`
	ShortDesc   string `form:"shortDesc"`
	PlayerInfo  string `form:"playerInfo"`
	UserContact string `form:"userContact"`
	StockOut    bool   `form:"stockOut"`
}

func (h *AdminHandler) bindForm(c echo.Context) (usecase.ListingInput, []usecase.MediaFile, error) {
	var req listingFormRequest
	if err := c.Bind(&req); err != nil {
		return usecase.ListingInput{}, nil, err
	}
	if err := c.Validate(&req); err != nil {
		return usecase.ListingInput{}, nil, err
	}

	input := usecase.ListingInput{
		Title:       req.Title,
		Price:       req.Price,
		ShortDesc:   req.ShortDesc,
		PlayerInfo:  req.PlayerInfo,
		UserContact: req.UserContact,
		StockOut:    req.StockOut,
	}

	// Media files are optional; a plain form submit just means no new files.
	form, err := c.MultipartForm()
	if err != nil {
		return input, nil, nil
	}

	headers := form.File["media"]
	files := make([]usecase.MediaFile, 0, len(headers))
	for _, header := range headers {
		header := header
		files = append(files, usecase.MediaFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return header.Open()
			},
		})
	}
	return input, files, nil
}

func (h *AdminHandler) CreateListing(c echo.Context) error {
	input, files, err := h.bindForm(c)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.adminUseCase.CreateListing(c.Request().Context(), input, files)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *AdminHandler) UpdateListing(c echo.Context) error {
	id := c.Param("id")

	input, files, err := h.bindForm(c)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.adminUseCase.UpdateListing(c.Request().Context(), id, input, files)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

type stockRequest struct {
	StockOut *bool `json:"stockOut" validate:"required"`
}

func (h *AdminHandler) SetStock(c echo.Context) error {
	id := c.Param("id")

	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.adminUseCase.SetStockOut(c.Request().Context(), id, *req.StockOut); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"id":       id,
		"stockOut": *req.StockOut,
	})
}

// DeleteListing hard-deletes after an explicit confirmation. Without
// confirm=true nothing happens and the row stays.
func (h *AdminHandler) DeleteListing(c echo.Context) error {
	id := c.Param("id")

	if c.QueryParam("confirm") != "true" {
		return response.Error(c, errors.BadRequest("Delete requires confirmation (confirm=true)", nil))
	}

	if err := h.adminUseCase.DeleteListing(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing deleted successfully",
	})
}

// Logout clears the session flag cookie.
func (h *AdminHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return response.Success(c, map[string]string{
		"message": "Logged out",
	})
}
