package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idstore/internal/adapter/api"
	"idstore/internal/domain/entity"
	"idstore/internal/usecase"
)

func newAdminHandlerForTest() (*AdminHandler, *memListingRepo) {
	repo := newMemListingRepo()
	uc := usecase.NewAdminUseCase(repo, nopUploader{})
	return NewAdminHandler(uc), repo
}

func newAdminEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

func TestCreateListingFromForm(t *testing.T) {
	e := newAdminEcho()
	h, repo := newAdminHandlerForTest()
	e.POST("/v1/admin/listings", h.CreateListing)

	form := url.Values{}
	form.Set("title", "Messi Account")
	form.Set("price", "$50")
	form.Set("shortDesc", "rare cards")

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/listings", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.records, 1)
	created := repo.records["generated-key"]
	assert.Equal(t, "Messi Account", created.Title)
	assert.Equal(t, []string{entity.PlaceholderMediaURL}, created.MediaUrls, "no uploads falls back to the placeholder")
}

func TestCreateListingRejectsMissingTitle(t *testing.T) {
	e := newAdminEcho()
	h, repo := newAdminHandlerForTest()
	e.POST("/v1/admin/listings", h.CreateListing)

	form := url.Values{}
	form.Set("price", "$50")

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/listings", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.records)
}

func TestDeleteListingRequiresConfirmation(t *testing.T) {
	e := newAdminEcho()
	h, repo := newAdminHandlerForTest()
	repo.records["a"] = entity.Listing{ID: "a", Title: "Messi Account"}
	e.DELETE("/v1/admin/listings/:id", h.DeleteListing)

	rec := doRequest(e, http.MethodDelete, "/v1/admin/listings/a")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "confirm=true")
	assert.Empty(t, repo.deletes, "nothing is deleted without confirmation")
}

func TestDeleteListingConfirmed(t *testing.T) {
	e := newAdminEcho()
	h, repo := newAdminHandlerForTest()
	repo.records["a"] = entity.Listing{ID: "a", Title: "Messi Account"}
	e.DELETE("/v1/admin/listings/:id", h.DeleteListing)

	rec := doRequest(e, http.MethodDelete, "/v1/admin/listings/a?confirm=true")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a"}, repo.deletes)
}

func TestSetStockRequiresFlag(t *testing.T) {
	e := newAdminEcho()
	h, repo := newAdminHandlerForTest()
	repo.records["a"] = entity.Listing{ID: "a", Title: "Messi Account"}
	e.PATCH("/v1/admin/listings/:id/stock", h.SetStock)

	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/listings/a/stock", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetStock(t *testing.T) {
	e := newAdminEcho()
	h, repo := newAdminHandlerForTest()
	repo.records["a"] = entity.Listing{ID: "a", Title: "Messi Account"}
	e.PATCH("/v1/admin/listings/:id/stock", h.SetStock)

	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/listings/a/stock", strings.NewReader(`{"stockOut":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stockOut":true`)
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	e := newAdminEcho()
	h, _ := newAdminHandlerForTest()
	e.POST("/v1/admin/logout", h.Logout)

	rec := doRequest(e, http.MethodPost, "/v1/admin/logout")

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
