package handler

import (
	"idstore/internal/usecase"
)

var (
	catalogHandler *CatalogHandler
	adminHandler   *AdminHandler
)

func Setup(catalogUseCase *usecase.CatalogUseCase, adminUseCase *usecase.AdminUseCase) {
	catalogHandler = NewCatalogHandler(catalogUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
