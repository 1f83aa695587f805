package handlers

import (
	"github.com/Davisit00/aviges/app/dto"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CatalogHandler handles location and product HTTP requests
type CatalogHandler struct {
	catalogFlow businessflow.CatalogFlow
	validator   *validator.Validate
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogFlow businessflow.CatalogFlow) *CatalogHandler {
	return &CatalogHandler{
		catalogFlow: catalogFlow,
		validator:   validator.New(),
	}
}

// CreateLocation registers a site
func (h *CatalogHandler) CreateLocation(c fiber.Ctx) error {
	var req dto.CreateLocationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.catalogFlow.CreateLocation(c.Context(), &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Location created", result)
}

// ListLocations returns all active locations
func (h *CatalogHandler) ListLocations(c fiber.Ctx) error {
	result, err := h.catalogFlow.ListLocations(c.Context())
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Locations retrieved", result)
}

// CreateProduct registers a product
func (h *CatalogHandler) CreateProduct(c fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.catalogFlow.CreateProduct(c.Context(), &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Product created", result)
}

// ListProducts returns all active products
func (h *CatalogHandler) ListProducts(c fiber.Ctx) error {
	result, err := h.catalogFlow.ListProducts(c.Context())
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Products retrieved", result)
}
