package handlers

import (
	"github.com/Davisit00/aviges/app/dto"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CompanyHandler handles transport company, vehicle and driver HTTP requests
type CompanyHandler struct {
	companyFlow businessflow.CompanyFlow
	validator   *validator.Validate
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyFlow businessflow.CompanyFlow) *CompanyHandler {
	return &CompanyHandler{
		companyFlow: companyFlow,
		validator:   validator.New(),
	}
}

// CreateCompany registers a transport company
func (h *CompanyHandler) CreateCompany(c fiber.Ctx) error {
	var req dto.CreateTransportCompanyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.companyFlow.CreateTransportCompany(c.Context(), &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Transport company created", result)
}

// GetCompany returns one transport company by id
func (h *CompanyHandler) GetCompany(c fiber.Ctx) error {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid company id", "INVALID_REQUEST", nil)
	}

	result, err := h.companyFlow.GetTransportCompany(c.Context(), companyID)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Transport company retrieved", result)
}

// CreateVehicle registers a vehicle
func (h *CompanyHandler) CreateVehicle(c fiber.Ctx) error {
	var req dto.CreateVehicleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.companyFlow.CreateVehicle(c.Context(), &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Vehicle created", result)
}

// CreateDriver registers a driver
func (h *CompanyHandler) CreateDriver(c fiber.Ctx) error {
	var req dto.CreateDriverRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.companyFlow.CreateDriver(c.Context(), &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Driver created", result)
}
