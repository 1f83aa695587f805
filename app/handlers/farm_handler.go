package handlers

import (
	"github.com/Davisit00/aviges/app/dto"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// FarmHandler handles farm and batch HTTP requests
type FarmHandler struct {
	farmFlow  businessflow.FarmFlow
	validator *validator.Validate
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmFlow businessflow.FarmFlow) *FarmHandler {
	return &FarmHandler{
		farmFlow:  farmFlow,
		validator: validator.New(),
	}
}

// CreateFarm registers a farm with its owner and sheds
func (h *FarmHandler) CreateFarm(c fiber.Ctx) error {
	var req dto.CreateFarmRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.farmFlow.CreateFarm(c.Context(), &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Farm created", result)
}

// GetFarm returns one farm by id
func (h *FarmHandler) GetFarm(c fiber.Ctx) error {
	farmID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid farm id", "INVALID_REQUEST", nil)
	}

	result, err := h.farmFlow.GetFarm(c.Context(), farmID)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Farm retrieved", result)
}

// CreateBatch places a flock in a shed
func (h *FarmHandler) CreateBatch(c fiber.Ctx) error {
	var req dto.CreateBatchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.farmFlow.CreateBatch(c.Context(), &req, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Batch created", result)
}
