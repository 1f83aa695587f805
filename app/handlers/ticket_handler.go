package handlers

import (
	"strconv"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/app/middleware"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// TicketHandlerInterface defines the contract for weighing ticket handlers
type TicketHandlerInterface interface {
	Create(c fiber.Ctx) error
	RecordWeight(c fiber.Ctx) error
	Reprint(c fiber.Ctx) error
	Void(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	GetByNumber(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Pending(c fiber.Ctx) error
	RecordTimings(c fiber.Ctx) error
	RecordCounts(c fiber.Ctx) error
	SetOrigin(c fiber.Ctx) error
	Statistics(c fiber.Ctx) error
	BatchTrips(c fiber.Ctx) error
}

// TicketHandler handles weighing ticket HTTP requests
type TicketHandler struct {
	ticketFlow businessflow.TicketFlow
	tripFlow   businessflow.TripFlow
	validator  *validator.Validate
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketFlow businessflow.TicketFlow, tripFlow businessflow.TripFlow) *TicketHandler {
	return &TicketHandler{
		ticketFlow: ticketFlow,
		tripFlow:   tripFlow,
		validator:  validator.New(),
	}
}

// Create opens a new weighing ticket
func (h *TicketHandler) Create(c fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	result, err := h.ticketFlow.CreateTicket(c.Context(), &req, claims.UserID, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Ticket created", result)
}

// RecordWeight stores one scale reading on a ticket
func (h *TicketHandler) RecordWeight(c fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket id", "INVALID_REQUEST", nil)
	}

	var req dto.RecordWeightRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	result, err := h.ticketFlow.RecordWeight(c.Context(), ticketID, &req, claims.UserID)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Weight recorded", result)
}

// Reprint bumps the reprint counter of a finished ticket
func (h *TicketHandler) Reprint(c fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket id", "INVALID_REQUEST", nil)
	}

	result, err := h.ticketFlow.ReprintTicket(c.Context(), ticketID)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Reprint recorded", result)
}

// Void marks a ticket void with a reason
func (h *TicketHandler) Void(c fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket id", "INVALID_REQUEST", nil)
	}

	var req dto.VoidTicketRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.ticketFlow.VoidTicket(c.Context(), ticketID, &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Ticket voided", result)
}

// Get returns one ticket by id
func (h *TicketHandler) Get(c fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket id", "INVALID_REQUEST", nil)
	}

	result, err := h.ticketFlow.GetTicket(c.Context(), ticketID)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Ticket retrieved", result)
}

// GetByNumber returns one ticket by its printed number
func (h *TicketHandler) GetByNumber(c fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket number", "INVALID_REQUEST", nil)
	}

	result, err := h.ticketFlow.GetTicketByNumber(c.Context(), number)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Ticket retrieved", result)
}

// Pending returns the open tickets for the front-desk board
func (h *TicketHandler) Pending(c fiber.Ctx) error {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return ErrorResponse(c, fiber.StatusBadRequest, "Invalid limit", "INVALID_REQUEST", nil)
		}
		limit = parsed
	}

	result, err := h.ticketFlow.ListPendingTickets(c.Context(), limit)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Pending tickets retrieved", result)
}

// List returns a filtered page of tickets
func (h *TicketHandler) List(c fiber.Ctx) error {
	var req dto.ListTicketsRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.ticketFlow.ListTickets(c.Context(), &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Tickets retrieved", result)
}

// RecordTimings merges trip checkpoint stamps into a ticket
func (h *TicketHandler) RecordTimings(c fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket id", "INVALID_REQUEST", nil)
	}

	var req dto.RecordTripTimingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	result, err := h.tripFlow.RecordTripTimings(c.Context(), ticketID, &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Timings recorded", result)
}

// RecordCounts stores bird counts for a trip
func (h *TicketHandler) RecordCounts(c fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket id", "INVALID_REQUEST", nil)
	}

	var req dto.RecordTripCountsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.tripFlow.RecordTripCounts(c.Context(), ticketID, &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Counts recorded", result)
}

// SetOrigin ties a trip to its source batch
func (h *TicketHandler) SetOrigin(c fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket id", "INVALID_REQUEST", nil)
	}

	var req dto.SetTripOriginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.tripFlow.SetTripOrigin(c.Context(), ticketID, &req)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Origin recorded", result)
}

// Statistics returns derived per-trip statistics
func (h *TicketHandler) Statistics(c fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid ticket id", "INVALID_REQUEST", nil)
	}

	result, err := h.tripFlow.GetTripStatistics(c.Context(), ticketID)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Statistics computed", result)
}

// BatchTrips lists the trips loaded from one batch
func (h *TicketHandler) BatchTrips(c fiber.Ctx) error {
	batchID, err := parseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid batch id", "INVALID_REQUEST", nil)
	}

	result, err := h.tripFlow.ListBatchTrips(c.Context(), batchID)
	if err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Batch trips retrieved", result)
}
