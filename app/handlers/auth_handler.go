package handlers

import (
	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/app/middleware"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Login(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
	Refresh(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authFlow  businessflow.AuthFlow
	validator *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow) *AuthHandler {
	return &AuthHandler{
		authFlow:  authFlow,
		validator: validator.New(),
	}
}

// Login authenticates an operator and issues a token pair
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.authFlow.Login(c.Context(), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsIncorrectPassword(err) {
			// 401 rather than the generic 400 so clients treat it as an auth failure.
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS", nil)
		}
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// Logout revokes the presented access token
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	if err := h.authFlow.Logout(c.Context(), claims); err != nil {
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Logged out", nil)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return ValidationErrorResponse(c, err)
	}

	result, err := h.authFlow.RefreshTokens(c.Context(), &req)
	if err != nil {
		if businessflow.IsTokenRevoked(err) {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Token has been revoked", "TOKEN_REVOKED", nil)
		}
		return BusinessErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Tokens refreshed", result)
}
