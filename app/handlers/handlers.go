// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/Davisit00/aviges/app/dto"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ErrorResponse writes an error envelope with the given status
func ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// SuccessResponse writes a success envelope with the given status
func SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BusinessErrorResponse maps a business error to the HTTP layer. Validation
// failures map to 400, missing references to 404, conflicts to 409 and
// everything else to 500. Internal details never leave the server.
func BusinessErrorResponse(c fiber.Ctx, err error) error {
	var be *businessflow.BusinessError
	message := "Request failed"
	if errors.As(err, &be) {
		message = be.Message
	}

	switch businessflow.CodeOf(err) {
	case businessflow.CodeValidation:
		return ErrorResponse(c, fiber.StatusBadRequest, message, businessflow.CodeValidation, nil)
	case businessflow.CodeNotFound:
		return ErrorResponse(c, fiber.StatusNotFound, message, businessflow.CodeNotFound, nil)
	case businessflow.CodeConflict:
		return ErrorResponse(c, fiber.StatusConflict, message, businessflow.CodeConflict, nil)
	default:
		log.Println("request failed:", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", businessflow.CodeInternal, nil)
	}
}

// ValidationErrorResponse writes a 400 with one message per failed field
func ValidationErrorResponse(c fiber.Ctx, err error) error {
	var validationErrors []string
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fieldErr := range ve {
			validationErrors = append(validationErrors, getValidationErrorMessage(fieldErr))
		}
	}
	return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", businessflow.CodeValidation, validationErrors)
}

// getValidationErrorMessage converts a validator field error to a readable message
func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "gt":
		return err.Field() + " must be greater than " + err.Param()
	case "gte":
		return err.Field() + " must be at least " + err.Param()
	case "lte":
		return err.Field() + " must be at most " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}

// parseIDParam extracts a positive integer path parameter
func parseIDParam(c fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// clientMetadata builds flow metadata from the request
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get(businessflow.RequestIDKey); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	return metadata
}
