// Package businessflow contains the core business logic for entity resolution and weighing workflows
package businessflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error codes returned in API error envelopes
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL"
)

// Business flow error constants
var (
	// Lookup errors
	ErrAddressNotFound  = errors.New("address not found")
	ErrPhoneNotFound    = errors.New("phone not found")
	ErrTaxIDNotFound    = errors.New("tax id not found")
	ErrPersonNotFound   = errors.New("person not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrCompanyNotFound  = errors.New("transport company not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrDriverNotFound   = errors.New("driver not found")
	ErrFarmNotFound     = errors.New("farm not found")
	ErrShedNotFound     = errors.New("shed not found")
	ErrBatchNotFound    = errors.New("batch not found")
	ErrTicketNotFound   = errors.New("ticket not found")

	// Auth errors
	ErrIncorrectPassword     = errors.New("incorrect password")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrTokenRevoked          = errors.New("token has been revoked")

	// Association errors
	ErrSharedEntityHeldByOther = errors.New("shared entity is already held by another owner")

	// Ticket lifecycle errors
	ErrTicketAlreadyFinished  = errors.New("ticket is already finished")
	ErrTicketVoided           = errors.New("ticket has been voided")
	ErrTicketNotVoidable      = errors.New("ticket cannot be voided twice")
	ErrWeightOutOfRange       = errors.New("weight is outside the scale range")
	ErrSameOriginDestination  = errors.New("origin and destination must differ")
	ErrDriverCompanyMismatch  = errors.New("driver and vehicle belong to different transport companies")

	// Trip enrichment errors
	ErrTimingsOutOfOrder  = errors.New("trip timestamps are out of chronological order")
	ErrCountsInconsistent = errors.New("birds received cannot exceed birds on guide")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError wraps a sentinel as a validation failure
func NewValidationError(message string, err error) *BusinessError {
	return NewBusinessError(CodeValidation, message, err)
}

// NewNotFoundError wraps a sentinel as a missing-reference failure
func NewNotFoundError(message string, err error) *BusinessError {
	return NewBusinessError(CodeNotFound, message, err)
}

// NewConflictError wraps a sentinel as a uniqueness or state conflict
func NewConflictError(message string, err error) *BusinessError {
	return NewBusinessError(CodeConflict, message, err)
}

// NewInternalError wraps an unexpected failure
func NewInternalError(message string, err error) *BusinessError {
	return NewBusinessError(CodeInternal, message, err)
}

// CodeOf extracts the taxonomy code from an error, defaulting to INTERNAL
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeInternal
}

// IsValidationError reports whether the error classifies as a validation failure
func IsValidationError(err error) bool {
	return CodeOf(err) == CodeValidation
}

// IsNotFoundError reports whether the error classifies as a missing reference
func IsNotFoundError(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsConflictError reports whether the error classifies as a conflict
func IsConflictError(err error) bool {
	return CodeOf(err) == CodeConflict
}

// isUniqueViolation reports whether the database rejected a write on a unique
// index. Concurrent resolvers racing on the same natural key land here and are
// surfaced as conflicts instead of internal errors.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// The testing driver does not unwrap to pgconn errors
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

func IsPersonNotFound(err error) bool {
	return errors.Is(err, ErrPersonNotFound)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsUsernameAlreadyExists(err error) bool {
	return errors.Is(err, ErrUsernameAlreadyExists)
}

func IsTokenRevoked(err error) bool {
	return errors.Is(err, ErrTokenRevoked)
}

func IsSharedEntityHeldByOther(err error) bool {
	return errors.Is(err, ErrSharedEntityHeldByOther)
}

func IsTicketNotFound(err error) bool {
	return errors.Is(err, ErrTicketNotFound)
}

func IsTicketAlreadyFinished(err error) bool {
	return errors.Is(err, ErrTicketAlreadyFinished)
}

func IsTicketVoided(err error) bool {
	return errors.Is(err, ErrTicketVoided)
}

func IsWeightOutOfRange(err error) bool {
	return errors.Is(err, ErrWeightOutOfRange)
}

func IsSameOriginDestination(err error) bool {
	return errors.Is(err, ErrSameOriginDestination)
}

func IsDriverCompanyMismatch(err error) bool {
	return errors.Is(err, ErrDriverCompanyMismatch)
}

func IsTimingsOutOfOrder(err error) bool {
	return errors.Is(err, ErrTimingsOutOfOrder)
}

func IsCountsInconsistent(err error) bool {
	return errors.Is(err, ErrCountsInconsistent)
}
