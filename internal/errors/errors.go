package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrDoctorNotFound is returned when a doctor id does not resolve.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrPatientNotFound is returned when a patient id does not resolve.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrConsultationNotFound is returned when a consultation id does not resolve.
	ErrConsultationNotFound = errors.New("consultation not found")
	// ErrNoDoctorAvailable is returned when no active doctor of the requested
	// specialty is free at the requested datetime.
	ErrNoDoctorAvailable = errors.New("no doctor available for the requested specialty and time")
	// ErrInvalidCredentials is returned when login or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrInvalidToken covers every token-verification failure; callers never
	// learn whether the signature, issuer or expiry was at fault.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnauthenticated is returned when a route requires an identity and none
	// was established.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the authenticated user lacks the required role.
	ErrForbidden = errors.New("access denied")
)

// ValidationError carries a human-readable business-rule violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

const mysqlDuplicateEntry = 1062

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	var fieldErrs validator.ValidationErrors
	var mysqlErr *mysql.MySQLError

	switch {
	case errors.Is(err, ErrDoctorNotFound),
		errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrConsultationNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrNoDoctorAvailable):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_DOCTOR_AVAILABLE")
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	case errors.As(err, &fieldErrs):
		return NewHTTPError(http.StatusBadRequest, fieldErrs.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry:
		return NewHTTPError(http.StatusBadRequest, "duplicate value: "+mysqlErr.Message, "INTEGRITY_VIOLATION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
