package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"doctor not found", ErrDoctorNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"patient not found", ErrPatientNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"consultation not found", ErrConsultationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"bare record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrDoctorNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"no doctor available", ErrNoDoctorAvailable, http.StatusBadRequest, "NO_DOCTOR_AVAILABLE"},
		{"business rule violation", Validationf("clinic is closed on Sundays"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"bad token", ErrInvalidToken, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"no identity", ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"wrong role", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"duplicate key", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'lima@vollmed.com'"}, http.StatusBadRequest, "INTEGRITY_VIOLATION"},
		{"other mysql error", &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.5:3306: connect: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestValidationf(t *testing.T) {
	err := Validationf("size must be at most %d", 100)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "size must be at most 100", err.Error())
}
