package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
	"vollmed/internal/service"
)

// MockConsultationService is a mock implementation of service.ConsultationService.
type MockConsultationService struct {
	mock.Mock
}

func (m *MockConsultationService) Schedule(ctx context.Context, input service.ScheduleInput) (*model.Consultation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationService) Cancel(ctx context.Context, id uint, reason model.CancelReason) (*model.Consultation, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationService) Get(ctx context.Context, id uint) (*model.Consultation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consultation), args.Error(1)
}

func (m *MockConsultationService) List(ctx context.Context, page, size int) ([]model.Consultation, int64, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Consultation), args.Get(1).(int64), args.Error(2)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func handlerTestServer(svc service.ConsultationService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(zerolog.Nop())

	h := NewConsultationHandler(svc)
	e.POST("/consultations", h.Schedule)
	e.DELETE("/consultations/:id", h.Cancel)
	e.GET("/consultations/:id", h.Get)
	e.GET("/consultations", h.List)
	return e
}

func jsonRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestConsultationHandler_Schedule(t *testing.T) {
	slot := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		svc := new(MockConsultationService)
		svc.On("Schedule", mock.Anything, service.ScheduleInput{
			PatientID: 7,
			Specialty: model.SpecialtyCardiologia,
			At:        slot,
		}).Return(&model.Consultation{ID: 1, DoctorID: 3, PatientID: 7, ScheduledAt: slot}, nil)

		e := handlerTestServer(svc)
		rec := jsonRequest(e, http.MethodPost, "/consultations",
			`{"patient_id":7,"specialty":"cardiologia","scheduled_at":"2026-03-04T10:00:00Z"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"doctor_id":3`)
		svc.AssertExpectations(t)
	})

	t.Run("unknown specialty is rejected before the service", func(t *testing.T) {
		svc := new(MockConsultationService)
		e := handlerTestServer(svc)
		rec := jsonRequest(e, http.MethodPost, "/consultations",
			`{"patient_id":7,"specialty":"pediatria","scheduled_at":"2026-03-04T10:00:00Z"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
		svc.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
	})

	t.Run("missing patient_id fails validation", func(t *testing.T) {
		svc := new(MockConsultationService)
		e := handlerTestServer(svc)
		rec := jsonRequest(e, http.MethodPost, "/consultations",
			`{"doctor_id":3,"scheduled_at":"2026-03-04T10:00:00Z"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
	})

	t.Run("no doctor available maps to 400", func(t *testing.T) {
		svc := new(MockConsultationService)
		svc.On("Schedule", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNoDoctorAvailable)

		e := handlerTestServer(svc)
		rec := jsonRequest(e, http.MethodPost, "/consultations",
			`{"patient_id":7,"specialty":"cardiologia","scheduled_at":"2026-03-04T10:00:00Z"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "NO_DOCTOR_AVAILABLE")
	})
}

func TestConsultationHandler_Cancel(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		reason := model.CancelReasonPatientWithdrew
		svc := new(MockConsultationService)
		svc.On("Cancel", mock.Anything, uint(5), reason).
			Return(&model.Consultation{ID: 5, CancelReason: &reason}, nil)

		e := handlerTestServer(svc)
		rec := jsonRequest(e, http.MethodDelete, "/consultations/5", `{"reason":"paciente_desistiu"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "PACIENTE_DESISTIU")
		svc.AssertExpectations(t)
	})

	t.Run("unknown reason is rejected before the service", func(t *testing.T) {
		svc := new(MockConsultationService)
		e := handlerTestServer(svc)
		rec := jsonRequest(e, http.MethodDelete, "/consultations/5", `{"reason":"chuva"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := new(MockConsultationService)
		svc.On("Cancel", mock.Anything, uint(5), model.CancelReasonOther).
			Return(nil, apperrors.ErrConsultationNotFound)

		e := handlerTestServer(svc)
		rec := jsonRequest(e, http.MethodDelete, "/consultations/5", `{"reason":"outros"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(MockConsultationService)
		e := handlerTestServer(svc)
		rec := jsonRequest(e, http.MethodDelete, "/consultations/abc", `{"reason":"outros"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestConsultationHandler_List(t *testing.T) {
	svc := new(MockConsultationService)
	svc.On("List", mock.Anything, 1, 10).Return([]model.Consultation{{ID: 1}, {ID: 2}}, int64(2), nil)

	e := handlerTestServer(svc)
	rec := jsonRequest(e, http.MethodGet, "/consultations", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":2`)
	svc.AssertExpectations(t)
}
