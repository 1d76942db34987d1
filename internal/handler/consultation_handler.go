package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
	"vollmed/internal/service"
)

// ConsultationHandler handles scheduling endpoints.
type ConsultationHandler struct {
	consultationService service.ConsultationService
}

// NewConsultationHandler creates a new consultation handler.
func NewConsultationHandler(consultationService service.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultationService: consultationService}
}

// ScheduleConsultationRequest represents a booking request. Either doctor_id
// or specialty must be given; with only a specialty the scheduler picks an
// eligible doctor at random.
type ScheduleConsultationRequest struct {
	PatientID uint      `json:"patient_id" validate:"required"`
	DoctorID  uint      `json:"doctor_id"`
	Specialty string    `json:"specialty"`
	At        time.Time `json:"scheduled_at" validate:"required"`
}

// CancelConsultationRequest carries the cancellation reason.
type CancelConsultationRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ConsultationListResponse wraps a page of consultations.
type ConsultationListResponse struct {
	Consultations []model.Consultation `json:"consultations"`
	Total         int64                `json:"total"`
	Page          int                  `json:"page"`
	Size          int                  `json:"size"`
}

// Schedule godoc
// @Summary Book a consultation
// @Tags consultations
// @Accept json
// @Produce json
// @Param request body ScheduleConsultationRequest true "Booking data"
// @Success 201 {object} model.Consultation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /consultations [post]
func (h *ConsultationHandler) Schedule(c echo.Context) error {
	var req ScheduleConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := service.ScheduleInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		At:        req.At,
	}
	if req.Specialty != "" {
		specialty, err := model.ParseSpecialty(req.Specialty)
		if err != nil {
			return apperrors.Validationf("%v", err)
		}
		input.Specialty = specialty
	}

	consultation, err := h.consultationService.Schedule(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, consultation)
}

// Cancel godoc
// @Summary Cancel a consultation
// @Tags consultations
// @Accept json
// @Produce json
// @Param id path int true "Consultation ID"
// @Param request body CancelConsultationRequest true "Cancellation reason"
// @Success 200 {object} model.Consultation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /consultations/{id} [delete]
func (h *ConsultationHandler) Cancel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req CancelConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reason, err := model.ParseCancelReason(req.Reason)
	if err != nil {
		return apperrors.Validationf("%v", err)
	}

	consultation, err := h.consultationService.Cancel(c.Request().Context(), id, reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultation)
}

// Get godoc
// @Summary Get consultation by id
// @Tags consultations
// @Produce json
// @Param id path int true "Consultation ID"
// @Success 200 {object} model.Consultation
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /consultations/{id} [get]
func (h *ConsultationHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	consultation, err := h.consultationService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultation)
}

// List godoc
// @Summary List consultations
// @Tags consultations
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} ConsultationListResponse
// @Security BearerAuth
// @Router /consultations [get]
func (h *ConsultationHandler) List(c echo.Context) error {
	page, size := parsePagination(c)
	consultations, total, err := h.consultationService.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ConsultationListResponse{
		Consultations: consultations,
		Total:         total,
		Page:          page,
		Size:          size,
	})
}
