package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vollmed/internal/model"
	"vollmed/internal/service"
)

// PatientHandler handles patient registry endpoints.
type PatientHandler struct {
	patientService service.PatientService
}

// NewPatientHandler creates a new patient handler.
func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// CreatePatientRequest represents a patient registration request.
type CreatePatientRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Document string         `json:"document" validate:"required"`
	Address  AddressPayload `json:"address" validate:"required"`
}

// UpdatePatientRequest represents a partial patient update.
type UpdatePatientRequest struct {
	Name    *string               `json:"name"`
	Email   *string               `json:"email" validate:"omitempty,email"`
	Address *AddressUpdatePayload `json:"address"`
}

// PatientListResponse wraps a page of patients.
type PatientListResponse struct {
	Patients []model.Patient `json:"patients"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Size     int             `json:"size"`
}

// Create godoc
// @Summary Register a patient
// @Tags patients
// @Accept json
// @Produce json
// @Param request body CreatePatientRequest true "Patient data"
// @Success 201 {object} model.Patient
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	var req CreatePatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patient := &model.Patient{
		Name:     req.Name,
		Email:    req.Email,
		Document: req.Document,
		Address:  req.Address.toModel(),
	}
	created, err := h.patientService.Create(c.Request().Context(), patient)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get patient by id
// @Tags patients
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} model.Patient
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	patient, err := h.patientService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// List godoc
// @Summary List active patients
// @Tags patients
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} PatientListResponse
// @Security BearerAuth
// @Router /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	page, size := parsePagination(c)
	patients, total, err := h.patientService.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PatientListResponse{
		Patients: patients,
		Total:    total,
		Page:     page,
		Size:     size,
	})
}

// Update godoc
// @Summary Partially update a patient
// @Tags patients
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param request body UpdatePatientRequest true "Fields to change"
// @Success 200 {object} model.Patient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdatePatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update := service.PatientUpdate{Name: req.Name, Email: req.Email}
	if req.Address != nil {
		update.Address = req.Address.toUpdate()
	}

	patient, err := h.patientService.Update(c.Request().Context(), id, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// Delete godoc
// @Summary Soft-delete a patient
// @Tags patients
// @Param id path int true "Patient ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.patientService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
