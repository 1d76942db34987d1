package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
	"vollmed/internal/service"
)

// DoctorHandler handles doctor registry endpoints.
type DoctorHandler struct {
	doctorService service.DoctorService
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(doctorService service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// AddressPayload is the full address of a create request.
type AddressPayload struct {
	Street       string `json:"street" validate:"required"`
	Neighborhood string `json:"neighborhood" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required,len=2"`
}

func (p *AddressPayload) toModel() model.Address {
	return model.Address{
		Street:       p.Street,
		Neighborhood: p.Neighborhood,
		PostalCode:   p.PostalCode,
		Number:       p.Number,
		Complement:   p.Complement,
		City:         p.City,
		State:        p.State,
	}
}

// AddressUpdatePayload is the address part of a partial update; absent fields
// keep their stored values.
type AddressUpdatePayload struct {
	Street       *string `json:"street"`
	Neighborhood *string `json:"neighborhood"`
	PostalCode   *string `json:"postal_code"`
	Number       *string `json:"number"`
	Complement   *string `json:"complement"`
	City         *string `json:"city"`
	State        *string `json:"state" validate:"omitempty,len=2"`
}

func (p *AddressUpdatePayload) toUpdate() *service.AddressUpdate {
	return &service.AddressUpdate{
		Street:       p.Street,
		Neighborhood: p.Neighborhood,
		PostalCode:   p.PostalCode,
		Number:       p.Number,
		Complement:   p.Complement,
		City:         p.City,
		State:        p.State,
	}
}

// CreateDoctorRequest represents a doctor registration request.
type CreateDoctorRequest struct {
	Name      string         `json:"name" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	CRM       string         `json:"crm" validate:"required"`
	Specialty string         `json:"specialty" validate:"required"`
	Address   AddressPayload `json:"address" validate:"required"`
}

// UpdateDoctorRequest represents a partial doctor update.
type UpdateDoctorRequest struct {
	Name    *string               `json:"name"`
	Email   *string               `json:"email" validate:"omitempty,email"`
	Address *AddressUpdatePayload `json:"address"`
}

// DoctorListResponse wraps a page of doctors.
type DoctorListResponse struct {
	Doctors []model.Doctor `json:"doctors"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Size    int            `json:"size"`
}

// Create godoc
// @Summary Register a doctor
// @Tags doctors
// @Accept json
// @Produce json
// @Param request body CreateDoctorRequest true "Doctor data"
// @Success 201 {object} model.Doctor
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /doctors [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var req CreateDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	specialty, err := model.ParseSpecialty(req.Specialty)
	if err != nil {
		return apperrors.Validationf("%v", err)
	}

	doctor := &model.Doctor{
		Name:      req.Name,
		Email:     req.Email,
		CRM:       req.CRM,
		Specialty: specialty,
		Address:   req.Address.toModel(),
	}
	created, err := h.doctorService.Create(c.Request().Context(), doctor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get doctor by id
// @Tags doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} model.Doctor
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /doctors/{id} [get]
func (h *DoctorHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	doctor, err := h.doctorService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctor)
}

// List godoc
// @Summary List active doctors
// @Tags doctors
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} DoctorListResponse
// @Security BearerAuth
// @Router /doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	page, size := parsePagination(c)
	doctors, total, err := h.doctorService.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DoctorListResponse{
		Doctors: doctors,
		Total:   total,
		Page:    page,
		Size:    size,
	})
}

// Update godoc
// @Summary Partially update a doctor
// @Tags doctors
// @Accept json
// @Produce json
// @Param id path int true "Doctor ID"
// @Param request body UpdateDoctorRequest true "Fields to change"
// @Success 200 {object} model.Doctor
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /doctors/{id} [put]
func (h *DoctorHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdateDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update := service.DoctorUpdate{Name: req.Name, Email: req.Email}
	if req.Address != nil {
		update.Address = req.Address.toUpdate()
	}

	doctor, err := h.doctorService.Update(c.Request().Context(), id, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctor)
}

// Delete godoc
// @Summary Soft-delete a doctor
// @Tags doctors
// @Param id path int true "Doctor ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /doctors/{id} [delete]
func (h *DoctorHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.doctorService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
