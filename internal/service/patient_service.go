package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vollmed/internal/cache"
	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
	"vollmed/internal/repository"
)

// PatientUpdate carries the patient fields a partial update may change. The
// document (CPF) is immutable once registered.
type PatientUpdate struct {
	Name    *string
	Email   *string
	Address *AddressUpdate
}

// PatientService exposes patient registry operations.
type PatientService interface {
	Create(ctx context.Context, patient *model.Patient) (*model.Patient, error)
	Get(ctx context.Context, id uint) (*model.Patient, error)
	List(ctx context.Context, page, size int) ([]model.Patient, int64, error)
	Update(ctx context.Context, id uint, update PatientUpdate) (*model.Patient, error)
	Delete(ctx context.Context, id uint) error
}

type patientService struct {
	repo  repository.PatientRepository
	cache *cache.Client
}

// NewPatientService builds a PatientService with repository and cache.
func NewPatientService(repo repository.PatientRepository, cache *cache.Client) PatientService {
	return &patientService{repo: repo, cache: cache}
}

func (s *patientService) Create(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	patient.ID = 0
	patient.Active = true
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) Get(ctx context.Context, id uint) (*model.Patient, error) {
	key := patientCacheKey(id)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var patient model.Patient
		if err := json.Unmarshal(data, &patient); err == nil {
			return &patient, nil
		}
	}

	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(patient); err == nil {
		_ = s.cache.Set(ctx, key, payload, entityCacheTTL)
	}
	return patient, nil
}

func (s *patientService) List(ctx context.Context, page, size int) ([]model.Patient, int64, error) {
	return s.repo.ListActive(ctx, page, size)
}

// Update applies a field-by-field merge: fields absent from the request keep
// their stored values.
func (s *patientService) Update(ctx context.Context, id uint, update PatientUpdate) (*model.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		patient.Name = *update.Name
	}
	if update.Email != nil {
		patient.Email = *update.Email
	}
	if update.Address != nil {
		mergeAddress(&patient.Address, update.Address)
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, patientCacheKey(id))
	return patient, nil
}

// Delete retires the patient from new bookings without touching history.
func (s *patientService) Delete(ctx context.Context, id uint) error {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPatientNotFound
		}
		return err
	}

	patient.Active = false
	if err := s.repo.Update(ctx, patient); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, patientCacheKey(id))
	return nil
}

func patientCacheKey(id uint) string {
	return fmt.Sprintf("patient:%d", id)
}
