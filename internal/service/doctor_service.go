package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"vollmed/internal/cache"
	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
	"vollmed/internal/repository"
)

const entityCacheTTL = 5 * time.Minute

// AddressUpdate carries the address fields a partial update may change. Nil
// fields leave the stored value untouched.
type AddressUpdate struct {
	Street       *string
	Neighborhood *string
	PostalCode   *string
	Number       *string
	Complement   *string
	City         *string
	State        *string
}

func mergeAddress(address *model.Address, update *AddressUpdate) {
	if update.Street != nil {
		address.Street = *update.Street
	}
	if update.Neighborhood != nil {
		address.Neighborhood = *update.Neighborhood
	}
	if update.PostalCode != nil {
		address.PostalCode = *update.PostalCode
	}
	if update.Number != nil {
		address.Number = *update.Number
	}
	if update.Complement != nil {
		address.Complement = *update.Complement
	}
	if update.City != nil {
		address.City = *update.City
	}
	if update.State != nil {
		address.State = *update.State
	}
}

// DoctorUpdate carries the doctor fields a partial update may change. CRM and
// specialty are immutable once registered.
type DoctorUpdate struct {
	Name    *string
	Email   *string
	Address *AddressUpdate
}

// DoctorService exposes doctor registry operations.
type DoctorService interface {
	Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error)
	Get(ctx context.Context, id uint) (*model.Doctor, error)
	List(ctx context.Context, page, size int) ([]model.Doctor, int64, error)
	Update(ctx context.Context, id uint, update DoctorUpdate) (*model.Doctor, error)
	Delete(ctx context.Context, id uint) error
}

type doctorService struct {
	repo  repository.DoctorRepository
	cache *cache.Client
}

// NewDoctorService builds a DoctorService with repository and cache.
func NewDoctorService(repo repository.DoctorRepository, cache *cache.Client) DoctorService {
	return &doctorService{repo: repo, cache: cache}
}

func (s *doctorService) Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	doctor.ID = 0
	doctor.Active = true
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *doctorService) Get(ctx context.Context, id uint) (*model.Doctor, error) {
	key := doctorCacheKey(id)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var doctor model.Doctor
		if err := json.Unmarshal(data, &doctor); err == nil {
			return &doctor, nil
		}
	}

	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDoctorNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(doctor); err == nil {
		_ = s.cache.Set(ctx, key, payload, entityCacheTTL)
	}
	return doctor, nil
}

func (s *doctorService) List(ctx context.Context, page, size int) ([]model.Doctor, int64, error) {
	return s.repo.ListActive(ctx, page, size)
}

// Update applies a field-by-field merge: fields absent from the request keep
// their stored values.
func (s *doctorService) Update(ctx context.Context, id uint, update DoctorUpdate) (*model.Doctor, error) {
	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDoctorNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		doctor.Name = *update.Name
	}
	if update.Email != nil {
		doctor.Email = *update.Email
	}
	if update.Address != nil {
		mergeAddress(&doctor.Address, update.Address)
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, doctorCacheKey(id))
	return doctor, nil
}

// Delete retires the doctor from new bookings. Existing consultations keep
// referencing the row.
func (s *doctorService) Delete(ctx context.Context, id uint) error {
	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDoctorNotFound
		}
		return err
	}

	doctor.Active = false
	if err := s.repo.Update(ctx, doctor); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, doctorCacheKey(id))
	return nil
}

func doctorCacheKey(id uint) string {
	return fmt.Sprintf("doctor:%d", id)
}
