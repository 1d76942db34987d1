package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
	"vollmed/internal/repository"
)

const (
	// CancelLeadTime is the minimum interval between a cancellation and the
	// consultation it cancels. Cancelling at exactly the boundary is allowed.
	CancelLeadTime = 24 * time.Hour

	// Clinic hours: slots start at 07:00, the last one at 18:00. Closed on
	// Sundays.
	clinicOpeningHour = 7
	clinicClosingHour = 19
)

// ScheduleInput describes a booking request. Either DoctorID or Specialty is
// set: a zero DoctorID asks the scheduler to pick an eligible doctor of the
// given specialty.
type ScheduleInput struct {
	PatientID uint
	DoctorID  uint
	Specialty model.Specialty
	At        time.Time
}

// ConsultationService validates and persists bookings and cancellations.
type ConsultationService interface {
	Schedule(ctx context.Context, input ScheduleInput) (*model.Consultation, error)
	Cancel(ctx context.Context, id uint, reason model.CancelReason) (*model.Consultation, error)
	Get(ctx context.Context, id uint) (*model.Consultation, error)
	List(ctx context.Context, page, size int) ([]model.Consultation, int64, error)
}

type consultationService struct {
	consultations repository.ConsultationRepository
	doctors       repository.DoctorRepository
	patients      repository.PatientRepository
	tx            repository.Transactor
	now           func() time.Time
	loc           *time.Location
}

// NewConsultationService creates a new consultation scheduler.
func NewConsultationService(
	consultations repository.ConsultationRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	tx repository.Transactor,
) ConsultationService {
	return &consultationService{
		consultations: consultations,
		doctors:       doctors,
		patients:      patients,
		tx:            tx,
		now:           time.Now,
		loc:           time.Local,
	}
}

// Schedule books a consultation. Doctor selection and the consultation insert
// run in one transaction with the doctor row locked, so two concurrent
// requests for the same doctor and slot serialize instead of double-booking.
func (s *consultationService) Schedule(ctx context.Context, input ScheduleInput) (*model.Consultation, error) {
	if err := s.validateSlot(input.At); err != nil {
		return nil, err
	}

	patient, err := s.patients.FindByID(ctx, input.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, err
	}
	if !patient.Active {
		return nil, apperrors.Validationf("patient is not active")
	}

	if input.DoctorID == 0 && input.Specialty == "" {
		return nil, apperrors.Validationf("specialty is required when no doctor is chosen")
	}

	var consultation *model.Consultation
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		busy, err := s.consultations.PatientHasActiveOn(ctx, patient.ID, input.At)
		if err != nil {
			return err
		}
		if busy {
			return apperrors.Validationf("patient already has a consultation on that day")
		}

		doctor, err := s.pickDoctor(ctx, input)
		if err != nil {
			return err
		}

		// Re-check on the locked row: another booking may have landed between
		// the pick and the lock.
		taken, err := s.consultations.DoctorHasActiveAt(ctx, doctor.ID, input.At)
		if err != nil {
			return err
		}
		if taken {
			if input.DoctorID != 0 {
				return apperrors.Validationf("doctor already has a consultation at that time")
			}
			return apperrors.ErrNoDoctorAvailable
		}

		consultation = &model.Consultation{
			DoctorID:    doctor.ID,
			PatientID:   patient.ID,
			ScheduledAt: input.At,
		}
		return s.consultations.Create(ctx, consultation)
	})
	if err != nil {
		return nil, err
	}
	return consultation, nil
}

// pickDoctor resolves and row-locks the doctor the booking will go to.
func (s *consultationService) pickDoctor(ctx context.Context, input ScheduleInput) (*model.Doctor, error) {
	if input.DoctorID != 0 {
		doctor, err := s.doctors.FindByIDForUpdate(ctx, input.DoctorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrDoctorNotFound
			}
			return nil, err
		}
		if !doctor.Active {
			return nil, apperrors.Validationf("doctor is not active")
		}
		return doctor, nil
	}

	doctor, err := s.doctors.PickFreeBySpecialty(ctx, input.Specialty, input.At)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoDoctorAvailable
		}
		return nil, err
	}
	return s.doctors.FindByIDForUpdate(ctx, doctor.ID)
}

// Cancel marks a consultation as cancelled. The record is kept; only the
// cancellation reason is set. Re-cancelling an already-cancelled consultation
// is an error, not a no-op.
func (s *consultationService) Cancel(ctx context.Context, id uint, reason model.CancelReason) (*model.Consultation, error) {
	if reason == "" {
		return nil, apperrors.Validationf("cancellation reason is required")
	}

	consultation, err := s.consultations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrConsultationNotFound
		}
		return nil, err
	}
	if consultation.CancelReason != nil {
		return nil, apperrors.Validationf("consultation is already cancelled")
	}
	if consultation.ScheduledAt.Sub(s.now()) < CancelLeadTime {
		return nil, apperrors.Validationf("consultations can only be cancelled at least 24 hours in advance")
	}

	consultation.CancelReason = &reason
	if err := s.consultations.Update(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

func (s *consultationService) Get(ctx context.Context, id uint) (*model.Consultation, error) {
	consultation, err := s.consultations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrConsultationNotFound
		}
		return nil, err
	}
	return consultation, nil
}

func (s *consultationService) List(ctx context.Context, page, size int) ([]model.Consultation, int64, error) {
	return s.consultations.List(ctx, page, size)
}

// validateSlot checks the slot against the clinic clock. Weekday and hour are
// read in the clinic's timezone, not the offset the client happened to encode,
// so the same instant validates the same way regardless of request formatting.
func (s *consultationService) validateSlot(at time.Time) error {
	if !at.After(s.now()) {
		return apperrors.Validationf("consultation must be scheduled in the future")
	}
	local := at.In(s.loc)
	if local.Weekday() == time.Sunday {
		return apperrors.Validationf("clinic is closed on Sundays")
	}
	if hour := local.Hour(); hour < clinicOpeningHour || hour >= clinicClosingHour {
		return apperrors.Validationf("consultations start between 07:00 and 18:00")
	}
	return nil
}
