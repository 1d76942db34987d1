package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vollmed/internal/model"
)

// ConsultationRepository defines consultation persistence operations.
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *model.Consultation) error
	Update(ctx context.Context, consultation *model.Consultation) error
	FindByID(ctx context.Context, id uint) (*model.Consultation, error)
	List(ctx context.Context, page, size int) ([]model.Consultation, int64, error)
	DoctorHasActiveAt(ctx context.Context, doctorID uint, at time.Time) (bool, error)
	PatientHasActiveOn(ctx context.Context, patientID uint, day time.Time) (bool, error)
}

type consultationRepository struct {
	db *gorm.DB
}

// NewConsultationRepository creates a new consultation repository.
func NewConsultationRepository(db *gorm.DB) ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	return dbFrom(ctx, r.db).Create(consultation).Error
}

func (r *consultationRepository) Update(ctx context.Context, consultation *model.Consultation) error {
	return dbFrom(ctx, r.db).Save(consultation).Error
}

func (r *consultationRepository) FindByID(ctx context.Context, id uint) (*model.Consultation, error) {
	var consultation model.Consultation
	if err := dbFrom(ctx, r.db).First(&consultation, id).Error; err != nil {
		return nil, err
	}
	return &consultation, nil
}

// List returns one page of consultations, most recent first.
func (r *consultationRepository) List(ctx context.Context, page, size int) ([]model.Consultation, int64, error) {
	var total int64
	if err := dbFrom(ctx, r.db).Model(&model.Consultation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var consultations []model.Consultation
	err := dbFrom(ctx, r.db).
		Order("scheduled_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&consultations).Error
	if err != nil {
		return nil, 0, err
	}
	return consultations, total, nil
}

// DoctorHasActiveAt reports whether the doctor has a non-cancelled
// consultation at exactly the given datetime. The count is a locking read:
// inside a REPEATABLE READ transaction a plain count would run against the
// snapshot pinned by the transaction's first read and miss an insert
// committed while waiting on the doctor row lock. FOR UPDATE reads the
// latest committed rows and locks the matched index range.
func (r *consultationRepository) DoctorHasActiveAt(ctx context.Context, doctorID uint, at time.Time) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Consultation{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND scheduled_at = ? AND cancel_reason IS NULL", doctorID, at).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PatientHasActiveOn reports whether the patient has a non-cancelled
// consultation on the same calendar day as the given datetime. Locking read
// for the same reason as DoctorHasActiveAt: two concurrent bookings for the
// same patient must not both count zero.
func (r *consultationRepository) PatientHasActiveOn(ctx context.Context, patientID uint, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Consultation{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("patient_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND cancel_reason IS NULL",
			patientID, start, end).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
