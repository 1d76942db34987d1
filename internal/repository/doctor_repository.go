package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vollmed/internal/model"
)

// DoctorRepository defines doctor persistence operations.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Update(ctx context.Context, doctor *model.Doctor) error
	FindByID(ctx context.Context, id uint) (*model.Doctor, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Doctor, error)
	FindByCRM(ctx context.Context, crm string) (*model.Doctor, error)
	ListActive(ctx context.Context, page, size int) ([]model.Doctor, int64, error)
	PickFreeBySpecialty(ctx context.Context, specialty model.Specialty, at time.Time) (*model.Doctor, error)
}

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository.
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return dbFrom(ctx, r.db).Create(doctor).Error
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	return dbFrom(ctx, r.db).Save(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, id uint) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := dbFrom(ctx, r.db).First(&doctor, id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// FindByIDForUpdate locks the doctor row for the duration of the enclosing
// transaction. Concurrent bookings of the same doctor serialize on this lock.
func (r *doctorRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Doctor, error) {
	var doctor model.Doctor
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByCRM(ctx context.Context, crm string) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := dbFrom(ctx, r.db).Where("crm = ?", crm).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// ListActive returns one page of active doctors ordered by name, plus the
// total count of active doctors.
func (r *doctorRepository) ListActive(ctx context.Context, page, size int) ([]model.Doctor, int64, error) {
	var total int64
	if err := dbFrom(ctx, r.db).Model(&model.Doctor{}).
		Where("active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []model.Doctor
	err := dbFrom(ctx, r.db).
		Where("active = ?", true).
		Order("name").
		Limit(size).
		Offset((page - 1) * size).
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// PickFreeBySpecialty picks one uniformly random active doctor of the given
// specialty with no active consultation at exactly the given datetime.
// Returns gorm.ErrRecordNotFound when the eligible set is empty.
func (r *doctorRepository) PickFreeBySpecialty(ctx context.Context, specialty model.Specialty, at time.Time) (*model.Doctor, error) {
	booked := dbFrom(ctx, r.db).Model(&model.Consultation{}).
		Select("doctor_id").
		Where("scheduled_at = ? AND cancel_reason IS NULL", at)

	var doctor model.Doctor
	err := dbFrom(ctx, r.db).
		Where("active = ? AND specialty = ?", true, specialty).
		Where("id NOT IN (?)", booked).
		Order("RAND()").
		Take(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}
