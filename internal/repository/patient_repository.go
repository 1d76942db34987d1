package repository

import (
	"context"

	"gorm.io/gorm"

	"vollmed/internal/model"
)

// PatientRepository defines patient persistence operations.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Update(ctx context.Context, patient *model.Patient) error
	FindByID(ctx context.Context, id uint) (*model.Patient, error)
	FindByDocument(ctx context.Context, document string) (*model.Patient, error)
	ListActive(ctx context.Context, page, size int) ([]model.Patient, int64, error)
}

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository.
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return dbFrom(ctx, r.db).Create(patient).Error
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	return dbFrom(ctx, r.db).Save(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id uint) (*model.Patient, error) {
	var patient model.Patient
	if err := dbFrom(ctx, r.db).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByDocument(ctx context.Context, document string) (*model.Patient, error) {
	var patient model.Patient
	if err := dbFrom(ctx, r.db).Where("document = ?", document).First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// ListActive returns one page of active patients ordered by name, plus the
// total count of active patients.
func (r *patientRepository) ListActive(ctx context.Context, page, size int) ([]model.Patient, int64, error) {
	var total int64
	if err := dbFrom(ctx, r.db).Model(&model.Patient{}).
		Where("active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []model.Patient
	err := dbFrom(ctx, r.db).
		Where("active = ?", true).
		Order("name").
		Limit(size).
		Offset((page - 1) * size).
		Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}
