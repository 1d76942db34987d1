package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"vollmed/internal/model"
)

func TestDoctorRepository_PickFreeBySpecialty(t *testing.T) {
	query := `SELECT \* FROM .doctors. WHERE active = \? AND specialty = \? AND id NOT IN \(SELECT .?doctor_id.? FROM .consultations. WHERE scheduled_at = \? AND cancel_reason IS NULL\) ORDER BY RAND\(\) LIMIT`

	t.Run("a free doctor of the specialty is returned", func(t *testing.T) {
		db, mock := openMockDB(t)
		repo := NewDoctorRepository(db)

		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty", "active"}).
				AddRow(3, "Dr. Lima", "CARDIOLOGIA", true))

		doctor, err := repo.PickFreeBySpecialty(context.Background(), model.SpecialtyCardiologia, slotTime)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), doctor.ID)
		assert.Equal(t, model.SpecialtyCardiologia, doctor.Specialty)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty eligible set reads as record not found", func(t *testing.T) {
		db, mock := openMockDB(t)
		repo := NewDoctorRepository(db)

		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty", "active"}))

		doctor, err := repo.PickFreeBySpecialty(context.Background(), model.SpecialtyCardiologia, slotTime)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, doctor)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDoctorRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewDoctorRepository(db)

	mock.ExpectQuery(`SELECT \* FROM .doctors. WHERE id = \? LIMIT \? FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "active"}).AddRow(3, "Dr. Lima", true))

	doctor, err := repo.FindByIDForUpdate(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), doctor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
