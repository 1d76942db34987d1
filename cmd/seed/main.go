package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vollmed/internal/config"
	"vollmed/internal/db"
	"vollmed/internal/model"
	"vollmed/internal/repository"
)

const bcryptCost = 10

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Doctor{},
		&model.Patient{},
		&model.Consultation{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	doctorRepo := repository.NewDoctorRepository(gormDB)
	patientRepo := repository.NewPatientRepository(gormDB)

	users := []struct {
		login, password, role string
	}{
		{"admin", getEnv("SEED_ADMIN_PASSWORD", "admin123"), model.RoleAdmin},
		{"recepcao", getEnv("SEED_STAFF_PASSWORD", "recepcao123"), model.RoleStaff},
	}
	for _, u := range users {
		created, err := seedUser(ctx, userRepo, u.login, u.password, u.role)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.login, err)
		}
		if created {
			log.Printf("Created user %s (%s)", u.login, u.role)
		}
	}

	doctors := []model.Doctor{
		{Name: "Ana Souza", Email: "ana.souza@voll.med", CRM: "123456", Specialty: model.SpecialtyCardiologia,
			Address: model.Address{Street: "Rua das Flores", Neighborhood: "Centro", PostalCode: "01000-000", Number: "100", City: "Sao Paulo", State: "SP"}},
		{Name: "Bruno Lima", Email: "bruno.lima@voll.med", CRM: "234567", Specialty: model.SpecialtyOrtopedia,
			Address: model.Address{Street: "Av. Paulista", Neighborhood: "Bela Vista", PostalCode: "01310-100", Number: "2000", City: "Sao Paulo", State: "SP"}},
		{Name: "Carla Mendes", Email: "carla.mendes@voll.med", CRM: "345678", Specialty: model.SpecialtyGinecologia,
			Address: model.Address{Street: "Rua Augusta", Neighborhood: "Consolacao", PostalCode: "01305-000", Number: "350", City: "Sao Paulo", State: "SP"}},
		{Name: "Diego Ferreira", Email: "diego.ferreira@voll.med", CRM: "456789", Specialty: model.SpecialtyDermatologia,
			Address: model.Address{Street: "Rua Oscar Freire", Neighborhood: "Jardins", PostalCode: "01426-000", Number: "80", City: "Sao Paulo", State: "SP"}},
	}
	seeded := 0
	for i := range doctors {
		doctors[i].Active = true
		created, err := seedDoctor(ctx, doctorRepo, &doctors[i])
		if err != nil {
			log.Fatalf("Failed to seed doctor %s: %v", doctors[i].CRM, err)
		}
		if created {
			seeded++
		}
	}
	log.Printf("Doctors seeded: %d new, %d existing", seeded, len(doctors)-seeded)

	patients := []model.Patient{
		{Name: "Eduardo Ramos", Email: "eduardo.ramos@example.com", Document: "390.533.447-05",
			Address: model.Address{Street: "Rua do Carmo", Neighborhood: "Se", PostalCode: "01019-020", Number: "15", City: "Sao Paulo", State: "SP"}},
		{Name: "Fernanda Alves", Email: "fernanda.alves@example.com", Document: "463.502.358-00",
			Address: model.Address{Street: "Rua da Gloria", Neighborhood: "Liberdade", PostalCode: "01510-001", Number: "220", City: "Sao Paulo", State: "SP"}},
	}
	seeded = 0
	for i := range patients {
		patients[i].Active = true
		created, err := seedPatient(ctx, patientRepo, &patients[i])
		if err != nil {
			log.Fatalf("Failed to seed patient %s: %v", patients[i].Document, err)
		}
		if created {
			seeded++
		}
	}
	log.Printf("Patients seeded: %d new, %d existing", seeded, len(patients)-seeded)

	log.Println("Seed completed successfully!")
}

func seedUser(ctx context.Context, repo repository.UserRepository, login, password, role string) (bool, error) {
	if _, err := repo.FindByLogin(ctx, login); err == nil {
		return false, nil
	} else if err != gorm.ErrRecordNotFound {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, err
	}
	user := &model.User{Login: login, PasswordHash: string(hash), Role: role}
	return true, repo.Create(ctx, user)
}

func seedDoctor(ctx context.Context, repo repository.DoctorRepository, doctor *model.Doctor) (bool, error) {
	if _, err := repo.FindByCRM(ctx, doctor.CRM); err == nil {
		return false, nil
	} else if err != gorm.ErrRecordNotFound {
		return false, err
	}
	return true, repo.Create(ctx, doctor)
}

func seedPatient(ctx context.Context, repo repository.PatientRepository, patient *model.Patient) (bool, error) {
	if _, err := repo.FindByDocument(ctx, patient.Document); err == nil {
		return false, nil
	} else if err != gorm.ErrRecordNotFound {
		return false, err
	}
	return true, repo.Create(ctx, patient)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
