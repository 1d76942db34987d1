package main

import (
	"log"
	"net/http"
	"os"

	_ "vollmed/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"vollmed/internal/auth"
	"vollmed/internal/cache"
	"vollmed/internal/config"
	"vollmed/internal/db"
	apperrors "vollmed/internal/errors"
	"vollmed/internal/handler"
	"vollmed/internal/model"
	"vollmed/internal/repository"
	"vollmed/internal/router"
	"vollmed/internal/service"
)

// @title Voll.med API
// @version 1.0
// @description Medical appointment API: doctor and patient registries, consultation scheduling and JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "vollmed-api").Logger()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Doctor{},
		&model.Patient{},
		&model.Consultation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	doctorRepo := repository.NewDoctorRepository(gormDB)
	patientRepo := repository.NewPatientRepository(gormDB)
	consultationRepo := repository.NewConsultationRepository(gormDB)
	transactor := repository.NewTransactor(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	gate := auth.Gate(tokenService, tokenStore, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, tokenStore)
	doctorService := service.NewDoctorService(doctorRepo, cacheClient)
	patientService := service.NewPatientService(patientRepo, cacheClient)
	consultationService := service.NewConsultationService(consultationRepo, doctorRepo, patientRepo, transactor)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	patientHandler := handler.NewPatientHandler(patientService)
	consultationHandler := handler.NewConsultationHandler(consultationService)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(logger)

	// Register routes
	router.Register(
		e,
		logger,
		gate,
		authHandler,
		doctorHandler,
		patientHandler,
		consultationHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
