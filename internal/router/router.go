package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"vollmed/internal/auth"
	"vollmed/internal/handler"
	appmw "vollmed/internal/middleware"
	"vollmed/internal/model"
)

// Register wires middleware and routes. The auth gate runs on every request
// before dispatch; routes registered outside the secured group (login, docs,
// health) skip identity enforcement entirely.
func Register(
	e *echo.Echo,
	logger zerolog.Logger,
	gate echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	consultationHandler *handler.ConsultationHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(appmw.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(gate)

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/login", authHandler.Login)

	// Secured routes (require an authenticated identity)
	secured := e.Group("", auth.RequireAuth())

	secured.POST("/logout", authHandler.Logout)

	secured.GET("/doctors", doctorHandler.List)
	secured.GET("/doctors/:id", doctorHandler.Get)
	secured.POST("/doctors", doctorHandler.Create)
	secured.PUT("/doctors/:id", doctorHandler.Update)
	secured.DELETE("/doctors/:id", doctorHandler.Delete, auth.RequireRole(model.RoleAdmin))

	secured.GET("/patients", patientHandler.List)
	secured.GET("/patients/:id", patientHandler.Get)
	secured.POST("/patients", patientHandler.Create)
	secured.PUT("/patients/:id", patientHandler.Update)
	secured.DELETE("/patients/:id", patientHandler.Delete, auth.RequireRole(model.RoleAdmin))

	secured.GET("/consultations", consultationHandler.List)
	secured.GET("/consultations/:id", consultationHandler.Get)
	secured.POST("/consultations", consultationHandler.Schedule)
	secured.DELETE("/consultations/:id", consultationHandler.Cancel)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
