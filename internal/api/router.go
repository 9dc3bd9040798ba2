// Package api wires the gateway's HTTP surface: routes, middleware, error
// mapping, and metrics exposure.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/afya-yetu/casework-gateway/internal/api/handler"
	"github.com/afya-yetu/casework-gateway/internal/api/middleware"
	"github.com/afya-yetu/casework-gateway/internal/core/ports"
	"github.com/afya-yetu/casework-gateway/internal/core/service"
	"github.com/afya-yetu/casework-gateway/internal/infrastructure/upstream"
)

// Dependencies carries everything the router needs, pre-wired by main.
type Dependencies struct {
	Registry *upstream.Client
	Sessions *service.SessionService
	Store    ports.SessionStore
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("afya_gateway"))

	// --- Repositories over the registry ---
	clientRepo := upstream.NewClientRepository(deps.Registry)
	programRepo := upstream.NewProgramRepository(deps.Registry)
	categoryRepo := upstream.NewCategoryRepository(deps.Registry)
	enrollmentRepo := upstream.NewEnrollmentRepository(deps.Registry)
	dashboardRepo := upstream.NewDashboardRepository(deps.Registry)
	authRepo := upstream.NewAuthRepository(deps.Registry)

	// --- Services ---
	clientService := service.NewClientService(clientRepo, deps.Log)
	programService := service.NewProgramService(programRepo, categoryRepo, deps.Log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, clientRepo, programRepo, deps.Log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	clientHandler := handler.NewClientHandler(clientService)
	programHandler := handler.NewProgramHandler(programService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// --- Session routes (no gate) ---
	e.GET("/session", sessionHandler.Current)
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/logout", sessionHandler.Logout)
	e.POST("/session/check", sessionHandler.Check)

	// --- Self-registration (no session required) ---
	e.POST("/register", clientHandler.Register)

	// --- Case-work routes, gated behind the session ---
	views := e.Group("/views", middleware.RequireSession(deps.Sessions))

	views.GET("/clients", clientHandler.List)
	views.GET("/clients/search", clientHandler.Search)
	views.GET("/clients/:id", clientHandler.Get)
	views.GET("/clients/:id/profile", clientHandler.Profile)
	views.POST("/clients", clientHandler.Create)
	views.PUT("/clients/:id", clientHandler.Update)
	views.DELETE("/clients/:id", clientHandler.Delete)

	views.GET("/programs", programHandler.List)
	views.GET("/programs/new", programHandler.NewForm)
	views.GET("/programs/:id", programHandler.Get)
	views.GET("/programs/:id/edit", programHandler.EditForm)
	views.POST("/programs", programHandler.Create)
	views.PUT("/programs/:id", programHandler.Update)
	views.DELETE("/programs/:id", programHandler.Delete)

	views.GET("/categories", programHandler.Categories)
	views.GET("/categories/:id", programHandler.GetCategory)
	views.POST("/categories", programHandler.CreateCategory)
	views.PUT("/categories/:id", programHandler.UpdateCategory)
	views.DELETE("/categories/:id", programHandler.DeleteCategory)

	views.GET("/enrollments", enrollmentHandler.List)
	views.GET("/enrollments/new", enrollmentHandler.NewForm)
	views.GET("/enrollments/:id/edit", enrollmentHandler.EditForm)
	views.POST("/enrollments", enrollmentHandler.Enroll)
	views.PUT("/enrollments/:id", enrollmentHandler.Update)
	views.POST("/enrollments/:id/toggle", enrollmentHandler.ToggleActive)
	views.DELETE("/enrollments/:id", enrollmentHandler.Delete)

	views.GET("/dashboard", dashboardHandler.Summary)

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(authRepo, deps.Store)

	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
