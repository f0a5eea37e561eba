package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/astroconsulta/platform-api/internal/api/handler"
	"github.com/astroconsulta/platform-api/internal/api/middleware"
	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
	"github.com/astroconsulta/platform-api/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs, already constructed.
type Dependencies struct {
	AuthService ports.AuthService
	ClientSvc   ports.ClientService
	ChartSvc    ports.ChartService
	Users       ports.UserRepository
	Health      *handlers.HealthHandler
	Readiness   *handlers.HealthDependenciesHandler
	JWTSecret   string
	Log         zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("astro"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	clientHandler := handler.NewClientHandler(deps.ClientSvc, deps.Users)
	chartHandler := handler.NewChartHandler(deps.ChartSvc, deps.Users)

	auth := middleware.Auth(deps.JWTSecret)
	consultants := middleware.RBAC(domain.RoleAdmin, domain.RoleConsultant)
	calculators := middleware.RBAC(domain.RoleAdmin, domain.RoleConsultant, domain.RoleUser)

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)

	// --- Client routes (consultant tenancy enforced in the service) ---
	clients := e.Group("/api/clients", auth, consultants)
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.GET("/search", clientHandler.Search)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Chart routes ---
	// Quick calculation is anonymous: nothing is persisted and no client is
	// referenced, so it lives outside the authenticated group.
	e.POST("/api/charts/quick-calculate", chartHandler.QuickCalculate)

	charts := e.Group("/api/charts", auth, calculators)
	charts.POST("/natal", chartHandler.CalculateNatal)
	charts.GET("/natal/:id", chartHandler.Get)
	charts.POST("/natal/:id/transits", chartHandler.CalculateTransits)
	charts.POST("/natal/:id/solar-return", chartHandler.CalculateSolarReturn)
	charts.GET("/client/:id/charts", chartHandler.ListForClient)

	// --- Health probes (no auth required) ---
	e.GET("/health", deps.Health.Liveness)
	e.GET("/health/ready", deps.Readiness.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
