package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/MezeLaw/iris-ui/internal/api/handler"
	"github.com/MezeLaw/iris-ui/internal/api/middleware"
	"github.com/MezeLaw/iris-ui/internal/api/render"
	"github.com/MezeLaw/iris-ui/internal/core/ports"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	CookieName   string
	Store        ports.SessionStore
	Redis        *redis.Client
	Auth         ports.AuthGateway
	Patients     ports.PatientGateway
	Appointments ports.AppointmentGateway
	Reports      ports.ReportGateway
	Users        ports.UserGateway
	Log          zerolog.Logger

	// Metrics overrides the Prometheus registry for the HTTP middleware.
	// Defaults to the global registry; tests inject their own.
	Metrics  prometheus.Registerer
	Gatherer prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	registerer := d.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "irisui",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Store, d.Log)
	pages := handler.NewPageHandler(d.Patients, d.Appointments, d.Reports, d.Users, d.Log)

	e.Use(middleware.Session(middleware.SessionConfig{
		CookieName:  d.CookieName,
		Store:       d.Store,
		OnFirstSeen: authHandler.ValidateStoredToken,
		Log:         d.Log,
	}))

	// --- Public routes ---
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)
	e.POST("/logout", authHandler.Logout)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/healthz", handler.NewHealthHandler().Liveness)
	e.GET("/healthz/ready", handler.NewReadinessHandler(d.Redis).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))

	// --- Protected routes ---
	authed := e.Group("", middleware.Guard("authenticated", middleware.Authenticated))
	authed.GET("/", pages.Dashboard)
	authed.GET("/patients", pages.Patients)
	authed.GET("/patients/new", pages.PatientNew)
	authed.POST("/patients", pages.PatientCreate)
	authed.GET("/patients/:id", pages.PatientDetail)
	authed.GET("/patients/:id/edit", pages.PatientEdit)
	authed.POST("/patients/:id", pages.PatientUpdate)
	authed.POST("/patients/:id/delete", pages.PatientDelete)
	authed.GET("/appointments", pages.Appointments)
	authed.GET("/appointments/new", pages.AppointmentNew)
	authed.POST("/appointments", pages.AppointmentCreate)
	authed.POST("/appointments/:id/status", pages.AppointmentStatus)
	authed.GET("/reports", pages.Reports)

	// --- Admin-only routes ---
	admin := e.Group("/users",
		middleware.Guard("authenticated", middleware.Authenticated),
		middleware.Guard("admin", middleware.AdminOnly),
	)
	admin.GET("", pages.Users)

	// Catch-all: unmatched paths go home.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/")
	})

	return e, nil
}
