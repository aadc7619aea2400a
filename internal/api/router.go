package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/customer-desk/docs"
	"github.com/99minutos/customer-desk/internal/api/handler"
	"github.com/99minutos/customer-desk/internal/api/middleware"
	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

// Deps are the components the HTTP layer serves.
type Deps struct {
	Log       zerolog.Logger
	Users     ports.UserRegistry
	Session   ports.AuthSession
	Customers ports.CustomerRegistry
	Navigator ports.Navigator
	Guard     middleware.RouteGuard
	// RequireBearer makes protected routes demand the session token in the
	// Authorization header.
	RequireBearer bool
	// Ready lists the dependencies checked by /health/ready, by name.
	Ready map[string]handler.Pinger

	// Registerer and Gatherer back the HTTP metrics and /metrics.
	// Nil means the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registerer, gatherer := d.Registerer, d.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "customer_desk",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Users, d.Session)
	userHandler := handler.NewUserHandler(d.Users)
	customerHandler := handler.NewCustomerHandler(d.Customers)
	navHandler := handler.NewNavigationHandler(d.Navigator, d.Session)
	var sessionOpts []middleware.SessionOption
	if d.RequireBearer {
		sessionOpts = append(sessionOpts, middleware.WithBearerRequired())
	}
	protected := middleware.RequireSession(d.Session, d.Guard, domain.RouteHome, sessionOpts...)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)

	// --- Users (protected) ---
	users := v1.Group("/users", protected)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)

	// --- Customers (protected) ---
	customers := v1.Group("/customers", protected)
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.GET("/stats", customerHandler.Stats)
	customers.GET("/monthly", customerHandler.Monthly)
	customers.GET("/:id", customerHandler.Get)
	customers.PATCH("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)

	// --- Navigation ---
	v1.GET("/navigation", navHandler.Current)
	v1.POST("/navigation/:route", navHandler.Navigate)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Ready)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
