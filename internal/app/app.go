// Package app wires the customer-desk components into an fx graph.
package app

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/99minutos/customer-desk/internal/api"
	"github.com/99minutos/customer-desk/internal/api/handler"
	"github.com/99minutos/customer-desk/internal/core/navigation"
	"github.com/99minutos/customer-desk/internal/core/ports"
	"github.com/99minutos/customer-desk/internal/core/service"
	"github.com/99minutos/customer-desk/internal/infrastructure/queue"
	"github.com/99minutos/customer-desk/internal/infrastructure/storage"
	"github.com/99minutos/customer-desk/internal/pkg/auth"
	"github.com/99minutos/customer-desk/internal/pkg/config"
	"github.com/99minutos/customer-desk/pkg/logger"
)

const serviceName = "customer-desk"

// Module builds the whole application. Extra options are appended last so
// callers can fx.Replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		fx.Provide(
			config.Load,
			newLogger,
			newStorage,
			func(b storage.Backend) ports.KeyValueStore { return b },
			newQueue,
			func(d *queue.Dispatcher) ports.MutationQueue { return d },
			newPasswordHasher,
			newTokenGenerator,
			newGuard,
			newNavigator,
			func(r *navigation.Router) ports.Navigator { return r },
			newUserRegistry,
			newAuthSession,
			newCustomerRegistry,
			newEcho,
			newHTTPServer,
		),
		fx.Invoke(registerLifecycle),
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
}

func newStorage(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (storage.Backend, error) {
	b, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage opened")
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return b.Close() },
	})
	return b, nil
}

func newQueue(cfg *config.Config, log zerolog.Logger) *queue.Dispatcher {
	return queue.NewDispatcher(cfg.QueueWorkers, logger.Component(log, "queue"))
}

func newPasswordHasher(cfg *config.Config) ports.PasswordHasher {
	if cfg.Auth.VerifyPasswords {
		return auth.NewBcryptHasher(0)
	}
	return auth.NoopHasher{}
}

func newTokenGenerator(cfg *config.Config) ports.TokenGenerator {
	if cfg.Auth.TokenFormat == config.TokenJWT {
		return auth.NewJWTTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}
	return auth.RandomTokens{Tag: cfg.Auth.TokenTag}
}

func newGuard() *navigation.Guard {
	return navigation.NewGuard(navigation.DefaultRoutes)
}

func newNavigator(guard *navigation.Guard, log zerolog.Logger) *navigation.Router {
	return navigation.NewRouter(guard, logger.Component(log, "navigation"))
}

type registryParams struct {
	fx.In

	Store  ports.KeyValueStore
	Queue  ports.MutationQueue
	Hasher ports.PasswordHasher
	Logger zerolog.Logger
}

func newUserRegistry(p registryParams) *service.UserRegistry {
	return service.NewUserRegistry(p.Store, p.Queue, p.Hasher, logger.Component(p.Logger, "users"))
}

type sessionParams struct {
	fx.In

	Users     *service.UserRegistry
	Store     ports.KeyValueStore
	Navigator ports.Navigator
	Tokens    ports.TokenGenerator
	Hasher    ports.PasswordHasher
	Logger    zerolog.Logger
}

// newAuthSession also binds the session to the user registry so that
// registration logs the new user in.
func newAuthSession(p sessionParams) *service.AuthSession {
	s := service.NewAuthSession(p.Users, p.Store, p.Navigator, p.Tokens, p.Hasher, logger.Component(p.Logger, "session"))
	p.Users.BindSession(s)
	return s
}

func newCustomerRegistry(p registryParams) *service.CustomerRegistry {
	return service.NewCustomerRegistry(p.Store, p.Queue, logger.Component(p.Logger, "customers"))
}

type routerParams struct {
	fx.In

	Config    *config.Config
	Logger    zerolog.Logger
	Users     *service.UserRegistry
	Session   *service.AuthSession
	Customers *service.CustomerRegistry
	Navigator *navigation.Router
	Guard     *navigation.Guard
	Storage   storage.Backend
}

func newEcho(p routerParams) *echo.Echo {
	return api.NewRouter(api.Deps{
		Log:           logger.Component(p.Logger, "http"),
		Users:         p.Users,
		Session:       p.Session,
		Customers:     p.Customers,
		Navigator:     p.Navigator,
		Guard:         p.Guard,
		RequireBearer: p.Config.Auth.TokenFormat == config.TokenJWT,
		Ready:         map[string]handler.Pinger{"storage": p.Storage},
	})
}

func newHTTPServer(cfg *config.Config, e *echo.Echo) *http.Server {
	return &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}
}
