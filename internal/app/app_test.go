package app

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
	"github.com/99minutos/customer-desk/internal/core/service"
	"github.com/99minutos/customer-desk/internal/pkg/auth"
	"github.com/99minutos/customer-desk/internal/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Env:             "test",
		LogLevel:        "error",
		ShutdownTimeout: time.Second,
		QueueWorkers:    2,
		Storage:         config.StorageConfig{Driver: config.DriverMemory, KeyPrefix: "desk:"},
		Auth:            config.AuthConfig{TokenTag: "token-", TokenFormat: config.TokenRandom},
	}
}

func TestModuleComposesGraphAndRuns(t *testing.T) {
	var (
		e         *echo.Echo
		users     *service.UserRegistry
		customers *service.CustomerRegistry
		session   *service.AuthSession
		store     ports.KeyValueStore
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(zerolog.New(io.Discard)),
		),
		fx.Populate(&e, &users, &customers, &session, &store),
	)
	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if e == nil || users == nil || customers == nil || session == nil {
		t.Fatal("expected graph to provide every component")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := users.Register(ctx, domain.RegisterData{
		Credentials: domain.Credentials{Email: "a@desk.test", Password: "p"},
		Username:    "a",
	}); err != nil {
		t.Fatalf("register through the graph: %v", err)
	}
	if !session.IsAuthenticated() {
		t.Fatal("registry must be bound to the session")
	}
	if _, found, _ := store.Get(ctx, ports.KeyCustomers); !found {
		t.Fatal("customers key must be established on start")
	}

	if err := fxApp.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestNewPasswordHasher(t *testing.T) {
	cfg := testConfig()
	if _, ok := newPasswordHasher(cfg).(auth.NoopHasher); !ok {
		t.Fatal("expected noop hasher by default")
	}
	cfg.Auth.VerifyPasswords = true
	if _, ok := newPasswordHasher(cfg).(*auth.BcryptHasher); !ok {
		t.Fatal("expected bcrypt hasher when verification is enabled")
	}
}

func TestNewTokenGenerator(t *testing.T) {
	cfg := testConfig()
	if _, ok := newTokenGenerator(cfg).(auth.RandomTokens); !ok {
		t.Fatal("expected random tokens by default")
	}
	cfg.Auth.TokenFormat = config.TokenJWT
	cfg.Auth.JWTSecret = "secret"
	if _, ok := newTokenGenerator(cfg).(*auth.JWTTokens); !ok {
		t.Fatal("expected JWT tokens")
	}
}
