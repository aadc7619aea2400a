package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/99minutos/customer-desk/internal/app"
)

// @title                       Customer Desk API
// @version                     1.0
// @description                 User registration, a single auth session and customer records backed by a key-value store.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return ctx }),
		app.Module(),
	)

	run(ctx, application)
}
