package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/99minutos/customer-desk/internal/core/ports"
	"github.com/99minutos/customer-desk/internal/core/service"
	"github.com/99minutos/customer-desk/internal/infrastructure/queue"
	"github.com/99minutos/customer-desk/internal/pkg/config"
	"github.com/99minutos/customer-desk/internal/pkg/metrics"
)

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     zerolog.Logger
	Config     *config.Config
	Server     *http.Server
	Queue      *queue.Dispatcher
	Users      *service.UserRegistry
	Customers  *service.CustomerRegistry
	Session    *service.AuthSession
}

// registerLifecycle starts the mutation queue, loads both registries,
// restores the persisted session and then serves HTTP. Stop runs in reverse.
func registerLifecycle(p lifecycleParams) {
	runCtx, cancelRun := context.WithCancel(context.Background())

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Queue.Start(runCtx)

			if err := p.Users.Initialize(ctx); err != nil {
				return err
			}
			if err := p.Customers.Initialize(ctx); err != nil {
				return err
			}
			if err := p.Session.Restore(ctx); err != nil {
				return err
			}
			metrics.RegistrySize.WithLabelValues(ports.KeyUsers).Set(float64(p.Users.Count()))
			metrics.RegistrySize.WithLabelValues(ports.KeyCustomers).Set(float64(p.Customers.Stats().Total))

			ln, err := net.Listen("tcp", p.Server.Addr)
			if err != nil {
				return err
			}
			p.Logger.Info().
				Str("addr", ln.Addr().String()).
				Int("users", p.Users.Count()).
				Bool("authenticated", p.Session.IsAuthenticated()).
				Msg("starting customer-desk")

			go func() {
				if err := p.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error().Err(err).Msg("http server terminated")
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}

			cancelRun()
			select {
			case <-p.Queue.Done():
			case <-shutdownCtx.Done():
				p.Logger.Warn().Msg("mutation queue did not drain before shutdown deadline")
			}

			p.Logger.Info().Msg("customer-desk stopped")
			return err
		},
	})
}
