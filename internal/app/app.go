package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/washmart/washmart/internal/config"
	"github.com/washmart/washmart/internal/usecase"
	"github.com/washmart/washmart/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newCommerceFacade,
		newHTTPServer,
		newStatusPoller,
		newExpirySweeper,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth        *usecase.AuthUseCase
	Cart        *usecase.CartUseCase
	Orders      *usecase.OrderUseCase
	Payments    *usecase.PaymentUseCase
	Fulfillment *usecase.FulfillmentUseCase
	Gateway     PaymentProvider
	Config      *config.Config
}

func newCommerceFacade(p facadeParams) *CommerceFacade {
	return NewCommerceFacade(p.Auth, p.Cart, p.Orders, p.Payments, p.Fulfillment, p.Gateway, p.Config.OrderTTL)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *CommerceFacade
	Config *config.Config
	Logger *slog.Logger
}

func newStatusPoller(p workerParams) *worker.StatusPoller {
	return worker.NewStatusPoller(
		p.Facade,
		p.Config.PaymentPollInterval,
		p.Config.PollBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

func newExpirySweeper(p workerParams) *worker.ExpirySweeper {
	return worker.NewExpirySweeper(p.Facade, p.Config.SweepInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Poller     *worker.StatusPoller
	Sweeper    *worker.ExpirySweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting washmart", slog.String("addr", p.Server.Addr))
			p.Poller.Start(ctx)
			p.Sweeper.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()
			p.Poller.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("washmart stopped")
			return nil
		},
	})
}
