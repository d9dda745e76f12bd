package di

import (
	"go.uber.org/fx"

	"github.com/washmart/washmart/internal/adapter/gateway"
	"github.com/washmart/washmart/internal/app"
	"github.com/washmart/washmart/internal/config"
	"github.com/washmart/washmart/internal/logger"
	"github.com/washmart/washmart/internal/pkg/auth"
	"github.com/washmart/washmart/internal/server/http/handlers"
	"github.com/washmart/washmart/internal/server/http/router"
	"github.com/washmart/washmart/internal/storage/postgres"
	"github.com/washmart/washmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		usecase.Module,
		fx.Provide(func(client gateway.Client) app.PaymentProvider { return client }),
		fx.Provide(func(facade *app.CommerceFacade) handlers.CommerceFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
