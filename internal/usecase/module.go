package usecase

import (
	"go.uber.org/fx"

	"github.com/washmart/washmart/internal/config"
	"github.com/washmart/washmart/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCartUseCase,
	NewOrderUseCase,
	NewPaymentUseCase,
	newFulfillmentUseCase,
)

type fulfillmentParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
}

func newFulfillmentUseCase(p fulfillmentParams) *FulfillmentUseCase {
	return NewFulfillmentUseCase(p.Orders, p.Config.HoldFulfillment)
}
