package handlers

import (
	"context"

	"github.com/washmart/washmart/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CheckoutFacade turns a shopper cart into per-store orders.
type CheckoutFacade interface {
	Checkout(ctx context.Context, userID int64, lines []model.CartLine) ([]model.Order, error)
}

// OrderFacade encapsulates shopper order reads exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID int64, number string) (*model.Order, error)
}

// PaymentFacade covers webhook and manual payment reconciliation.
type PaymentFacade interface {
	ReconcilePayment(ctx context.Context, update model.PaymentUpdate) (*model.Order, bool, error)
	RefreshPaymentStatus(ctx context.Context, userID int64, number string) (*model.Order, bool, error)
}

// FulfillmentFacade exposes staff laundry-status updates.
type FulfillmentFacade interface {
	AdvanceLaundry(ctx context.Context, staffID int64, number string, target model.LaundryStatus) (*model.Order, error)
}

// SweepFacade exposes the expiry sweep for the scheduler endpoint.
type SweepFacade interface {
	ExpireStaleOrders(ctx context.Context) (int64, error)
}

// CommerceFacade aggregates the full set of operations used across handlers.
type CommerceFacade interface {
	AuthFacade
	CheckoutFacade
	OrderFacade
	PaymentFacade
	FulfillmentFacade
	SweepFacade
}
