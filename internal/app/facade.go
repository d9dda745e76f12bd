package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/usecase"
)

// PaymentProvider is the gateway surface the facade needs.
type PaymentProvider interface {
	CreateSession(ctx context.Context, orderRef string, grossAmount int64) (string, error)
	FetchStatus(ctx context.Context, orderRef string) (*model.PaymentUpdate, error)
}

// CommerceFacade aggregates the order/payment lifecycle behind one surface
// used by HTTP handlers and background workers.
type CommerceFacade struct {
	auth        *usecase.AuthUseCase
	cart        *usecase.CartUseCase
	orders      *usecase.OrderUseCase
	payments    *usecase.PaymentUseCase
	fulfillment *usecase.FulfillmentUseCase
	gateway     PaymentProvider
	orderTTL    time.Duration
}

func NewCommerceFacade(
	auth *usecase.AuthUseCase,
	cart *usecase.CartUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	fulfillment *usecase.FulfillmentUseCase,
	gateway PaymentProvider,
	orderTTL time.Duration,
) *CommerceFacade {
	return &CommerceFacade{
		auth:        auth,
		cart:        cart,
		orders:      orders,
		payments:    payments,
		fulfillment: fulfillment,
		gateway:     gateway,
		orderTTL:    orderTTL,
	}
}

func (f *CommerceFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *CommerceFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *CommerceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

// Checkout turns the shopper's cart into one pending order per store and
// issues a payment session for each. Orders already created stay PENDING if a
// later gateway call fails; the expiry sweep reclaims them, so the partial
// result is returned alongside the error.
func (f *CommerceFacade) Checkout(ctx context.Context, userID int64, lines []model.CartLine) ([]model.Order, error) {
	groups, err := f.cart.GroupByStore(ctx, lines)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: cart has no resolvable lines", domainErrors.ErrValidation)
	}

	storeIDs := make([]int64, 0, len(groups))
	for storeID := range groups {
		storeIDs = append(storeIDs, storeID)
	}
	sort.Slice(storeIDs, func(i, j int) bool { return storeIDs[i] < storeIDs[j] })

	var created []model.Order
	for _, storeID := range storeIDs {
		order, err := f.orders.Build(ctx, userID, storeID, groups[storeID])
		if err != nil {
			return created, err
		}

		token, err := f.gateway.CreateSession(ctx, order.Number, order.TotalPrice)
		if err != nil {
			return created, err
		}
		if err := f.orders.AttachPaymentToken(ctx, order.ID, token); err != nil {
			return created, err
		}
		order.PaymentToken = &token
		created = append(created, *order)
	}

	return created, nil
}

func (f *CommerceFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *CommerceFacade) Order(ctx context.Context, userID int64, number string) (*model.Order, error) {
	return f.orders.GetForUser(ctx, userID, number)
}

// ReconcilePayment applies a gateway status report. Shared by the webhook
// handler and the status poller.
func (f *CommerceFacade) ReconcilePayment(ctx context.Context, update model.PaymentUpdate) (*model.Order, bool, error) {
	return f.payments.Reconcile(ctx, update)
}

// RefreshPaymentStatus is the pull path: ask the gateway for the current
// transaction status and feed the answer through the same reconciliation
// routine the webhook uses. A gateway call failure is returned as-is, distinct
// from any business status the call could have reported.
func (f *CommerceFacade) RefreshPaymentStatus(ctx context.Context, userID int64, number string) (*model.Order, bool, error) {
	if _, err := f.orders.GetForUser(ctx, userID, number); err != nil {
		return nil, false, err
	}

	update, err := f.gateway.FetchStatus(ctx, number)
	if err != nil {
		return nil, false, err
	}
	update.OrderRef = number

	return f.payments.Reconcile(ctx, *update)
}

// CheckPayment fetches the gateway status for one order without applying it.
func (f *CommerceFacade) CheckPayment(ctx context.Context, number string) (*model.PaymentUpdate, error) {
	return f.gateway.FetchStatus(ctx, number)
}

// PendingOrders returns a batch of orders awaiting payment for the poller.
func (f *CommerceFacade) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectPendingBatch(ctx, limit)
}

// ExpireStaleOrders sweeps pending orders past the configured age into EXPIRE.
func (f *CommerceFacade) ExpireStaleOrders(ctx context.Context) (int64, error) {
	return f.orders.ExpireStale(ctx, f.orderTTL)
}

// AdvanceLaundry moves an order's fulfillment status on behalf of staff.
func (f *CommerceFacade) AdvanceLaundry(ctx context.Context, staffID int64, number string, target model.LaundryStatus) (*model.Order, error) {
	staff, err := f.auth.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return f.fulfillment.Advance(ctx, staff, number, target)
}
