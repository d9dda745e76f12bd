package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/domain/repository"
)

// OrderUseCase encapsulates order creation and shopper-facing reads.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products}
}

// Build creates a pending order for one store from a validated line group.
// Line prices are snapshotted from the catalog here and the total is computed
// exactly once; it is never recomputed from live prices afterwards.
func (u *OrderUseCase) Build(ctx context.Context, userID, storeID int64, lines []model.CartLine) (*model.Order, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	catalog, err := u.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		Number:        uuid.NewString(),
		UserID:        userID,
		StoreID:       storeID,
		Status:        model.OrderStatusPending,
		LaundryStatus: model.LaundryStatusAwaitingProcessing,
	}

	for _, line := range lines {
		product, ok := catalog[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d", domainErrors.ErrNotFound, line.ProductID)
		}
		if product.StoreID != storeID {
			return nil, fmt.Errorf("%w: product %d does not belong to store %d", domainErrors.ErrNotFound, line.ProductID, storeID)
		}
		orderLine := model.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
		}
		order.Lines = append(order.Lines, orderLine)
		order.TotalPrice += orderLine.Subtotal()
	}

	return u.orders.Create(ctx, order)
}

// AttachPaymentToken stores the gateway session token on an order. A second
// attach is a caller error: duplicate payment sessions must not be issued.
func (u *OrderUseCase) AttachPaymentToken(ctx context.Context, orderID int64, token string) error {
	attached, err := u.orders.AttachPaymentToken(ctx, orderID, token)
	if err != nil {
		return err
	}
	if !attached {
		return fmt.Errorf("%w: order %d already has a payment token", domainErrors.ErrConflict, orderID)
	}
	return nil
}

// ListByUser returns the shopper's orders sorted by creation time.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// GetForUser returns one order after checking ownership.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID int64, number string) (*model.Order, error) {
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// SelectPendingBatch returns pending orders for the status poller.
func (u *OrderUseCase) SelectPendingBatch(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectPendingBatch(ctx, limit)
}

// ExpireStale transitions every pending order older than ttl to EXPIRE and
// returns the number of transitions. Running it again immediately is a no-op
// since the first run drained the eligible set.
func (u *OrderUseCase) ExpireStale(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, fmt.Errorf("%w: expiry threshold must be positive", domainErrors.ErrValidation)
	}
	count, err := u.orders.ExpireOlderThan(ctx, time.Now().Add(-ttl))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
