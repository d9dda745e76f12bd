package repository

import (
	"context"
	"time"

	"github.com/washmart/washmart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Status mutations are conditional writes: the boolean result reports whether
// the guarded predicate matched and the row was updated.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatusIfPending(ctx context.Context, number string, status model.OrderStatus, paymentMethod *string) (bool, error)
	AttachPaymentToken(ctx context.Context, orderID int64, token string) (bool, error)
	UpdateLaundryStatus(ctx context.Context, number string, from, to model.LaundryStatus) (bool, error)
	SelectPendingBatch(ctx context.Context, limit int) ([]model.Order, error)
	ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
