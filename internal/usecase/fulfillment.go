package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/domain/repository"
)

// FulfillmentUseCase advances the laundry status of an order on behalf of
// store staff. Whether failed payment blocks fulfillment progress is a policy
// decision, carried here as a flag.
type FulfillmentUseCase struct {
	orders       repository.OrderRepository
	holdOnFailed bool
}

// NewFulfillmentUseCase constructs FulfillmentUseCase.
func NewFulfillmentUseCase(orders repository.OrderRepository, holdOnFailedPayment bool) *FulfillmentUseCase {
	return &FulfillmentUseCase{orders: orders, holdOnFailed: holdOnFailedPayment}
}

// Advance moves an order's laundry status to target. The staff member must
// belong to the order's store. The transition is a conditional write keyed on
// the observed current status, so concurrent staff updates cannot skip steps.
func (u *FulfillmentUseCase) Advance(ctx context.Context, staff *model.User, number string, target model.LaundryStatus) (*model.Order, error) {
	if !model.ValidLaundryStatus(target) {
		return nil, fmt.Errorf("%w: unknown laundry status %q", domainErrors.ErrValidation, target)
	}
	if staff == nil || !staff.IsStaff() {
		return nil, domainErrors.ErrUnauthorized
	}

	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if *staff.StoreID != order.StoreID {
		return nil, domainErrors.ErrUnauthorized
	}

	if u.holdOnFailed && order.Status.IsFailed() {
		return nil, fmt.Errorf("%w: payment status %s blocks fulfillment", domainErrors.ErrConflict, order.Status)
	}

	if !model.CanTransitionLaundry(order.LaundryStatus, target) {
		return nil, fmt.Errorf("%w: cannot move laundry status from %s to %s",
			domainErrors.ErrConflict, order.LaundryStatus, target)
	}

	applied, err := u.orders.UpdateLaundryStatus(ctx, number, order.LaundryStatus, target)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("%w: laundry status changed concurrently", domainErrors.ErrConflict)
	}

	order.LaundryStatus = target
	return order, nil
}
