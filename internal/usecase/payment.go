package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/domain/repository"
)

// PaymentUseCase applies gateway-reported payment statuses to orders. Both the
// webhook push path and the status poll pull path go through Reconcile, so the
// mapping and the terminal-state guard exist in exactly one place.
type PaymentUseCase struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, logger: logger}
}

// Reconcile applies one gateway status report to the referenced order.
// The returned boolean reports whether a transition was applied. Replayed
// reports and still-pending reports are no-ops; a terminal report conflicting
// with an already terminal order is logged as an anomaly and discarded, never
// overwritten.
func (u *PaymentUseCase) Reconcile(ctx context.Context, update model.PaymentUpdate) (*model.Order, bool, error) {
	target, transition, known := model.MapGatewayStatus(update.Status)
	if !known {
		return nil, false, fmt.Errorf("%w: unknown gateway status %q", domainErrors.ErrValidation, update.Status)
	}

	order, err := u.orders.GetByNumber(ctx, update.OrderRef)
	if err != nil {
		return nil, false, err
	}

	if !transition {
		return order, false, nil
	}

	var method *string
	if update.PaymentMethod != "" {
		method = &update.PaymentMethod
	}

	applied, err := u.orders.UpdateStatusIfPending(ctx, update.OrderRef, target, method)
	if err != nil {
		return nil, false, err
	}
	if applied {
		order.Status = target
		if method != nil {
			order.PaymentMethod = method
		}
		return order, true, nil
	}

	// The conditional write did not match: the order left PENDING between the
	// read above and the update, or was already terminal.
	current, err := u.orders.GetByNumber(ctx, update.OrderRef)
	if err != nil {
		return nil, false, err
	}
	if current.Status == target {
		return current, false, nil
	}

	u.logger.Warn("conflicting payment report discarded",
		slog.String("order", update.OrderRef),
		slog.String("current_status", string(current.Status)),
		slog.String("reported_status", string(update.Status)),
	)
	return current, false, fmt.Errorf("%w: order %s is %s, report %s ignored",
		domainErrors.ErrConflict, update.OrderRef, current.Status, update.Status)
}
