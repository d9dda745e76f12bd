package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
)

// stubOrderRepository is shared by the order, payment, and fulfillment tests.
type stubOrderRepository struct {
	createFn        func(context.Context, *model.Order) (*model.Order, error)
	getFn           func(context.Context, string) (*model.Order, error)
	listFn          func(context.Context, int64) ([]model.Order, error)
	updateStatusFn  func(context.Context, string, model.OrderStatus, *string) (bool, error)
	attachTokenFn   func(context.Context, int64, string) (bool, error)
	updateLaundryFn func(context.Context, string, model.LaundryStatus, model.LaundryStatus) (bool, error)
	selectBatchFn   func(context.Context, int) ([]model.Order, error)
	expireFn        func(context.Context, time.Time) (int64, error)
}

func (s stubOrderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.createFn != nil {
		return s.createFn(ctx, order)
	}
	order.ID = 1
	return order, nil
}

func (s stubOrderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.getFn != nil {
		return s.getFn(ctx, number)
	}
	panic("not implemented")
}

func (s stubOrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID)
	}
	panic("not implemented")
}

func (s stubOrderRepository) UpdateStatusIfPending(ctx context.Context, number string, status model.OrderStatus, method *string) (bool, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, number, status, method)
	}
	panic("not implemented")
}

func (s stubOrderRepository) AttachPaymentToken(ctx context.Context, orderID int64, token string) (bool, error) {
	if s.attachTokenFn != nil {
		return s.attachTokenFn(ctx, orderID, token)
	}
	panic("not implemented")
}

func (s stubOrderRepository) UpdateLaundryStatus(ctx context.Context, number string, from, to model.LaundryStatus) (bool, error) {
	if s.updateLaundryFn != nil {
		return s.updateLaundryFn(ctx, number, from, to)
	}
	panic("not implemented")
}

func (s stubOrderRepository) SelectPendingBatch(ctx context.Context, limit int) ([]model.Order, error) {
	if s.selectBatchFn != nil {
		return s.selectBatchFn(ctx, limit)
	}
	panic("not implemented")
}

func (s stubOrderRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.expireFn != nil {
		return s.expireFn(ctx, cutoff)
	}
	panic("not implemented")
}

type stubProductRepository struct {
	products map[int64]model.Product
	err      error
}

func (s stubProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (s stubProductRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make(map[int64]model.Product)
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func washCatalog() stubProductRepository {
	return stubProductRepository{products: map[int64]model.Product{
		10: {ID: 10, StoreID: 1, Name: "Wash & Fold 5kg", Price: 50000},
		11: {ID: 11, StoreID: 1, Name: "Express Ironing", Price: 30000},
		20: {ID: 20, StoreID: 2, Name: "Dry Cleaning Suit", Price: 90000},
	}}
}

func TestOrderBuildComputesSnapshotTotal(t *testing.T) {
	var created *model.Order
	uc := NewOrderUseCase(stubOrderRepository{createFn: func(ctx context.Context, order *model.Order) (*model.Order, error) {
		order.ID = 42
		created = order
		return order, nil
	}}, washCatalog())

	order, err := uc.Build(context.Background(), 7, 1, []model.CartLine{
		{ProductID: 10, Quantity: 2},
		{ProductID: 11, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.TotalPrice != 130000 {
		t.Fatalf("expected total 130000, got %d", order.TotalPrice)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.LaundryStatus != model.LaundryStatusAwaitingProcessing {
		t.Fatalf("expected awaiting processing, got %s", order.LaundryStatus)
	}
	if order.Number == "" {
		t.Fatal("expected order number to be assigned")
	}
	if len(created.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(created.Lines))
	}
	if created.Lines[0].UnitPrice != 50000 || created.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected first line snapshot %+v", created.Lines[0])
	}
}

func TestOrderBuildRejectsEmptyLines(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{createFn: func(context.Context, *model.Order) (*model.Order, error) {
		t.Fatal("create should not be called for empty lines")
		return nil, nil
	}}, washCatalog())

	if _, err := uc.Build(context.Background(), 7, 1, nil); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderBuildRejectsNonPositiveQuantity(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{}, washCatalog())

	_, err := uc.Build(context.Background(), 7, 1, []model.CartLine{{ProductID: 10, Quantity: 0}})
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderBuildRejectsMissingProduct(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{}, washCatalog())

	_, err := uc.Build(context.Background(), 7, 1, []model.CartLine{{ProductID: 99, Quantity: 1}})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestOrderBuildRejectsCrossStoreProduct(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{}, washCatalog())

	_, err := uc.Build(context.Background(), 7, 1, []model.CartLine{{ProductID: 20, Quantity: 1}})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found error for cross-store product, got %v", err)
	}
}

func TestAttachPaymentTokenOnce(t *testing.T) {
	calls := 0
	uc := NewOrderUseCase(stubOrderRepository{attachTokenFn: func(ctx context.Context, orderID int64, token string) (bool, error) {
		calls++
		return calls == 1, nil
	}}, washCatalog())

	if err := uc.AttachPaymentToken(context.Background(), 42, "tok"); err != nil {
		t.Fatalf("unexpected error on first attach: %v", err)
	}
	if err := uc.AttachPaymentToken(context.Background(), 42, "tok-2"); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict on second attach, got %v", err)
	}
}

func TestGetForUserChecksOwnership(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{getFn: func(ctx context.Context, number string) (*model.Order, error) {
		return &model.Order{Number: number, UserID: 7}, nil
	}}, washCatalog())

	if _, err := uc.GetForUser(context.Background(), 7, "n-1"); err != nil {
		t.Fatalf("unexpected error for owner: %v", err)
	}
	if _, err := uc.GetForUser(context.Background(), 8, "n-1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
}

func TestExpireStale(t *testing.T) {
	var gotCutoff time.Time
	uc := NewOrderUseCase(stubOrderRepository{expireFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
		gotCutoff = cutoff
		return 3, nil
	}}, washCatalog())

	count, err := uc.ExpireStale(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 expired orders, got %d", count)
	}
	wantCutoff := time.Now().Add(-24 * time.Hour)
	if gotCutoff.Before(wantCutoff.Add(-time.Minute)) || gotCutoff.After(wantCutoff.Add(time.Minute)) {
		t.Fatalf("cutoff %v not near expected %v", gotCutoff, wantCutoff)
	}
}

func TestExpireStaleRejectsBadThreshold(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{}, washCatalog())
	if _, err := uc.ExpireStale(context.Background(), 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
