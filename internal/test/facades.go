package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/washmart/washmart/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseTokenFn   func(string) (int64, error)
}

// Register delegates to the provided function or returns a default token.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "stub-token", nil
}

// Authenticate delegates to the provided function or returns a default token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "stub-token", nil
}

// ParseToken resolves a token to user id 1 unless configured otherwise.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}

// CheckoutFacadeStub simulates the checkout operation.
type CheckoutFacadeStub struct {
	CheckoutFn func(context.Context, int64, []model.CartLine) ([]model.Order, error)
}

// Checkout returns one pending order per distinct product store by default.
func (s CheckoutFacadeStub) Checkout(ctx context.Context, userID int64, lines []model.CartLine) ([]model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, lines)
	}
	token := "stub-payment-token"
	return []model.Order{{
		Number:       "stub-order",
		UserID:       userID,
		StoreID:      1,
		TotalPrice:   130000,
		Status:       model.OrderStatusPending,
		PaymentToken: &token,
	}}, nil
}

// OrderFacadeStub provides shopper order reads.
type OrderFacadeStub struct {
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	OrderFn  func(context.Context, int64, string) (*model.Order, error)
}

// Orders returns configured orders or a single default order.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{Number: "stub-order", UserID: userID, Status: model.OrderStatusPending}}, nil
}

// Order returns the configured order or a default pending one.
func (s OrderFacadeStub) Order(ctx context.Context, userID int64, number string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, number)
	}
	return &model.Order{Number: number, UserID: userID, Status: model.OrderStatusPending}, nil
}

// PaymentFacadeStub simulates reconciliation entry points.
type PaymentFacadeStub struct {
	ReconcileFn func(context.Context, model.PaymentUpdate) (*model.Order, bool, error)
	RefreshFn   func(context.Context, int64, string) (*model.Order, bool, error)
}

// ReconcilePayment delegates or settles the referenced order.
func (s PaymentFacadeStub) ReconcilePayment(ctx context.Context, update model.PaymentUpdate) (*model.Order, bool, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, update)
	}
	return &model.Order{Number: update.OrderRef, Status: model.OrderStatusSettlement}, true, nil
}

// RefreshPaymentStatus delegates or reports a settled order.
func (s PaymentFacadeStub) RefreshPaymentStatus(ctx context.Context, userID int64, number string) (*model.Order, bool, error) {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, userID, number)
	}
	return &model.Order{Number: number, UserID: userID, Status: model.OrderStatusSettlement}, true, nil
}

// FulfillmentFacadeStub simulates staff laundry-status updates.
type FulfillmentFacadeStub struct {
	AdvanceFn func(context.Context, int64, string, model.LaundryStatus) (*model.Order, error)
}

// AdvanceLaundry delegates or applies the requested target.
func (s FulfillmentFacadeStub) AdvanceLaundry(ctx context.Context, staffID int64, number string, target model.LaundryStatus) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, staffID, number, target)
	}
	return &model.Order{Number: number, LaundryStatus: target}, nil
}

// SweepFacadeStub counts sweep invocations.
type SweepFacadeStub struct {
	ExpireFn func(context.Context) (int64, error)
	Calls    int32
}

// ExpireStaleOrders delegates or reports zero expired orders.
func (s *SweepFacadeStub) ExpireStaleOrders(ctx context.Context) (int64, error) {
	atomic.AddInt32(&s.Calls, 1)
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx)
	}
	return 0, nil
}

// ReconcileCall records a ReconcilePayment invocation on the poller stub.
type ReconcileCall struct {
	Update model.PaymentUpdate
}

// PollerFacadeStub mimics poller interactions with the commerce facade.
type PollerFacadeStub struct {
	Batches      [][]model.Order
	PendingFn    func(context.Context, int) ([]model.Order, error)
	CheckFn      func(context.Context, string) (*model.PaymentUpdate, error)
	ReconcileFn  func(context.Context, model.PaymentUpdate) (*model.Order, bool, error)
	Reconciled   []ReconcileCall
	mu           sync.Mutex
	pendingCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *PollerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *PollerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingOrders returns batches from the configured queue.
func (s *PollerFacadeStub) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.pendingCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckPayment returns configured gateway data or a settlement report.
func (s *PollerFacadeStub) CheckPayment(ctx context.Context, number string) (*model.PaymentUpdate, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, number)
	}
	return &model.PaymentUpdate{OrderRef: number, Status: model.GatewayStatusSettlement}, nil
}

// ReconcilePayment records reconciliation requests.
func (s *PollerFacadeStub) ReconcilePayment(ctx context.Context, update model.PaymentUpdate) (*model.Order, bool, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, update)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciled = append(s.Reconciled, ReconcileCall{Update: update})
	return &model.Order{Number: update.OrderRef, Status: model.OrderStatusSettlement}, true, nil
}

// PaymentProviderStub fakes the gateway client for facade tests.
type PaymentProviderStub struct {
	CreateFn func(context.Context, string, int64) (string, error)
	FetchFn  func(context.Context, string) (*model.PaymentUpdate, error)
}

// CreateSession returns a configured or deterministic token.
func (s PaymentProviderStub) CreateSession(ctx context.Context, orderRef string, grossAmount int64) (string, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, orderRef, grossAmount)
	}
	return "token-" + orderRef, nil
}

// FetchStatus returns configured status or a settlement report.
func (s PaymentProviderStub) FetchStatus(ctx context.Context, orderRef string) (*model.PaymentUpdate, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, orderRef)
	}
	return &model.PaymentUpdate{OrderRef: orderRef, Status: model.GatewayStatusSettlement}, nil
}
