package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, storeID *int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, StoreID: storeID}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub serves a fixed catalog.
type ProductRepositoryStub struct {
	Catalog map[int64]model.Product
	Err     error
}

// GetByID fetches one product from the catalog.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Catalog[id]; ok {
		product := p
		return &product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByIDs resolves the known subset of the requested products.
func (s *ProductRepositoryStub) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make(map[int64]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.Catalog[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

// OrderRepositoryStub keeps orders in-memory and mimics the conditional
// writes the real storage performs.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	orders map[string]*model.Order
	nextID int64

	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByNumberFn  func(context.Context, string) (*model.Order, error)
	ExpireFn       func(context.Context, time.Time) (int64, error)
	SelectBatchFn  func(context.Context, int) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus, *string) (bool, error)
}

// NewOrderRepositoryStub constructs an empty in-memory order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{orders: make(map[string]*model.Order), nextID: 1}
}

// Seed replaces a stored order outright.
func (s *OrderRepositoryStub) Seed(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		order.ID = s.nextID
		s.nextID++
	}
	stored := order
	s.orders[order.Number] = &stored
}

// Create stores the order and assigns an identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.Number]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *order
	stored.ID = s.nextID
	s.nextID++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.orders[stored.Number] = &stored
	result := stored
	return &result, nil
}

// GetByNumber returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[number]; ok {
		order := *o
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns all orders belonging to the user.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, nil
}

// UpdateStatusIfPending applies the guarded status write.
func (s *OrderRepositoryStub) UpdateStatusIfPending(ctx context.Context, number string, status model.OrderStatus, paymentMethod *string) (bool, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, number, status, paymentMethod)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[number]
	if !ok || o.Status != model.OrderStatusPending {
		return false, nil
	}
	o.Status = status
	if paymentMethod != nil {
		o.PaymentMethod = paymentMethod
	}
	o.UpdatedAt = time.Now()
	return true, nil
}

// AttachPaymentToken stores the token only once.
func (s *OrderRepositoryStub) AttachPaymentToken(ctx context.Context, orderID int64, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == orderID {
			if o.PaymentToken != nil {
				return false, nil
			}
			o.PaymentToken = &token
			return true, nil
		}
	}
	return false, nil
}

// UpdateLaundryStatus applies the guarded fulfillment write.
func (s *OrderRepositoryStub) UpdateLaundryStatus(ctx context.Context, number string, from, to model.LaundryStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[number]
	if !ok || o.LaundryStatus != from {
		return false, nil
	}
	o.LaundryStatus = to
	o.UpdatedAt = time.Now()
	return true, nil
}

// SelectPendingBatch returns stored pending orders up to the limit.
func (s *OrderRepositoryStub) SelectPendingBatch(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.orders {
		if o.Status == model.OrderStatusPending && len(result) < limit {
			result = append(result, *o)
		}
	}
	return result, nil
}

// ExpireOlderThan sweeps stored pending orders older than the cutoff.
func (s *OrderRepositoryStub) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, cutoff)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, o := range s.orders {
		if o.Status == model.OrderStatusPending && o.CreatedAt.Before(cutoff) {
			o.Status = model.OrderStatusExpire
			o.UpdatedAt = time.Now()
			count++
		}
	}
	return count, nil
}
