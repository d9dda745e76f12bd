package model

import "time"

// OrderStatus describes the payment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusSettlement OrderStatus = "SETTLEMENT"
	OrderStatusExpire     OrderStatus = "EXPIRE"
	OrderStatusCanceled   OrderStatus = "CANCELED"
	OrderStatusDeny       OrderStatus = "DENY"
	OrderStatusFailure    OrderStatus = "FAILURE"
)

// IsTerminal reports whether the status permits no further payment transitions.
func (s OrderStatus) IsTerminal() bool {
	return s != OrderStatusPending
}

// IsFailed reports whether the order reached a terminal state without payment.
func (s OrderStatus) IsFailed() bool {
	switch s {
	case OrderStatusExpire, OrderStatusCanceled, OrderStatusDeny, OrderStatusFailure:
		return true
	}
	return false
}

// OrderLine is a priced line item snapshot taken at checkout.
type OrderLine struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitPrice   int64
	Quantity    int
}

// Subtotal returns the line contribution to the order total.
func (l OrderLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Order describes a store-scoped purchase created at checkout.
// TotalPrice is fixed at creation and never recomputed from the catalog.
type Order struct {
	ID            int64
	Number        string
	UserID        int64
	StoreID       int64
	Lines         []OrderLine
	TotalPrice    int64
	Status        OrderStatus
	LaundryStatus LaundryStatus
	PaymentMethod *string
	PaymentToken  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
