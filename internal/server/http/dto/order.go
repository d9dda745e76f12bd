package dto

import "time"

// OrderLineResponse describes a priced order position.
type OrderLineResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

// OrderResponse describes an order as returned to shoppers.
type OrderResponse struct {
	Number        string              `json:"number"`
	StoreID       int64               `json:"store_id"`
	Status        string              `json:"status"`
	LaundryStatus string              `json:"laundry_status,omitempty"`
	TotalPrice    int64               `json:"total_price"`
	PaymentToken  *string             `json:"payment_token,omitempty"`
	PaymentMethod *string             `json:"payment_method,omitempty"`
	Lines         []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}
