package dto

// CheckoutLine describes a single cart position.
type CheckoutLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest carries the shopper cart to the checkout endpoint.
type CheckoutRequest struct {
	Lines []CheckoutLine `json:"lines"`
}

// CheckoutResponse lists the orders created from the cart, one per store.
type CheckoutResponse struct {
	Orders []OrderResponse `json:"orders"`
}
