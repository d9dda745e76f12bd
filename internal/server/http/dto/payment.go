package dto

// PaymentNotification is the webhook payload posted by the payment gateway.
type PaymentNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	PaymentType       string `json:"payment_type"`
}

// PaymentRefreshResponse reports the order state after a manual status pull.
type PaymentRefreshResponse struct {
	Order   OrderResponse `json:"order"`
	Applied bool          `json:"applied"`
}
