package model

// CartLine is a shopper cart entry consumed at checkout.
type CartLine struct {
	ProductID int64
	Quantity  int
}
