package model

// Product is a store-owned laundry service package. Price is in minor currency
// units.
type Product struct {
	ID      int64
	StoreID int64
	Name    string
	Price   int64
}
