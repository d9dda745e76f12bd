package model

// Store is a laundry outlet selling service packages.
type Store struct {
	ID   int64
	Name string
}
