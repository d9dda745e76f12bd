package model

import "time"

// User is a registered account. StoreID is set for store staff and nil for
// shoppers.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	StoreID      *int64
	CreatedAt    time.Time
}

// IsStaff reports whether the user belongs to a store crew.
func (u *User) IsStaff() bool {
	return u.StoreID != nil
}
