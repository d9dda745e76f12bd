package dto

// LaundryStatusRequest carries the target laundry state for a staff update.
type LaundryStatusRequest struct {
	Status string `json:"status"`
}
