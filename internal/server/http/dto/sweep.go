package dto

// SweepResponse reports how many orders the expiry sweep transitioned.
type SweepResponse struct {
	Expired int64 `json:"expired"`
}
