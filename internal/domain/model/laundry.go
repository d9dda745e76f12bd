package model

// LaundryStatus describes the fulfillment lifecycle driven by store staff.
// It is independent of the payment lifecycle.
type LaundryStatus string

const (
	LaundryStatusAwaitingProcessing LaundryStatus = "AWAITING_PROCESSING"
	LaundryStatusInProgress         LaundryStatus = "IN_PROGRESS"
	LaundryStatusOnHold             LaundryStatus = "ON_HOLD"
	LaundryStatusQualityCheck       LaundryStatus = "QUALITY_CHECK"
	LaundryStatusReadyForCollection LaundryStatus = "READY_FOR_COLLECTION"
	LaundryStatusCompleted          LaundryStatus = "COMPLETED"
)

// laundryTransitions lists the allowed next steps for each fulfillment state.
// ON_HOLD is a side state reachable from and returning to IN_PROGRESS.
var laundryTransitions = map[LaundryStatus][]LaundryStatus{
	LaundryStatusAwaitingProcessing: {LaundryStatusInProgress},
	LaundryStatusInProgress:         {LaundryStatusOnHold, LaundryStatusQualityCheck},
	LaundryStatusOnHold:             {LaundryStatusInProgress},
	LaundryStatusQualityCheck:       {LaundryStatusReadyForCollection},
	LaundryStatusReadyForCollection: {LaundryStatusCompleted},
	LaundryStatusCompleted:          nil,
}

// ValidLaundryStatus reports whether s is part of the fulfillment vocabulary.
func ValidLaundryStatus(s LaundryStatus) bool {
	_, ok := laundryTransitions[s]
	return ok
}

// CanTransitionLaundry reports whether fulfillment may move from one state to
// another in a single step.
func CanTransitionLaundry(from, to LaundryStatus) bool {
	for _, next := range laundryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
