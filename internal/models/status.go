package models

// Status is the order lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// ValidStatus reports whether s is a member of the status enumeration.
// Transition ordering is conventional only; the single enforced
// precondition lives in the cancel path.
func ValidStatus(s Status) bool {
	return validStatuses[s]
}
