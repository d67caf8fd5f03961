package showtimes

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusOpen      Status = "OPEN"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
)

// CanTransitionTo reports whether a status change is allowed. Cancelled
// and closed showtimes are terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusScheduled:
		return target == StatusOpen || target == StatusCancelled
	case StatusOpen:
		return target == StatusClosed || target == StatusCancelled
	default:
		return false
	}
}

// Bookable reports whether tickets can currently be sold.
func (s Status) Bookable() bool {
	return s == StatusOpen
}
