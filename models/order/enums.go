package order

// Status is the lifecycle label of a rented number.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once the order can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// CanTransitionTo reports whether next is a legal successor of s.
// Only pending orders move, and only to completed or canceled.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusCompleted || next == StatusCanceled
}

// GetAllStatuses returns all valid order statuses
func GetAllStatuses() []Status {
	return []Status{StatusPending, StatusCompleted, StatusCanceled}
}
