package reservation

// Status is the booking lifecycle label as reported by Beds24.
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusNew       Status = "New"
	StatusRequest   Status = "Request"
	StatusCancelled Status = "Cancelled"
	StatusBlack     Status = "Black"
	StatusDeclined  Status = "Declined"
	StatusUnknown   Status = "Unknown"
)

func (s Status) String() string {
	return string(s)
}

// IsActive returns true for statuses the cancellation sweep still
// considers live. A reservation in one of these states that disappears
// from a full window re-fetch gets marked Cancelled.
func (s Status) IsActive() bool {
	switch s {
	case StatusConfirmed, StatusNew, StatusUnknown:
		return true
	default:
		return false
	}
}

// ActiveStatuses returns the sweep's "still active" set as strings for
// use in SQL IN clauses.
func ActiveStatuses() []string {
	return []string{
		StatusConfirmed.String(),
		StatusNew.String(),
		StatusUnknown.String(),
	}
}

// RosterStatus tracks whether the guest roster form has been handed in.
type RosterStatus string

const (
	RosterPending   RosterStatus = "pending"
	RosterSubmitted RosterStatus = "submitted"
	RosterVerified  RosterStatus = "verified"
)

func (rs RosterStatus) IsValid() bool {
	switch rs {
	case RosterPending, RosterSubmitted, RosterVerified:
		return true
	default:
		return false
	}
}
