package bookings

// Status is where a checkout's submission currently stands
type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusSubmitting Status = "SUBMITTING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusRejected   Status = "REJECTED"
)

// IsValid checks if the submission status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusSubmitting, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanSubmit checks if a new submission may start from this status
func (s Status) CanSubmit() bool {
	return s == StatusIdle || s == StatusRejected
}
