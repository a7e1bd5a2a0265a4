package bookings

// BookingResponse is the collaborator's answer to POST /bookings
type BookingResponse struct {
	BookingID string `json:"bookingId"`
	Message   string `json:"message,omitempty"`
}

// FieldErrors holds one message per form field. The terms slot also carries
// submission failures.
type FieldErrors struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Terms    string `json:"terms,omitempty"`
}

// Empty reports whether no field has an error
func (f FieldErrors) Empty() bool {
	return f.FullName == "" && f.Email == "" && f.Terms == ""
}
