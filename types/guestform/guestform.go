package guestform

// LookupRequest searches for a reservation by check-in date at the
// facility named in the URL.
type LookupRequest struct {
	CheckInDate string `json:"check_in_date"`
}

// LookupResponse returns the form access token for the reservation.
type LookupResponse struct {
	Token string `json:"token"`
}
