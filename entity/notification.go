package entity

// Notification is what the surface shows the customer. CloseSurface asks
// the host to close the surface once the message is acknowledged; it is
// set for confirmed bookings and expired sessions, never for outcomes the
// customer can retry from.
type Notification struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	IsError      bool   `json:"is_error"`
	CloseSurface bool   `json:"close_surface"`
}
